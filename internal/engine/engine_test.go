package engine

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riftgate/boost/internal/boost"
	"github.com/riftgate/boost/internal/catalog"
	"github.com/riftgate/boost/internal/store"
	"github.com/riftgate/boost/internal/testutil"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testWorld is the shared fixture: an engine over an in-memory store with a
// manual clock, sequential ids, and a seeded village of actors.
type testWorld struct {
	engine  *Engine
	store   *store.Store
	clock   *testutil.ManualClock
	catalog *catalog.Catalog
}

func newTestWorld(t *testing.T, opts ...Option) *testWorld {
	t.Helper()

	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := testutil.NewManualClock(baseTime)
	cat := catalog.Default()

	base := []Option{
		WithClock(clock),
		WithIDs(testutil.NewSequenceIDs("req")),
		WithLogger(slog.New(slog.DiscardHandler)),
	}
	eng := New(s, s, cat, append(base, opts...)...)

	seed := []*boost.Actor{
		{Name: "bryn", Job: "smith", Location: "thornwick"},
		{Name: "wilmet", Job: "smith", Location: "thornwick"},
		{Name: "tamsin", Job: "herbalist", Location: "thornwick"},
		{Name: "osric", Job: "rogue", Location: "thornwick"},
		{Name: "petra", Job: "guardian", Location: "thornwick"},
		{Name: "garrick", Job: "courier", Location: "emberfall"},
	}
	for _, a := range seed {
		require.NoError(t, s.SaveActor(context.Background(), a))
	}

	return &testWorld{engine: eng, store: s, clock: clock, catalog: cat}
}

// requestCrafting creates a pending Crafting request from wilmet to bryn.
func (w *testWorld) requestCrafting(t *testing.T) *boost.Request {
	t.Helper()
	r, err := w.engine.Request(context.Background(), RequestInput{
		Beneficiary: "bryn",
		Booster:     "wilmet",
		Category:    boost.CategoryCrafting,
		Requester:   "bryn",
	})
	require.NoError(t, err)
	return r
}

// acceptedCrafting creates and accepts a Crafting grant for bryn.
func (w *testWorld) acceptedCrafting(t *testing.T) *boost.Request {
	t.Helper()
	r := w.requestCrafting(t)
	accepted, err := w.engine.Accept(context.Background(), r.ID, "wilmet")
	require.NoError(t, err)
	return accepted
}

func (w *testWorld) grant(t *testing.T, id string) *boost.Request {
	t.Helper()
	r, err := w.store.GetGrant(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func (w *testWorld) actor(t *testing.T, name string) *boost.Actor {
	t.Helper()
	a, err := w.store.GetActor(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}
