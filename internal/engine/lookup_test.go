package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftgate/boost/internal/boost"
)

func TestActiveBoost_ReturnsAcceptedGrant(t *testing.T) {
	w := newTestWorld(t)

	r := w.acceptedCrafting(t)

	active, err := w.engine.ActiveBoost(context.Background(), "bryn")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, r.ID, active.ID)
}

func TestActiveBoost_PendingIsNotActive(t *testing.T) {
	w := newTestWorld(t)

	w.requestCrafting(t)

	active, err := w.engine.ActiveBoost(context.Background(), "bryn")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestActiveBoost_LogicallyExpiredGrantIsNullAndPersisted(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	r := w.acceptedCrafting(t)
	w.clock.Advance(DefaultBoostTTL + time.Minute)

	// No writer has persisted the expiry yet; the read must still say null.
	active, err := w.engine.ActiveBoost(ctx, "bryn")
	require.NoError(t, err)
	assert.Nil(t, active)

	// And the read wrote the observation back.
	assert.Equal(t, boost.StatusExpired, w.grant(t, r.ID).Status)
	assert.Empty(t, w.actor(t, "bryn").ActiveBooster)
}

func TestActiveBoost_RestoresLostCache(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	w.acceptedCrafting(t)

	// Simulate drift: the cached back-reference is lost.
	bryn := w.actor(t, "bryn")
	bryn.ActiveBooster = ""
	require.NoError(t, w.store.SaveActor(ctx, bryn))

	active, err := w.engine.ActiveBoost(ctx, "bryn")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "wilmet", w.actor(t, "bryn").ActiveBooster)
}

func TestActiveBoost_ClearsStaleCache(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	// Simulate drift the other way: the cache names a booster but the store
	// has no active grant at all.
	bryn := w.actor(t, "bryn")
	bryn.ActiveBooster = "wilmet"
	require.NoError(t, w.store.SaveActor(ctx, bryn))

	active, err := w.engine.ActiveBoost(ctx, "bryn")
	require.NoError(t, err)
	assert.Nil(t, active)
	assert.Empty(t, w.actor(t, "bryn").ActiveBooster)
}

func TestPendingBoost(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	r := w.requestCrafting(t)

	pending, err := w.engine.PendingBoost(ctx, "bryn")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, r.ID, pending.ID)

	w.clock.Advance(DefaultPendingTTL + time.Second)
	pending, err = w.engine.PendingBoost(ctx, "bryn")
	require.NoError(t, err)
	assert.Nil(t, pending)
	assert.Equal(t, boost.StatusExpired, w.grant(t, r.ID).Status)
}

func TestRedeem_DurationCategorySurvivesRepeatedUse(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	w.acceptedCrafting(t)

	first, err := w.engine.Redeem(ctx, "bryn", boost.CategoryCrafting)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "sure-hands", first.Effect.Name)

	// An independent consumer five minutes later still finds the grant.
	w.clock.Advance(5 * time.Minute)
	second, err := w.engine.Redeem(ctx, "bryn", boost.CategoryCrafting)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, boost.StatusAccepted, second.Status)
}

func TestRedeem_SingleUseCategoryRetiresGrant(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	r, err := w.engine.Request(ctx, RequestInput{
		Beneficiary: "bryn",
		Booster:     "wilmet",
		Category:    boost.CategoryOther,
	})
	require.NoError(t, err)
	_, err = w.engine.Accept(ctx, r.ID, "wilmet")
	require.NoError(t, err)

	used, err := w.engine.Redeem(ctx, "bryn", boost.CategoryOther)
	require.NoError(t, err)
	require.NotNil(t, used)
	assert.Equal(t, "windfall", used.Effect.Name)

	// One use retires the grant entirely.
	active, err := w.engine.ActiveBoost(ctx, "bryn")
	require.NoError(t, err)
	assert.Nil(t, active)
	assert.Equal(t, boost.StatusFulfilled, w.grant(t, r.ID).Status)
}

func TestRedeem_StrictCategoryMatch(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	w.acceptedCrafting(t)

	// A Crafting grant never applies to Gathering.
	got, err := w.engine.Redeem(ctx, "bryn", boost.CategoryGathering)
	require.NoError(t, err)
	assert.Nil(t, got)

	// And the mismatch did not consume anything.
	active, err := w.engine.ActiveBoost(ctx, "bryn")
	require.NoError(t, err)
	assert.NotNil(t, active)
}

func TestRedeem_NoBoostIsNotAnError(t *testing.T) {
	w := newTestWorld(t)

	got, err := w.engine.Redeem(context.Background(), "bryn", boost.CategoryCrafting)
	require.NoError(t, err)
	assert.Nil(t, got)
}
