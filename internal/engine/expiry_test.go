package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftgate/boost/internal/boost"
)

func TestObserveExpiry_PendingPastDeadline(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	r := w.requestCrafting(t)
	w.clock.Advance(DefaultPendingTTL + time.Second)

	require.NoError(t, w.engine.ObserveExpiry(ctx, r.ID))
	assert.Equal(t, boost.StatusExpired, w.grant(t, r.ID).Status)

	// Redundant calls are no-ops.
	require.NoError(t, w.engine.ObserveExpiry(ctx, r.ID))
	assert.Equal(t, boost.StatusExpired, w.grant(t, r.ID).Status)
}

func TestObserveExpiry_AcceptedClearsCache(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	r := w.acceptedCrafting(t)
	require.Equal(t, "wilmet", w.actor(t, "bryn").ActiveBooster)

	w.clock.Advance(DefaultBoostTTL + time.Second)
	require.NoError(t, w.engine.ObserveExpiry(ctx, r.ID))

	assert.Equal(t, boost.StatusExpired, w.grant(t, r.ID).Status)
	assert.Empty(t, w.actor(t, "bryn").ActiveBooster)
}

func TestObserveExpiry_LiveRecordUntouched(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	r := w.acceptedCrafting(t)
	w.clock.Advance(time.Hour)

	require.NoError(t, w.engine.ObserveExpiry(ctx, r.ID))
	assert.Equal(t, boost.StatusAccepted, w.grant(t, r.ID).Status)
}

func TestObserveExpiry_UnknownIDIsNoOp(t *testing.T) {
	w := newTestWorld(t)

	assert.NoError(t, w.engine.ObserveExpiry(context.Background(), "ghost"))
}

func TestObserveExpiry_TerminalRecordIsNoOp(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	r := w.acceptedCrafting(t)
	require.NoError(t, w.engine.Cancel(ctx, r.ID, "bryn"))
	w.clock.Advance(100 * DefaultBoostTTL)

	require.NoError(t, w.engine.ObserveExpiry(ctx, r.ID))
	assert.Equal(t, boost.StatusCancelled, w.grant(t, r.ID).Status)
}
