package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftgate/boost/internal/boost"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func pendingGrant(id, beneficiary string) *boost.Request {
	return &boost.Request{
		ID:               id,
		Beneficiary:      beneficiary,
		Booster:          "wilmet",
		Category:         boost.CategoryCrafting,
		Status:           boost.StatusPending,
		RequestedAt:      testTime,
		PendingExpiresAt: testTime.Add(48 * time.Hour),
		Context:          map[string]string{"note": "first"},
	}
}

func TestPutGrant_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := pendingGrant("b7f3a1c2", "bryn")
	want.PresentationRefs = []string{"msg:1187"}
	require.NoError(t, s.PutGrant(ctx, want, testTime.Add(30*24*time.Hour)))

	got, err := s.GetGrant(ctx, "b7f3a1c2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, got)
}

func TestPutGrant_IdempotentOnDuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := pendingGrant("b7f3a1c2", "bryn")
	require.NoError(t, s.PutGrant(ctx, first, testTime.Add(time.Hour)))

	// Second write with the same id is silently ignored.
	second := pendingGrant("b7f3a1c2", "someone-else")
	require.NoError(t, s.PutGrant(ctx, second, testTime.Add(time.Hour)))

	got, err := s.GetGrant(ctx, "b7f3a1c2")
	require.NoError(t, err)
	assert.Equal(t, "bryn", got.Beneficiary)
}

func TestGetGrant_MissingReturnsNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetGrant(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGrantsForBeneficiary_DeterministicOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	late := pendingGrant("zz-late", "bryn")
	late.RequestedAt = testTime.Add(time.Hour)
	early := pendingGrant("aa-early", "bryn")
	other := pendingGrant("cc-other", "tamsin")

	for _, r := range []*boost.Request{late, early, other} {
		require.NoError(t, s.PutGrant(ctx, r, testTime.Add(time.Hour)))
	}

	grants, err := s.GrantsForBeneficiary(ctx, "bryn")
	require.NoError(t, err)
	require.Len(t, grants, 2)
	assert.Equal(t, "aa-early", grants[0].ID)
	assert.Equal(t, "zz-late", grants[1].ID)
}

func TestGrantsForBeneficiary_EmptyNotNil(t *testing.T) {
	s := openTestStore(t)

	grants, err := s.GrantsForBeneficiary(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, grants)
	assert.Empty(t, grants)
}

func TestUpdateGrant_StatusCAS(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutGrant(ctx, pendingGrant("b7f3a1c2", "bryn"), testTime.Add(time.Hour)))

	acceptedAt := testTime.Add(time.Minute)
	expires := acceptedAt.Add(24 * time.Hour)
	updated, err := s.UpdateGrant(ctx, "b7f3a1c2", boost.StatusPending, boost.StatusAccepted, nil, GrantPatch{
		AcceptedAt:     &acceptedAt,
		BoostExpiresAt: &expires,
		Effect:         &boost.Effect{Name: "sure-hands", Description: "refund"},
	})
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := s.GetGrant(ctx, "b7f3a1c2")
	require.NoError(t, err)
	assert.Equal(t, boost.StatusAccepted, got.Status)
	assert.Equal(t, acceptedAt, got.AcceptedAt)
	assert.Equal(t, expires, got.BoostExpiresAt)
	require.NotNil(t, got.Effect)
	assert.Equal(t, "sure-hands", got.Effect.Name)

	// The loser of the race observes updated=false, never an overwrite.
	updated, err = s.UpdateGrant(ctx, "b7f3a1c2", boost.StatusPending, boost.StatusCancelled, nil, GrantPatch{})
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestUpdateGrant_DeadlineGuard(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := pendingGrant("b7f3a1c2", "bryn")
	require.NoError(t, s.PutGrant(ctx, r, testTime.Add(100*24*time.Hour)))

	// Guard instant past the pending deadline: the CAS must not apply even
	// though the stored status still matches.
	late := r.PendingExpiresAt.Add(time.Second)
	updated, err := s.UpdateGrant(ctx, "b7f3a1c2", boost.StatusPending, boost.StatusAccepted, &late, GrantPatch{})
	require.NoError(t, err)
	assert.False(t, updated)

	// At the deadline itself the window is still open.
	onTime := r.PendingExpiresAt
	updated, err = s.UpdateGrant(ctx, "b7f3a1c2", boost.StatusPending, boost.StatusAccepted, &onTime, GrantPatch{})
	require.NoError(t, err)
	assert.True(t, updated)
}

func TestUpdateGrant_RejectsIllegalTransition(t *testing.T) {
	s := openTestStore(t)

	_, err := s.UpdateGrant(context.Background(), "any", boost.StatusFulfilled, boost.StatusAccepted, nil, GrantPatch{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal transition")
}

func TestUpdateGrant_MissingRecordNotUpdated(t *testing.T) {
	s := openTestStore(t)

	updated, err := s.UpdateGrant(context.Background(), "ghost", boost.StatusPending, boost.StatusExpired, nil, GrantPatch{})
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestPurgeExpired(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	old := pendingGrant("aa-old", "bryn")
	fresh := pendingGrant("bb-fresh", "tamsin")
	require.NoError(t, s.PutGrant(ctx, old, testTime.Add(-time.Hour)))
	require.NoError(t, s.PutGrant(ctx, fresh, testTime.Add(time.Hour)))

	purged, err := s.PurgeExpired(ctx, testTime)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	got, err := s.GetGrant(ctx, "aa-old")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.GetGrant(ctx, "bb-fresh")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
