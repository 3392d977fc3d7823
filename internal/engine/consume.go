package engine

import (
	"context"
	"fmt"

	"github.com/riftgate/boost/internal/boost"
	"github.com/riftgate/boost/internal/store"
)

// Consume retires a single-use grant after a downstream activity applied its
// effect: status becomes fulfilled and the beneficiary's back-reference is
// cleared.
//
// Consume is idempotent under race. Two consumers can both read the grant as
// active before either retires it; the loser's conditional write fails, the
// re-read finds the record already fulfilled, and that is success, not an
// error. The only domain error is NOT_FOUND for an unknown id; any terminal
// record is a no-op.
func (e *Engine) Consume(ctx context.Context, id string) error {
	r, err := e.grants.GetGrant(ctx, id)
	if err != nil {
		return fmt.Errorf("consume boost: %w", err)
	}
	if r == nil {
		return boost.NewNotFoundError(id)
	}
	if r.Status.Terminal() {
		return nil
	}
	if r.Status == boost.StatusPending {
		return boost.NewWrongStateError(r, "consume")
	}

	now := e.clock.Now()
	if !r.AcceptedLive(now) {
		// Logically expired; persist that instead of fulfilling.
		e.expireLocked(ctx, r, now)
		return nil
	}

	updated, err := e.grants.UpdateGrant(ctx, id, boost.StatusAccepted, boost.StatusFulfilled, &now, store.GrantPatch{
		FulfilledAt: &now,
	})
	if err != nil {
		return fmt.Errorf("consume boost: %w", err)
	}
	if !updated {
		// Another caller finalized the record first. Whatever it became,
		// there is nothing left to retire.
		return nil
	}

	if err := e.clearActiveBooster(ctx, r.Beneficiary, r.Booster); err != nil {
		return fmt.Errorf("consume boost: %w", err)
	}

	e.logger.Info("boost consumed",
		"request", r.ID,
		"beneficiary", r.Beneficiary,
		"category", r.Category,
	)

	return nil
}
