package engine

import (
	"context"
	"fmt"

	"github.com/riftgate/boost/internal/boost"
	"github.com/riftgate/boost/internal/store"
)

// Cancel withdraws a pending or accepted request. Only the beneficiary or
// booster of the record may cancel; anyone else gets UNAUTHORIZED regardless
// of the record's state. Cancellation is immediate and unconditional for any
// non-terminal record - there is no in-progress intermediate state.
//
// A record whose deadline already passed is expired rather than cancelled,
// and the caller gets ALREADY_TERMINAL: computed expiry outranks the stored
// status here like everywhere else.
func (e *Engine) Cancel(ctx context.Context, id, actor string) error {
	r, err := e.grants.GetGrant(ctx, id)
	if err != nil {
		return fmt.Errorf("cancel boost: %w", err)
	}
	if r == nil {
		return boost.NewNotFoundError(id)
	}
	if actor != r.Beneficiary && actor != r.Booster {
		return boost.NewUnauthorizedError(r, actor)
	}
	if r.Status.Terminal() {
		return boost.NewAlreadyTerminalError(r)
	}

	now := e.clock.Now()
	if !r.Live(now) {
		e.expireLocked(ctx, r, now)
		r.Status = boost.StatusExpired
		return boost.NewAlreadyTerminalError(r)
	}

	updated, err := e.grants.UpdateGrant(ctx, id, r.Status, boost.StatusCancelled, nil, store.GrantPatch{})
	if err != nil {
		return fmt.Errorf("cancel boost: %w", err)
	}
	if !updated {
		// Lost a race; re-read once. A pending request accepted in the
		// meantime is still cancellable from its new status.
		r, err = e.grants.GetGrant(ctx, id)
		if err != nil {
			return fmt.Errorf("cancel boost: %w", err)
		}
		if r == nil {
			return boost.NewNotFoundError(id)
		}
		if r.Status.Terminal() {
			return boost.NewAlreadyTerminalError(r)
		}
		updated, err = e.grants.UpdateGrant(ctx, id, r.Status, boost.StatusCancelled, nil, store.GrantPatch{})
		if err != nil {
			return fmt.Errorf("cancel boost: %w", err)
		}
		if !updated {
			return boost.NewAlreadyTerminalError(r)
		}
	}

	if err := e.clearActiveBooster(ctx, r.Beneficiary, r.Booster); err != nil {
		return fmt.Errorf("cancel boost: %w", err)
	}

	e.logger.Info("boost cancelled",
		"request", r.ID,
		"beneficiary", r.Beneficiary,
		"booster", r.Booster,
		"by", actor,
	)

	return nil
}
