package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/riftgate/boost/internal/boost"
	"github.com/riftgate/boost/internal/store"
)

// ObserveExpiry persists the expired status for a record whose deadline has
// passed. Idempotent and safe to call redundantly: records that are not
// past-deadline, already terminal, or unknown are left untouched without
// error. This is how logical expiry becomes durable; correctness never
// depends on it being called, only on readers comparing deadlines.
func (e *Engine) ObserveExpiry(ctx context.Context, id string) error {
	r, err := e.grants.GetGrant(ctx, id)
	if err != nil {
		return fmt.Errorf("observe expiry: %w", err)
	}
	if r == nil || r.Status.Terminal() {
		return nil
	}

	now := e.clock.Now()
	if r.Live(now) {
		return nil
	}

	e.expireLocked(ctx, r, now)
	return nil
}

// expireLocked transitions a past-deadline record to expired via the status
// CAS and clears the beneficiary's back-reference when the record held it.
// A failed CAS means another writer finalized the record first; that result
// is equivalent, so failures are absorbed.
func (e *Engine) expireLocked(ctx context.Context, r *boost.Request, now time.Time) {
	updated, err := e.grants.UpdateGrant(ctx, r.ID, r.Status, boost.StatusExpired, nil, store.GrantPatch{})
	if err != nil {
		e.logger.Warn("expiry write-back failed", "request", r.ID, "error", err)
		return
	}
	if !updated {
		return
	}

	if r.Status == boost.StatusAccepted {
		if err := e.clearActiveBooster(ctx, r.Beneficiary, r.Booster); err != nil {
			e.logger.Warn("expiry cache clear failed", "request", r.ID, "error", err)
		}
	}

	e.logger.Info("boost expired",
		"request", r.ID,
		"beneficiary", r.Beneficiary,
		"from", boost.StatusLabel(r.Status),
		"deadline", r.Deadline(),
		"observed_at", now,
	)
}
