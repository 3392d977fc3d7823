package engine

import (
	"context"
	"fmt"

	"github.com/riftgate/boost/internal/boost"
)

// ActiveBoost returns the beneficiary's live accepted grant, or nil when
// none exists. This is the read path every downstream activity starts from.
//
// Two repairs ride along with the read:
//   - pending/accepted records past their deadline get their expired status
//     persisted (lazy expiry write-back)
//   - the beneficiary's cached active-booster back-reference is realigned
//     with the store in both drift directions: restored when the store shows
//     an active grant the cache lost, cleared when the cache points at a
//     grant that no longer exists or is no longer live
func (e *Engine) ActiveBoost(ctx context.Context, beneficiary string) (*boost.Request, error) {
	active, err := e.liveGrant(ctx, beneficiary, boost.StatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("active boost: %w", err)
	}

	if err := e.reconcile(ctx, beneficiary, active); err != nil {
		return nil, fmt.Errorf("active boost: %w", err)
	}

	return active, nil
}

// PendingBoost returns the beneficiary's live pending request, or nil when
// none exists. Expired pendings observed on the way get written back.
func (e *Engine) PendingBoost(ctx context.Context, beneficiary string) (*boost.Request, error) {
	pending, err := e.liveGrant(ctx, beneficiary, boost.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("pending boost: %w", err)
	}
	return pending, nil
}

// liveGrant scans the beneficiary's grants for the one live record with the
// wanted status, persisting expiry for any stale record it passes.
func (e *Engine) liveGrant(ctx context.Context, beneficiary string, want boost.Status) (*boost.Request, error) {
	grants, err := e.grants.GrantsForBeneficiary(ctx, beneficiary)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	var found *boost.Request
	for _, r := range grants {
		if r.Status.Terminal() {
			continue
		}
		if !r.Live(now) {
			e.expireLocked(ctx, r, now)
			continue
		}
		if r.Status == want && found == nil {
			found = r
		}
	}
	return found, nil
}

// reconcile realigns the cached back-reference with the store's truth.
// The cache is always safe to overwrite with the reconciliation result.
func (e *Engine) reconcile(ctx context.Context, beneficiary string, active *boost.Request) error {
	actor, err := e.actors.GetActor(ctx, beneficiary)
	if err != nil || actor == nil {
		return err
	}

	switch {
	case active != nil && actor.ActiveBooster != active.Booster:
		e.logger.Debug("restoring active booster cache",
			"beneficiary", beneficiary,
			"was", actor.ActiveBooster,
			"now", active.Booster,
		)
		actor.ActiveBooster = active.Booster
		return e.actors.SaveActor(ctx, actor)

	case active == nil && actor.ActiveBooster != "":
		e.logger.Debug("clearing stale active booster cache",
			"beneficiary", beneficiary,
			"was", actor.ActiveBooster,
		)
		actor.ActiveBooster = ""
		return e.actors.SaveActor(ctx, actor)
	}

	return nil
}

// Redeem is the consumption protocol packaged for downstream activities:
// look up the active grant, enforce the strict category match, and retire
// the grant if and only if its category is single-use. Duration-based grants
// are left untouched for repeated use until expiry or cancellation.
//
// Returns nil (no error) when the beneficiary has no applicable boost - the
// caller simply proceeds unboosted.
func (e *Engine) Redeem(ctx context.Context, beneficiary string, category boost.Category) (*boost.Request, error) {
	active, err := e.ActiveBoost(ctx, beneficiary)
	if err != nil {
		return nil, err
	}
	if active == nil || active.Category != category {
		return nil, nil
	}

	if category.SingleUse() {
		if err := e.Consume(ctx, active.ID); err != nil {
			return nil, fmt.Errorf("redeem boost: %w", err)
		}
		active.Status = boost.StatusFulfilled
	}

	return active, nil
}
