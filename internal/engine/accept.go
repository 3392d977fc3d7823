package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/riftgate/boost/internal/boost"
	"github.com/riftgate/boost/internal/store"
)

// Accept turns a pending request into an active grant.
//
// The resolved effect (booster's effective job at accept time × category) is
// snapshotted into the record, so later catalog changes never alter it. Side
// effects such as resource costs charged to the booster are the caller's
// responsibility, invoked around this call.
//
// The pending deadline is enforced twice: once against the loaded record for
// a precise ALREADY_EXPIRED error, and again inside the conditional write so
// a request cannot be granted after its window closes no matter how the
// calls interleave.
func (e *Engine) Accept(ctx context.Context, id, booster string) (*boost.Request, error) {
	r, err := e.grants.GetGrant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("accept boost: %w", err)
	}
	if r == nil {
		return nil, boost.NewNotFoundError(id)
	}
	if r.Booster != booster {
		return nil, boost.NewBoosterMismatchError(r, booster)
	}
	if r.Status != boost.StatusPending {
		return nil, boost.NewWrongStateError(r, "accept")
	}

	now := e.clock.Now()
	if now.After(r.PendingExpiresAt) {
		e.expireLocked(ctx, r, now)
		return nil, boost.NewAlreadyExpiredError(r, now)
	}

	actor, err := e.getKnownActor(ctx, booster)
	if err != nil {
		return nil, err
	}
	job := actor.EffectiveJob()
	effect, ok := resolveEffect(e.catalog, job, r.Category)
	if !ok {
		// The booster's job changed since the request was created.
		return nil, boost.NewIneligibleError(booster, job, r.Category)
	}
	if effect.Passive {
		return nil, boost.NewPassiveEffectError(effect, r.Category)
	}

	boostExpires := now.Add(e.boostTTL)
	purgeAfter := boostExpires.Add(e.retention)
	updated, err := e.grants.UpdateGrant(ctx, id, boost.StatusPending, boost.StatusAccepted, &now, store.GrantPatch{
		AcceptedAt:     &now,
		BoostExpiresAt: &boostExpires,
		Effect:         &effect,
		PurgeAfter:     &purgeAfter,
	})
	if err != nil {
		return nil, fmt.Errorf("accept boost: %w", err)
	}
	if !updated {
		return nil, e.acceptRaceError(ctx, id, now)
	}

	if err := e.setActiveBooster(ctx, r.Beneficiary, r.Booster); err != nil {
		return nil, fmt.Errorf("accept boost: %w", err)
	}

	r.Status = boost.StatusAccepted
	r.AcceptedAt = now
	r.BoostExpiresAt = boostExpires
	r.Effect = &effect

	e.logger.Info("boost accepted",
		"request", r.ID,
		"beneficiary", r.Beneficiary,
		"booster", r.Booster,
		"category", r.Category,
		"effect", effect.Name,
		"expires_at", boostExpires,
	)

	return r, nil
}

// acceptRaceError classifies a failed accept CAS by re-reading the record.
func (e *Engine) acceptRaceError(ctx context.Context, id string, now time.Time) error {
	r, err := e.grants.GetGrant(ctx, id)
	if err != nil {
		return fmt.Errorf("accept boost: %w", err)
	}
	if r == nil {
		return boost.NewNotFoundError(id)
	}
	if r.Status == boost.StatusPending {
		// Still pending, so the deadline guard is what rejected the write.
		e.expireLocked(ctx, r, now)
		return boost.NewAlreadyExpiredError(r, now)
	}
	return boost.NewWrongStateError(r, "accept")
}
