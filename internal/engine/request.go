package engine

import (
	"context"
	"fmt"

	"github.com/riftgate/boost/internal/boost"
)

// RequestInput describes a boost request to create.
type RequestInput struct {
	Beneficiary string
	Booster     string
	Category    boost.Category

	// Context carries category-specific auxiliary data, e.g. the target
	// village for the cross-region delivery variant.
	Context map[string]string

	// Requester is the actor initiating the request. Recorded for logging;
	// the engine does not gate who may request beyond eligibility.
	Requester string

	// AllowRemote skips the co-location check. Reserved for designated
	// contexts such as test fixtures.
	AllowRemote bool

	// PresentationRefs are opaque front-end identifiers attached to the
	// record for the front end's own later updates.
	PresentationRefs []string
}

// Request validates eligibility and creates a pending boost request.
//
// Fails with a CONFLICT domain error when an unexpired pending or accepted
// grant already exists for the beneficiary, INELIGIBLE when the booster's
// effective job lacks the category's perk (or the context parameters don't
// match the resolved effect), and PASSIVE_EFFECT when the resolved effect
// applies automatically and cannot be granted by hand.
func (e *Engine) Request(ctx context.Context, in RequestInput) (*boost.Request, error) {
	if !in.Category.Valid() {
		return nil, fmt.Errorf("request boost: unknown category %q", in.Category)
	}
	if in.Beneficiary == in.Booster {
		return nil, &boost.Error{
			Code:        boost.ErrCodeIneligible,
			Message:     "an actor cannot boost themself",
			Beneficiary: in.Beneficiary,
			Booster:     in.Booster,
			Category:    in.Category,
		}
	}

	beneficiary, err := e.getKnownActor(ctx, in.Beneficiary)
	if err != nil {
		return nil, err
	}
	booster, err := e.getKnownActor(ctx, in.Booster)
	if err != nil {
		return nil, err
	}

	if verr := checkColocation(beneficiary, booster, in.AllowRemote); verr != nil {
		return nil, verr
	}

	job := booster.EffectiveJob()
	effect, ok := resolveEffect(e.catalog, job, in.Category)
	if !ok {
		return nil, boost.NewIneligibleError(booster.Name, job, in.Category)
	}
	if verr := checkGrantable(effect, in.Category, in.Context); verr != nil {
		return nil, verr
	}

	now := e.clock.Now()

	// Single-active-grant invariant: at most one live pending/accepted
	// record per beneficiary. Logically expired records don't count.
	existing, err := e.grants.GrantsForBeneficiary(ctx, in.Beneficiary)
	if err != nil {
		return nil, fmt.Errorf("request boost: %w", err)
	}
	for _, r := range existing {
		if r.Live(now) {
			return nil, boost.NewConflictError(r, now)
		}
	}

	r := &boost.Request{
		ID:               e.ids.Generate(),
		Beneficiary:      in.Beneficiary,
		Booster:          in.Booster,
		Category:         in.Category,
		Status:           boost.StatusPending,
		RequestedAt:      now,
		PendingExpiresAt: now.Add(e.pendingTTL),
		Context:          in.Context,
		PresentationRefs: in.PresentationRefs,
	}

	if err := e.grants.PutGrant(ctx, r, r.PendingExpiresAt.Add(e.retention)); err != nil {
		return nil, fmt.Errorf("request boost: %w", err)
	}

	e.logger.Info("boost requested",
		"request", r.ID,
		"beneficiary", r.Beneficiary,
		"booster", r.Booster,
		"category", r.Category,
		"requester", in.Requester,
	)

	return r, nil
}

// getKnownActor fetches an actor and converts absence into a domain error,
// since an unknown name is a user-correctable condition.
func (e *Engine) getKnownActor(ctx context.Context, name string) (*boost.Actor, error) {
	actor, err := e.actors.GetActor(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch actor: %w", err)
	}
	if actor == nil {
		return nil, &boost.Error{
			Code:    boost.ErrCodeNotFound,
			Message: fmt.Sprintf("no actor named %q", name),
			Details: map[string]string{"actor": name},
		}
	}
	return actor, nil
}
