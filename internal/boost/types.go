package boost

import "time"

// Effect describes what a granted boost does. The engine never applies an
// effect numerically; each consumer interprets the descriptor for its own
// computation.
type Effect struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Passive effects apply automatically outside this engine's control and
	// cannot be manually requested or accepted.
	Passive bool `json:"passive,omitempty"`

	// RequiresTarget marks the cross-region variant: the request context must
	// carry a target village, and may not carry one for any other effect.
	RequiresTarget bool `json:"requires_target,omitempty"`
}

// TargetVillageKey is the context key carrying the cross-region target.
const TargetVillageKey = "target_village"

// Request is the persisted record representing one offer-to-use cycle of a
// boost. It is the sole entity this engine owns.
type Request struct {
	// ID is a short unique token generated at creation.
	ID string `json:"id"`

	Beneficiary string   `json:"beneficiary"`
	Booster     string   `json:"booster"`
	Category    Category `json:"category"`
	Status      Status   `json:"status"`

	RequestedAt      time.Time `json:"requested_at"`
	PendingExpiresAt time.Time `json:"pending_expires_at"`
	AcceptedAt       time.Time `json:"accepted_at,omitzero"`
	BoostExpiresAt   time.Time `json:"boost_expires_at,omitzero"`
	FulfilledAt      time.Time `json:"fulfilled_at,omitzero"`

	// Effect is snapshotted from the catalog at accept time so later catalog
	// changes never retroactively alter an already-granted effect.
	Effect *Effect `json:"effect,omitempty"`

	// Context carries category-specific auxiliary data, opaque to the engine.
	Context map[string]string `json:"context,omitempty"`

	// PresentationRefs are opaque identifiers a front end may attach for its
	// own later updates. The engine tolerates their absence.
	PresentationRefs []string `json:"presentation_refs,omitempty"`
}

// PendingLive reports whether the record is a pending request whose
// acceptance window is still open at now.
func (r *Request) PendingLive(now time.Time) bool {
	return r.Status == StatusPending && !now.After(r.PendingExpiresAt)
}

// AcceptedLive reports whether the record is an accepted grant whose
// duration has not elapsed at now.
func (r *Request) AcceptedLive(now time.Time) bool {
	return r.Status == StatusAccepted && !now.After(r.BoostExpiresAt)
}

// Live reports whether the record counts against the single-active-grant
// invariant at now. Stored status alone is not enough: a pending or accepted
// record past its deadline is logically expired even before any writer
// persists that fact.
func (r *Request) Live(now time.Time) bool {
	return r.PendingLive(now) || r.AcceptedLive(now)
}

// Deadline returns the expiry deadline governing the record's current status,
// or the zero time for terminal statuses.
func (r *Request) Deadline() time.Time {
	switch r.Status {
	case StatusPending:
		return r.PendingExpiresAt
	case StatusAccepted:
		return r.BoostExpiresAt
	}
	return time.Time{}
}

// Actor is a reference to a game actor. Actors are created and destroyed
// entirely outside this engine; the engine reads the effective job and
// location for eligibility, and maintains ActiveBooster as a derived cache
// of the grant store.
type Actor struct {
	Name     string `json:"name"`
	Job      string `json:"job"`
	TempJob  string `json:"temp_job,omitempty"`
	Location string `json:"location"`

	// ActiveBooster caches who currently boosts this actor. It is a pure
	// projection of the grant store, repaired on read, never ground truth.
	ActiveBooster string `json:"active_booster,omitempty"`
}

// EffectiveJob returns the job used for eligibility and effect resolution,
// honoring a temporary job assignment when one is set.
func (a *Actor) EffectiveJob() string {
	if a.TempJob != "" {
		return a.TempJob
	}
	return a.Job
}
