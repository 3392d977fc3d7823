package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/riftgate/boost/internal/boost"
	"github.com/riftgate/boost/internal/catalog"
	"github.com/riftgate/boost/internal/store"
)

// Default TTLs. Both are fixed system constants, not user input.
const (
	// DefaultPendingTTL is how long a request waits for acceptance.
	DefaultPendingTTL = 48 * time.Hour

	// DefaultBoostTTL is how long an accepted grant stays active.
	DefaultBoostTTL = 24 * time.Hour

	// DefaultRetention is how long a record outlives its last deadline
	// before the store's TTL sweep may reclaim it. Terminal records stay
	// queryable until then.
	DefaultRetention = 30 * 24 * time.Hour
)

// GrantStore is the record store the engine persists boost requests to.
// Satisfied by *store.Store.
type GrantStore interface {
	PutGrant(ctx context.Context, r *boost.Request, purgeAfter time.Time) error
	GetGrant(ctx context.Context, id string) (*boost.Request, error)
	GrantsForBeneficiary(ctx context.Context, beneficiary string) ([]*boost.Request, error)
	UpdateGrant(ctx context.Context, id string, expected, next boost.Status, notExpiredAt *time.Time, patch store.GrantPatch) (bool, error)
}

// ActorStore is the actor reference store. The engine only reads the
// effective job and location, and writes the cached active-booster
// back-reference. Satisfied by *store.Store.
type ActorStore interface {
	GetActor(ctx context.Context, name string) (*boost.Actor, error)
	SaveActor(ctx context.Context, a *boost.Actor) error
}

// Engine is the boost lifecycle manager.
type Engine struct {
	grants  GrantStore
	actors  ActorStore
	catalog *catalog.Catalog
	clock   Clock
	ids     IDGenerator
	logger  *slog.Logger

	pendingTTL time.Duration
	boostTTL   time.Duration
	retention  time.Duration
}

// Option configures engine parameters.
type Option func(*Engine)

// WithClock substitutes the time source. Used by tests and the scenario
// harness to drive expiry deterministically.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithIDs substitutes the request id generator.
func WithIDs(g IDGenerator) Option {
	return func(e *Engine) { e.ids = g }
}

// WithLogger sets the structured logger for lifecycle transitions.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithPendingTTL overrides the acceptance window.
func WithPendingTTL(d time.Duration) Option {
	return func(e *Engine) { e.pendingTTL = d }
}

// WithBoostTTL overrides the accepted grant duration.
func WithBoostTTL(d time.Duration) Option {
	return func(e *Engine) { e.boostTTL = d }
}

// New creates an Engine over the given stores and effect catalog.
func New(grants GrantStore, actors ActorStore, cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		grants:     grants,
		actors:     actors,
		catalog:    cat,
		clock:      SystemClock{},
		ids:        TokenGenerator{},
		logger:     slog.Default(),
		pendingTTL: DefaultPendingTTL,
		boostTTL:   DefaultBoostTTL,
		retention:  DefaultRetention,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// setActiveBooster writes the beneficiary's cached back-reference.
// The cache is best-effort: a missing actor record is not an error, and any
// value written here is rebuildable from the grant store by ActiveBoost.
func (e *Engine) setActiveBooster(ctx context.Context, beneficiary, booster string) error {
	actor, err := e.actors.GetActor(ctx, beneficiary)
	if err != nil {
		return err
	}
	if actor == nil || actor.ActiveBooster == booster {
		return nil
	}
	actor.ActiveBooster = booster
	return e.actors.SaveActor(ctx, actor)
}

// clearActiveBooster clears the back-reference when it points at the given
// booster. A cache already pointing elsewhere belongs to a newer grant and
// is left alone.
func (e *Engine) clearActiveBooster(ctx context.Context, beneficiary, booster string) error {
	actor, err := e.actors.GetActor(ctx, beneficiary)
	if err != nil {
		return err
	}
	if actor == nil || actor.ActiveBooster != booster {
		return nil
	}
	actor.ActiveBooster = ""
	return e.actors.SaveActor(ctx, actor)
}
