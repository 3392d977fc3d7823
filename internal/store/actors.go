package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/riftgate/boost/internal/boost"
)

// GetActor returns the actor with the given name, or nil if none exists.
func (s *Store) GetActor(ctx context.Context, name string) (*boost.Actor, error) {
	var a boost.Actor
	err := s.db.QueryRowContext(ctx, `
		SELECT name, job, temp_job, location, active_booster
		FROM actors
		WHERE name = ?
	`, name).Scan(&a.Name, &a.Job, &a.TempJob, &a.Location, &a.ActiveBooster)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get actor: %w", err)
	}
	return &a, nil
}

// SaveActor upserts an actor reference.
func (s *Store) SaveActor(ctx context.Context, a *boost.Actor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO actors (name, job, temp_job, location, active_booster)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			job = excluded.job,
			temp_job = excluded.temp_job,
			location = excluded.location,
			active_booster = excluded.active_booster
	`, a.Name, a.Job, a.TempJob, a.Location, a.ActiveBooster)
	if err != nil {
		return fmt.Errorf("save actor: %w", err)
	}
	return nil
}
