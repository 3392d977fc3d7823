package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riftgate/boost/internal/boost"
)

// grantColumns is the column list shared by every grant query.
const grantColumns = `id, beneficiary, booster, category, status,
	requested_at, pending_expires_at, accepted_at, boost_expires_at, fulfilled_at,
	effect, context, presentation_refs`

// PutGrant inserts a grant record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - a redundant write of the
// same record is silently ignored. The engine never overwrites a record
// through Put; all mutation goes through UpdateGrant.
//
// purgeAfter is the TTL reclamation deadline: the row becomes eligible for
// PurgeExpired once purgeAfter passes. It is a storage-hygiene bound only.
func (s *Store) PutGrant(ctx context.Context, r *boost.Request, purgeAfter time.Time) error {
	effectJSON, err := marshalEffect(r.Effect)
	if err != nil {
		return fmt.Errorf("put grant: %w", err)
	}
	contextJSON, err := marshalContext(r.Context)
	if err != nil {
		return fmt.Errorf("put grant: %w", err)
	}
	refsJSON, err := marshalRefs(r.PresentationRefs)
	if err != nil {
		return fmt.Errorf("put grant: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO grants
		(id, beneficiary, booster, category, status,
		 requested_at, pending_expires_at, accepted_at, boost_expires_at, fulfilled_at,
		 effect, context, presentation_refs, purge_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		r.ID,
		r.Beneficiary,
		r.Booster,
		string(r.Category),
		boost.StatusLabel(r.Status),
		r.RequestedAt.Unix(),
		r.PendingExpiresAt.Unix(),
		timeToNull(r.AcceptedAt),
		timeToNull(r.BoostExpiresAt),
		timeToNull(r.FulfilledAt),
		nullIfEmpty(effectJSON),
		nullIfEmpty(contextJSON),
		nullIfEmpty(refsJSON),
		purgeAfter.Unix(),
	)
	if err != nil {
		return fmt.Errorf("put grant: %w", err)
	}

	return nil
}

// GetGrant returns the grant with the given id, or nil if none exists.
func (s *Store) GetGrant(ctx context.Context, id string) (*boost.Request, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+grantColumns+`
		FROM grants
		WHERE id = ?
	`, id)

	r, err := scanGrant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get grant: %w", err)
	}
	return r, nil
}

// GrantsForBeneficiary returns all grants for a beneficiary with
// deterministic ordering: requested_at ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if no records exist.
func (s *Store) GrantsForBeneficiary(ctx context.Context, beneficiary string) ([]*boost.Request, error) {
	return s.queryGrants(ctx, `
		SELECT `+grantColumns+`
		FROM grants
		WHERE beneficiary = ?
		ORDER BY requested_at ASC, id COLLATE BINARY ASC
	`, beneficiary)
}

// ScanGrants returns every grant record with deterministic ordering.
// Used by cancellation-by-name flows and operational listing.
func (s *Store) ScanGrants(ctx context.Context) ([]*boost.Request, error) {
	return s.queryGrants(ctx, `
		SELECT `+grantColumns+`
		FROM grants
		ORDER BY requested_at ASC, id COLLATE BINARY ASC
	`)
}

func (s *Store) queryGrants(ctx context.Context, query string, args ...any) ([]*boost.Request, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query grants: %w", err)
	}
	defer rows.Close()

	var grants []*boost.Request
	for rows.Next() {
		r, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		grants = append(grants, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grants: %w", err)
	}

	if grants == nil {
		grants = []*boost.Request{}
	}

	return grants, nil
}

// GrantPatch carries the optional field updates applied alongside a status
// transition. Nil fields are left untouched.
type GrantPatch struct {
	AcceptedAt     *time.Time
	BoostExpiresAt *time.Time
	FulfilledAt    *time.Time
	Effect         *boost.Effect
	PurgeAfter     *time.Time
}

// UpdateGrant performs the conditional status write that linearizes all
// mutations of a grant record.
//
// The UPDATE only applies when the stored status still equals expected; a
// concurrent writer that already moved the record on wins, and this call
// reports updated=false instead of overwriting. When notExpiredAt is non-nil
// the WHERE clause additionally requires the deadline governing the expected
// status (pending_expires_at for pending, boost_expires_at for accepted) to
// be at or after that instant, so the deadline is re-checked atomically with
// the status comparison rather than before it.
func (s *Store) UpdateGrant(ctx context.Context, id string, expected, next boost.Status, notExpiredAt *time.Time, patch GrantPatch) (updated bool, err error) {
	if !boost.CanTransition(expected, next) {
		return false, fmt.Errorf("update grant: illegal transition %s -> %s",
			boost.StatusLabel(expected), boost.StatusLabel(next))
	}

	set := []string{"status = ?"}
	args := []any{boost.StatusLabel(next)}

	if patch.AcceptedAt != nil {
		set = append(set, "accepted_at = ?")
		args = append(args, patch.AcceptedAt.Unix())
	}
	if patch.BoostExpiresAt != nil {
		set = append(set, "boost_expires_at = ?")
		args = append(args, patch.BoostExpiresAt.Unix())
	}
	if patch.FulfilledAt != nil {
		set = append(set, "fulfilled_at = ?")
		args = append(args, patch.FulfilledAt.Unix())
	}
	if patch.Effect != nil {
		effectJSON, err := marshalEffect(patch.Effect)
		if err != nil {
			return false, fmt.Errorf("update grant: %w", err)
		}
		set = append(set, "effect = ?")
		args = append(args, effectJSON)
	}
	if patch.PurgeAfter != nil {
		set = append(set, "purge_after = ?")
		args = append(args, patch.PurgeAfter.Unix())
	}

	where := []string{"id = ?", "status = ?"}
	args = append(args, id, boost.StatusLabel(expected))

	if notExpiredAt != nil {
		switch expected {
		case boost.StatusPending:
			where = append(where, "pending_expires_at >= ?")
		case boost.StatusAccepted:
			where = append(where, "boost_expires_at >= ?")
		default:
			return false, fmt.Errorf("update grant: no deadline guard for %s", boost.StatusLabel(expected))
		}
		args = append(args, notExpiredAt.Unix())
	}

	query := "UPDATE grants SET " + strings.Join(set, ", ") +
		" WHERE " + strings.Join(where, " AND ")

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update grant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update grant: rows affected: %w", err)
	}

	return affected == 1, nil
}

// PurgeExpired deletes rows whose purge_after deadline passed before now.
// Returns the number of rows reclaimed. This is the TTL safety net; no
// lifecycle logic depends on it.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM grants WHERE purge_after < ?
	`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("purge grants: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge grants: rows affected: %w", err)
	}
	return affected, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanGrant.
type scanner interface {
	Scan(dest ...any) error
}

func scanGrant(sc scanner) (*boost.Request, error) {
	var (
		r                                  boost.Request
		category, status                   string
		requestedAt, pendingExpiresAt      int64
		acceptedAt, boostExpires, fulfilled sql.NullInt64
		effectJSON, contextJSON, refsJSON  sql.NullString
	)

	err := sc.Scan(
		&r.ID, &r.Beneficiary, &r.Booster, &category, &status,
		&requestedAt, &pendingExpiresAt, &acceptedAt, &boostExpires, &fulfilled,
		&effectJSON, &contextJSON, &refsJSON,
	)
	if err != nil {
		return nil, err
	}

	r.Category = boost.Category(category)
	r.Status = boost.StatusFromLabel(status)
	r.RequestedAt = time.Unix(requestedAt, 0).UTC()
	r.PendingExpiresAt = time.Unix(pendingExpiresAt, 0).UTC()
	r.AcceptedAt = nullToTime(acceptedAt)
	r.BoostExpiresAt = nullToTime(boostExpires)
	r.FulfilledAt = nullToTime(fulfilled)

	if r.Effect, err = unmarshalEffect(effectJSON.String); err != nil {
		return nil, err
	}
	if r.Context, err = unmarshalContext(contextJSON.String); err != nil {
		return nil, err
	}
	if r.PresentationRefs, err = unmarshalRefs(refsJSON.String); err != nil {
		return nil, err
	}

	return &r, nil
}

func timeToNull(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func nullToTime(n sql.NullInt64) time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return time.Unix(n.Int64, 0).UTC()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
