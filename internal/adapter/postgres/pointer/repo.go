// Package pointer implements the session continuation store using PostgreSQL.
// There is at most one pointer per caller identity; saving overwrites it.
package pointer

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/huddle-backend/internal/adapter/postgres"
	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// Repo provides session pointer persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new pointer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const saveSQL = `
INSERT INTO session_pointers (identity, locator, stash, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (identity) DO UPDATE
SET locator = EXCLUDED.locator, stash = EXCLUDED.stash, expires_at = EXCLUDED.expires_at`

const fetchSQL = `
SELECT identity, locator, stash, expires_at
FROM session_pointers
WHERE identity = $1 AND expires_at > $2`

const clearSQL = `DELETE FROM session_pointers WHERE identity = $1`

const deleteExpiredSQL = `DELETE FROM session_pointers WHERE expires_at <= $1`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Save stores the pointer for its identity, replacing any previous one.
func (r *Repo) Save(ctx context.Context, p domain.SessionPointer) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, saveSQL, p.Identity, p.Locator, p.Stash, p.ExpiresAt.UTC())
	if err != nil {
		return postgres.MapError(err, "session_pointer", p.Identity)
	}
	return nil
}

// Fetch returns the live pointer for identity. Expired pointers are treated
// as absent and reported as domain.ErrNotFound.
func (r *Repo) Fetch(ctx context.Context, identity string, now time.Time) (*domain.SessionPointer, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPointer(querier.QueryRow(ctx, fetchSQL, identity, now.UTC()))
	if err != nil {
		return nil, postgres.MapError(err, "session_pointer", identity)
	}
	return p, nil
}

// Clear removes the pointer for identity. Clearing a missing pointer is not an error.
func (r *Repo) Clear(ctx context.Context, identity string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, clearSQL, identity); err != nil {
		return postgres.MapError(err, "session_pointer", identity)
	}
	return nil
}

// DeleteExpired removes all pointers that expired at or before now and
// returns how many were removed.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteExpiredSQL, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired session pointers: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPointer(row pgx.Row) (*domain.SessionPointer, error) {
	var p domain.SessionPointer
	if err := row.Scan(&p.Identity, &p.Locator, &p.Stash, &p.ExpiresAt); err != nil {
		return nil, err
	}
	return &p, nil
}
