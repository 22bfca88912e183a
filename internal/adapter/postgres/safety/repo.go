// Package safety implements the SafetyCheck repository using PostgreSQL.
package safety

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/huddle-backend/internal/adapter/postgres"
	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// Repo provides safety check persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new safety repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const checkColumns = `id, group_id, created_by, created_at, closed_at`

const createSQL = `
INSERT INTO safety_checks (id, group_id, created_by, created_at)
VALUES ($1, $2, $3, $4)`

const getByIDSQL = `SELECT ` + checkColumns + ` FROM safety_checks WHERE id = $1`

const getOpenSQL = `
SELECT ` + checkColumns + `
FROM safety_checks
WHERE group_id = $1 AND closed_at IS NULL
ORDER BY created_at DESC
LIMIT 1`

const respondSQL = `
INSERT INTO safety_responses (check_id, user_id, safe, responded_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (check_id, user_id) DO NOTHING`

const closeSQL = `UPDATE safety_checks SET closed_at = $2 WHERE id = $1 AND closed_at IS NULL`

// Create inserts a new open safety check.
func (r *Repo) Create(ctx context.Context, c domain.SafetyCheck) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, createSQL, c.ID, c.GroupID, c.CreatedBy, c.CreatedAt.UTC()); err != nil {
		return postgres.MapError(err, "safety_check", c.ID)
	}
	return nil
}

// GetByID returns a safety check by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SafetyCheck, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCheck(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "safety_check", id)
	}
	return c, nil
}

// GetOpenForGroup returns the latest open check of a group, or domain.ErrNotFound.
func (r *Repo) GetOpenForGroup(ctx context.Context, groupID uuid.UUID) (*domain.SafetyCheck, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCheck(querier.QueryRow(ctx, getOpenSQL, groupID))
	if err != nil {
		return nil, postgres.MapError(err, "safety_check", groupID)
	}
	return c, nil
}

// Respond records a member's answer. Returns false if the member had
// already answered; the first answer stands.
func (r *Repo) Respond(ctx context.Context, checkID, userID uuid.UUID, safe bool, at time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, respondSQL, checkID, userID, safe, at.UTC())
	if err != nil {
		return false, postgres.MapError(err, "safety_response", checkID)
	}
	return tag.RowsAffected() == 1, nil
}

// Close stops a check from accepting responses.
// Returns domain.ErrConflict if it was already closed.
func (r *Repo) Close(ctx context.Context, id uuid.UUID, at time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, closeSQL, id, at.UTC())
	if err != nil {
		return postgres.MapError(err, "safety_check", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("safety_check %s: %w", id, domain.ErrConflict)
	}
	return nil
}

func scanCheck(row pgx.Row) (*domain.SafetyCheck, error) {
	var c domain.SafetyCheck
	if err := row.Scan(&c.ID, &c.GroupID, &c.CreatedBy, &c.CreatedAt, &c.ClosedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
