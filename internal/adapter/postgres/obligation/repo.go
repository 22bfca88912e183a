// Package obligation answers "does this user owe a response of kind K?"
// with one cheap query per kind. Each query returns the oldest unanswered
// subject so repeated calls over unchanged data agree.
package obligation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/huddle-backend/internal/adapter/postgres"
)

// Repo runs obligation lookups against PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new obligation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

// The member who opened a check is not asked about it.
const pendingSafetySQL = `
SELECT c.id
FROM safety_checks c
JOIN memberships m ON m.group_id = c.group_id AND m.user_id = $1
WHERE c.closed_at IS NULL
  AND c.created_by <> $1
  AND NOT EXISTS (SELECT 1 FROM safety_responses r WHERE r.check_id = c.id AND r.user_id = $1)
ORDER BY c.created_at, c.id
LIMIT 1`

// notResponded excludes activities the user already answered.
const notResponded = `
  AND NOT EXISTS (
      SELECT 1 FROM audit_log l
      WHERE l.entity_id = a.id AND l.action = 'RESPONDED' AND l.actor_id = $1
  )`

// Late joiners are not obligated to votes created before they joined.
const pendingVoteSQL = `
SELECT a.id
FROM activities a
JOIN memberships m ON m.group_id = a.group_id AND m.user_id = $1
WHERE a.kind = 'VOTE' AND NOT a.canceled AND NOT a.closed
  AND a.scheduled_at > $2
  AND a.creator_id <> $1
  AND m.joined_at <= a.created_at` + notResponded + `
ORDER BY a.created_at, a.id
LIMIT 1`

const pendingRSVPSQL = `
SELECT a.id
FROM activities a
JOIN memberships m ON m.group_id = a.group_id AND m.user_id = $1
WHERE a.kind = 'MEETING' AND NOT a.canceled
  AND a.scheduled_at > $2
  AND a.creator_id <> $1` + notResponded + `
ORDER BY a.created_at, a.id
LIMIT 1`

const pendingTodoSQL = `
SELECT a.id
FROM activities a
JOIN todo_assignees ta ON ta.todo_id = a.id AND ta.user_id = $1
JOIN memberships m ON m.group_id = a.group_id AND m.user_id = $1
WHERE a.kind = 'TODO' AND NOT a.canceled AND NOT a.closed
  AND m.joined_at <= a.created_at` + notResponded + `
ORDER BY a.created_at, a.id
LIMIT 1`

const needsSelfRenameSQL = `SELECT id FROM users WHERE id = $1 AND name = ''`

const pendingGroupRenameSQL = `
SELECT id FROM groups
WHERE created_by = $1 AND name = ''
ORDER BY created_at, id
LIMIT 1`

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

// PendingSafety returns the oldest open safety check the user has not answered.
func (r *Repo) PendingSafety(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	return r.first(ctx, "pending safety", pendingSafetySQL, userID)
}

// PendingVote returns the oldest open vote the user may still answer.
func (r *Repo) PendingVote(ctx context.Context, userID uuid.UUID, now time.Time) (uuid.UUID, bool, error) {
	return r.first(ctx, "pending vote", pendingVoteSQL, userID, now.UTC())
}

// PendingRSVP returns the oldest upcoming meeting the user has not RSVP'd to.
func (r *Repo) PendingRSVP(ctx context.Context, userID uuid.UUID, now time.Time) (uuid.UUID, bool, error) {
	return r.first(ctx, "pending rsvp", pendingRSVPSQL, userID, now.UTC())
}

// PendingTodo returns the oldest open todo assigned to the user without an answer.
func (r *Repo) PendingTodo(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	return r.first(ctx, "pending todo", pendingTodoSQL, userID)
}

// NeedsSelfRename reports whether the user still has no display name.
func (r *Repo) NeedsSelfRename(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	return r.first(ctx, "self rename", needsSelfRenameSQL, userID)
}

// PendingGroupRename returns the oldest group created by the user that still
// has the default name.
func (r *Repo) PendingGroupRename(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	return r.first(ctx, "group rename", pendingGroupRenameSQL, userID)
}

func (r *Repo) first(ctx context.Context, what, sql string, args ...any) (uuid.UUID, bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var id uuid.UUID
	err := querier.QueryRow(ctx, sql, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("%s: %w", what, err)
	}
	return id, true, nil
}
