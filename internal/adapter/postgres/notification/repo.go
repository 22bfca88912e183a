// Package notification implements the Notification repository using PostgreSQL.
package notification

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/huddle-backend/internal/adapter/postgres"
	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const notificationColumns = `id, target_id, entity_id, kind, channel, message, audit_log_id, created_at`

const createSQL = `
INSERT INTO notifications (id, target_id, entity_id, kind, channel, message, audit_log_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const listByTargetSQL = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE target_id = $1
ORDER BY created_at DESC
LIMIT $2`

// Create inserts a notification. A second notification with the same entity,
// kind and target fails with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, n domain.Notification) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSQL,
		n.ID, n.TargetID, n.EntityID, string(n.Kind), string(n.Channel), n.Message, n.AuditLogID, n.CreatedAt.UTC(),
	)
	if err != nil {
		return postgres.MapError(err, "notification", n.ID)
	}
	return nil
}

// NotifiedTargets returns the subset of targets that already have a
// notification of the given kind about entityID.
func (r *Repo) NotifiedTargets(ctx context.Context, entityID uuid.UUID, kind domain.NotificationKind, targets []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	if len(targets) == 0 {
		return out, nil
	}

	query, args, err := postgres.Psql.Select("target_id").
		From("notifications").
		Where(sq.Eq{"entity_id": entityID, "kind": string(kind)}).
		Where("target_id = ANY(?)", targets).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notified targets query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notified targets: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("scan notified targets: %w", err)
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// ListByTarget returns the latest notifications sent to a user.
func (r *Repo) ListByTarget(ctx context.Context, targetID uuid.UUID, limit int) ([]domain.Notification, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByTargetSQL, targetID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications by target: %w", err)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		var (
			n       domain.Notification
			kind    string
			channel string
		)
		if err := row.Scan(&n.ID, &n.TargetID, &n.EntityID, &kind, &channel, &n.Message, &n.AuditLogID, &n.CreatedAt); err != nil {
			return domain.Notification{}, err
		}
		n.Kind = domain.NotificationKind(kind)
		n.Channel = domain.Channel(channel)
		return n, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan notifications: %w", err)
	}
	return list, nil
}
