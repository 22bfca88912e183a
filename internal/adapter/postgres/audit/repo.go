// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log entries. Responses to
// activities are stored here too, as RESPONDED entries carrying the answer.
package audit

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

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const auditColumns = `id, actor_id, entity_type, entity_id, action, detail, created_at`

const createSQL = `
INSERT INTO audit_log (id, actor_id, entity_type, entity_id, action, detail, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit entry.
func (r *Repo) Create(ctx context.Context, entry domain.AuditLogEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSQL,
		entry.ID, entry.ActorID, string(entry.EntityType), entry.EntityID,
		string(entry.Action), entry.Detail, entry.CreatedAt.UTC(),
	)
	if err != nil {
		return postgres.MapError(err, "audit_log", entry.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByEntity returns entries for an entity ordered by created_at ASC.
// When actions is non-empty only those actions are returned.
func (r *Repo) ListByEntity(ctx context.Context, entityID uuid.UUID, actions ...domain.AuditAction) ([]domain.AuditLogEntry, error) {
	b := postgres.Psql.Select(auditColumns).
		From("audit_log").
		Where(sq.Eq{"entity_id": entityID}).
		OrderBy("created_at ASC", "id ASC")

	if len(actions) > 0 {
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = string(a)
		}
		b = b.Where(sq.Eq{"action": names})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit_log by entity: %w", err)
	}

	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("scan audit_log: %w", err)
	}
	return entries, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanEntry(row pgx.CollectableRow) (domain.AuditLogEntry, error) {
	var (
		e          domain.AuditLogEntry
		entityType string
		action     string
	)
	err := row.Scan(&e.ID, &e.ActorID, &entityType, &e.EntityID, &action, &e.Detail, &e.CreatedAt)
	if err != nil {
		return domain.AuditLogEntry{}, err
	}
	e.EntityType = domain.EntityType(entityType)
	e.Action = domain.AuditAction(action)
	return e, nil
}
