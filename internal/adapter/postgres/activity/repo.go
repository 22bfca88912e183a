// Package activity implements the Activity repository using PostgreSQL.
// All three activity kinds share one table; kind-specific fields live in the
// JSONB payload column, todo assignees in todo_assignees.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/huddle-backend/internal/adapter/postgres"
	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// Repo provides activity persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

var activityColumns = []string{
	"id", "kind", "creator_id", "group_id", "label", "label_normalized", "scheduled_at",
	"canceled", "closed", "reminder_offsets", "reminders_sent", "revision", "payload",
	"created_at", "updated_at",
}

const insertSQL = `
INSERT INTO activities (id, kind, creator_id, group_id, label, label_normalized, scheduled_at,
    canceled, closed, reminder_offsets, reminders_sent, revision, payload, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

const updateSQL = `
UPDATE activities
SET label = $2, label_normalized = $3, scheduled_at = $4, payload = $5, revision = $6, updated_at = $7
WHERE id = $1`

const cancelSQL = `UPDATE activities SET canceled = true, updated_at = $2 WHERE id = $1 AND NOT canceled`

const closeSQL = `UPDATE activities SET closed = true, updated_at = $2 WHERE id = $1 AND NOT closed`

const remindersSentSQL = `
UPDATE activities SET reminders_sent = GREATEST(reminders_sent, $2), updated_at = $3 WHERE id = $1`

const assigneesSQL = `SELECT todo_id, user_id FROM todo_assignees WHERE todo_id = ANY($1) ORDER BY user_id`

const addAssigneeSQL = `
INSERT INTO todo_assignees (todo_id, user_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an activity by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	query, args, err := postgres.Psql.Select(activityColumns...).
		From("activities").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get activity query: %w", err)
	}

	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "activity", id)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("activity %s: %w", id, domain.ErrNotFound)
	}
	return list[0], nil
}

// FindDuplicate returns the earliest-created, not-canceled activity with the
// same creator, group and normalized label whose scheduled instant lies in
// [From, To]. Returns domain.ErrNotFound when there is none.
func (r *Repo) FindDuplicate(ctx context.Context, q domain.DuplicateQuery) (domain.Activity, error) {
	query, args, err := postgres.Psql.Select(activityColumns...).
		From("activities").
		Where(sq.Eq{
			"creator_id":       q.CreatorID,
			"group_id":         q.GroupID,
			"label_normalized": q.LabelNormalized,
			"canceled":         false,
		}).
		Where(sq.GtOrEq{"scheduled_at": q.From}).
		Where(sq.LtOrEq{"scheduled_at": q.To}).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build duplicate query: %w", err)
	}

	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find duplicate activity: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("duplicate activity: %w", domain.ErrNotFound)
	}
	return list[0], nil
}

// ListUpcoming returns not-canceled activities scheduled in (from, to],
// ordered by scheduled_at. Votes already closed and todos already done are skipped.
func (r *Repo) ListUpcoming(ctx context.Context, from, to time.Time) ([]domain.Activity, error) {
	query, args, err := postgres.Psql.Select(activityColumns...).
		From("activities").
		Where(sq.Eq{"canceled": false, "closed": false}).
		Where(sq.Gt{"scheduled_at": from}).
		Where(sq.LtOrEq{"scheduled_at": to}).
		OrderBy("scheduled_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upcoming query: %w", err)
	}

	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list upcoming activities: %w", err)
	}
	return list, nil
}

// ListByGroupIDs returns the not-canceled activities of several groups,
// ordered by group and scheduled instant.
func (r *Repo) ListByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Activity, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	query, args, err := postgres.Psql.Select(activityColumns...).
		From("activities").
		Where(sq.Eq{"group_id": groupIDs, "canceled": false}).
		OrderBy("group_id", "scheduled_at ASC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activities by groups query: %w", err)
	}

	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities by groups: %w", err)
	}
	return list, nil
}

// ListClosable returns open votes whose deadline is at or before now.
func (r *Repo) ListClosable(ctx context.Context, now time.Time) ([]domain.Activity, error) {
	query, args, err := postgres.Psql.Select(activityColumns...).
		From("activities").
		Where(sq.Eq{"kind": string(domain.ActivityKindVote), "canceled": false, "closed": false}).
		Where(sq.LtOrEq{"scheduled_at": now}).
		OrderBy("scheduled_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build closable query: %w", err)
	}

	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list closable votes: %w", err)
	}
	return list, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new activity. Todo assignees are inserted alongside.
func (r *Repo) Create(ctx context.Context, a domain.Activity) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	b := a.Base()

	payload, closed, err := marshalPayload(a)
	if err != nil {
		return fmt.Errorf("activity %s: %w", b.ID, err)
	}

	_, err = querier.Exec(ctx, insertSQL,
		b.ID, string(a.Kind()), b.CreatorID, b.GroupID, b.Label, b.LabelNormalized,
		b.ScheduledAt.UTC(), b.Canceled, closed, offsetsToSeconds(b.ReminderOffsets),
		b.RemindersSent, b.Revision, payload, b.CreatedAt.UTC(), b.UpdatedAt.UTC(),
	)
	if err != nil {
		return postgres.MapError(err, "activity", b.ID)
	}

	if todo, ok := a.(*domain.Todo); ok {
		if err := r.AddAssignees(ctx, todo.ID, todo.Assignees); err != nil {
			return err
		}
	}
	return nil
}

// Update persists label, schedule, payload and revision of an activity.
func (r *Repo) Update(ctx context.Context, a domain.Activity) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	b := a.Base()

	payload, _, err := marshalPayload(a)
	if err != nil {
		return fmt.Errorf("activity %s: %w", b.ID, err)
	}

	tag, err := querier.Exec(ctx, updateSQL,
		b.ID, b.Label, b.LabelNormalized, b.ScheduledAt.UTC(), payload, b.Revision, b.UpdatedAt.UTC(),
	)
	if err != nil {
		return postgres.MapError(err, "activity", b.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activity %s: %w", b.ID, domain.ErrNotFound)
	}
	return nil
}

// Cancel marks an activity canceled. Returns domain.ErrConflict if it already was.
func (r *Repo) Cancel(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.flip(ctx, cancelSQL, id, at)
}

// Close marks a vote closed or a todo done. Returns domain.ErrConflict if it already was.
func (r *Repo) Close(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.flip(ctx, closeSQL, id, at)
}

func (r *Repo) flip(ctx context.Context, sql string, id uuid.UUID, at time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, sql, id, at.UTC())
	if err != nil {
		return postgres.MapError(err, "activity", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activity %s: %w", id, domain.ErrConflict)
	}
	return nil
}

// SetRemindersSent raises reminders_sent to n; it never decreases.
func (r *Repo) SetRemindersSent(ctx context.Context, id uuid.UUID, n int, at time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, remindersSentSQL, id, n, at.UTC()); err != nil {
		return postgres.MapError(err, "activity", id)
	}
	return nil
}

// AddAssignees links users to a todo. Already-linked users are ignored.
func (r *Repo) AddAssignees(ctx context.Context, todoID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, uid := range userIDs {
		batch.Queue(addAssigneeSQL, todoID, uid)
	}

	br := querier.SendBatch(ctx, batch)
	defer br.Close()

	for range userIDs {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, "todo_assignee", todoID)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func (r *Repo) query(ctx context.Context, sql string, args ...any) ([]domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list, err := scanActivities(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadAssignees(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repo) loadAssignees(ctx context.Context, list []domain.Activity) error {
	todos := make(map[uuid.UUID]*domain.Todo)
	ids := make([]uuid.UUID, 0)
	for _, a := range list {
		if todo, ok := a.(*domain.Todo); ok {
			todos[todo.ID] = todo
			ids = append(ids, todo.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, assigneesSQL, ids)
	if err != nil {
		return fmt.Errorf("load todo assignees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var todoID, userID uuid.UUID
		if err := rows.Scan(&todoID, &userID); err != nil {
			return fmt.Errorf("scan todo assignee: %w", err)
		}
		todos[todoID].Assignees = append(todos[todoID].Assignees, userID)
	}
	return rows.Err()
}

func scanActivities(rows pgx.Rows) ([]domain.Activity, error) {
	defer rows.Close()

	var list []domain.Activity
	for rows.Next() {
		var (
			b       domain.ActivityBase
			kind    string
			closed  bool
			offsets []int64
			payload []byte
		)
		err := rows.Scan(
			&b.ID, &kind, &b.CreatorID, &b.GroupID, &b.Label, &b.LabelNormalized, &b.ScheduledAt,
			&b.Canceled, &closed, &offsets, &b.RemindersSent, &b.Revision, &payload,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		b.ReminderOffsets = secondsToOffsets(offsets)

		a, err := unmarshalPayload(domain.ActivityKind(kind), b, closed, payload)
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", b.ID, err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// ---------------------------------------------------------------------------
// JSONB payload helpers
// ---------------------------------------------------------------------------

// Domain types have no json tags, so the repo layer owns the payload shape.
type meetingPayload struct {
	Location *string `json:"location,omitempty"`
}

type votePayload struct {
	Options []string `json:"options"`
}

type todoPayload struct{}

func marshalPayload(a domain.Activity) ([]byte, bool, error) {
	var (
		v      any
		closed bool
	)
	switch act := a.(type) {
	case *domain.Meeting:
		v = meetingPayload{Location: act.Location}
	case *domain.Vote:
		v = votePayload{Options: act.Options}
		closed = act.Closed
	case *domain.Todo:
		v = todoPayload{}
		closed = act.Done
	default:
		return nil, false, fmt.Errorf("unsupported activity type %T", a)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, false, fmt.Errorf("marshal payload: %w", err)
	}
	return data, closed, nil
}

func unmarshalPayload(kind domain.ActivityKind, b domain.ActivityBase, closed bool, data []byte) (domain.Activity, error) {
	switch kind {
	case domain.ActivityKindMeeting:
		var p meetingPayload
		if err := unmarshalIfPresent(data, &p); err != nil {
			return nil, err
		}
		return &domain.Meeting{ActivityBase: b, Location: p.Location}, nil
	case domain.ActivityKindVote:
		var p votePayload
		if err := unmarshalIfPresent(data, &p); err != nil {
			return nil, err
		}
		return &domain.Vote{ActivityBase: b, Options: p.Options, Closed: closed}, nil
	case domain.ActivityKindTodo:
		return &domain.Todo{ActivityBase: b, Done: closed}, nil
	}
	return nil, fmt.Errorf("unknown activity kind %q", kind)
}

func unmarshalIfPresent(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}

func offsetsToSeconds(offsets []time.Duration) []int64 {
	out := make([]int64, len(offsets))
	for i, d := range offsets {
		out[i] = int64(d / time.Second)
	}
	return out
}

func secondsToOffsets(secs []int64) []time.Duration {
	if len(secs) == 0 {
		return nil
	}
	out := make([]time.Duration, len(secs))
	for i, s := range secs {
		out[i] = time.Duration(s) * time.Second
	}
	return out
}
