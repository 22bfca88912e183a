// Package user implements the User repository using PostgreSQL.
package user

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

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const userColumns = `id, phone, name, locale, channel, welcomed_at, created_at, updated_at`

const getByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

const getByPhoneSQL = `SELECT ` + userColumns + ` FROM users WHERE phone = $1`

const getByIDsSQL = `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1) ORDER BY id`

const createSQL = `
INSERT INTO users (id, phone, name, locale, channel, welcomed_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns

const renameSQL = `
UPDATE users SET name = $2, updated_at = $3 WHERE id = $1
RETURNING ` + userColumns

const updatePreferencesSQL = `
UPDATE users
SET locale = COALESCE($2, locale), channel = COALESCE($3, channel), updated_at = $4
WHERE id = $1
RETURNING ` + userColumns

// Only the first caller to flip welcomed_at gets a row back.
const markWelcomedSQL = `
UPDATE users SET welcomed_at = $2, updated_at = $2
WHERE id = $1 AND welcomed_at IS NULL`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByPhone returns a user by caller identity.
func (r *Repo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByPhoneSQL, phone))
	if err != nil {
		return nil, postgres.MapError(err, "user", phone)
	}
	return u, nil
}

// GetByIDs returns the users with the given IDs. Unknown IDs are skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		u, err := scanUser(row)
		if err != nil {
			return domain.User{}, err
		}
		return *u, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return users, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new user and returns the persisted row.
// Returns domain.ErrAlreadyExists if the phone is taken.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		u.ID, u.Phone, u.Name, u.Locale, string(u.Channel), u.WelcomedAt, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	created, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}
	return created, nil
}

// Rename sets a user's display name.
func (r *Repo) Rename(ctx context.Context, id uuid.UUID, name string, at time.Time) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, renameSQL, id, name, at.UTC()))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// UpdatePreferences changes locale and delivery channel. Nil leaves a value unchanged.
func (r *Repo) UpdatePreferences(ctx context.Context, id uuid.UUID, locale *string, channel *domain.Channel, at time.Time) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var ch *string
	if channel != nil {
		v := string(*channel)
		ch = &v
	}

	u, err := scanUser(querier.QueryRow(ctx, updatePreferencesSQL, id, locale, ch, at.UTC()))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// MarkWelcomed records the one-time welcome. It returns true only for the
// call that actually flipped the flag.
func (r *Repo) MarkWelcomed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markWelcomedSQL, id, at.UTC())
	if err != nil {
		return false, postgres.MapError(err, "user", id)
	}
	return tag.RowsAffected() == 1, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u       domain.User
		channel string
	)
	err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.Locale, &channel, &u.WelcomedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Channel = domain.Channel(channel)
	return &u, nil
}
