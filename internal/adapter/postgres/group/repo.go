// Package group implements the Group repository using PostgreSQL.
// It covers groups, memberships (joined with the member's delivery
// preferences) and dial-code campaigns.
package group

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/huddle-backend/internal/adapter/postgres"
	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// Repo provides group persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new group repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const groupColumns = `g.id, g.name, g.created_by, g.join_code, g.created_at`

const createSQL = `
INSERT INTO groups (id, name, created_by, join_code, created_at)
VALUES ($1, $2, $3, $4, $5)`

const getByIDSQL = `SELECT ` + groupColumns + ` FROM groups g WHERE g.id = $1`

const getByJoinCodeSQL = `SELECT ` + groupColumns + ` FROM groups g WHERE g.join_code = $1`

const renameSQL = `UPDATE groups SET name = $2 WHERE id = $1`

const addMemberSQL = `
INSERT INTO memberships (user_id, group_id, role, joined_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, group_id) DO NOTHING`

const memberColumns = `m.user_id, m.group_id, m.role, m.joined_at, u.locale, u.channel`

const listMembersSQL = `
SELECT ` + memberColumns + `
FROM memberships m
JOIN users u ON u.id = m.user_id
WHERE m.group_id = $1
ORDER BY m.joined_at, m.user_id`

const getMemberSQL = `
SELECT ` + memberColumns + `
FROM memberships m
JOIN users u ON u.id = m.user_id
WHERE m.group_id = $1 AND m.user_id = $2`

const getCampaignSQL = `SELECT id, code, group_id, message FROM campaigns WHERE code = $1`

// ---------------------------------------------------------------------------
// Groups
// ---------------------------------------------------------------------------

// Create inserts a new group. Returns domain.ErrAlreadyExists on a join code clash.
func (r *Repo) Create(ctx context.Context, g domain.Group) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSQL, g.ID, g.Name, g.CreatedBy, g.JoinCode, g.CreatedAt.UTC())
	if err != nil {
		return postgres.MapError(err, "group", g.ID)
	}
	return nil
}

// GetByID returns a group by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "group", id)
	}
	return g, nil
}

// GetByJoinCode returns the group whose join code matches exactly.
func (r *Repo) GetByJoinCode(ctx context.Context, code string) (*domain.Group, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(querier.QueryRow(ctx, getByJoinCodeSQL, code))
	if err != nil {
		return nil, postgres.MapError(err, "group", code)
	}
	return g, nil
}

// ListForUser returns the groups a user belongs to, oldest membership first.
func (r *Repo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Group, error) {
	query, args, err := postgres.Psql.Select(groupColumns).
		From("memberships m").
		Join("groups g ON g.id = m.group_id").
		Where(sq.Eq{"m.user_id": userID}).
		OrderBy("m.joined_at", "g.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build groups for user query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list groups for user: %w", err)
	}

	groups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Group, error) {
		g, err := scanGroup(row)
		if err != nil {
			return domain.Group{}, err
		}
		return *g, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan groups: %w", err)
	}
	return groups, nil
}

// Rename sets a group's name.
func (r *Repo) Rename(ctx context.Context, id uuid.UUID, name string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, renameSQL, id, name)
	if err != nil {
		return postgres.MapError(err, "group", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Memberships
// ---------------------------------------------------------------------------

// AddMember adds a user to a group. It returns false when the user was
// already a member; the original join time is kept.
func (r *Repo) AddMember(ctx context.Context, groupID, userID uuid.UUID, role domain.MemberRole, joinedAt time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, addMemberSQL, userID, groupID, string(role), joinedAt.UTC())
	if err != nil {
		return false, postgres.MapError(err, "membership", groupID)
	}
	return tag.RowsAffected() == 1, nil
}

// ListMembers returns every member of a group with delivery preferences.
func (r *Repo) ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listMembersSQL, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	members, err := pgx.CollectRows(rows, scanMember)
	if err != nil {
		return nil, fmt.Errorf("scan members: %w", err)
	}
	return members, nil
}

// ListMembersByGroupIDs returns the members of several groups, ordered by
// group and join time.
func (r *Repo) ListMembersByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Member, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	query, args, err := postgres.Psql.Select(memberColumns).
		From("memberships m").
		Join("users u ON u.id = m.user_id").
		Where(sq.Eq{"m.group_id": groupIDs}).
		OrderBy("m.group_id", "m.joined_at", "m.user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build members by groups query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list members by groups: %w", err)
	}

	members, err := pgx.CollectRows(rows, scanMember)
	if err != nil {
		return nil, fmt.Errorf("scan members: %w", err)
	}
	return members, nil
}

// GetMember returns one membership. Returns domain.ErrNotFound if the user
// is not in the group.
func (r *Repo) GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getMemberSQL, groupID, userID)
	if err != nil {
		return nil, postgres.MapError(err, "membership", userID)
	}

	m, err := pgx.CollectExactlyOneRow(rows, scanMember)
	if err != nil {
		return nil, postgres.MapError(err, "membership", userID)
	}
	return &m, nil
}

// ---------------------------------------------------------------------------
// Campaigns
// ---------------------------------------------------------------------------

// GetCampaignByCode returns the campaign registered for a dial code.
func (r *Repo) GetCampaignByCode(ctx context.Context, code string) (*domain.Campaign, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Campaign
	err := querier.QueryRow(ctx, getCampaignSQL, code).Scan(&c.ID, &c.Code, &c.GroupID, &c.Message)
	if err != nil {
		return nil, postgres.MapError(err, "campaign", code)
	}
	return &c, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanGroup(row pgx.Row) (*domain.Group, error) {
	var g domain.Group
	if err := row.Scan(&g.ID, &g.Name, &g.CreatedBy, &g.JoinCode, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func scanMember(row pgx.CollectableRow) (domain.Member, error) {
	var (
		m       domain.Member
		role    string
		channel string
	)
	if err := row.Scan(&m.UserID, &m.GroupID, &role, &m.JoinedAt, &m.Locale, &channel); err != nil {
		return domain.Member{}, err
	}
	m.Role = domain.MemberRole(role)
	m.Channel = domain.Channel(channel)
	return m, nil
}
