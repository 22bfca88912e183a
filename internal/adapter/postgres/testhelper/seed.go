package testhelper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// uniquePhone returns a random phone number unlikely to collide across tests.
func uniquePhone() string {
	return fmt.Sprintf("+2547%08d", rand.IntN(100_000_000))
}

// SeedUser creates a named, already-welcomed user on the SMS channel.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:         uuid.New(),
		Phone:      uniquePhone(),
		Name:       "Test User " + uniqueSuffix(),
		Locale:     "en",
		Channel:    domain.ChannelSMS,
		WelcomedAt: &now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	insertUser(t, pool, user)
	return user
}

// SeedNewUser creates a user with no name who has never been welcomed.
func SeedNewUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Phone:     uniquePhone(),
		Locale:    "en",
		Channel:   domain.ChannelSMS,
		CreatedAt: now,
		UpdatedAt: now,
	}
	insertUser(t, pool, user)
	return user
}

func insertUser(t *testing.T, pool *pgxpool.Pool, u domain.User) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, phone, name, locale, channel, welcomed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Phone, u.Name, u.Locale, string(u.Channel), u.WelcomedAt, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: insert user: %v", err)
	}
}

// SeedGroup creates a named group owned by creator and adds creator as ADMIN.
func SeedGroup(t *testing.T, pool *pgxpool.Pool, creator uuid.UUID) domain.Group {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond).Add(-time.Hour)
	group := domain.Group{
		ID:        uuid.New(),
		Name:      "Group " + uniqueSuffix(),
		CreatedBy: creator,
		JoinCode:  fmt.Sprintf("%04d", rand.IntN(10_000)) + uniqueSuffix()[:2],
		CreatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO groups (id, name, created_by, join_code, created_at) VALUES ($1, $2, $3, $4, $5)`,
		group.ID, group.Name, group.CreatedBy, group.JoinCode, group.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGroup insert: %v", err)
	}

	SeedMember(t, pool, group.ID, creator, domain.MemberRoleAdmin, now)
	return group
}

// SeedMember adds userID to groupID with the given role and join time.
func SeedMember(t *testing.T, pool *pgxpool.Pool, groupID, userID uuid.UUID, role domain.MemberRole, joinedAt time.Time) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO memberships (user_id, group_id, role, joined_at) VALUES ($1, $2, $3, $4)`,
		userID, groupID, string(role), joinedAt.UTC(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMember insert: %v", err)
	}
}

// SeedMeeting creates a meeting in the group scheduled at the given instant.
func SeedMeeting(t *testing.T, pool *pgxpool.Pool, groupID, creatorID uuid.UUID, label string, at time.Time) *domain.Meeting {
	t.Helper()

	m := &domain.Meeting{ActivityBase: newBase(groupID, creatorID, label, at)}
	insertActivity(t, pool, string(domain.ActivityKindMeeting), m.Base(), false, `{}`)
	return m
}

// SeedVote creates an open vote with two options.
func SeedVote(t *testing.T, pool *pgxpool.Pool, groupID, creatorID uuid.UUID, label string, deadline time.Time) *domain.Vote {
	t.Helper()

	v := &domain.Vote{ActivityBase: newBase(groupID, creatorID, label, deadline), Options: []string{"Yes", "No"}}
	insertActivity(t, pool, string(domain.ActivityKindVote), v.Base(), false, `{"options":["Yes","No"]}`)
	return v
}

// SeedTodo creates an open todo assigned to the given users.
func SeedTodo(t *testing.T, pool *pgxpool.Pool, groupID, creatorID uuid.UUID, label string, due time.Time, assignees ...uuid.UUID) *domain.Todo {
	t.Helper()

	td := &domain.Todo{ActivityBase: newBase(groupID, creatorID, label, due), Assignees: assignees}
	insertActivity(t, pool, string(domain.ActivityKindTodo), td.Base(), false, `{}`)

	for _, uid := range assignees {
		_, err := pool.Exec(context.Background(),
			`INSERT INTO todo_assignees (todo_id, user_id) VALUES ($1, $2)`, td.ID, uid)
		if err != nil {
			t.Fatalf("testhelper: SeedTodo insert assignee: %v", err)
		}
	}
	return td
}

// SeedSafetyCheck opens a safety check in the group.
func SeedSafetyCheck(t *testing.T, pool *pgxpool.Pool, groupID, creatorID uuid.UUID) domain.SafetyCheck {
	t.Helper()

	check := domain.SafetyCheck{
		ID:        uuid.New(),
		GroupID:   groupID,
		CreatedBy: creatorID,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO safety_checks (id, group_id, created_by, created_at) VALUES ($1, $2, $3, $4)`,
		check.ID, check.GroupID, check.CreatedBy, check.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSafetyCheck insert: %v", err)
	}
	return check
}

// SeedAuditEntry inserts an audit entry and returns its ID.
func SeedAuditEntry(t *testing.T, pool *pgxpool.Pool, actorID *uuid.UUID, entityID uuid.UUID, action domain.AuditAction, detail *string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO audit_log (id, actor_id, entity_type, entity_id, action, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())`,
		id, actorID, string(domain.EntityTypeActivity), entityID, string(action), detail,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAuditEntry insert: %v", err)
	}
	return id
}

func newBase(groupID, creatorID uuid.UUID, label string, at time.Time) domain.ActivityBase {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.ActivityBase{
		ID:              uuid.New(),
		CreatorID:       creatorID,
		GroupID:         groupID,
		Label:           label,
		LabelNormalized: domain.NormalizeText(label),
		ScheduledAt:     at.UTC().Truncate(time.Microsecond),
		ReminderOffsets: []time.Duration{24 * time.Hour, time.Hour},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func insertActivity(t *testing.T, pool *pgxpool.Pool, kind string, b *domain.ActivityBase, closed bool, payload string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO activities (id, kind, creator_id, group_id, label, label_normalized, scheduled_at,
		    closed, reminder_offsets, payload, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, kind, b.CreatorID, b.GroupID, b.Label, b.LabelNormalized, b.ScheduledAt,
		closed, []int64{86400, 3600}, payload, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: insert activity: %v", err)
	}
}
