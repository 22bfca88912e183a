// Package group implements group membership, naming and campaign lookups.
package group

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/permission"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
)

type groupRepo interface {
	Create(ctx context.Context, g domain.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	GetByJoinCode(ctx context.Context, code string) (*domain.Group, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	AddMember(ctx context.Context, groupID, userID uuid.UUID, role domain.MemberRole, joinedAt time.Time) (bool, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error)
	GetCampaignByCode(ctx context.Context, code string) (*domain.Campaign, error)
}

type permissionChecker interface {
	Check(ctx context.Context, userID, groupID uuid.UUID, perm permission.Permission) error
}

type committer interface {
	Commit(ctx context.Context, b *sideeffect.Bundle) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	// JoinCodeLength is the number of digits in a generated join code.
	JoinCodeLength = 5
	// MaxNameLength bounds group names.
	MaxNameLength = 40

	maxJoinCodeAttempts = 5
)

// Service provides group operations.
type Service struct {
	groups  groupRepo
	perms   permissionChecker
	effects committer
	tx      txManager
	now     func() time.Time
	code    func() string
	log     *slog.Logger
}

// NewService creates a new Group service.
func NewService(
	log *slog.Logger,
	groups groupRepo,
	perms permissionChecker,
	effects committer,
	tx txManager,
) *Service {
	return &Service{
		groups:  groups,
		perms:   perms,
		effects: effects,
		tx:      tx,
		now:     func() time.Time { return time.Now().UTC() },
		code:    randomJoinCode,
		log:     log.With("service", "group"),
	}
}

func groupEntry(groupID uuid.UUID, actor uuid.UUID, action domain.AuditAction, detail *string) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		ActorID:    &actor,
		EntityType: domain.EntityTypeGroup,
		EntityID:   &groupID,
		Action:     action,
		Detail:     detail,
	}
}
