package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Rename(ctx context.Context, id uuid.UUID, name string, at time.Time) (*domain.User, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, locale *string, channel *domain.Channel, at time.Time) (*domain.User, error)
	MarkWelcomed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

// committer persists side-effect bundles.
type committer interface {
	Commit(ctx context.Context, b *sideeffect.Bundle) error
	Dispatch(ctx context.Context, b *sideeffect.Bundle)
}

type renderer interface {
	Render(locale, key string, vars map[string]string) string
}

// txManager defines the transaction manager interface needed by user service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements caller resolution and profile operations.
type Service struct {
	log           *slog.Logger
	users         userRepo
	effects       committer
	messages      renderer
	tx            txManager
	defaultLocale string
	now           func() time.Time
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	effects committer,
	messages renderer,
	tx txManager,
	defaultLocale string,
) *Service {
	return &Service{
		log:           logger.With("service", "user"),
		users:         users,
		effects:       effects,
		messages:      messages,
		tx:            tx,
		defaultLocale: defaultLocale,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func userEntry(userID uuid.UUID, actor *uuid.UUID, action domain.AuditAction, detail *string) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		ActorID:    actor,
		EntityType: domain.EntityTypeUser,
		EntityID:   &userID,
		Action:     action,
		Detail:     detail,
	}
}
