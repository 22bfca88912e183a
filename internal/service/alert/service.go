// Package alert implements group safety checks, instant alerts and the app
// download link.
package alert

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/permission"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
)

type safetyRepo interface {
	Create(ctx context.Context, c domain.SafetyCheck) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SafetyCheck, error)
	GetOpenForGroup(ctx context.Context, groupID uuid.UUID) (*domain.SafetyCheck, error)
	Respond(ctx context.Context, checkID, userID uuid.UUID, safe bool, at time.Time) (bool, error)
	Close(ctx context.Context, id uuid.UUID, at time.Time) error
}

type groupRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error)
	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type permissionChecker interface {
	Check(ctx context.Context, userID, groupID uuid.UUID, perm permission.Permission) error
}

type committer interface {
	Commit(ctx context.Context, b *sideeffect.Bundle) error
	Dispatch(ctx context.Context, b *sideeffect.Bundle)
	FilterUnnotified(ctx context.Context, entityID uuid.UUID, kind domain.NotificationKind, targets []sideeffect.Target) ([]sideeffect.Target, error)
}

type renderer interface {
	Render(locale, key string, vars map[string]string) string
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// MaxAlertLength bounds the free text of an instant alert.
const MaxAlertLength = 120

// Service provides safety and alert operations.
type Service struct {
	safety     safetyRepo
	groups     groupRepo
	users      userRepo
	perms      permissionChecker
	effects    committer
	messages   renderer
	tx         txManager
	appLinkURL string
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates a new alert service.
func NewService(
	log *slog.Logger,
	safety safetyRepo,
	groups groupRepo,
	users userRepo,
	perms permissionChecker,
	effects committer,
	messages renderer,
	tx txManager,
	appLinkURL string,
) *Service {
	return &Service{
		safety:     safety,
		groups:     groups,
		users:      users,
		perms:      perms,
		effects:    effects,
		messages:   messages,
		tx:         tx,
		appLinkURL: appLinkURL,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log.With("service", "alert"),
	}
}

// othersThan returns the members of a group except the actor as targets.
func othersThan(members []domain.Member, actor uuid.UUID) []sideeffect.Target {
	out := make([]sideeffect.Target, 0, len(members))
	for _, t := range sideeffect.TargetsFromMembers(members) {
		if t.UserID != actor {
			out = append(out, t)
		}
	}
	return out
}

func forbiddenIfMissing(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrForbidden
	}
	return err
}
