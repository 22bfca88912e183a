// Package activity implements creation, change and response handling for
// meetings, votes and todos, plus the reminder and result jobs.
package activity

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/permission"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
)

type activityRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	FindDuplicate(ctx context.Context, q domain.DuplicateQuery) (domain.Activity, error)
	ListUpcoming(ctx context.Context, from, to time.Time) ([]domain.Activity, error)
	ListClosable(ctx context.Context, now time.Time) ([]domain.Activity, error)
	Create(ctx context.Context, a domain.Activity) error
	Update(ctx context.Context, a domain.Activity) error
	Cancel(ctx context.Context, id uuid.UUID, at time.Time) error
	Close(ctx context.Context, id uuid.UUID, at time.Time) error
	SetRemindersSent(ctx context.Context, id uuid.UUID, n int, at time.Time) error
	AddAssignees(ctx context.Context, todoID uuid.UUID, userIDs []uuid.UUID) error
}

type memberRepo interface {
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error)
	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
}

type auditReader interface {
	ListByEntity(ctx context.Context, entityID uuid.UUID, actions ...domain.AuditAction) ([]domain.AuditLogEntry, error)
}

type permissionChecker interface {
	Check(ctx context.Context, userID, groupID uuid.UUID, perm permission.Permission) error
	CheckOwnerOr(ctx context.Context, userID, ownerID, groupID uuid.UUID, perm permission.Permission) error
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

// Config holds activity rules.
type Config struct {
	DedupWindow     time.Duration
	MaxLabelLength  int
	MaxVoteOptions  int
	ReminderOffsets []time.Duration
}

// Service provides activity operations.
type Service struct {
	activities activityRepo
	members    memberRepo
	audit      auditReader
	perms      permissionChecker
	effects    committer
	messages   renderer
	tx         txManager
	cfg        Config
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates a new Activity service.
func NewService(
	log *slog.Logger,
	cfg Config,
	activities activityRepo,
	members memberRepo,
	audit auditReader,
	perms permissionChecker,
	effects committer,
	messages renderer,
	tx txManager,
) *Service {
	return &Service{
		activities: activities,
		members:    members,
		audit:      audit,
		perms:      perms,
		effects:    effects,
		messages:   messages,
		tx:         tx,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log.With("service", "activity"),
	}
}

// Get returns an activity visible to the acting user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (domain.Activity, error) {
	a, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.GetMember(ctx, a.Base().GroupID, userID); err != nil {
		return nil, forbiddenIfMissing(err)
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func auditEntry(a domain.Activity, actor *uuid.UUID, action domain.AuditAction, detail *string) domain.AuditLogEntry {
	id := a.Base().ID
	return domain.AuditLogEntry{
		ActorID:    actor,
		EntityType: domain.EntityTypeActivity,
		EntityID:   &id,
		Action:     action,
		Detail:     detail,
	}
}

// message returns a renderer for the notify.<kind>.<event> catalog key.
func (s *Service) message(a domain.Activity, event string, extra map[string]string) sideeffect.MessageFunc {
	b := a.Base()
	key := "notify." + strings.ToLower(string(a.Kind())) + "." + event
	vars := map[string]string{
		"label": b.Label,
		"when":  b.ScheduledAt.Format("02 Jan 15:04"),
	}
	for k, v := range extra {
		vars[k] = v
	}
	return func(t sideeffect.Target) string {
		return s.messages.Render(t.Locale, key, vars)
	}
}

// othersThan returns every member except the given user.
func othersThan(members []domain.Member, userID uuid.UUID) []domain.Member {
	out := make([]domain.Member, 0, len(members))
	for _, m := range members {
		if m.UserID != userID {
			out = append(out, m)
		}
	}
	return out
}

// latestAnswers maps each responder to their most recent answer.
func latestAnswers(entries []domain.AuditLogEntry) map[uuid.UUID]string {
	out := make(map[uuid.UUID]string, len(entries))
	for _, e := range entries {
		if e.ActorID == nil {
			continue
		}
		answer := ""
		if e.Detail != nil {
			answer = *e.Detail
		}
		out[*e.ActorID] = answer
	}
	return out
}

func forbiddenIfMissing(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrForbidden
	}
	return err
}

