package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/permission"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
)

// memAudit keeps audit entries in memory and answers ListByEntity from them.
type memAudit struct {
	mu      sync.Mutex
	entries []domain.AuditLogEntry
}

func (m *memAudit) Create(_ context.Context, e domain.AuditLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memAudit) ListByEntity(_ context.Context, entityID uuid.UUID, actions ...domain.AuditAction) ([]domain.AuditLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AuditLogEntry
	for _, e := range m.entries {
		if e.EntityID == nil || *e.EntityID != entityID {
			continue
		}
		if len(actions) > 0 && !containsAction(actions, e.Action) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memAudit) count(action domain.AuditAction) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.Action == action {
			n++
		}
	}
	return n
}

func containsAction(list []domain.AuditAction, a domain.AuditAction) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}

// memNotes keeps notifications in memory.
type memNotes struct {
	mu    sync.Mutex
	notes []domain.Notification
}

func (m *memNotes) Create(_ context.Context, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append(m.notes, n)
	return nil
}

func (m *memNotes) NotifiedTargets(_ context.Context, entityID uuid.UUID, kind domain.NotificationKind, targets []uuid.UUID) (map[uuid.UUID]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(targets))
	for _, t := range targets {
		want[t] = true
	}
	out := make(map[uuid.UUID]bool)
	for _, n := range m.notes {
		if n.EntityID != nil && *n.EntityID == entityID && n.Kind == kind && want[n.TargetID] {
			out[n.TargetID] = true
		}
	}
	return out, nil
}

func (m *memNotes) ofKind(kind domain.NotificationKind) []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Notification
	for _, n := range m.notes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

type nopSink struct{}

func (nopSink) Deliver(context.Context, []domain.Notification) error { return nil }

type renderStub struct{}

func (renderStub) Render(locale, key string, vars map[string]string) string {
	return fmt.Sprintf("%s|%s|%s", locale, key, vars["label"])
}

// fixture wires a Service to in-memory activities, audit and notifications.
type fixture struct {
	svc        *Service
	activities *activityRepoMock
	members    *memberRepoMock
	perms      *permissionCheckerMock
	audit      *memAudit
	notes      *memNotes

	mu      sync.Mutex
	store   map[uuid.UUID]domain.Activity
	roster  []domain.Member
	now     time.Time
	groupID uuid.UUID
}

func testConfig() Config {
	return Config{
		DedupWindow:     180 * time.Second,
		MaxLabelLength:  60,
		MaxVoteOptions:  5,
		ReminderOffsets: []time.Duration{24 * time.Hour, time.Hour},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:   make(map[uuid.UUID]domain.Activity),
		now:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		groupID: uuid.New(),
		audit:   &memAudit{},
		notes:   &memNotes{},
	}

	f.activities = &activityRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (domain.Activity, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			a, ok := f.store[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return a, nil
		},
		FindDuplicateFunc: func(_ context.Context, q domain.DuplicateQuery) (domain.Activity, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			for _, a := range f.store {
				b := a.Base()
				if b.CreatorID == q.CreatorID && b.GroupID == q.GroupID && b.LabelNormalized == q.LabelNormalized &&
					!b.Canceled && !b.ScheduledAt.Before(q.From) && !b.ScheduledAt.After(q.To) {
					return a, nil
				}
			}
			return nil, domain.ErrNotFound
		},
		CreateFunc: func(_ context.Context, a domain.Activity) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.store[a.Base().ID] = a
			return nil
		},
		UpdateFunc: func(context.Context, domain.Activity) error { return nil },
		CancelFunc: func(_ context.Context, id uuid.UUID, _ time.Time) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			b := f.store[id].Base()
			if b.Canceled {
				return domain.ErrConflict
			}
			b.Canceled = true
			return nil
		},
		CloseFunc: func(_ context.Context, id uuid.UUID, _ time.Time) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			switch v := f.store[id].(type) {
			case *domain.Vote:
				v.Closed = true
			case *domain.Todo:
				v.Done = true
			}
			return nil
		},
		SetRemindersSentFunc: func(_ context.Context, id uuid.UUID, n int, _ time.Time) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.store[id].Base().RemindersSent = n
			return nil
		},
		AddAssigneesFunc: func(_ context.Context, todoID uuid.UUID, ids []uuid.UUID) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			todo := f.store[todoID].(*domain.Todo)
			todo.Assignees = append(todo.Assignees, ids...)
			return nil
		},
	}

	f.members = &memberRepoMock{
		ListMembersFunc: func(context.Context, uuid.UUID) ([]domain.Member, error) {
			return f.roster, nil
		},
		GetMemberFunc: func(_ context.Context, _ uuid.UUID, userID uuid.UUID) (*domain.Member, error) {
			for _, m := range f.roster {
				if m.UserID == userID {
					m := m
					return &m, nil
				}
			}
			return nil, domain.ErrNotFound
		},
	}

	f.perms = &permissionCheckerMock{
		CheckFunc: func(context.Context, uuid.UUID, uuid.UUID, permission.Permission) error { return nil },
		CheckOwnerOrFunc: func(_ context.Context, userID, ownerID, _ uuid.UUID, _ permission.Permission) error {
			if userID == ownerID {
				return nil
			}
			return domain.ErrForbidden
		},
	}

	tx := &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}

	committer := sideeffect.NewCommitter(slog.Default(), f.audit, f.notes, nopSink{})

	f.svc = NewService(slog.Default(), testConfig(), f.activities, f.members, f.audit, f.perms, committer, renderStub{}, tx)
	f.svc.now = func() time.Time { return f.now }
	return f
}

// join adds a member to the fixture group.
func (f *fixture) join(userID uuid.UUID, at time.Time) {
	f.roster = append(f.roster, domain.Member{
		UserID:   userID,
		GroupID:  f.groupID,
		Role:     domain.MemberRoleMember,
		JoinedAt: at,
		Locale:   "en",
		Channel:  domain.ChannelSMS,
	})
}

func (f *fixture) activity(id uuid.UUID) domain.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store[id]
}
