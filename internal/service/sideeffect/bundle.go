// Package sideeffect collects the audit entries and notifications produced by
// one state change and writes them in the caller's transaction.
package sideeffect

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// Target is a notification recipient with its delivery preferences.
type Target struct {
	UserID  uuid.UUID
	Locale  string
	Channel domain.Channel
}

// TargetsFromMembers converts group members into notification targets.
func TargetsFromMembers(members []domain.Member) []Target {
	out := make([]Target, len(members))
	for i, m := range members {
		out[i] = Target{UserID: m.UserID, Locale: m.Locale, Channel: m.Channel}
	}
	return out
}

// TargetFromUser converts a user into a notification target.
func TargetFromUser(u *domain.User) Target {
	return Target{UserID: u.ID, Locale: u.Locale, Channel: u.Channel}
}

// MessageFunc renders the message for one target.
type MessageFunc func(t Target) string

type item struct {
	entry         domain.AuditLogEntry
	notifications []domain.Notification
	// silent entries without notifications are dropped at commit
	dropIfSilent bool
}

// Bundle accumulates the effects of one logical state change.
// The zero value is ready to use.
type Bundle struct {
	items []item
}

// New returns an empty bundle.
func New() *Bundle {
	return &Bundle{}
}

// Record adds an audit entry that is always written, with one notification
// of kind per target. targets may be empty.
func (b *Bundle) Record(entry domain.AuditLogEntry, kind domain.NotificationKind, targets []Target, msg MessageFunc) {
	b.add(entry, kind, targets, msg, false)
}

// Broadcast adds an audit entry with one notification of kind per target.
// If targets is empty the entry is not written either.
func (b *Bundle) Broadcast(entry domain.AuditLogEntry, kind domain.NotificationKind, targets []Target, msg MessageFunc) {
	b.add(entry, kind, targets, msg, true)
}

// Absorb moves every item of other into b, keeping order.
func (b *Bundle) Absorb(other *Bundle) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	other.items = nil
}

// Entries returns the audit entries that a commit would write.
func (b *Bundle) Entries() []domain.AuditLogEntry {
	var out []domain.AuditLogEntry
	for _, it := range b.items {
		if it.dropIfSilent && len(it.notifications) == 0 {
			continue
		}
		out = append(out, it.entry)
	}
	return out
}

// Notifications returns every notification in the bundle.
func (b *Bundle) Notifications() []domain.Notification {
	var out []domain.Notification
	for _, it := range b.items {
		out = append(out, it.notifications...)
	}
	return out
}

// IsEmpty reports whether a commit would write nothing.
func (b *Bundle) IsEmpty() bool {
	return len(b.Entries()) == 0
}

func (b *Bundle) add(entry domain.AuditLogEntry, kind domain.NotificationKind, targets []Target, msg MessageFunc, dropIfSilent bool) {
	now := time.Now().UTC()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}

	notes := make([]domain.Notification, 0, len(targets))
	for _, t := range targets {
		var text string
		if msg != nil {
			text = msg(t)
		}
		notes = append(notes, domain.Notification{
			ID:         uuid.New(),
			TargetID:   t.UserID,
			EntityID:   entry.EntityID,
			Kind:       kind,
			Channel:    t.Channel,
			Message:    text,
			AuditLogID: entry.ID,
			CreatedAt:  now,
		})
	}

	b.items = append(b.items, item{entry: entry, notifications: notes, dropIfSilent: dropIfSilent})
}
