package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationKind tags a notification. Together with the target and the entity
// it is the deduplication key for broadcasts.
type NotificationKind string

const (
	NotificationKindCreated  NotificationKind = "CREATED"
	NotificationKindCanceled NotificationKind = "CANCELED"
	NotificationKindAssigned NotificationKind = "ASSIGNED"
	NotificationKindResult   NotificationKind = "RESULT"
	NotificationKindThankYou NotificationKind = "THANK_YOU"
	NotificationKindSafety   NotificationKind = "SAFETY"
	NotificationKindAlert    NotificationKind = "ALERT"
	NotificationKindWelcome  NotificationKind = "WELCOME"
	NotificationKindAppLink  NotificationKind = "APP_LINK"
)

// ReminderKind returns the kind for the given reminder round, so each round is
// deduplicated on its own.
func ReminderKind(round int) NotificationKind {
	return NotificationKind(fmt.Sprintf("REMINDER_%d", round))
}

// ChangedKind returns the kind for change notifications of a given revision.
func ChangedKind(revision int) NotificationKind {
	return NotificationKind(fmt.Sprintf("CHANGED_R%d", revision))
}

func (k NotificationKind) String() string { return string(k) }

// Channel is the outbound delivery channel of a notification.
type Channel string

const (
	ChannelSMS   Channel = "SMS"
	ChannelPush  Channel = "PUSH"
	ChannelEmail Channel = "EMAIL"
)

func (c Channel) String() string { return string(c) }

func (c Channel) IsValid() bool {
	switch c {
	case ChannelSMS, ChannelPush, ChannelEmail:
		return true
	}
	return false
}

// Notification is a rendered message for one target, linked to the audit
// entry that caused it. Created only through a side-effect bundle.
type Notification struct {
	ID         uuid.UUID
	TargetID   uuid.UUID
	EntityID   *uuid.UUID
	Kind       NotificationKind
	Channel    Channel
	Message    string
	AuditLogID uuid.UUID
	CreatedAt  time.Time
}
