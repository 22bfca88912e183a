package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityKind identifies the concrete variant of an Activity.
type ActivityKind string

const (
	ActivityKindMeeting ActivityKind = "MEETING"
	ActivityKindVote    ActivityKind = "VOTE"
	ActivityKindTodo    ActivityKind = "TODO"
)

func (k ActivityKind) String() string { return string(k) }

func (k ActivityKind) IsValid() bool {
	switch k {
	case ActivityKindMeeting, ActivityKindVote, ActivityKindTodo:
		return true
	}
	return false
}

// JoinGated reports whether members who joined the parent group after the
// activity was created are excluded from responding to it.
func (k ActivityKind) JoinGated() bool {
	return k == ActivityKindVote || k == ActivityKindTodo
}

// Activity is the closed set {*Meeting, *Vote, *Todo}. Only the fields shared
// by every kind are reachable through the interface; kind-specific behavior is
// selected with a type switch.
type Activity interface {
	Base() *ActivityBase
	Kind() ActivityKind
	isActivity()
}

// ActivityBase holds the attributes common to all activity kinds.
type ActivityBase struct {
	ID              uuid.UUID
	CreatorID       uuid.UUID
	GroupID         uuid.UUID
	Label           string
	LabelNormalized string
	ScheduledAt     time.Time
	Canceled        bool
	ReminderOffsets []time.Duration
	RemindersSent   int
	Revision        int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Meeting is a scheduled gathering members RSVP to.
type Meeting struct {
	ActivityBase
	Location *string
}

// Vote is a question with a fixed list of options; ScheduledAt is the deadline.
type Vote struct {
	ActivityBase
	Options []string
	Closed  bool
}

// Todo is a task assigned to members; ScheduledAt is the due date.
type Todo struct {
	ActivityBase
	Assignees []uuid.UUID
	Done      bool
}

func (m *Meeting) Base() *ActivityBase { return &m.ActivityBase }
func (v *Vote) Base() *ActivityBase    { return &v.ActivityBase }
func (t *Todo) Base() *ActivityBase    { return &t.ActivityBase }

func (*Meeting) Kind() ActivityKind { return ActivityKindMeeting }
func (*Vote) Kind() ActivityKind    { return ActivityKindVote }
func (*Todo) Kind() ActivityKind    { return ActivityKindTodo }

func (*Meeting) isActivity() {}
func (*Vote) isActivity()    {}
func (*Todo) isActivity()    {}

// IsOpen reports whether the activity still accepts responses.
func IsOpen(a Activity) bool {
	if a.Base().Canceled {
		return false
	}
	switch v := a.(type) {
	case *Meeting:
		return true
	case *Vote:
		return !v.Closed
	case *Todo:
		return !v.Done
	}
	return false
}

// HasAssignee reports whether userID is assigned to the todo.
func (t *Todo) HasAssignee(userID uuid.UUID) bool {
	for _, id := range t.Assignees {
		if id == userID {
			return true
		}
	}
	return false
}

// DueReminderRound returns the 1-based index of the latest reminder offset whose
// fire time (ScheduledAt - offset) is not after now, or 0 when none is due yet
// or the activity already happened. Offsets are expected in descending order.
func (b *ActivityBase) DueReminderRound(now time.Time) int {
	if !now.Before(b.ScheduledAt) {
		return 0
	}
	round := 0
	for i, off := range b.ReminderOffsets {
		if !now.Before(b.ScheduledAt.Add(-off)) {
			round = i + 1
		}
	}
	return round
}

// DuplicateQuery describes the dedup window search for a candidate activity:
// same creator, group and normalized label, scheduled within [From, To].
type DuplicateQuery struct {
	CreatorID       uuid.UUID
	GroupID         uuid.UUID
	LabelNormalized string
	From            time.Time
	To              time.Time
}

// RSVP answers.
const (
	RSVPYes = "YES"
	RSVPNo  = "NO"
)

// Todo answers.
const (
	TodoDone    = "DONE"
	TodoDecline = "DECLINE"
)
