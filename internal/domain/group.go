package domain

import (
	"time"

	"github.com/google/uuid"
)

// MemberRole is a member's role inside a group.
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

func (r MemberRole) String() string { return string(r) }

// Group is the parent of activities. An empty Name means the group still has
// its default name and its creator is prompted to rename it.
type Group struct {
	ID        uuid.UUID
	Name      string
	CreatedBy uuid.UUID
	JoinCode  string
	CreatedAt time.Time
}

// Member is a membership joined with the member's delivery preferences.
type Member struct {
	UserID   uuid.UUID
	GroupID  uuid.UUID
	Role     MemberRole
	JoinedAt time.Time
	Locale   string
	Channel  Channel
}

// JoinedBefore reports whether the member was already in the group at t.
func (m Member) JoinedBefore(t time.Time) bool {
	return !m.JoinedAt.After(t)
}

// Campaign maps a dial code to a group-owned announcement.
type Campaign struct {
	ID      uuid.UUID
	Code    string
	GroupID uuid.UUID
	Message string
}
