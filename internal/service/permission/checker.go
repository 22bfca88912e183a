// Package permission decides whether a user may perform a group-scoped action.
package permission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// Permission names a group-scoped capability.
type Permission string

const (
	// GroupView lets a member see the group roster.
	GroupView Permission = "group.view"
	// ActivityCreate lets a member schedule activities in the group.
	ActivityCreate Permission = "activity.create"
	// ActivityManage lets a member change or cancel activities they did not create.
	ActivityManage Permission = "activity.manage"
	// GroupRename lets a member rename the group.
	GroupRename Permission = "group.rename"
	// SafetyActivate lets a member start a safety check.
	SafetyActivate Permission = "safety.activate"
	// AlertSend lets a member send an instant alert to everyone in the group.
	AlertSend Permission = "alert.send"
)

// grants lists the permissions each role holds.
var grants = map[domain.MemberRole]map[Permission]bool{
	domain.MemberRoleAdmin: {
		GroupView:      true,
		ActivityCreate: true,
		ActivityManage: true,
		GroupRename:    true,
		SafetyActivate: true,
		AlertSend:      true,
	},
	domain.MemberRoleMember: {
		GroupView:      true,
		ActivityCreate: true,
	},
}

type memberRepo interface {
	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
}

// Checker resolves permissions from group membership roles.
type Checker struct {
	members memberRepo
}

// NewChecker creates a new Checker.
func NewChecker(members memberRepo) *Checker {
	return &Checker{members: members}
}

// Check returns nil if userID holds perm in groupID, or domain.ErrForbidden.
// Non-members are always forbidden.
func (c *Checker) Check(ctx context.Context, userID, groupID uuid.UUID, perm Permission) error {
	m, err := c.members.GetMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%s: not a member: %w", perm, domain.ErrForbidden)
		}
		return fmt.Errorf("check %s: %w", perm, err)
	}
	if !grants[m.Role][perm] {
		return fmt.Errorf("%s: role %s: %w", perm, m.Role, domain.ErrForbidden)
	}
	return nil
}

// CheckOwnerOr passes when userID is ownerID, otherwise falls back to Check.
func (c *Checker) CheckOwnerOr(ctx context.Context, userID, ownerID, groupID uuid.UUID, perm Permission) error {
	if userID == ownerID {
		return nil
	}
	return c.Check(ctx, userID, groupID, perm)
}
