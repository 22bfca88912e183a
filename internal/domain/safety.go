package domain

import (
	"time"

	"github.com/google/uuid"
)

// SafetyCheck is a group-wide "are you safe?" event. Every member owes a
// response until the check is closed.
type SafetyCheck struct {
	ID        uuid.UUID
	GroupID   uuid.UUID
	CreatedBy uuid.UUID
	CreatedAt time.Time
	ClosedAt  *time.Time
}

// IsClosed returns true once the check no longer accepts responses.
func (c *SafetyCheck) IsClosed() bool {
	return c.ClosedAt != nil
}
