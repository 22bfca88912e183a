package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a person reachable over one or more channels. Phone is the caller
// identity on the menu channel. An empty Name triggers the self-rename prompt.
type User struct {
	ID         uuid.UUID
	Phone      string
	Name       string
	Locale     string
	Channel    Channel
	WelcomedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsWelcomed reports whether the one-time welcome already fired.
func (u *User) IsWelcomed() bool {
	return u.WelcomedAt != nil
}

// DisplayName returns Name, falling back to the phone number.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Phone
}
