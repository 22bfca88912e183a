package domain

import "time"

// SessionPointer records where in a menu flow a caller was last seen.
// Locator is the continuation that should run on the caller's next input;
// Stash carries free text entered on an earlier step.
type SessionPointer struct {
	Identity  string
	Locator   string
	Stash     *string
	ExpiresAt time.Time
}

// IsExpired returns true if the pointer is past its time-to-live.
func (p *SessionPointer) IsExpired(now time.Time) bool {
	return !p.ExpiresAt.After(now)
}
