package domain

import "github.com/google/uuid"

// ObligationKind is a kind of pending response a user owes.
type ObligationKind string

const (
	ObligationSafety      ObligationKind = "SAFETY"
	ObligationVote        ObligationKind = "VOTE"
	ObligationRSVP        ObligationKind = "RSVP"
	ObligationTodo        ObligationKind = "TODO"
	ObligationSelfRename  ObligationKind = "SELF_RENAME"
	ObligationGroupRename ObligationKind = "GROUP_RENAME"
)

// ObligationPriority lists obligation kinds from highest to lowest priority.
var ObligationPriority = []ObligationKind{
	ObligationSafety,
	ObligationVote,
	ObligationRSVP,
	ObligationTodo,
	ObligationSelfRename,
	ObligationGroupRename,
}

func (k ObligationKind) String() string { return string(k) }

// Rank returns the position of k in ObligationPriority (0 is highest), or -1.
func (k ObligationKind) Rank() int {
	for i, p := range ObligationPriority {
		if p == k {
			return i
		}
	}
	return -1
}

// Obligation is the single thing a returning user must respond to.
// SubjectID is the safety check, activity, user or group it concerns.
type Obligation struct {
	Kind      ObligationKind
	SubjectID uuid.UUID
}
