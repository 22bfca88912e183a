package sideeffect

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// FilterUnnotified drops targets that already received a notification of
// kind about entityID, and repeats of a target within targets. The order of
// the remaining targets is kept.
func (c *Committer) FilterUnnotified(ctx context.Context, entityID uuid.UUID, kind domain.NotificationKind, targets []Target) ([]Target, error) {
	if len(targets) == 0 {
		return nil, nil
	}

	seen := make(map[uuid.UUID]bool, len(targets))
	unique := make([]Target, 0, len(targets))
	ids := make([]uuid.UUID, 0, len(targets))
	for _, t := range targets {
		if seen[t.UserID] {
			continue
		}
		seen[t.UserID] = true
		unique = append(unique, t)
		ids = append(ids, t.UserID)
	}

	notified, err := c.notifications.NotifiedTargets(ctx, entityID, kind, ids)
	if err != nil {
		return nil, fmt.Errorf("notified targets: %w", err)
	}

	out := make([]Target, 0, len(unique))
	for _, t := range unique {
		if !notified[t.UserID] {
			out = append(out, t)
		}
	}
	return out, nil
}
