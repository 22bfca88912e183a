package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// findDuplicate returns an existing not-canceled activity with the same
// creator, group and label scheduled within the dedup window around
// scheduledAt, or nil. A retried create that differs in other fields still
// matches; the first version wins.
func (s *Service) findDuplicate(ctx context.Context, creatorID, groupID uuid.UUID, label string, scheduledAt time.Time) (domain.Activity, error) {
	window := s.cfg.DedupWindow
	existing, err := s.activities.FindDuplicate(ctx, domain.DuplicateQuery{
		CreatorID:       creatorID,
		GroupID:         groupID,
		LabelNormalized: domain.NormalizeText(domain.CleanLabel(label)),
		From:            scheduledAt.Add(-window),
		To:              scheduledAt.Add(window),
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find duplicate: %w", err)
	}
	return existing, nil
}
