// Package inbox lists the notifications a user has been sent, newest first,
// for clients that cannot rely on SMS or push delivery.
package inbox

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type notificationRepo interface {
	ListByTarget(ctx context.Context, targetID uuid.UUID, limit int) ([]domain.Notification, error)
}

// Service reads a user's notification history.
type Service struct {
	notifications notificationRepo
	log           *slog.Logger
}

// NewService creates a new inbox service.
func NewService(log *slog.Logger, notifications notificationRepo) *Service {
	return &Service{
		notifications: notifications,
		log:           log.With("service", "inbox"),
	}
}

// List returns up to limit notifications sent to the caller. Zero means
// DefaultLimit.
func (s *Service) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 0 || limit > MaxLimit:
		return nil, domain.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", MaxLimit))
	}

	list, err := s.notifications.ListByTarget(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}
