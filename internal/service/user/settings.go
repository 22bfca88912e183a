package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// UpdatePreferences changes the authenticated user's message locale and
// delivery channel.
func (s *Service) UpdatePreferences(ctx context.Context, input UpdatePreferencesInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var locale *string
	if input.Locale != nil {
		l := strings.TrimSpace(*input.Locale)
		locale = &l
	}

	user, err := s.users.UpdatePreferences(ctx, userID, locale, input.Channel, s.now())
	if err != nil {
		return nil, fmt.Errorf("user.UpdatePreferences: %w", err)
	}

	s.log.InfoContext(ctx, "preferences updated",
		slog.String("user_id", userID.String()),
		slog.String("locale", user.Locale),
		slog.String("channel", string(user.Channel)),
	)
	return user, nil
}
