package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// GetProfile returns the authenticated user's profile.
// Returns ErrUnauthorized if no userID is found in context.
func (s *Service) GetProfile(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.GetProfile: %w", err)
	}

	return user, nil
}

// Rename sets the authenticated user's display name and records a RENAMED
// entry. Renaming clears the self-rename prompt.
func (s *Service) Rename(ctx context.Context, input RenameInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	name := domain.CleanLabel(input.Name)
	var user *domain.User
	bundle := sideeffect.New()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.users.Rename(txCtx, userID, name, s.now())
		if err != nil {
			return fmt.Errorf("user.Rename: %w", err)
		}
		bundle.Record(userEntry(userID, &userID, domain.AuditActionRenamed, &name), "", nil, nil)
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user renamed", slog.String("user_id", userID.String()))
	return user, nil
}
