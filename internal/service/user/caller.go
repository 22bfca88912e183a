package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
)

// ResolveCaller returns the user behind a caller identity, creating one on
// first contact. created is true only for the call that created the user.
func (s *Service) ResolveCaller(ctx context.Context, phone string) (*domain.User, bool, error) {
	phone = NormalizePhone(phone)
	if phone == "" {
		return nil, false, domain.NewValidationError("identity", "required")
	}

	u, err := s.users.GetByPhone(ctx, phone)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("user.ResolveCaller: %w", err)
	}

	now := s.now()
	u, err = s.users.Create(ctx, &domain.User{
		ID:        uuid.New(),
		Phone:     phone,
		Locale:    s.defaultLocale,
		Channel:   domain.ChannelSMS,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Another request created the user first.
		u, err = s.users.GetByPhone(ctx, phone)
		if err != nil {
			return nil, false, fmt.Errorf("user.ResolveCaller: %w", err)
		}
		return u, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("user.ResolveCaller: %w", err)
	}

	s.log.InfoContext(ctx, "caller registered", slog.String("user_id", u.ID.String()))
	return u, true, nil
}

// MarkWelcomed fires the one-time welcome for u: a WELCOMED entry and a
// WELCOME notification. Only the call that flips the per-user flag does
// anything; later calls return false.
func (s *Service) MarkWelcomed(ctx context.Context, u *domain.User) (bool, error) {
	if u.IsWelcomed() {
		return false, nil
	}

	var fired bool
	bundle := sideeffect.New()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		flipped, err := s.users.MarkWelcomed(txCtx, u.ID, s.now())
		if err != nil {
			return fmt.Errorf("mark welcomed: %w", err)
		}
		if !flipped {
			return nil
		}
		fired = true

		name := u.DisplayName()
		bundle.Record(userEntry(u.ID, nil, domain.AuditActionWelcomed, nil),
			domain.NotificationKindWelcome,
			[]sideeffect.Target{sideeffect.TargetFromUser(u)},
			func(t sideeffect.Target) string {
				return s.messages.Render(t.Locale, "notify.welcome", map[string]string{"name": name})
			})
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return false, err
	}
	if !fired {
		return false, nil
	}

	s.effects.Dispatch(ctx, bundle)
	s.log.InfoContext(ctx, "user welcomed", slog.String("user_id", u.ID.String()))
	return true, nil
}
