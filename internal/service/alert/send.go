package alert

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/permission"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// SendInstantAlert broadcasts free text to every other member of a group.
// Each alert is its own entity, so repeating the same text alerts again.
func (s *Service) SendInstantAlert(ctx context.Context, groupID uuid.UUID, text string) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	text = domain.CleanLabel(text)
	if text == "" {
		return 0, domain.NewValidationError("text", "required")
	}
	if utf8.RuneCountInString(text) > MaxAlertLength {
		return 0, domain.NewValidationError("text", "too long")
	}
	if err := s.perms.Check(ctx, userID, groupID, permission.AlertSend); err != nil {
		return 0, err
	}

	alertID := uuid.New()
	bundle := sideeffect.New()
	var notified int

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		g, err := s.groups.GetByID(txCtx, groupID)
		if err != nil {
			return fmt.Errorf("get group: %w", err)
		}
		members, err := s.groups.ListMembers(txCtx, groupID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		targets := othersThan(members, userID)
		notified = len(targets)

		bundle.Record(domain.AuditLogEntry{
			ActorID:    &userID,
			EntityType: domain.EntityTypeAlert,
			EntityID:   &alertID,
			Action:     domain.AuditActionAlertSent,
			Detail:     &text,
		}, domain.NotificationKindAlert, targets, func(t sideeffect.Target) string {
			return s.messages.Render(t.Locale, "notify.alert", map[string]string{"group": g.Name, "text": text})
		})
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return 0, err
	}

	s.effects.Dispatch(ctx, bundle)
	s.log.InfoContext(ctx, "instant alert sent",
		slog.String("user_id", userID.String()),
		slog.String("group_id", groupID.String()),
		slog.String("alert_id", alertID.String()),
		slog.Int("notified", notified),
	)
	return notified, nil
}

// SendAppLink sends the app download link to the caller on their own channel.
// Every request sends a fresh message.
func (s *Service) SendAppLink(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	bundle := sideeffect.New()
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.users.GetByID(txCtx, userID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		// No entity: the (entity, kind, target) dedup key must not suppress repeats.
		bundle.Record(domain.AuditLogEntry{
			ActorID:    &userID,
			EntityType: domain.EntityTypeUser,
			Action:     domain.AuditActionAppLinkSent,
		}, domain.NotificationKindAppLink, []sideeffect.Target{sideeffect.TargetFromUser(u)}, func(t sideeffect.Target) string {
			return s.messages.Render(t.Locale, "notify.app_link", map[string]string{"url": s.appLinkURL})
		})
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return err
	}

	s.effects.Dispatch(ctx, bundle)
	s.log.InfoContext(ctx, "app link sent", slog.String("user_id", userID.String()))
	return nil
}
