package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/permission"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// ActivateResult is the outcome of ActivateSafety. Created is false when a
// check was already open for the group and got reused.
type ActivateResult struct {
	Check    *domain.SafetyCheck
	Created  bool
	Notified int
}

// ActivateSafety opens a safety check for a group, or reuses the open one,
// and asks every other member whether they are safe. Members already asked
// about the same check are not asked again.
func (s *Service) ActivateSafety(ctx context.Context, groupID uuid.UUID) (ActivateResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ActivateResult{}, domain.ErrUnauthorized
	}
	if err := s.perms.Check(ctx, userID, groupID, permission.SafetyActivate); err != nil {
		return ActivateResult{}, err
	}

	var result ActivateResult
	bundle := sideeffect.New()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		check, err := s.safety.GetOpenForGroup(txCtx, groupID)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrNotFound):
			check = &domain.SafetyCheck{
				ID:        uuid.New(),
				GroupID:   groupID,
				CreatedBy: userID,
				CreatedAt: s.now(),
			}
			if err := s.safety.Create(txCtx, *check); err != nil {
				return fmt.Errorf("create safety check: %w", err)
			}
			result.Created = true
		default:
			return fmt.Errorf("get open safety check: %w", err)
		}
		result.Check = check

		g, err := s.groups.GetByID(txCtx, groupID)
		if err != nil {
			return fmt.Errorf("get group: %w", err)
		}
		members, err := s.groups.ListMembers(txCtx, groupID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		targets, err := s.effects.FilterUnnotified(txCtx, check.ID, domain.NotificationKindSafety, othersThan(members, userID))
		if err != nil {
			return fmt.Errorf("filter targets: %w", err)
		}
		result.Notified = len(targets)

		entry := domain.AuditLogEntry{
			ActorID:    &userID,
			EntityType: domain.EntityTypeSafetyCheck,
			EntityID:   &check.ID,
			Action:     domain.AuditActionSafetyActivated,
		}
		msg := func(t sideeffect.Target) string {
			return s.messages.Render(t.Locale, "notify.safety", map[string]string{"group": g.Name})
		}
		if result.Created {
			bundle.Record(entry, domain.NotificationKindSafety, targets, msg)
		} else {
			bundle.Broadcast(entry, domain.NotificationKindSafety, targets, msg)
		}
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return ActivateResult{}, err
	}

	s.effects.Dispatch(ctx, bundle)
	s.log.InfoContext(ctx, "safety check activated",
		slog.String("user_id", userID.String()),
		slog.String("check_id", result.Check.ID.String()),
		slog.Bool("created", result.Created),
		slog.Int("notified", result.Notified),
	)
	return result, nil
}

// RespondSafety records the caller's answer to a safety check. The first
// answer stands: later answers return false and change nothing.
func (s *Service) RespondSafety(ctx context.Context, checkID uuid.UUID, safe bool) (bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}

	var recorded bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		check, err := s.safety.GetByID(txCtx, checkID)
		if err != nil {
			return fmt.Errorf("get safety check: %w", err)
		}
		if check.IsClosed() {
			return fmt.Errorf("safety check closed: %w", domain.ErrConflict)
		}
		if _, err := s.groups.GetMember(txCtx, check.GroupID, userID); err != nil {
			return forbiddenIfMissing(err)
		}

		recorded, err = s.safety.Respond(txCtx, checkID, userID, safe, s.now())
		if err != nil {
			return fmt.Errorf("record response: %w", err)
		}
		if !recorded {
			return nil
		}

		detail := "UNSAFE"
		if safe {
			detail = "SAFE"
		}
		bundle := sideeffect.New()
		bundle.Record(domain.AuditLogEntry{
			ActorID:    &userID,
			EntityType: domain.EntityTypeSafetyCheck,
			EntityID:   &check.ID,
			Action:     domain.AuditActionResponded,
			Detail:     &detail,
		}, "", nil, nil)
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return false, err
	}

	if recorded {
		s.log.InfoContext(ctx, "safety response recorded",
			slog.String("user_id", userID.String()),
			slog.String("check_id", checkID.String()),
			slog.Bool("safe", safe),
		)
	}
	return recorded, nil
}

// CloseSafety ends a safety check so nobody is asked about it any more. The
// activating member or anyone allowed to activate checks in the group may
// close it. Closing a closed check returns domain.ErrConflict.
func (s *Service) CloseSafety(ctx context.Context, checkID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		check, err := s.safety.GetByID(txCtx, checkID)
		if err != nil {
			return fmt.Errorf("get safety check: %w", err)
		}
		if check.CreatedBy != userID {
			if err := s.perms.Check(txCtx, userID, check.GroupID, permission.SafetyActivate); err != nil {
				return err
			}
		}
		if check.IsClosed() {
			return fmt.Errorf("safety check closed: %w", domain.ErrConflict)
		}

		if err := s.safety.Close(txCtx, checkID, s.now()); err != nil {
			return err
		}

		bundle := sideeffect.New()
		bundle.Record(domain.AuditLogEntry{
			ActorID:    &userID,
			EntityType: domain.EntityTypeSafetyCheck,
			EntityID:   &check.ID,
			Action:     domain.AuditActionSafetyClosed,
		}, "", nil, nil)
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "safety check closed",
		slog.String("user_id", userID.String()),
		slog.String("check_id", checkID.String()),
	)
	return nil
}
