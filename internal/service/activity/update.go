package activity

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

// Update changes label, schedule or location of an open activity and
// notifies the other members of the new revision. A request that changes
// nothing, such as a retry of one already applied, returns the activity
// as is without a new revision, audit entry or notification.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(s.cfg); err != nil {
		return nil, err
	}

	var (
		updated domain.Activity
		changed bool
	)
	bundle := sideeffect.New()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.activities.GetByID(txCtx, input.ActivityID)
		if err != nil {
			return fmt.Errorf("get activity: %w", err)
		}
		b := a.Base()
		if err := s.perms.CheckOwnerOr(txCtx, userID, b.CreatorID, b.GroupID, permission.ActivityManage); err != nil {
			return err
		}
		if !domain.IsOpen(a) {
			return fmt.Errorf("activity %s is not open: %w", b.ID, domain.ErrConflict)
		}

		changed, err = s.apply(a, input)
		if err != nil {
			return err
		}
		updated = a
		if !changed {
			return nil
		}
		b.Revision++
		b.UpdatedAt = s.now()

		if err := s.activities.Update(txCtx, a); err != nil {
			return fmt.Errorf("update activity: %w", err)
		}

		members, err := s.members.ListMembers(txCtx, b.GroupID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		kind := domain.ChangedKind(b.Revision)
		targets, err := s.effects.FilterUnnotified(txCtx, b.ID, kind,
			sideeffect.TargetsFromMembers(othersThan(members, userID)))
		if err != nil {
			return err
		}
		detail := fmt.Sprintf("revision %d", b.Revision)
		bundle.Record(auditEntry(a, &userID, domain.AuditActionUpdated, &detail), kind, targets, s.message(a, "changed", nil))

		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return nil, err
	}

	if !changed {
		s.log.InfoContext(ctx, "unchanged update absorbed",
			slog.String("user_id", userID.String()),
			slog.String("activity_id", updated.Base().ID.String()),
		)
		return updated, nil
	}

	s.effects.Dispatch(ctx, bundle)

	s.log.InfoContext(ctx, "activity updated",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", updated.Base().ID.String()),
		slog.Int("revision", updated.Base().Revision),
	)
	return updated, nil
}

// apply writes the fields of input that differ from a into a and reports
// whether anything changed. A moved schedule must lie in the future.
func (s *Service) apply(a domain.Activity, input UpdateInput) (bool, error) {
	b := a.Base()
	changed := false

	if input.Label != nil {
		if label := domain.CleanLabel(*input.Label); label != b.Label {
			b.Label = label
			b.LabelNormalized = domain.NormalizeText(label)
			changed = true
		}
	}
	if input.ScheduledAt != nil {
		if at := input.ScheduledAt.UTC(); !at.Equal(b.ScheduledAt) {
			if err := validateFuture(at, s.now()); err != nil {
				return false, err
			}
			b.ScheduledAt = at
			changed = true
		}
	}
	if input.Location != nil {
		m, ok := a.(*domain.Meeting)
		if !ok {
			return false, domain.NewValidationError("location", "only meetings have a location")
		}
		var loc *string
		if l := domain.CleanLabel(*input.Location); l != "" {
			loc = &l
		}
		if !sameString(m.Location, loc) {
			m.Location = loc
			changed = true
		}
	}
	return changed, nil
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Cancel marks an activity canceled and tells the other members.
// Canceling twice returns domain.ErrConflict.
func (s *Service) Cancel(ctx context.Context, activityID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	bundle := sideeffect.New()
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.activities.GetByID(txCtx, activityID)
		if err != nil {
			return fmt.Errorf("get activity: %w", err)
		}
		b := a.Base()
		if err := s.perms.CheckOwnerOr(txCtx, userID, b.CreatorID, b.GroupID, permission.ActivityManage); err != nil {
			return err
		}
		if b.Canceled {
			return fmt.Errorf("activity %s already canceled: %w", b.ID, domain.ErrConflict)
		}

		if err := s.activities.Cancel(txCtx, b.ID, s.now()); err != nil {
			return fmt.Errorf("cancel activity: %w", err)
		}

		members, err := s.members.ListMembers(txCtx, b.GroupID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		targets, err := s.effects.FilterUnnotified(txCtx, b.ID, domain.NotificationKindCanceled,
			sideeffect.TargetsFromMembers(othersThan(members, userID)))
		if err != nil {
			return err
		}
		bundle.Record(auditEntry(a, &userID, domain.AuditActionCanceled, nil),
			domain.NotificationKindCanceled, targets, s.message(a, "canceled", nil))

		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return err
	}

	s.effects.Dispatch(ctx, bundle)

	s.log.InfoContext(ctx, "activity canceled",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", activityID.String()),
	)
	return nil
}

// Assign adds assignees to an open todo. Users already assigned are skipped;
// only the new ones are notified.
func (s *Service) Assign(ctx context.Context, input AssignInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return err
	}

	bundle := sideeffect.New()
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.activities.GetByID(txCtx, input.TodoID)
		if err != nil {
			return fmt.Errorf("get activity: %w", err)
		}
		todo, ok := a.(*domain.Todo)
		if !ok {
			return domain.NewValidationError("todo_id", "only todos have assignees")
		}
		if err := s.perms.CheckOwnerOr(txCtx, userID, todo.CreatorID, todo.GroupID, permission.ActivityManage); err != nil {
			return err
		}
		if !domain.IsOpen(todo) {
			return fmt.Errorf("todo %s is not open: %w", todo.ID, domain.ErrConflict)
		}

		members, err := s.members.ListMembers(txCtx, todo.GroupID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		if err := requireMembers(members, input.UserIDs); err != nil {
			return err
		}

		var fresh []uuid.UUID
		for _, id := range dedupIDs(input.UserIDs) {
			if !todo.HasAssignee(id) {
				fresh = append(fresh, id)
			}
		}
		if err := s.activities.AddAssignees(txCtx, todo.ID, fresh); err != nil {
			return fmt.Errorf("add assignees: %w", err)
		}

		assigned, err := s.assignEffects(txCtx, todo, userID, input.UserIDs, members)
		if err != nil {
			return err
		}
		bundle.Absorb(assigned)
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return err
	}

	s.effects.Dispatch(ctx, bundle)

	s.log.InfoContext(ctx, "todo assigned",
		slog.String("user_id", userID.String()),
		slog.String("todo_id", input.TodoID.String()),
		slog.Int("requested", len(input.UserIDs)),
	)
	return nil
}

// assignEffects builds the ASSIGNED broadcast for assignees that were not
// told yet. The actor is never notified about assigning themselves.
func (s *Service) assignEffects(ctx context.Context, todo *domain.Todo, actorID uuid.UUID, assignees []uuid.UUID, members []domain.Member) (*sideeffect.Bundle, error) {
	want := make(map[uuid.UUID]bool, len(assignees))
	for _, id := range assignees {
		if id != actorID {
			want[id] = true
		}
	}
	var candidates []domain.Member
	for _, m := range members {
		if want[m.UserID] {
			candidates = append(candidates, m)
		}
	}

	targets, err := s.effects.FilterUnnotified(ctx, todo.ID, domain.NotificationKindAssigned, sideeffect.TargetsFromMembers(candidates))
	if err != nil {
		return nil, err
	}

	b := sideeffect.New()
	b.Broadcast(auditEntry(todo, &actorID, domain.AuditActionAssigned, nil),
		domain.NotificationKindAssigned, targets, s.message(todo, "assigned", nil))
	return b, nil
}

// isConflict reports whether err is a state conflict.
func isConflict(err error) bool {
	return errors.Is(err, domain.ErrConflict)
}
