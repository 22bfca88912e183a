package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/permission"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// CreateResult is the outcome of Create. Created is false when the request
// matched an existing activity inside the dedup window.
type CreateResult struct {
	Activity domain.Activity
	Created  bool
}

// Create creates an activity in a group and notifies the other members.
// A retried request is answered with the activity created by the first one,
// even when the scheduled instant has passed in the meantime.
func (s *Service) Create(ctx context.Context, input CreateInput) (CreateResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return CreateResult{}, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg); err != nil {
		return CreateResult{}, err
	}
	if err := s.perms.Check(ctx, userID, input.GroupID, permission.ActivityCreate); err != nil {
		return CreateResult{}, err
	}

	var result CreateResult
	bundle := sideeffect.New()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.findDuplicate(txCtx, userID, input.GroupID, input.Label, input.ScheduledAt)
		if err != nil {
			return err
		}
		if existing != nil {
			result = CreateResult{Activity: existing}
			return nil
		}
		if err := validateFuture(input.ScheduledAt, s.now()); err != nil {
			return err
		}

		members, err := s.members.ListMembers(txCtx, input.GroupID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}

		a, err := s.build(input, userID, members)
		if err != nil {
			return err
		}
		if err := s.activities.Create(txCtx, a); err != nil {
			return fmt.Errorf("create activity: %w", err)
		}

		targets, err := s.effects.FilterUnnotified(txCtx, a.Base().ID, domain.NotificationKindCreated,
			sideeffect.TargetsFromMembers(othersThan(members, userID)))
		if err != nil {
			return err
		}
		bundle.Record(auditEntry(a, &userID, domain.AuditActionCreated, nil),
			domain.NotificationKindCreated, targets, s.message(a, "created", nil))

		if todo, ok := a.(*domain.Todo); ok {
			assigned, err := s.assignEffects(txCtx, todo, userID, todo.Assignees, members)
			if err != nil {
				return err
			}
			bundle.Absorb(assigned)
		}

		result = CreateResult{Activity: a, Created: true}
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return CreateResult{}, err
	}

	if !result.Created {
		s.log.InfoContext(ctx, "duplicate create absorbed",
			slog.String("user_id", userID.String()),
			slog.String("activity_id", result.Activity.Base().ID.String()),
		)
		return result, nil
	}

	s.effects.Dispatch(ctx, bundle)

	s.log.InfoContext(ctx, "activity created",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", result.Activity.Base().ID.String()),
		slog.String("kind", string(result.Activity.Kind())),
	)
	return result, nil
}

// build constructs the concrete activity for input. Todos without explicit
// assignees go to every other member, or to the creator in a one-person group.
func (s *Service) build(input CreateInput, creatorID uuid.UUID, members []domain.Member) (domain.Activity, error) {
	now := s.now()
	label := domain.CleanLabel(input.Label)
	base := domain.ActivityBase{
		ID:              uuid.New(),
		CreatorID:       creatorID,
		GroupID:         input.GroupID,
		Label:           label,
		LabelNormalized: domain.NormalizeText(label),
		ScheduledAt:     input.ScheduledAt.UTC(),
		ReminderOffsets: s.cfg.ReminderOffsets,
		Revision:        1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	switch input.Kind {
	case domain.ActivityKindMeeting:
		m := &domain.Meeting{ActivityBase: base}
		if input.Location != nil {
			if loc := domain.CleanLabel(*input.Location); loc != "" {
				m.Location = &loc
			}
		}
		return m, nil

	case domain.ActivityKindVote:
		options := make([]string, len(input.Options))
		for i, o := range input.Options {
			options[i] = strings.TrimSpace(o)
		}
		return &domain.Vote{ActivityBase: base, Options: options}, nil

	case domain.ActivityKindTodo:
		assignees := input.Assignees
		if len(assignees) == 0 {
			for _, m := range othersThan(members, creatorID) {
				assignees = append(assignees, m.UserID)
			}
			if len(assignees) == 0 {
				assignees = []uuid.UUID{creatorID}
			}
		}
		if err := requireMembers(members, assignees); err != nil {
			return nil, err
		}
		return &domain.Todo{ActivityBase: base, Assignees: dedupIDs(assignees)}, nil
	}

	return nil, domain.NewValidationError("kind", "unsupported activity kind")
}

func requireMembers(members []domain.Member, ids []uuid.UUID) error {
	in := make(map[uuid.UUID]bool, len(members))
	for _, m := range members {
		in[m.UserID] = true
	}
	for _, id := range ids {
		if !in[id] {
			return domain.NewValidationError("user_ids", fmt.Sprintf("%s is not a group member", id))
		}
	}
	return nil
}

func dedupIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
