package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// Respond records the acting member's answer. A later answer replaces an
// earlier one. Todo DONE from an assignee also closes the todo.
// Returns the answer as stored.
func (s *Service) Respond(ctx context.Context, input RespondInput) (string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return "", err
	}

	var answer string
	bundle := sideeffect.New()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.activities.GetByID(txCtx, input.ActivityID)
		if err != nil {
			return fmt.Errorf("get activity: %w", err)
		}
		b := a.Base()

		member, err := s.members.GetMember(txCtx, b.GroupID, userID)
		if err != nil {
			return forbiddenIfMissing(err)
		}
		if a.Kind().JoinGated() && !member.JoinedBefore(b.CreatedAt) {
			return fmt.Errorf("joined after %s was created: %w", b.ID, domain.ErrForbidden)
		}
		if !domain.IsOpen(a) {
			return fmt.Errorf("activity %s is not open: %w", b.ID, domain.ErrConflict)
		}

		now := s.now()
		switch v := a.(type) {
		case *domain.Vote:
			if !now.Before(v.ScheduledAt) {
				return fmt.Errorf("vote %s deadline passed: %w", v.ID, domain.ErrConflict)
			}
			answer, err = parseChoice(v.Options, input.Answer)
		case *domain.Meeting:
			if !now.Before(v.ScheduledAt) {
				return fmt.Errorf("meeting %s already started: %w", v.ID, domain.ErrConflict)
			}
			answer, err = parseFixed(input.Answer, domain.RSVPYes, domain.RSVPNo)
		case *domain.Todo:
			if !v.HasAssignee(userID) {
				return fmt.Errorf("not assigned to %s: %w", v.ID, domain.ErrForbidden)
			}
			answer, err = parseFixed(input.Answer, domain.TodoDone, domain.TodoDecline)
			if err == nil && answer == domain.TodoDone {
				if cerr := s.activities.Close(txCtx, v.ID, now); cerr != nil {
					return fmt.Errorf("close todo: %w", cerr)
				}
			}
		}
		if err != nil {
			return err
		}

		bundle.Record(auditEntry(a, &userID, domain.AuditActionResponded, &answer), "", nil, nil)
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "activity response recorded",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", input.ActivityID.String()),
		slog.String("answer", answer),
	)
	return answer, nil
}

// parseChoice accepts a 1-based option number or the option text.
func parseChoice(options []string, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 1 || n > len(options) {
			return "", domain.NewValidationError("answer", fmt.Sprintf("choose 1 to %d", len(options)))
		}
		return options[n-1], nil
	}
	want := domain.NormalizeText(raw)
	for _, o := range options {
		if domain.NormalizeText(o) == want {
			return o, nil
		}
	}
	return "", domain.NewValidationError("answer", "unknown option")
}

func parseFixed(raw string, allowed ...string) (string, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	for _, a := range allowed {
		if raw == a {
			return a, nil
		}
	}
	return "", domain.NewValidationError("answer", "must be one of "+strings.Join(allowed, ", "))
}
