package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
)

// The operations below run from scheduled jobs without an acting user.
// A job may be retried wholesale: every broadcast goes through
// FilterUnnotified, and a broadcast left without targets writes no audit entry.

// JobResult reports how many notifications a job run produced.
type JobResult struct {
	Notified int
}

// ListDueForReminder returns open activities scheduled within horizon whose
// current reminder round has not been sent yet.
func (s *Service) ListDueForReminder(ctx context.Context, now time.Time, horizon time.Duration) ([]domain.Activity, error) {
	upcoming, err := s.activities.ListUpcoming(ctx, now, now.Add(horizon))
	if err != nil {
		return nil, fmt.Errorf("list upcoming: %w", err)
	}
	var due []domain.Activity
	for _, a := range upcoming {
		if a.Base().DueReminderRound(now) > a.Base().RemindersSent {
			due = append(due, a)
		}
	}
	return due, nil
}

// ListDueForResult returns open votes whose deadline has passed.
func (s *Service) ListDueForResult(ctx context.Context, now time.Time) ([]domain.Activity, error) {
	list, err := s.activities.ListClosable(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list closable: %w", err)
	}
	return list, nil
}

// SendReminder sends the reminder round due at now to every member who still
// owes a response. Running it twice for the same round notifies nobody twice.
func (s *Service) SendReminder(ctx context.Context, activityID uuid.UUID, now time.Time) (JobResult, error) {
	var result JobResult
	bundle := sideeffect.New()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.activities.GetByID(txCtx, activityID)
		if err != nil {
			return fmt.Errorf("get activity: %w", err)
		}
		if !domain.IsOpen(a) {
			return nil
		}
		b := a.Base()
		round := b.DueReminderRound(now)
		if round == 0 {
			return nil
		}

		pending, err := s.pendingMembers(txCtx, a)
		if err != nil {
			return err
		}
		kind := domain.ReminderKind(round)
		targets, err := s.effects.FilterUnnotified(txCtx, b.ID, kind, sideeffect.TargetsFromMembers(pending))
		if err != nil {
			return err
		}

		detail := "round " + strconv.Itoa(round)
		bundle.Broadcast(auditEntry(a, nil, domain.AuditActionReminderSent, &detail), kind, targets,
			s.message(a, "reminder", nil))

		if round > b.RemindersSent {
			if err := s.activities.SetRemindersSent(txCtx, b.ID, round, now); err != nil {
				return fmt.Errorf("set reminders sent: %w", err)
			}
		}

		result.Notified = len(targets)
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return JobResult{}, err
	}

	s.effects.Dispatch(ctx, bundle)

	s.log.InfoContext(ctx, "reminder job",
		slog.String("activity_id", activityID.String()),
		slog.Int("notified", result.Notified),
	)
	return result, nil
}

// AnnounceResult closes a vote after its deadline and sends the tally to
// every member. A closed vote is announced again only to members who missed
// the first announcement.
func (s *Service) AnnounceResult(ctx context.Context, voteID uuid.UUID, now time.Time) (JobResult, error) {
	var result JobResult
	bundle := sideeffect.New()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.activities.GetByID(txCtx, voteID)
		if err != nil {
			return fmt.Errorf("get activity: %w", err)
		}
		vote, ok := a.(*domain.Vote)
		if !ok {
			return domain.NewValidationError("vote_id", "only votes have results")
		}
		if vote.Canceled {
			return fmt.Errorf("vote %s canceled: %w", vote.ID, domain.ErrConflict)
		}
		if now.Before(vote.ScheduledAt) {
			return fmt.Errorf("vote %s deadline not reached: %w", vote.ID, domain.ErrConflict)
		}
		if !vote.Closed {
			if err := s.activities.Close(txCtx, vote.ID, now); err != nil && !isConflict(err) {
				return fmt.Errorf("close vote: %w", err)
			}
			vote.Closed = true
		}

		responses, err := s.audit.ListByEntity(txCtx, vote.ID, domain.AuditActionResponded)
		if err != nil {
			return fmt.Errorf("list responses: %w", err)
		}
		summary := Tally(vote.Options, latestAnswers(responses))

		members, err := s.members.ListMembers(txCtx, vote.GroupID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		targets, err := s.effects.FilterUnnotified(txCtx, vote.ID, domain.NotificationKindResult, sideeffect.TargetsFromMembers(members))
		if err != nil {
			return err
		}

		bundle.Broadcast(auditEntry(vote, nil, domain.AuditActionResultAnnounced, &summary),
			domain.NotificationKindResult, targets, s.message(vote, "result", map[string]string{"result": summary}))

		result.Notified = len(targets)
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return JobResult{}, err
	}

	s.effects.Dispatch(ctx, bundle)

	s.log.InfoContext(ctx, "result job",
		slog.String("vote_id", voteID.String()),
		slog.Int("notified", result.Notified),
	)
	return result, nil
}

// Acknowledge thanks the members who took part: YES answers to a meeting,
// every voter of a vote, DONE answers to a todo.
func (s *Service) Acknowledge(ctx context.Context, activityID uuid.UUID) (JobResult, error) {
	var result JobResult
	bundle := sideeffect.New()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.activities.GetByID(txCtx, activityID)
		if err != nil {
			return fmt.Errorf("get activity: %w", err)
		}
		b := a.Base()
		if b.Canceled {
			return fmt.Errorf("activity %s canceled: %w", b.ID, domain.ErrConflict)
		}

		responses, err := s.audit.ListByEntity(txCtx, b.ID, domain.AuditActionResponded)
		if err != nil {
			return fmt.Errorf("list responses: %w", err)
		}
		thanked := make(map[uuid.UUID]bool)
		for userID, answer := range latestAnswers(responses) {
			switch a.(type) {
			case *domain.Meeting:
				thanked[userID] = answer == domain.RSVPYes
			case *domain.Vote:
				thanked[userID] = true
			case *domain.Todo:
				thanked[userID] = answer == domain.TodoDone
			}
		}

		members, err := s.members.ListMembers(txCtx, b.GroupID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		var candidates []domain.Member
		for _, m := range members {
			if thanked[m.UserID] {
				candidates = append(candidates, m)
			}
		}

		targets, err := s.effects.FilterUnnotified(txCtx, b.ID, domain.NotificationKindThankYou, sideeffect.TargetsFromMembers(candidates))
		if err != nil {
			return err
		}
		bundle.Broadcast(auditEntry(a, nil, domain.AuditActionAcknowledged, nil),
			domain.NotificationKindThankYou, targets, s.message(a, "thank_you", nil))

		result.Notified = len(targets)
		return s.effects.Commit(txCtx, bundle)
	})
	if err != nil {
		return JobResult{}, err
	}

	s.effects.Dispatch(ctx, bundle)

	s.log.InfoContext(ctx, "acknowledge job",
		slog.String("activity_id", activityID.String()),
		slog.Int("notified", result.Notified),
	)
	return result, nil
}

// pendingMembers returns the members who still owe a response to a:
// assignees for todos, everyone but the creator otherwise. Members who
// joined after a vote or todo was created owe nothing.
func (s *Service) pendingMembers(ctx context.Context, a domain.Activity) ([]domain.Member, error) {
	b := a.Base()
	members, err := s.members.ListMembers(ctx, b.GroupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	responses, err := s.audit.ListByEntity(ctx, b.ID, domain.AuditActionResponded)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	answered := latestAnswers(responses)

	out := make([]domain.Member, 0, len(members))
	for _, m := range members {
		if _, ok := answered[m.UserID]; ok {
			continue
		}
		if a.Kind().JoinGated() && !m.JoinedBefore(b.CreatedAt) {
			continue
		}
		if todo, ok := a.(*domain.Todo); ok {
			if !todo.HasAssignee(m.UserID) {
				continue
			}
		} else if m.UserID == b.CreatorID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// Tally formats vote counts as "Option: n" pairs, highest first, options
// with equal counts in their original order.
func Tally(options []string, answers map[uuid.UUID]string) string {
	counts := make(map[string]int, len(options))
	for _, answer := range answers {
		counts[answer]++
	}

	order := make([]int, len(options))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[options[order[i]]] > counts[options[order[j]]]
	})

	parts := make([]string, len(order))
	for i, idx := range order {
		parts[i] = fmt.Sprintf("%s: %d", options[idx], counts[options[idx]])
	}
	return strings.Join(parts, ", ")
}
