package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/activity"
)

func idArg(args []string) (uuid.UUID, error) {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid activity id %q: %w", args[0], err)
	}
	return id, nil
}

func newRemindCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "remind <activity-id>",
		Short: "Send the due reminder of one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), e.timeout)
			defer cancel()

			res, err := e.activities().SendReminder(ctx, id, e.now)
			if err != nil {
				return err
			}
			e.log.Info("reminder sent", slog.String("activity_id", id.String()), slog.Int("notified", res.Notified))
			return nil
		},
	}
}

func newRemindDueCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "remind-due",
		Short: "Send every reminder that is due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), e.timeout)
			defer cancel()

			due, err := e.activities().ListDueForReminder(ctx, e.now, e.cfg.Activity.ReminderHorizon)
			if err != nil {
				return err
			}
			return e.each(ctx, "reminder", due, func(ctx context.Context, id uuid.UUID) (activity.JobResult, error) {
				return e.activities().SendReminder(ctx, id, e.now)
			})
		},
	}
}

func newAnnounceCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "announce [vote-id]",
		Short: "Announce vote results; without an id, every vote past its deadline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), e.timeout)
			defer cancel()

			if len(args) == 1 {
				id, err := idArg(args)
				if err != nil {
					return err
				}
				res, err := e.activities().AnnounceResult(ctx, id, e.now)
				if err != nil {
					return err
				}
				e.log.Info("result announced", slog.String("activity_id", id.String()), slog.Int("notified", res.Notified))
				return nil
			}

			due, err := e.activities().ListDueForResult(ctx, e.now)
			if err != nil {
				return err
			}
			return e.each(ctx, "announcement", due, func(ctx context.Context, id uuid.UUID) (activity.JobResult, error) {
				return e.activities().AnnounceResult(ctx, id, e.now)
			})
		},
	}
}

func newAcknowledgeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "acknowledge <activity-id>",
		Short: "Thank the members who took part in an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), e.timeout)
			defer cancel()

			res, err := e.activities().Acknowledge(ctx, id)
			if err != nil {
				return err
			}
			e.log.Info("acknowledgement sent", slog.String("activity_id", id.String()), slog.Int("notified", res.Notified))
			return nil
		},
	}
}

// each runs job for every activity and keeps going past failures. Conflicts
// mean another run got there first and are not counted as failures.
func (e *env) each(ctx context.Context, name string, due []domain.Activity, job func(context.Context, uuid.UUID) (activity.JobResult, error)) error {
	var failed, notified int
	for _, a := range due {
		id := a.Base().ID
		res, err := job(ctx, id)
		switch {
		case errors.Is(err, domain.ErrConflict):
			e.log.Debug(name+" skipped", slog.String("activity_id", id.String()))
		case err != nil:
			failed++
			e.log.Error(name+" failed", slog.String("activity_id", id.String()), slog.String("error", err.Error()))
		default:
			notified += res.Notified
		}
	}

	e.log.Info(name+" run finished",
		slog.Int("due", len(due)),
		slog.Int("notified", notified),
		slog.Int("failed", failed),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d %ss failed", failed, len(due), name)
	}
	return nil
}
