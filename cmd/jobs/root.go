package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/huddle-backend/internal/adapter/postgres"
	"github.com/heartmarshall/huddle-backend/internal/app"
	"github.com/heartmarshall/huddle-backend/internal/config"
	"github.com/heartmarshall/huddle-backend/internal/service/activity"
)

// env is the runtime shared by every subcommand. It is built in the root
// pre-run hook and released in the post-run hook.
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	pool    *pgxpool.Pool
	svc     *app.Services
	now     time.Time
	timeout time.Duration
}

func (e *env) activities() *activity.Service { return e.svc.Activities }

func newRootCommand() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:           "jobs",
		Short:         "Run scheduled activity jobs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return e.close()
		},
	}
	cmd.PersistentFlags().DurationVar(&e.timeout, "timeout", 5*time.Minute, "overall deadline of the run")

	cmd.AddCommand(
		newRemindCommand(e),
		newRemindDueCommand(e),
		newAnnounceCommand(e),
		newAcknowledgeCommand(e),
	)
	return cmd
}

func (e *env) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	e.cfg = cfg
	e.log = app.NewLogger(cfg.Log).With("job", cmd.Name())
	e.now = time.Now().UTC()

	pool, err := postgres.NewPool(cmd.Context(), cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	e.pool = pool

	svc, err := app.NewServices(cfg, e.log, pool)
	if err != nil {
		pool.Close()
		return err
	}
	e.svc = svc
	return nil
}

func (e *env) close() error {
	var err error
	if e.svc != nil {
		err = e.svc.Close()
	}
	if e.pool != nil {
		e.pool.Close()
	}
	return err
}
