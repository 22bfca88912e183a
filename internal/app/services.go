package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/huddle-backend/internal/adapter/catalog"
	"github.com/heartmarshall/huddle-backend/internal/adapter/delivery"
	"github.com/heartmarshall/huddle-backend/internal/adapter/postgres"
	activityrepo "github.com/heartmarshall/huddle-backend/internal/adapter/postgres/activity"
	auditrepo "github.com/heartmarshall/huddle-backend/internal/adapter/postgres/audit"
	grouprepo "github.com/heartmarshall/huddle-backend/internal/adapter/postgres/group"
	notificationrepo "github.com/heartmarshall/huddle-backend/internal/adapter/postgres/notification"
	obligationrepo "github.com/heartmarshall/huddle-backend/internal/adapter/postgres/obligation"
	pointerrepo "github.com/heartmarshall/huddle-backend/internal/adapter/postgres/pointer"
	safetyrepo "github.com/heartmarshall/huddle-backend/internal/adapter/postgres/safety"
	userrepo "github.com/heartmarshall/huddle-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/huddle-backend/internal/config"
	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/activity"
	"github.com/heartmarshall/huddle-backend/internal/service/alert"
	"github.com/heartmarshall/huddle-backend/internal/service/entry"
	"github.com/heartmarshall/huddle-backend/internal/service/group"
	"github.com/heartmarshall/huddle-backend/internal/service/inbox"
	"github.com/heartmarshall/huddle-backend/internal/service/menu"
	"github.com/heartmarshall/huddle-backend/internal/service/obligation"
	"github.com/heartmarshall/huddle-backend/internal/service/permission"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
	"github.com/heartmarshall/huddle-backend/internal/service/user"
	"github.com/heartmarshall/huddle-backend/internal/transport/graphql/dataloader"
)

// Sink delivers committed notifications to the outside world.
type Sink interface {
	Deliver(ctx context.Context, notifications []domain.Notification) error
	Close() error
}

// Services is the wired service graph shared by the server and the commands.
type Services struct {
	Activities  *activity.Service
	Users       *user.Service
	Groups      *group.Service
	Alerts      *alert.Service
	Inbox       *inbox.Service
	Obligations *obligation.Resolver
	Menu        *menu.Engine
	Pointers    *pointerrepo.Repo

	// Loaders backs the per-request GraphQL loaders.
	Loaders *dataloader.Repos

	// Kafka is set when notifications are published to Kafka.
	Kafka *delivery.KafkaSink
	sink  Sink
}

// NewServices wires repositories and services on top of pool.
func NewServices(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*Services, error) {
	messages, err := catalog.Load(cfg.Catalog.Path, cfg.Menu.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("load message catalog: %w", err)
	}

	txm := postgres.NewTxManager(pool)

	activities := activityrepo.New(pool)
	audit := auditrepo.New(pool)
	notifications := notificationrepo.New(pool)
	users := userrepo.New(pool)
	groups := grouprepo.New(pool)
	pointers := pointerrepo.New(pool)
	safety := safetyrepo.New(pool)
	obligations := obligationrepo.New(pool)

	s := &Services{
		Pointers: pointers,
		Loaders:  &dataloader.Repos{Members: groups, Activities: activities, Users: users},
	}
	if cfg.Delivery.UsesKafka() {
		s.Kafka = delivery.NewKafkaSink(logger, cfg.Delivery.Brokers(), cfg.Delivery.KafkaTopic, cfg.Delivery.WriteTimeout)
		s.sink = s.Kafka
	} else {
		s.sink = delivery.NewLogSink(logger)
	}

	effects := sideeffect.NewCommitter(logger, audit, notifications, s.sink)
	perms := permission.NewChecker(groups)

	s.Activities = activity.NewService(logger, activity.Config{
		DedupWindow:     cfg.Activity.DedupWindow,
		MaxLabelLength:  cfg.Activity.MaxLabelLength,
		MaxVoteOptions:  cfg.Activity.MaxVoteOptions,
		ReminderOffsets: cfg.Activity.ReminderOffsets,
	}, activities, groups, audit, perms, effects, messages, txm)
	s.Users = user.NewService(logger, users, effects, messages, txm, cfg.Menu.DefaultLocale)
	s.Groups = group.NewService(logger, groups, perms, effects, txm)
	s.Alerts = alert.NewService(logger, safety, groups, users, perms, effects, messages, txm, cfg.Menu.AppLinkURL)
	s.Inbox = inbox.NewService(logger, notifications)
	s.Obligations = obligation.NewResolver(logger, obligations)

	router := entry.NewRouter(logger, s.Groups, s.Users, cfg.Menu.DialPrefixLength)
	s.Menu = menu.NewEngine(logger, menu.Config{
		ScreenLimit:    cfg.Menu.ScreenLimit,
		PointerTTL:     cfg.Menu.PointerTTL,
		MaxListItems:   cfg.Menu.MaxListItems,
		MaxLabelLength: cfg.Activity.MaxLabelLength,
		MaxVoteOptions: cfg.Activity.MaxVoteOptions,
		DefaultLocale:  cfg.Menu.DefaultLocale,
	}, s.Users, router, s.Obligations, s.Activities, s.Groups, s.Alerts, pointers, messages)

	return s, nil
}

// Close releases the delivery sink.
func (s *Services) Close() error {
	return s.sink.Close()
}
