package sideeffect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

type auditRepo interface {
	Create(ctx context.Context, entry domain.AuditLogEntry) error
}

type notificationRepo interface {
	Create(ctx context.Context, n domain.Notification) error
	NotifiedTargets(ctx context.Context, entityID uuid.UUID, kind domain.NotificationKind, targets []uuid.UUID) (map[uuid.UUID]bool, error)
}

type deliverySink interface {
	Deliver(ctx context.Context, notifications []domain.Notification) error
}

// Committer persists bundles and hands their notifications to delivery.
type Committer struct {
	audit         auditRepo
	notifications notificationRepo
	sink          deliverySink
	log           *slog.Logger
}

// NewCommitter creates a new Committer.
func NewCommitter(log *slog.Logger, audit auditRepo, notifications notificationRepo, sink deliverySink) *Committer {
	return &Committer{
		audit:         audit,
		notifications: notifications,
		sink:          sink,
		log:           log.With("service", "sideeffect"),
	}
}

// Commit writes every audit entry of the bundle, then every notification.
// It must run inside the transaction of the mutation that produced the
// bundle: any error aborts that transaction.
func (c *Committer) Commit(ctx context.Context, b *Bundle) error {
	for _, it := range b.items {
		if it.dropIfSilent && len(it.notifications) == 0 {
			continue
		}
		if err := c.audit.Create(ctx, it.entry); err != nil {
			return fmt.Errorf("write audit entry %s: %w", it.entry.Action, err)
		}
	}

	for _, it := range b.items {
		for _, n := range it.notifications {
			if err := c.notifications.Create(ctx, n); err != nil {
				return fmt.Errorf("write notification %s: %w", n.Kind, err)
			}
		}
	}
	return nil
}

// Dispatch hands committed notifications to the delivery sink. It runs after
// the transaction committed; failures are logged and not returned.
func (c *Committer) Dispatch(ctx context.Context, b *Bundle) {
	notes := b.Notifications()
	if len(notes) == 0 {
		return
	}
	if err := c.sink.Deliver(ctx, notes); err != nil {
		c.log.ErrorContext(ctx, "deliver notifications",
			slog.Int("count", len(notes)),
			slog.String("error", err.Error()),
		)
	}
}
