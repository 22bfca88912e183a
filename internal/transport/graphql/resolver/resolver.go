// Package resolver implements the GraphQL resolvers for the app channel.
// Root fields go through the services; nested lists go through the
// per-request loaders.
package resolver

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

type groupService interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
}

type activityService interface {
	Get(ctx context.Context, userID, id uuid.UUID) (domain.Activity, error)
}

type userService interface {
	GetProfile(ctx context.Context) (*domain.User, error)
}

type inboxService interface {
	List(ctx context.Context, limit int) ([]domain.Notification, error)
}

type obligationService interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*domain.Obligation, error)
}

// Resolver is the root resolver containing all service dependencies.
type Resolver struct {
	groups      groupService
	activities  activityService
	users       userService
	inbox       inboxService
	obligations obligationService
	log         *slog.Logger
}

// NewResolver creates a new Resolver with all service dependencies.
func NewResolver(
	log *slog.Logger,
	groups groupService,
	activities activityService,
	users userService,
	inbox inboxService,
	obligations obligationService,
) *Resolver {
	return &Resolver{
		groups:      groups,
		activities:  activities,
		users:       users,
		inbox:       inbox,
		obligations: obligations,
		log:         log.With("component", "graphql"),
	}
}
