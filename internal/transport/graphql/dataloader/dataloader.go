// Package dataloader provides per-request DataLoaders that batch the nested
// GraphQL lookups (members and activities per group, users per ID) into one
// SQL call each. Loaders call repositories directly; the resolvers only reach
// them through groups the caller already belongs to.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// ---------------------------------------------------------------------------
// Repository interfaces (consumer-defined)
// ---------------------------------------------------------------------------

type memberRepo interface {
	ListMembersByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Member, error)
}

type activityRepo interface {
	ListByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Activity, error)
}

type userRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

// Repos holds the repositories required by the loaders.
type Repos struct {
	Members    memberRepo
	Activities activityRepo
	Users      userRepo
}

// Loaders holds the per-request DataLoader instances.
type Loaders struct {
	MembersByGroupID    *dataloader.Loader[uuid.UUID, []domain.Member]
	ActivitiesByGroupID *dataloader.Loader[uuid.UUID, []domain.Activity]
	UserByID            *dataloader.Loader[uuid.UUID, *domain.User]
}

// NewLoaders creates a new set of loaders backed by repos.
// Must be called per request: loaders cache results for their lifetime.
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		MembersByGroupID:    newLoader(newMembersBatchFn(repos.Members)),
		ActivitiesByGroupID: newLoader(newActivitiesBatchFn(repos.Activities)),
		UserByID:            newLoader(newUsersBatchFn(repos.Users)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if they are missing, which means the middleware is not mounted.
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is the middleware mounted?")
	}
	return l
}
