package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	gql "github.com/heartmarshall/huddle-backend/internal/transport/graphql"
	"github.com/heartmarshall/huddle-backend/internal/transport/graphql/dataloader"
	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// Me is the resolver for the me field.
func (r *queryResolver) Me(ctx context.Context) (*domain.User, error) {
	return r.users.GetProfile(ctx)
}

// Groups is the resolver for the groups field.
func (r *queryResolver) Groups(ctx context.Context) ([]domain.Group, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return r.groups.ListForUser(ctx, userID)
}

// Group is the resolver for the group field. Groups the caller is not in
// are reported as not found.
func (r *queryResolver) Group(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	groups, err := r.Groups(ctx)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i], nil
		}
	}
	return nil, fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
}

// Activity is the resolver for the activity field.
func (r *queryResolver) Activity(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return r.activities.Get(ctx, userID, id)
}

// Notifications is the resolver for the notifications field.
func (r *queryResolver) Notifications(ctx context.Context, limit *int) ([]domain.Notification, error) {
	n := 0
	if limit != nil {
		n = *limit
	}
	return r.inbox.List(ctx, n)
}

// Obligation is the resolver for the obligation field.
func (r *queryResolver) Obligation(ctx context.Context) (*domain.Obligation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	ob, err := r.obligations.Resolve(ctx, userID)
	if err != nil {
		r.log.ErrorContext(ctx, "resolve obligation", slog.String("error", err.Error()))
		return nil, err
	}
	return ob, nil
}

// Members is the resolver for the members field.
func (r *groupResolver) Members(ctx context.Context, obj *domain.Group) ([]domain.Member, error) {
	return dataloader.FromContext(ctx).MembersByGroupID.Load(ctx, obj.ID)()
}

// Activities is the resolver for the activities field.
func (r *groupResolver) Activities(ctx context.Context, obj *domain.Group) ([]domain.Activity, error) {
	return dataloader.FromContext(ctx).ActivitiesByGroupID.Load(ctx, obj.ID)()
}

// User is the resolver for the user field.
func (r *memberResolver) User(ctx context.Context, obj *domain.Member) (*domain.User, error) {
	return dataloader.FromContext(ctx).UserByID.Load(ctx, obj.UserID)()
}

// Creator is the resolver for the creator field.
func (r *activityResolver) Creator(ctx context.Context, obj domain.Activity) (*domain.User, error) {
	return dataloader.FromContext(ctx).UserByID.Load(ctx, obj.Base().CreatorID)()
}

// Query returns gql.QueryResolver implementation.
func (r *Resolver) Query() gql.QueryResolver { return &queryResolver{r} }

// Group returns gql.GroupResolver implementation.
func (r *Resolver) Group() gql.GroupResolver { return &groupResolver{r} }

// Member returns gql.MemberResolver implementation.
func (r *Resolver) Member() gql.MemberResolver { return &memberResolver{r} }

// Activity returns gql.ActivityResolver implementation.
func (r *Resolver) Activity() gql.ActivityResolver { return &activityResolver{r} }

type queryResolver struct{ *Resolver }
type groupResolver struct{ *Resolver }
type memberResolver struct{ *Resolver }
type activityResolver struct{ *Resolver }
