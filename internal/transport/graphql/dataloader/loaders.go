package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

func newMembersBatchFn(repo memberRepo) dataloader.BatchFunc[uuid.UUID, []domain.Member] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.Member] {
		members, err := repo.ListMembersByGroupIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.Member](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.Member, len(keys))
		for _, m := range members {
			grouped[m.GroupID] = append(grouped[m.GroupID], m)
		}
		return mapResults(keys, grouped, emptySlice[domain.Member])
	}
}

func newActivitiesBatchFn(repo activityRepo) dataloader.BatchFunc[uuid.UUID, []domain.Activity] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.Activity] {
		list, err := repo.ListByGroupIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.Activity](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.Activity, len(keys))
		for _, a := range list {
			gid := a.Base().GroupID
			grouped[gid] = append(grouped[gid], a)
		}
		return mapResults(keys, grouped, emptySlice[domain.Activity])
	}
}

// A user that no longer exists loads as nil.
func newUsersBatchFn(repo userRepo) dataloader.BatchFunc[uuid.UUID, *domain.User] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.User] {
		users, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.User](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.User, len(users))
		for i := range users {
			byID[users[i].ID] = &users[i]
		}
		return mapResults(keys, byID, func() *domain.User { return nil })
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

func emptySlice[T any]() []T {
	return []T{}
}
