package resolver

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

var _ groupService = &groupServiceMock{}

type groupServiceMock struct {
	ListForUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)

	calls struct {
		ListForUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockListForUser sync.RWMutex
}

func (mock *groupServiceMock) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Group, error) {
	if mock.ListForUserFunc == nil {
		panic("groupServiceMock.ListForUserFunc: method is nil but groupService.ListForUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockListForUser.Lock()
	mock.calls.ListForUser = append(mock.calls.ListForUser, callInfo)
	mock.lockListForUser.Unlock()
	return mock.ListForUserFunc(ctx, userID)
}

func (mock *groupServiceMock) ListForUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListForUser.RLock()
	calls := mock.calls.ListForUser
	mock.lockListForUser.RUnlock()
	return calls
}

var _ activityService = &activityServiceMock{}

type activityServiceMock struct {
	GetFunc func(ctx context.Context, userID uuid.UUID, id uuid.UUID) (domain.Activity, error)

	calls struct {
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ID     uuid.UUID
		}
	}
	lockGet sync.RWMutex
}

func (mock *activityServiceMock) Get(ctx context.Context, userID uuid.UUID, id uuid.UUID) (domain.Activity, error) {
	if mock.GetFunc == nil {
		panic("activityServiceMock.GetFunc: method is nil but activityService.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     uuid.UUID
	}{Ctx: ctx, UserID: userID, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID, id)
}

func (mock *activityServiceMock) GetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

var _ userService = &userServiceMock{}

type userServiceMock struct {
	GetProfileFunc func(ctx context.Context) (*domain.User, error)

	calls struct {
		GetProfile []struct {
			Ctx context.Context
		}
	}
	lockGetProfile sync.RWMutex
}

func (mock *userServiceMock) GetProfile(ctx context.Context) (*domain.User, error) {
	if mock.GetProfileFunc == nil {
		panic("userServiceMock.GetProfileFunc: method is nil but userService.GetProfile was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockGetProfile.Lock()
	mock.calls.GetProfile = append(mock.calls.GetProfile, callInfo)
	mock.lockGetProfile.Unlock()
	return mock.GetProfileFunc(ctx)
}

func (mock *userServiceMock) GetProfileCalls() []struct {
	Ctx context.Context
} {
	mock.lockGetProfile.RLock()
	calls := mock.calls.GetProfile
	mock.lockGetProfile.RUnlock()
	return calls
}

var _ inboxService = &inboxServiceMock{}

type inboxServiceMock struct {
	ListFunc func(ctx context.Context, limit int) ([]domain.Notification, error)

	calls struct {
		List []struct {
			Ctx   context.Context
			Limit int
		}
	}
	lockList sync.RWMutex
}

func (mock *inboxServiceMock) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	if mock.ListFunc == nil {
		panic("inboxServiceMock.ListFunc: method is nil but inboxService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, limit)
}

func (mock *inboxServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

var _ obligationService = &obligationServiceMock{}

type obligationServiceMock struct {
	ResolveFunc func(ctx context.Context, userID uuid.UUID) (*domain.Obligation, error)

	calls struct {
		Resolve []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockResolve sync.RWMutex
}

func (mock *obligationServiceMock) Resolve(ctx context.Context, userID uuid.UUID) (*domain.Obligation, error) {
	if mock.ResolveFunc == nil {
		panic("obligationServiceMock.ResolveFunc: method is nil but obligationService.Resolve was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockResolve.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, callInfo)
	mock.lockResolve.Unlock()
	return mock.ResolveFunc(ctx, userID)
}

func (mock *obligationServiceMock) ResolveCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockResolve.RLock()
	calls := mock.calls.Resolve
	mock.lockResolve.RUnlock()
	return calls
}
