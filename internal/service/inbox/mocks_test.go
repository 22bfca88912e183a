package inbox

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	ListByTargetFunc func(ctx context.Context, targetID uuid.UUID, limit int) ([]domain.Notification, error)

	calls struct {
		ListByTarget []struct {
			Ctx      context.Context
			TargetID uuid.UUID
			Limit    int
		}
	}
	lockListByTarget sync.RWMutex
}

func (mock *notificationRepoMock) ListByTarget(ctx context.Context, targetID uuid.UUID, limit int) ([]domain.Notification, error) {
	if mock.ListByTargetFunc == nil {
		panic("notificationRepoMock.ListByTargetFunc: method is nil but notificationRepo.ListByTarget was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		TargetID uuid.UUID
		Limit    int
	}{Ctx: ctx, TargetID: targetID, Limit: limit}
	mock.lockListByTarget.Lock()
	mock.calls.ListByTarget = append(mock.calls.ListByTarget, callInfo)
	mock.lockListByTarget.Unlock()
	return mock.ListByTargetFunc(ctx, targetID, limit)
}

func (mock *notificationRepoMock) ListByTargetCalls() []struct {
	Ctx      context.Context
	TargetID uuid.UUID
	Limit    int
} {
	mock.lockListByTarget.RLock()
	calls := mock.calls.ListByTarget
	mock.lockListByTarget.RUnlock()
	return calls
}
