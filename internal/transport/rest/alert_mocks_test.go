package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/alert"
)

var _ alertService = &alertServiceMock{}

type alertServiceMock struct {
	ActivateSafetyFunc   func(ctx context.Context, groupID uuid.UUID) (alert.ActivateResult, error)
	RespondSafetyFunc    func(ctx context.Context, checkID uuid.UUID, safe bool) (bool, error)
	CloseSafetyFunc      func(ctx context.Context, checkID uuid.UUID) error
	SendInstantAlertFunc func(ctx context.Context, groupID uuid.UUID, text string) (int, error)

	calls struct {
		ActivateSafety []struct {
			Ctx     context.Context
			GroupID uuid.UUID
		}
		RespondSafety []struct {
			Ctx     context.Context
			CheckID uuid.UUID
			Safe    bool
		}
		CloseSafety []struct {
			Ctx     context.Context
			CheckID uuid.UUID
		}
		SendInstantAlert []struct {
			Ctx     context.Context
			GroupID uuid.UUID
			Text    string
		}
	}
	lockActivateSafety   sync.RWMutex
	lockRespondSafety    sync.RWMutex
	lockCloseSafety      sync.RWMutex
	lockSendInstantAlert sync.RWMutex
}

func (mock *alertServiceMock) ActivateSafety(ctx context.Context, groupID uuid.UUID) (alert.ActivateResult, error) {
	if mock.ActivateSafetyFunc == nil {
		panic("alertServiceMock.ActivateSafetyFunc: method is nil but alertService.ActivateSafety was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		GroupID uuid.UUID
	}{Ctx: ctx, GroupID: groupID}
	mock.lockActivateSafety.Lock()
	mock.calls.ActivateSafety = append(mock.calls.ActivateSafety, callInfo)
	mock.lockActivateSafety.Unlock()
	return mock.ActivateSafetyFunc(ctx, groupID)
}

func (mock *alertServiceMock) ActivateSafetyCalls() []struct {
	Ctx     context.Context
	GroupID uuid.UUID
} {
	mock.lockActivateSafety.RLock()
	calls := mock.calls.ActivateSafety
	mock.lockActivateSafety.RUnlock()
	return calls
}

func (mock *alertServiceMock) RespondSafety(ctx context.Context, checkID uuid.UUID, safe bool) (bool, error) {
	if mock.RespondSafetyFunc == nil {
		panic("alertServiceMock.RespondSafetyFunc: method is nil but alertService.RespondSafety was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		CheckID uuid.UUID
		Safe    bool
	}{Ctx: ctx, CheckID: checkID, Safe: safe}
	mock.lockRespondSafety.Lock()
	mock.calls.RespondSafety = append(mock.calls.RespondSafety, callInfo)
	mock.lockRespondSafety.Unlock()
	return mock.RespondSafetyFunc(ctx, checkID, safe)
}

func (mock *alertServiceMock) RespondSafetyCalls() []struct {
	Ctx     context.Context
	CheckID uuid.UUID
	Safe    bool
} {
	mock.lockRespondSafety.RLock()
	calls := mock.calls.RespondSafety
	mock.lockRespondSafety.RUnlock()
	return calls
}

func (mock *alertServiceMock) CloseSafety(ctx context.Context, checkID uuid.UUID) error {
	if mock.CloseSafetyFunc == nil {
		panic("alertServiceMock.CloseSafetyFunc: method is nil but alertService.CloseSafety was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		CheckID uuid.UUID
	}{Ctx: ctx, CheckID: checkID}
	mock.lockCloseSafety.Lock()
	mock.calls.CloseSafety = append(mock.calls.CloseSafety, callInfo)
	mock.lockCloseSafety.Unlock()
	return mock.CloseSafetyFunc(ctx, checkID)
}

func (mock *alertServiceMock) CloseSafetyCalls() []struct {
	Ctx     context.Context
	CheckID uuid.UUID
} {
	mock.lockCloseSafety.RLock()
	calls := mock.calls.CloseSafety
	mock.lockCloseSafety.RUnlock()
	return calls
}

func (mock *alertServiceMock) SendInstantAlert(ctx context.Context, groupID uuid.UUID, text string) (int, error) {
	if mock.SendInstantAlertFunc == nil {
		panic("alertServiceMock.SendInstantAlertFunc: method is nil but alertService.SendInstantAlert was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		GroupID uuid.UUID
		Text    string
	}{Ctx: ctx, GroupID: groupID, Text: text}
	mock.lockSendInstantAlert.Lock()
	mock.calls.SendInstantAlert = append(mock.calls.SendInstantAlert, callInfo)
	mock.lockSendInstantAlert.Unlock()
	return mock.SendInstantAlertFunc(ctx, groupID, text)
}

func (mock *alertServiceMock) SendInstantAlertCalls() []struct {
	Ctx     context.Context
	GroupID uuid.UUID
	Text    string
} {
	mock.lockSendInstantAlert.RLock()
	calls := mock.calls.SendInstantAlert
	mock.lockSendInstantAlert.RUnlock()
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
