package sideeffect

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	CreateFunc func(ctx context.Context, entry domain.AuditLogEntry) error

	calls struct {
		Create []struct {
			Ctx   context.Context
			Entry domain.AuditLogEntry
		}
	}
	lockCreate sync.RWMutex
}

func (mock *auditRepoMock) Create(ctx context.Context, entry domain.AuditLogEntry) error {
	if mock.CreateFunc == nil {
		panic("auditRepoMock.CreateFunc: method is nil but auditRepo.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Entry domain.AuditLogEntry
	}{Ctx: ctx, Entry: entry}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, entry)
}

func (mock *auditRepoMock) CreateCalls() []struct {
	Ctx   context.Context
	Entry domain.AuditLogEntry
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	CreateFunc          func(ctx context.Context, n domain.Notification) error
	NotifiedTargetsFunc func(ctx context.Context, entityID uuid.UUID, kind domain.NotificationKind, targets []uuid.UUID) (map[uuid.UUID]bool, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			N   domain.Notification
		}
		NotifiedTargets []struct {
			Ctx      context.Context
			EntityID uuid.UUID
			Kind     domain.NotificationKind
			Targets  []uuid.UUID
		}
	}
	lockCreate          sync.RWMutex
	lockNotifiedTargets sync.RWMutex
}

func (mock *notificationRepoMock) Create(ctx context.Context, n domain.Notification) error {
	if mock.CreateFunc == nil {
		panic("notificationRepoMock.CreateFunc: method is nil but notificationRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.Notification
	}{Ctx: ctx, N: n}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, n)
}

func (mock *notificationRepoMock) CreateCalls() []struct {
	Ctx context.Context
	N   domain.Notification
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *notificationRepoMock) NotifiedTargets(ctx context.Context, entityID uuid.UUID, kind domain.NotificationKind, targets []uuid.UUID) (map[uuid.UUID]bool, error) {
	if mock.NotifiedTargetsFunc == nil {
		panic("notificationRepoMock.NotifiedTargetsFunc: method is nil but notificationRepo.NotifiedTargets was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		EntityID uuid.UUID
		Kind     domain.NotificationKind
		Targets  []uuid.UUID
	}{Ctx: ctx, EntityID: entityID, Kind: kind, Targets: targets}
	mock.lockNotifiedTargets.Lock()
	mock.calls.NotifiedTargets = append(mock.calls.NotifiedTargets, callInfo)
	mock.lockNotifiedTargets.Unlock()
	return mock.NotifiedTargetsFunc(ctx, entityID, kind, targets)
}

func (mock *notificationRepoMock) NotifiedTargetsCalls() []struct {
	Ctx      context.Context
	EntityID uuid.UUID
	Kind     domain.NotificationKind
	Targets  []uuid.UUID
} {
	mock.lockNotifiedTargets.RLock()
	calls := mock.calls.NotifiedTargets
	mock.lockNotifiedTargets.RUnlock()
	return calls
}

var _ deliverySink = &deliverySinkMock{}

type deliverySinkMock struct {
	DeliverFunc func(ctx context.Context, notifications []domain.Notification) error

	calls struct {
		Deliver []struct {
			Ctx           context.Context
			Notifications []domain.Notification
		}
	}
	lockDeliver sync.RWMutex
}

func (mock *deliverySinkMock) Deliver(ctx context.Context, notifications []domain.Notification) error {
	if mock.DeliverFunc == nil {
		panic("deliverySinkMock.DeliverFunc: method is nil but deliverySink.Deliver was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		Notifications []domain.Notification
	}{Ctx: ctx, Notifications: notifications}
	mock.lockDeliver.Lock()
	mock.calls.Deliver = append(mock.calls.Deliver, callInfo)
	mock.lockDeliver.Unlock()
	return mock.DeliverFunc(ctx, notifications)
}

func (mock *deliverySinkMock) DeliverCalls() []struct {
	Ctx           context.Context
	Notifications []domain.Notification
} {
	mock.lockDeliver.RLock()
	calls := mock.calls.Deliver
	mock.lockDeliver.RUnlock()
	return calls
}
