package activity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/permission"
)

var _ activityRepo = &activityRepoMock{}

type activityRepoMock struct {
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	FindDuplicateFunc    func(ctx context.Context, q domain.DuplicateQuery) (domain.Activity, error)
	ListUpcomingFunc     func(ctx context.Context, from time.Time, to time.Time) ([]domain.Activity, error)
	ListClosableFunc     func(ctx context.Context, now time.Time) ([]domain.Activity, error)
	CreateFunc           func(ctx context.Context, a domain.Activity) error
	UpdateFunc           func(ctx context.Context, a domain.Activity) error
	CancelFunc           func(ctx context.Context, id uuid.UUID, at time.Time) error
	CloseFunc            func(ctx context.Context, id uuid.UUID, at time.Time) error
	SetRemindersSentFunc func(ctx context.Context, id uuid.UUID, n int, at time.Time) error
	AddAssigneesFunc     func(ctx context.Context, todoID uuid.UUID, userIDs []uuid.UUID) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		FindDuplicate []struct {
			Ctx context.Context
			Q   domain.DuplicateQuery
		}
		ListUpcoming []struct {
			Ctx  context.Context
			From time.Time
			To   time.Time
		}
		ListClosable []struct {
			Ctx context.Context
			Now time.Time
		}
		Create []struct {
			Ctx context.Context
			A   domain.Activity
		}
		Update []struct {
			Ctx context.Context
			A   domain.Activity
		}
		Cancel []struct {
			Ctx context.Context
			ID  uuid.UUID
			At  time.Time
		}
		Close []struct {
			Ctx context.Context
			ID  uuid.UUID
			At  time.Time
		}
		SetRemindersSent []struct {
			Ctx context.Context
			ID  uuid.UUID
			N   int
			At  time.Time
		}
		AddAssignees []struct {
			Ctx     context.Context
			TodoID  uuid.UUID
			UserIDs []uuid.UUID
		}
	}
	lockGetByID          sync.RWMutex
	lockFindDuplicate    sync.RWMutex
	lockListUpcoming     sync.RWMutex
	lockListClosable     sync.RWMutex
	lockCreate           sync.RWMutex
	lockUpdate           sync.RWMutex
	lockCancel           sync.RWMutex
	lockClose            sync.RWMutex
	lockSetRemindersSent sync.RWMutex
	lockAddAssignees     sync.RWMutex
}

func (mock *activityRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	if mock.GetByIDFunc == nil {
		panic("activityRepoMock.GetByIDFunc: method is nil but activityRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *activityRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *activityRepoMock) FindDuplicate(ctx context.Context, q domain.DuplicateQuery) (domain.Activity, error) {
	if mock.FindDuplicateFunc == nil {
		panic("activityRepoMock.FindDuplicateFunc: method is nil but activityRepo.FindDuplicate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   domain.DuplicateQuery
	}{Ctx: ctx, Q: q}
	mock.lockFindDuplicate.Lock()
	mock.calls.FindDuplicate = append(mock.calls.FindDuplicate, callInfo)
	mock.lockFindDuplicate.Unlock()
	return mock.FindDuplicateFunc(ctx, q)
}

func (mock *activityRepoMock) FindDuplicateCalls() []struct {
	Ctx context.Context
	Q   domain.DuplicateQuery
} {
	mock.lockFindDuplicate.RLock()
	calls := mock.calls.FindDuplicate
	mock.lockFindDuplicate.RUnlock()
	return calls
}

func (mock *activityRepoMock) ListUpcoming(ctx context.Context, from time.Time, to time.Time) ([]domain.Activity, error) {
	if mock.ListUpcomingFunc == nil {
		panic("activityRepoMock.ListUpcomingFunc: method is nil but activityRepo.ListUpcoming was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		From time.Time
		To   time.Time
	}{Ctx: ctx, From: from, To: to}
	mock.lockListUpcoming.Lock()
	mock.calls.ListUpcoming = append(mock.calls.ListUpcoming, callInfo)
	mock.lockListUpcoming.Unlock()
	return mock.ListUpcomingFunc(ctx, from, to)
}

func (mock *activityRepoMock) ListUpcomingCalls() []struct {
	Ctx  context.Context
	From time.Time
	To   time.Time
} {
	mock.lockListUpcoming.RLock()
	calls := mock.calls.ListUpcoming
	mock.lockListUpcoming.RUnlock()
	return calls
}

func (mock *activityRepoMock) ListClosable(ctx context.Context, now time.Time) ([]domain.Activity, error) {
	if mock.ListClosableFunc == nil {
		panic("activityRepoMock.ListClosableFunc: method is nil but activityRepo.ListClosable was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockListClosable.Lock()
	mock.calls.ListClosable = append(mock.calls.ListClosable, callInfo)
	mock.lockListClosable.Unlock()
	return mock.ListClosableFunc(ctx, now)
}

func (mock *activityRepoMock) ListClosableCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockListClosable.RLock()
	calls := mock.calls.ListClosable
	mock.lockListClosable.RUnlock()
	return calls
}

func (mock *activityRepoMock) Create(ctx context.Context, a domain.Activity) error {
	if mock.CreateFunc == nil {
		panic("activityRepoMock.CreateFunc: method is nil but activityRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   domain.Activity
	}{Ctx: ctx, A: a}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *activityRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   domain.Activity
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *activityRepoMock) Update(ctx context.Context, a domain.Activity) error {
	if mock.UpdateFunc == nil {
		panic("activityRepoMock.UpdateFunc: method is nil but activityRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   domain.Activity
	}{Ctx: ctx, A: a}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, a)
}

func (mock *activityRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	A   domain.Activity
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *activityRepoMock) Cancel(ctx context.Context, id uuid.UUID, at time.Time) error {
	if mock.CancelFunc == nil {
		panic("activityRepoMock.CancelFunc: method is nil but activityRepo.Cancel was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		At  time.Time
	}{Ctx: ctx, ID: id, At: at}
	mock.lockCancel.Lock()
	mock.calls.Cancel = append(mock.calls.Cancel, callInfo)
	mock.lockCancel.Unlock()
	return mock.CancelFunc(ctx, id, at)
}

func (mock *activityRepoMock) CancelCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	At  time.Time
} {
	mock.lockCancel.RLock()
	calls := mock.calls.Cancel
	mock.lockCancel.RUnlock()
	return calls
}

func (mock *activityRepoMock) Close(ctx context.Context, id uuid.UUID, at time.Time) error {
	if mock.CloseFunc == nil {
		panic("activityRepoMock.CloseFunc: method is nil but activityRepo.Close was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		At  time.Time
	}{Ctx: ctx, ID: id, At: at}
	mock.lockClose.Lock()
	mock.calls.Close = append(mock.calls.Close, callInfo)
	mock.lockClose.Unlock()
	return mock.CloseFunc(ctx, id, at)
}

func (mock *activityRepoMock) CloseCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	At  time.Time
} {
	mock.lockClose.RLock()
	calls := mock.calls.Close
	mock.lockClose.RUnlock()
	return calls
}

func (mock *activityRepoMock) SetRemindersSent(ctx context.Context, id uuid.UUID, n int, at time.Time) error {
	if mock.SetRemindersSentFunc == nil {
		panic("activityRepoMock.SetRemindersSentFunc: method is nil but activityRepo.SetRemindersSent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		N   int
		At  time.Time
	}{Ctx: ctx, ID: id, N: n, At: at}
	mock.lockSetRemindersSent.Lock()
	mock.calls.SetRemindersSent = append(mock.calls.SetRemindersSent, callInfo)
	mock.lockSetRemindersSent.Unlock()
	return mock.SetRemindersSentFunc(ctx, id, n, at)
}

func (mock *activityRepoMock) SetRemindersSentCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	N   int
	At  time.Time
} {
	mock.lockSetRemindersSent.RLock()
	calls := mock.calls.SetRemindersSent
	mock.lockSetRemindersSent.RUnlock()
	return calls
}

func (mock *activityRepoMock) AddAssignees(ctx context.Context, todoID uuid.UUID, userIDs []uuid.UUID) error {
	if mock.AddAssigneesFunc == nil {
		panic("activityRepoMock.AddAssigneesFunc: method is nil but activityRepo.AddAssignees was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TodoID  uuid.UUID
		UserIDs []uuid.UUID
	}{Ctx: ctx, TodoID: todoID, UserIDs: userIDs}
	mock.lockAddAssignees.Lock()
	mock.calls.AddAssignees = append(mock.calls.AddAssignees, callInfo)
	mock.lockAddAssignees.Unlock()
	return mock.AddAssigneesFunc(ctx, todoID, userIDs)
}

func (mock *activityRepoMock) AddAssigneesCalls() []struct {
	Ctx     context.Context
	TodoID  uuid.UUID
	UserIDs []uuid.UUID
} {
	mock.lockAddAssignees.RLock()
	calls := mock.calls.AddAssignees
	mock.lockAddAssignees.RUnlock()
	return calls
}

var _ memberRepo = &memberRepoMock{}

type memberRepoMock struct {
	ListMembersFunc func(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error)
	GetMemberFunc   func(ctx context.Context, groupID uuid.UUID, userID uuid.UUID) (*domain.Member, error)

	calls struct {
		ListMembers []struct {
			Ctx     context.Context
			GroupID uuid.UUID
		}
		GetMember []struct {
			Ctx     context.Context
			GroupID uuid.UUID
			UserID  uuid.UUID
		}
	}
	lockListMembers sync.RWMutex
	lockGetMember   sync.RWMutex
}

func (mock *memberRepoMock) ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error) {
	if mock.ListMembersFunc == nil {
		panic("memberRepoMock.ListMembersFunc: method is nil but memberRepo.ListMembers was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		GroupID uuid.UUID
	}{Ctx: ctx, GroupID: groupID}
	mock.lockListMembers.Lock()
	mock.calls.ListMembers = append(mock.calls.ListMembers, callInfo)
	mock.lockListMembers.Unlock()
	return mock.ListMembersFunc(ctx, groupID)
}

func (mock *memberRepoMock) ListMembersCalls() []struct {
	Ctx     context.Context
	GroupID uuid.UUID
} {
	mock.lockListMembers.RLock()
	calls := mock.calls.ListMembers
	mock.lockListMembers.RUnlock()
	return calls
}

func (mock *memberRepoMock) GetMember(ctx context.Context, groupID uuid.UUID, userID uuid.UUID) (*domain.Member, error) {
	if mock.GetMemberFunc == nil {
		panic("memberRepoMock.GetMemberFunc: method is nil but memberRepo.GetMember was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		GroupID uuid.UUID
		UserID  uuid.UUID
	}{Ctx: ctx, GroupID: groupID, UserID: userID}
	mock.lockGetMember.Lock()
	mock.calls.GetMember = append(mock.calls.GetMember, callInfo)
	mock.lockGetMember.Unlock()
	return mock.GetMemberFunc(ctx, groupID, userID)
}

func (mock *memberRepoMock) GetMemberCalls() []struct {
	Ctx     context.Context
	GroupID uuid.UUID
	UserID  uuid.UUID
} {
	mock.lockGetMember.RLock()
	calls := mock.calls.GetMember
	mock.lockGetMember.RUnlock()
	return calls
}

var _ auditReader = &auditReaderMock{}

type auditReaderMock struct {
	ListByEntityFunc func(ctx context.Context, entityID uuid.UUID, actions ...domain.AuditAction) ([]domain.AuditLogEntry, error)

	calls struct {
		ListByEntity []struct {
			Ctx      context.Context
			EntityID uuid.UUID
			Actions  []domain.AuditAction
		}
	}
	lockListByEntity sync.RWMutex
}

func (mock *auditReaderMock) ListByEntity(ctx context.Context, entityID uuid.UUID, actions ...domain.AuditAction) ([]domain.AuditLogEntry, error) {
	if mock.ListByEntityFunc == nil {
		panic("auditReaderMock.ListByEntityFunc: method is nil but auditReader.ListByEntity was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		EntityID uuid.UUID
		Actions  []domain.AuditAction
	}{Ctx: ctx, EntityID: entityID, Actions: actions}
	mock.lockListByEntity.Lock()
	mock.calls.ListByEntity = append(mock.calls.ListByEntity, callInfo)
	mock.lockListByEntity.Unlock()
	return mock.ListByEntityFunc(ctx, entityID, actions...)
}

func (mock *auditReaderMock) ListByEntityCalls() []struct {
	Ctx      context.Context
	EntityID uuid.UUID
	Actions  []domain.AuditAction
} {
	mock.lockListByEntity.RLock()
	calls := mock.calls.ListByEntity
	mock.lockListByEntity.RUnlock()
	return calls
}

var _ permissionChecker = &permissionCheckerMock{}

type permissionCheckerMock struct {
	CheckFunc        func(ctx context.Context, userID uuid.UUID, groupID uuid.UUID, perm permission.Permission) error
	CheckOwnerOrFunc func(ctx context.Context, userID uuid.UUID, ownerID uuid.UUID, groupID uuid.UUID, perm permission.Permission) error

	calls struct {
		Check []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			GroupID uuid.UUID
			Perm    permission.Permission
		}
		CheckOwnerOr []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			OwnerID uuid.UUID
			GroupID uuid.UUID
			Perm    permission.Permission
		}
	}
	lockCheck        sync.RWMutex
	lockCheckOwnerOr sync.RWMutex
}

func (mock *permissionCheckerMock) Check(ctx context.Context, userID uuid.UUID, groupID uuid.UUID, perm permission.Permission) error {
	if mock.CheckFunc == nil {
		panic("permissionCheckerMock.CheckFunc: method is nil but permissionChecker.Check was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		GroupID uuid.UUID
		Perm    permission.Permission
	}{Ctx: ctx, UserID: userID, GroupID: groupID, Perm: perm}
	mock.lockCheck.Lock()
	mock.calls.Check = append(mock.calls.Check, callInfo)
	mock.lockCheck.Unlock()
	return mock.CheckFunc(ctx, userID, groupID, perm)
}

func (mock *permissionCheckerMock) CheckCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	GroupID uuid.UUID
	Perm    permission.Permission
} {
	mock.lockCheck.RLock()
	calls := mock.calls.Check
	mock.lockCheck.RUnlock()
	return calls
}

func (mock *permissionCheckerMock) CheckOwnerOr(ctx context.Context, userID uuid.UUID, ownerID uuid.UUID, groupID uuid.UUID, perm permission.Permission) error {
	if mock.CheckOwnerOrFunc == nil {
		panic("permissionCheckerMock.CheckOwnerOrFunc: method is nil but permissionChecker.CheckOwnerOr was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		OwnerID uuid.UUID
		GroupID uuid.UUID
		Perm    permission.Permission
	}{Ctx: ctx, UserID: userID, OwnerID: ownerID, GroupID: groupID, Perm: perm}
	mock.lockCheckOwnerOr.Lock()
	mock.calls.CheckOwnerOr = append(mock.calls.CheckOwnerOr, callInfo)
	mock.lockCheckOwnerOr.Unlock()
	return mock.CheckOwnerOrFunc(ctx, userID, ownerID, groupID, perm)
}

func (mock *permissionCheckerMock) CheckOwnerOrCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	OwnerID uuid.UUID
	GroupID uuid.UUID
	Perm    permission.Permission
} {
	mock.lockCheckOwnerOr.RLock()
	calls := mock.calls.CheckOwnerOr
	mock.lockCheckOwnerOr.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
