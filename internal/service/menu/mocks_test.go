package menu

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/activity"
	"github.com/heartmarshall/huddle-backend/internal/service/alert"
	"github.com/heartmarshall/huddle-backend/internal/service/group"
	"github.com/heartmarshall/huddle-backend/internal/service/user"
)

var _ userService = &userServiceMock{}

type userServiceMock struct {
	ResolveCallerFunc func(ctx context.Context, phone string) (*domain.User, bool, error)
	RenameFunc        func(ctx context.Context, input user.RenameInput) (*domain.User, error)

	calls struct {
		ResolveCaller []struct {
			Ctx   context.Context
			Phone string
		}
		Rename []struct {
			Ctx   context.Context
			Input user.RenameInput
		}
	}
	lockResolveCaller sync.RWMutex
	lockRename        sync.RWMutex
}

func (mock *userServiceMock) ResolveCaller(ctx context.Context, phone string) (*domain.User, bool, error) {
	if mock.ResolveCallerFunc == nil {
		panic("userServiceMock.ResolveCallerFunc: method is nil but userService.ResolveCaller was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Phone string
	}{Ctx: ctx, Phone: phone}
	mock.lockResolveCaller.Lock()
	mock.calls.ResolveCaller = append(mock.calls.ResolveCaller, callInfo)
	mock.lockResolveCaller.Unlock()
	return mock.ResolveCallerFunc(ctx, phone)
}

func (mock *userServiceMock) ResolveCallerCalls() []struct {
	Ctx   context.Context
	Phone string
} {
	mock.lockResolveCaller.RLock()
	calls := mock.calls.ResolveCaller
	mock.lockResolveCaller.RUnlock()
	return calls
}

func (mock *userServiceMock) Rename(ctx context.Context, input user.RenameInput) (*domain.User, error) {
	if mock.RenameFunc == nil {
		panic("userServiceMock.RenameFunc: method is nil but userService.Rename was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input user.RenameInput
	}{Ctx: ctx, Input: input}
	mock.lockRename.Lock()
	mock.calls.Rename = append(mock.calls.Rename, callInfo)
	mock.lockRename.Unlock()
	return mock.RenameFunc(ctx, input)
}

func (mock *userServiceMock) RenameCalls() []struct {
	Ctx   context.Context
	Input user.RenameInput
} {
	mock.lockRename.RLock()
	calls := mock.calls.Rename
	mock.lockRename.RUnlock()
	return calls
}

var _ obligationResolver = &obligationResolverMock{}

type obligationResolverMock struct {
	ResolveFunc func(ctx context.Context, userID uuid.UUID) (*domain.Obligation, error)

	calls struct {
		Resolve []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockResolve sync.RWMutex
}

func (mock *obligationResolverMock) Resolve(ctx context.Context, userID uuid.UUID) (*domain.Obligation, error) {
	if mock.ResolveFunc == nil {
		panic("obligationResolverMock.ResolveFunc: method is nil but obligationResolver.Resolve was just called")
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

func (mock *obligationResolverMock) ResolveCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockResolve.RLock()
	calls := mock.calls.Resolve
	mock.lockResolve.RUnlock()
	return calls
}

var _ activityService = &activityServiceMock{}

type activityServiceMock struct {
	GetFunc     func(ctx context.Context, userID uuid.UUID, id uuid.UUID) (domain.Activity, error)
	CreateFunc  func(ctx context.Context, input activity.CreateInput) (activity.CreateResult, error)
	RespondFunc func(ctx context.Context, input activity.RespondInput) (string, error)

	calls struct {
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ID     uuid.UUID
		}
		Create []struct {
			Ctx   context.Context
			Input activity.CreateInput
		}
		Respond []struct {
			Ctx   context.Context
			Input activity.RespondInput
		}
	}
	lockGet     sync.RWMutex
	lockCreate  sync.RWMutex
	lockRespond sync.RWMutex
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

func (mock *activityServiceMock) Create(ctx context.Context, input activity.CreateInput) (activity.CreateResult, error) {
	if mock.CreateFunc == nil {
		panic("activityServiceMock.CreateFunc: method is nil but activityService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input activity.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *activityServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input activity.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *activityServiceMock) Respond(ctx context.Context, input activity.RespondInput) (string, error) {
	if mock.RespondFunc == nil {
		panic("activityServiceMock.RespondFunc: method is nil but activityService.Respond was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input activity.RespondInput
	}{Ctx: ctx, Input: input}
	mock.lockRespond.Lock()
	mock.calls.Respond = append(mock.calls.Respond, callInfo)
	mock.lockRespond.Unlock()
	return mock.RespondFunc(ctx, input)
}

func (mock *activityServiceMock) RespondCalls() []struct {
	Ctx   context.Context
	Input activity.RespondInput
} {
	mock.lockRespond.RLock()
	calls := mock.calls.Respond
	mock.lockRespond.RUnlock()
	return calls
}

var _ groupService = &groupServiceMock{}

type groupServiceMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	ListForUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
	JoinByCodeFunc  func(ctx context.Context, userID uuid.UUID, code string) (group.JoinResult, error)
	CreateGroupFunc func(ctx context.Context, input group.CreateGroupInput) (*domain.Group, error)
	RenameFunc      func(ctx context.Context, input group.RenameGroupInput) (*domain.Group, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListForUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		JoinByCode []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Code   string
		}
		CreateGroup []struct {
			Ctx   context.Context
			Input group.CreateGroupInput
		}
		Rename []struct {
			Ctx   context.Context
			Input group.RenameGroupInput
		}
	}
	lockGetByID     sync.RWMutex
	lockListForUser sync.RWMutex
	lockJoinByCode  sync.RWMutex
	lockCreateGroup sync.RWMutex
	lockRename      sync.RWMutex
}

func (mock *groupServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	if mock.GetByIDFunc == nil {
		panic("groupServiceMock.GetByIDFunc: method is nil but groupService.GetByID was just called")
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

func (mock *groupServiceMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
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

func (mock *groupServiceMock) JoinByCode(ctx context.Context, userID uuid.UUID, code string) (group.JoinResult, error) {
	if mock.JoinByCodeFunc == nil {
		panic("groupServiceMock.JoinByCodeFunc: method is nil but groupService.JoinByCode was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Code   string
	}{Ctx: ctx, UserID: userID, Code: code}
	mock.lockJoinByCode.Lock()
	mock.calls.JoinByCode = append(mock.calls.JoinByCode, callInfo)
	mock.lockJoinByCode.Unlock()
	return mock.JoinByCodeFunc(ctx, userID, code)
}

func (mock *groupServiceMock) JoinByCodeCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Code   string
} {
	mock.lockJoinByCode.RLock()
	calls := mock.calls.JoinByCode
	mock.lockJoinByCode.RUnlock()
	return calls
}

func (mock *groupServiceMock) CreateGroup(ctx context.Context, input group.CreateGroupInput) (*domain.Group, error) {
	if mock.CreateGroupFunc == nil {
		panic("groupServiceMock.CreateGroupFunc: method is nil but groupService.CreateGroup was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input group.CreateGroupInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateGroup.Lock()
	mock.calls.CreateGroup = append(mock.calls.CreateGroup, callInfo)
	mock.lockCreateGroup.Unlock()
	return mock.CreateGroupFunc(ctx, input)
}

func (mock *groupServiceMock) CreateGroupCalls() []struct {
	Ctx   context.Context
	Input group.CreateGroupInput
} {
	mock.lockCreateGroup.RLock()
	calls := mock.calls.CreateGroup
	mock.lockCreateGroup.RUnlock()
	return calls
}

func (mock *groupServiceMock) Rename(ctx context.Context, input group.RenameGroupInput) (*domain.Group, error) {
	if mock.RenameFunc == nil {
		panic("groupServiceMock.RenameFunc: method is nil but groupService.Rename was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input group.RenameGroupInput
	}{Ctx: ctx, Input: input}
	mock.lockRename.Lock()
	mock.calls.Rename = append(mock.calls.Rename, callInfo)
	mock.lockRename.Unlock()
	return mock.RenameFunc(ctx, input)
}

func (mock *groupServiceMock) RenameCalls() []struct {
	Ctx   context.Context
	Input group.RenameGroupInput
} {
	mock.lockRename.RLock()
	calls := mock.calls.Rename
	mock.lockRename.RUnlock()
	return calls
}

var _ alertService = &alertServiceMock{}

type alertServiceMock struct {
	ActivateSafetyFunc   func(ctx context.Context, groupID uuid.UUID) (alert.ActivateResult, error)
	RespondSafetyFunc    func(ctx context.Context, checkID uuid.UUID, safe bool) (bool, error)
	SendInstantAlertFunc func(ctx context.Context, groupID uuid.UUID, text string) (int, error)
	SendAppLinkFunc      func(ctx context.Context) error

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
		SendInstantAlert []struct {
			Ctx     context.Context
			GroupID uuid.UUID
			Text    string
		}
		SendAppLink []struct {
			Ctx context.Context
		}
	}
	lockActivateSafety   sync.RWMutex
	lockRespondSafety    sync.RWMutex
	lockSendInstantAlert sync.RWMutex
	lockSendAppLink      sync.RWMutex
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

func (mock *alertServiceMock) SendAppLink(ctx context.Context) error {
	if mock.SendAppLinkFunc == nil {
		panic("alertServiceMock.SendAppLinkFunc: method is nil but alertService.SendAppLink was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockSendAppLink.Lock()
	mock.calls.SendAppLink = append(mock.calls.SendAppLink, callInfo)
	mock.lockSendAppLink.Unlock()
	return mock.SendAppLinkFunc(ctx)
}

func (mock *alertServiceMock) SendAppLinkCalls() []struct {
	Ctx context.Context
} {
	mock.lockSendAppLink.RLock()
	calls := mock.calls.SendAppLink
	mock.lockSendAppLink.RUnlock()
	return calls
}
