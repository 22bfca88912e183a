package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/group"
	"github.com/heartmarshall/huddle-backend/internal/service/user"
)

var _ groupService = &groupServiceMock{}

type groupServiceMock struct {
	ListForUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
	ListMembersFunc func(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error)
	CreateGroupFunc func(ctx context.Context, input group.CreateGroupInput) (*domain.Group, error)
	JoinByCodeFunc  func(ctx context.Context, userID uuid.UUID, code string) (group.JoinResult, error)
	RenameFunc      func(ctx context.Context, input group.RenameGroupInput) (*domain.Group, error)

	calls struct {
		ListForUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ListMembers []struct {
			Ctx     context.Context
			GroupID uuid.UUID
		}
		CreateGroup []struct {
			Ctx   context.Context
			Input group.CreateGroupInput
		}
		JoinByCode []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Code   string
		}
		Rename []struct {
			Ctx   context.Context
			Input group.RenameGroupInput
		}
	}
	lockListForUser sync.RWMutex
	lockListMembers sync.RWMutex
	lockCreateGroup sync.RWMutex
	lockJoinByCode  sync.RWMutex
	lockRename      sync.RWMutex
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

func (mock *groupServiceMock) ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.Member, error) {
	if mock.ListMembersFunc == nil {
		panic("groupServiceMock.ListMembersFunc: method is nil but groupService.ListMembers was just called")
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

func (mock *groupServiceMock) ListMembersCalls() []struct {
	Ctx     context.Context
	GroupID uuid.UUID
} {
	mock.lockListMembers.RLock()
	calls := mock.calls.ListMembers
	mock.lockListMembers.RUnlock()
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

var _ userService = &userServiceMock{}

type userServiceMock struct {
	GetProfileFunc        func(ctx context.Context) (*domain.User, error)
	RenameFunc            func(ctx context.Context, input user.RenameInput) (*domain.User, error)
	UpdatePreferencesFunc func(ctx context.Context, input user.UpdatePreferencesInput) (*domain.User, error)

	calls struct {
		GetProfile []struct {
			Ctx context.Context
		}
		Rename []struct {
			Ctx   context.Context
			Input user.RenameInput
		}
		UpdatePreferences []struct {
			Ctx   context.Context
			Input user.UpdatePreferencesInput
		}
	}
	lockGetProfile        sync.RWMutex
	lockRename            sync.RWMutex
	lockUpdatePreferences sync.RWMutex
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

func (mock *userServiceMock) UpdatePreferences(ctx context.Context, input user.UpdatePreferencesInput) (*domain.User, error) {
	if mock.UpdatePreferencesFunc == nil {
		panic("userServiceMock.UpdatePreferencesFunc: method is nil but userService.UpdatePreferences was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input user.UpdatePreferencesInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdatePreferences.Lock()
	mock.calls.UpdatePreferences = append(mock.calls.UpdatePreferences, callInfo)
	mock.lockUpdatePreferences.Unlock()
	return mock.UpdatePreferencesFunc(ctx, input)
}

func (mock *userServiceMock) UpdatePreferencesCalls() []struct {
	Ctx   context.Context
	Input user.UpdatePreferencesInput
} {
	mock.lockUpdatePreferences.RLock()
	calls := mock.calls.UpdatePreferences
	mock.lockUpdatePreferences.RUnlock()
	return calls
}
