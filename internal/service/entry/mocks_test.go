package entry

import (
	"context"
	"sync"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

var _ groupFinder = &groupFinderMock{}

type groupFinderMock struct {
	FindByJoinCodeFunc func(ctx context.Context, code string) (*domain.Group, error)
	FindCampaignFunc   func(ctx context.Context, code string) (*domain.Campaign, error)

	calls struct {
		FindByJoinCode []struct {
			Ctx  context.Context
			Code string
		}
		FindCampaign []struct {
			Ctx  context.Context
			Code string
		}
	}
	lockFindByJoinCode sync.RWMutex
	lockFindCampaign   sync.RWMutex
}

func (mock *groupFinderMock) FindByJoinCode(ctx context.Context, code string) (*domain.Group, error) {
	if mock.FindByJoinCodeFunc == nil {
		panic("groupFinderMock.FindByJoinCodeFunc: method is nil but groupFinder.FindByJoinCode was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{Ctx: ctx, Code: code}
	mock.lockFindByJoinCode.Lock()
	mock.calls.FindByJoinCode = append(mock.calls.FindByJoinCode, callInfo)
	mock.lockFindByJoinCode.Unlock()
	return mock.FindByJoinCodeFunc(ctx, code)
}

func (mock *groupFinderMock) FindByJoinCodeCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockFindByJoinCode.RLock()
	calls := mock.calls.FindByJoinCode
	mock.lockFindByJoinCode.RUnlock()
	return calls
}

func (mock *groupFinderMock) FindCampaign(ctx context.Context, code string) (*domain.Campaign, error) {
	if mock.FindCampaignFunc == nil {
		panic("groupFinderMock.FindCampaignFunc: method is nil but groupFinder.FindCampaign was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{Ctx: ctx, Code: code}
	mock.lockFindCampaign.Lock()
	mock.calls.FindCampaign = append(mock.calls.FindCampaign, callInfo)
	mock.lockFindCampaign.Unlock()
	return mock.FindCampaignFunc(ctx, code)
}

func (mock *groupFinderMock) FindCampaignCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockFindCampaign.RLock()
	calls := mock.calls.FindCampaign
	mock.lockFindCampaign.RUnlock()
	return calls
}

var _ welcomer = &welcomerMock{}

type welcomerMock struct {
	MarkWelcomedFunc func(ctx context.Context, u *domain.User) (bool, error)

	calls struct {
		MarkWelcomed []struct {
			Ctx context.Context
			U   *domain.User
		}
	}
	lockMarkWelcomed sync.RWMutex
}

func (mock *welcomerMock) MarkWelcomed(ctx context.Context, u *domain.User) (bool, error) {
	if mock.MarkWelcomedFunc == nil {
		panic("welcomerMock.MarkWelcomedFunc: method is nil but welcomer.MarkWelcomed was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
	}{Ctx: ctx, U: u}
	mock.lockMarkWelcomed.Lock()
	mock.calls.MarkWelcomed = append(mock.calls.MarkWelcomed, callInfo)
	mock.lockMarkWelcomed.Unlock()
	return mock.MarkWelcomedFunc(ctx, u)
}

func (mock *welcomerMock) MarkWelcomedCalls() []struct {
	Ctx context.Context
	U   *domain.User
} {
	mock.lockMarkWelcomed.RLock()
	calls := mock.calls.MarkWelcomed
	mock.lockMarkWelcomed.RUnlock()
	return calls
}
