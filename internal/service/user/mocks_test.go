package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/internal/domain"
	"github.com/heartmarshall/huddle-backend/internal/service/sideeffect"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByPhoneFunc        func(ctx context.Context, phone string) (*domain.User, error)
	CreateFunc            func(ctx context.Context, u *domain.User) (*domain.User, error)
	RenameFunc            func(ctx context.Context, id uuid.UUID, name string, at time.Time) (*domain.User, error)
	UpdatePreferencesFunc func(ctx context.Context, id uuid.UUID, locale *string, channel *domain.Channel, at time.Time) (*domain.User, error)
	MarkWelcomedFunc      func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByPhone []struct {
			Ctx   context.Context
			Phone string
		}
		Create []struct {
			Ctx context.Context
			U   *domain.User
		}
		Rename []struct {
			Ctx  context.Context
			ID   uuid.UUID
			Name string
			At   time.Time
		}
		UpdatePreferences []struct {
			Ctx     context.Context
			ID      uuid.UUID
			Locale  *string
			Channel *domain.Channel
			At      time.Time
		}
		MarkWelcomed []struct {
			Ctx context.Context
			ID  uuid.UUID
			At  time.Time
		}
	}
	lockGetByID           sync.RWMutex
	lockGetByPhone        sync.RWMutex
	lockCreate            sync.RWMutex
	lockRename            sync.RWMutex
	lockUpdatePreferences sync.RWMutex
	lockMarkWelcomed      sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
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

func (mock *userRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userRepoMock) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if mock.GetByPhoneFunc == nil {
		panic("userRepoMock.GetByPhoneFunc: method is nil but userRepo.GetByPhone was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Phone string
	}{Ctx: ctx, Phone: phone}
	mock.lockGetByPhone.Lock()
	mock.calls.GetByPhone = append(mock.calls.GetByPhone, callInfo)
	mock.lockGetByPhone.Unlock()
	return mock.GetByPhoneFunc(ctx, phone)
}

func (mock *userRepoMock) GetByPhoneCalls() []struct {
	Ctx   context.Context
	Phone string
} {
	mock.lockGetByPhone.RLock()
	calls := mock.calls.GetByPhone
	mock.lockGetByPhone.RUnlock()
	return calls
}

func (mock *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
	}{Ctx: ctx, U: u}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, u)
}

func (mock *userRepoMock) CreateCalls() []struct {
	Ctx context.Context
	U   *domain.User
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *userRepoMock) Rename(ctx context.Context, id uuid.UUID, name string, at time.Time) (*domain.User, error) {
	if mock.RenameFunc == nil {
		panic("userRepoMock.RenameFunc: method is nil but userRepo.Rename was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   uuid.UUID
		Name string
		At   time.Time
	}{Ctx: ctx, ID: id, Name: name, At: at}
	mock.lockRename.Lock()
	mock.calls.Rename = append(mock.calls.Rename, callInfo)
	mock.lockRename.Unlock()
	return mock.RenameFunc(ctx, id, name, at)
}

func (mock *userRepoMock) RenameCalls() []struct {
	Ctx  context.Context
	ID   uuid.UUID
	Name string
	At   time.Time
} {
	mock.lockRename.RLock()
	calls := mock.calls.Rename
	mock.lockRename.RUnlock()
	return calls
}

func (mock *userRepoMock) UpdatePreferences(ctx context.Context, id uuid.UUID, locale *string, channel *domain.Channel, at time.Time) (*domain.User, error) {
	if mock.UpdatePreferencesFunc == nil {
		panic("userRepoMock.UpdatePreferencesFunc: method is nil but userRepo.UpdatePreferences was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      uuid.UUID
		Locale  *string
		Channel *domain.Channel
		At      time.Time
	}{Ctx: ctx, ID: id, Locale: locale, Channel: channel, At: at}
	mock.lockUpdatePreferences.Lock()
	mock.calls.UpdatePreferences = append(mock.calls.UpdatePreferences, callInfo)
	mock.lockUpdatePreferences.Unlock()
	return mock.UpdatePreferencesFunc(ctx, id, locale, channel, at)
}

func (mock *userRepoMock) UpdatePreferencesCalls() []struct {
	Ctx     context.Context
	ID      uuid.UUID
	Locale  *string
	Channel *domain.Channel
	At      time.Time
} {
	mock.lockUpdatePreferences.RLock()
	calls := mock.calls.UpdatePreferences
	mock.lockUpdatePreferences.RUnlock()
	return calls
}

func (mock *userRepoMock) MarkWelcomed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	if mock.MarkWelcomedFunc == nil {
		panic("userRepoMock.MarkWelcomedFunc: method is nil but userRepo.MarkWelcomed was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		At  time.Time
	}{Ctx: ctx, ID: id, At: at}
	mock.lockMarkWelcomed.Lock()
	mock.calls.MarkWelcomed = append(mock.calls.MarkWelcomed, callInfo)
	mock.lockMarkWelcomed.Unlock()
	return mock.MarkWelcomedFunc(ctx, id, at)
}

func (mock *userRepoMock) MarkWelcomedCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	At  time.Time
} {
	mock.lockMarkWelcomed.RLock()
	calls := mock.calls.MarkWelcomed
	mock.lockMarkWelcomed.RUnlock()
	return calls
}

var _ committer = &committerMock{}

type committerMock struct {
	CommitFunc   func(ctx context.Context, b *sideeffect.Bundle) error
	DispatchFunc func(ctx context.Context, b *sideeffect.Bundle)

	calls struct {
		Commit []struct {
			Ctx context.Context
			B   *sideeffect.Bundle
		}
		Dispatch []struct {
			Ctx context.Context
			B   *sideeffect.Bundle
		}
	}
	lockCommit   sync.RWMutex
	lockDispatch sync.RWMutex
}

func (mock *committerMock) Commit(ctx context.Context, b *sideeffect.Bundle) error {
	if mock.CommitFunc == nil {
		panic("committerMock.CommitFunc: method is nil but committer.Commit was just called")
	}
	callInfo := struct {
		Ctx context.Context
		B   *sideeffect.Bundle
	}{Ctx: ctx, B: b}
	mock.lockCommit.Lock()
	mock.calls.Commit = append(mock.calls.Commit, callInfo)
	mock.lockCommit.Unlock()
	return mock.CommitFunc(ctx, b)
}

func (mock *committerMock) CommitCalls() []struct {
	Ctx context.Context
	B   *sideeffect.Bundle
} {
	mock.lockCommit.RLock()
	calls := mock.calls.Commit
	mock.lockCommit.RUnlock()
	return calls
}

func (mock *committerMock) Dispatch(ctx context.Context, b *sideeffect.Bundle) {
	if mock.DispatchFunc == nil {
		panic("committerMock.DispatchFunc: method is nil but committer.Dispatch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		B   *sideeffect.Bundle
	}{Ctx: ctx, B: b}
	mock.lockDispatch.Lock()
	mock.calls.Dispatch = append(mock.calls.Dispatch, callInfo)
	mock.lockDispatch.Unlock()
	mock.DispatchFunc(ctx, b)
}

func (mock *committerMock) DispatchCalls() []struct {
	Ctx context.Context
	B   *sideeffect.Bundle
} {
	mock.lockDispatch.RLock()
	calls := mock.calls.Dispatch
	mock.lockDispatch.RUnlock()
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
