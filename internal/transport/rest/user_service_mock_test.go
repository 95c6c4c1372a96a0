package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

var _ userService = &userServiceMock{}

type userServiceMock struct {
	GetOrCreateUserFunc func(context.Context, domain.TelegramProfile) (*domain.User, error)
	UpdateLanguageFunc  func(context.Context, string) error

	calls struct {
		GetOrCreateUser []struct {
			Ctx context.Context
			P   domain.TelegramProfile
		}
		UpdateLanguage []struct {
			Ctx  context.Context
			Lang string
		}
	}
	lockGetOrCreateUser sync.RWMutex
	lockUpdateLanguage  sync.RWMutex
}

func (mock *userServiceMock) GetOrCreateUser(ctx context.Context, p domain.TelegramProfile) (*domain.User, error) {
	if mock.GetOrCreateUserFunc == nil {
		panic("userServiceMock.GetOrCreateUserFunc: method is nil but userService.GetOrCreateUser was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.TelegramProfile
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockGetOrCreateUser.Lock()
	mock.calls.GetOrCreateUser = append(mock.calls.GetOrCreateUser, callInfo)
	mock.lockGetOrCreateUser.Unlock()
	return mock.GetOrCreateUserFunc(ctx, p)
}

func (mock *userServiceMock) GetOrCreateUserCalls() []struct {
	Ctx context.Context
	P   domain.TelegramProfile
} {
	mock.lockGetOrCreateUser.RLock()
	calls := mock.calls.GetOrCreateUser
	mock.lockGetOrCreateUser.RUnlock()
	return calls
}

func (mock *userServiceMock) UpdateLanguage(ctx context.Context, lang string) error {
	if mock.UpdateLanguageFunc == nil {
		panic("userServiceMock.UpdateLanguageFunc: method is nil but userService.UpdateLanguage was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Lang string
	}{
		Ctx:  ctx,
		Lang: lang,
	}
	mock.lockUpdateLanguage.Lock()
	mock.calls.UpdateLanguage = append(mock.calls.UpdateLanguage, callInfo)
	mock.lockUpdateLanguage.Unlock()
	return mock.UpdateLanguageFunc(ctx, lang)
}

func (mock *userServiceMock) UpdateLanguageCalls() []struct {
	Ctx  context.Context
	Lang string
} {
	mock.lockUpdateLanguage.RLock()
	calls := mock.calls.UpdateLanguage
	mock.lockUpdateLanguage.RUnlock()
	return calls
}
