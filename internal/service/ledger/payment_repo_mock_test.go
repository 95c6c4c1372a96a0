package ledger

import (
	"context"
	"sync"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

var _ paymentRepo = &paymentRepoMock{}

type paymentRepoMock struct {
	CreateFunc func(context.Context, domain.Payment) error

	calls struct {
		Create []struct {
			Ctx context.Context
			P   domain.Payment
		}
	}
	lockCreate sync.RWMutex
}

func (mock *paymentRepoMock) Create(ctx context.Context, p domain.Payment) error {
	if mock.CreateFunc == nil {
		panic("paymentRepoMock.CreateFunc: method is nil but paymentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Payment
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *paymentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	P   domain.Payment
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
