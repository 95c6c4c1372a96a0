package telegram

import (
	"context"
	"sync"

	"github.com/heartmarshall/fixnote-backend/internal/service/assistant"
)

var _ asker = &askerMock{}

type askerMock struct {
	AskFunc func(context.Context, string) (assistant.Answer, error)

	calls struct {
		Ask []struct {
			Ctx      context.Context
			Question string
		}
	}
	lockAsk sync.RWMutex
}

func (mock *askerMock) Ask(ctx context.Context, question string) (assistant.Answer, error) {
	if mock.AskFunc == nil {
		panic("askerMock.AskFunc: method is nil but asker.Ask was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Question string
	}{
		Ctx:      ctx,
		Question: question,
	}
	mock.lockAsk.Lock()
	mock.calls.Ask = append(mock.calls.Ask, callInfo)
	mock.lockAsk.Unlock()
	return mock.AskFunc(ctx, question)
}

func (mock *askerMock) AskCalls() []struct {
	Ctx      context.Context
	Question string
} {
	mock.lockAsk.RLock()
	calls := mock.calls.Ask
	mock.lockAsk.RUnlock()
	return calls
}
