package retrieval

import (
	"context"
	"sync"
)

var _ embedder = &embedderMock{}

type embedderMock struct {
	EmbedFunc       func(context.Context, string) ([]float32, error)
	HealthCheckFunc func(context.Context) bool

	calls struct {
		Embed []struct {
			Ctx  context.Context
			Text string
		}
		HealthCheck []struct {
			Ctx context.Context
		}
	}
	lockEmbed       sync.RWMutex
	lockHealthCheck sync.RWMutex
}

func (mock *embedderMock) Embed(ctx context.Context, text string) ([]float32, error) {
	if mock.EmbedFunc == nil {
		panic("embedderMock.EmbedFunc: method is nil but embedder.Embed was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Text string
	}{
		Ctx:  ctx,
		Text: text,
	}
	mock.lockEmbed.Lock()
	mock.calls.Embed = append(mock.calls.Embed, callInfo)
	mock.lockEmbed.Unlock()
	return mock.EmbedFunc(ctx, text)
}

func (mock *embedderMock) EmbedCalls() []struct {
	Ctx  context.Context
	Text string
} {
	mock.lockEmbed.RLock()
	calls := mock.calls.Embed
	mock.lockEmbed.RUnlock()
	return calls
}

func (mock *embedderMock) HealthCheck(ctx context.Context) bool {
	if mock.HealthCheckFunc == nil {
		panic("embedderMock.HealthCheckFunc: method is nil but embedder.HealthCheck was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockHealthCheck.Lock()
	mock.calls.HealthCheck = append(mock.calls.HealthCheck, callInfo)
	mock.lockHealthCheck.Unlock()
	return mock.HealthCheckFunc(ctx)
}

func (mock *embedderMock) HealthCheckCalls() []struct {
	Ctx context.Context
} {
	mock.lockHealthCheck.RLock()
	calls := mock.calls.HealthCheck
	mock.lockHealthCheck.RUnlock()
	return calls
}
