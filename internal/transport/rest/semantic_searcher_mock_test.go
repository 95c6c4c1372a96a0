package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

var _ semanticSearcher = &semanticSearcherMock{}

type semanticSearcherMock struct {
	SemanticSearchFunc func(context.Context, string, int) ([]domain.SearchResult, *domain.FeatureDecision, error)

	calls struct {
		SemanticSearch []struct {
			Ctx   context.Context
			Query string
			Limit int
		}
	}
	lockSemanticSearch sync.RWMutex
}

func (mock *semanticSearcherMock) SemanticSearch(ctx context.Context, query string, limit int) ([]domain.SearchResult, *domain.FeatureDecision, error) {
	if mock.SemanticSearchFunc == nil {
		panic("semanticSearcherMock.SemanticSearchFunc: method is nil but semanticSearcher.SemanticSearch was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Query string
		Limit int
	}{
		Ctx:   ctx,
		Query: query,
		Limit: limit,
	}
	mock.lockSemanticSearch.Lock()
	mock.calls.SemanticSearch = append(mock.calls.SemanticSearch, callInfo)
	mock.lockSemanticSearch.Unlock()
	return mock.SemanticSearchFunc(ctx, query, limit)
}

func (mock *semanticSearcherMock) SemanticSearchCalls() []struct {
	Ctx   context.Context
	Query string
	Limit int
} {
	mock.lockSemanticSearch.RLock()
	calls := mock.calls.SemanticSearch
	mock.lockSemanticSearch.RUnlock()
	return calls
}
