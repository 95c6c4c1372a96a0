package retrieval

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

var _ vectorStore = &vectorStoreMock{}

type vectorStoreMock struct {
	SetEmbeddingFunc  func(context.Context, uuid.UUID, []float32) error
	SearchSimilarFunc func(context.Context, uuid.UUID, []float32, int) ([]domain.SearchResult, error)

	calls struct {
		SetEmbedding []struct {
			Ctx       context.Context
			NoteID    uuid.UUID
			Embedding []float32
		}
		SearchSimilar []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			Embedding []float32
			Limit     int
		}
	}
	lockSetEmbedding  sync.RWMutex
	lockSearchSimilar sync.RWMutex
}

func (mock *vectorStoreMock) SetEmbedding(ctx context.Context, noteID uuid.UUID, embedding []float32) error {
	if mock.SetEmbeddingFunc == nil {
		panic("vectorStoreMock.SetEmbeddingFunc: method is nil but vectorStore.SetEmbedding was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		NoteID    uuid.UUID
		Embedding []float32
	}{
		Ctx:       ctx,
		NoteID:    noteID,
		Embedding: embedding,
	}
	mock.lockSetEmbedding.Lock()
	mock.calls.SetEmbedding = append(mock.calls.SetEmbedding, callInfo)
	mock.lockSetEmbedding.Unlock()
	return mock.SetEmbeddingFunc(ctx, noteID, embedding)
}

func (mock *vectorStoreMock) SetEmbeddingCalls() []struct {
	Ctx       context.Context
	NoteID    uuid.UUID
	Embedding []float32
} {
	mock.lockSetEmbedding.RLock()
	calls := mock.calls.SetEmbedding
	mock.lockSetEmbedding.RUnlock()
	return calls
}

func (mock *vectorStoreMock) SearchSimilar(ctx context.Context, userID uuid.UUID, embedding []float32, limit int) ([]domain.SearchResult, error) {
	if mock.SearchSimilarFunc == nil {
		panic("vectorStoreMock.SearchSimilarFunc: method is nil but vectorStore.SearchSimilar was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		Embedding []float32
		Limit     int
	}{
		Ctx:       ctx,
		UserID:    userID,
		Embedding: embedding,
		Limit:     limit,
	}
	mock.lockSearchSimilar.Lock()
	mock.calls.SearchSimilar = append(mock.calls.SearchSimilar, callInfo)
	mock.lockSearchSimilar.Unlock()
	return mock.SearchSimilarFunc(ctx, userID, embedding, limit)
}

func (mock *vectorStoreMock) SearchSimilarCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	Embedding []float32
	Limit     int
} {
	mock.lockSearchSimilar.RLock()
	calls := mock.calls.SearchSimilar
	mock.lockSearchSimilar.RUnlock()
	return calls
}
