package notes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

var _ noteRepo = &noteRepoMock{}

type noteRepoMock struct {
	CreateFunc          func(context.Context, domain.Note) (*domain.Note, error)
	GetByIDFunc         func(context.Context, uuid.UUID, uuid.UUID) (*domain.Note, error)
	ListFunc            func(context.Context, uuid.UUID, int, int) ([]domain.Note, int, error)
	UpdateFunc          func(context.Context, uuid.UUID, uuid.UUID, domain.NoteUpdate) (*domain.Note, error)
	DeleteFunc          func(context.Context, uuid.UUID, uuid.UUID) error
	SetShareFunc        func(context.Context, uuid.UUID, uuid.UUID, string, bool) error
	RevokeShareFunc     func(context.Context, uuid.UUID, uuid.UUID) error
	GetByShareTokenFunc func(context.Context, string) (*domain.SharedNote, error)
	SearchFullTextFunc  func(context.Context, uuid.UUID, string, int) ([]domain.FTSResult, error)
	StatsFunc           func(context.Context, uuid.UUID, time.Time) (domain.NoteStats, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			N   domain.Note
		}
		GetByID []struct {
			Ctx    context.Context
			UserID uuid.UUID
			NoteID uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
			Offset int
		}
		Update []struct {
			Ctx    context.Context
			UserID uuid.UUID
			NoteID uuid.UUID
			Upd    domain.NoteUpdate
		}
		Delete []struct {
			Ctx    context.Context
			UserID uuid.UUID
			NoteID uuid.UUID
		}
		SetShare []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			NoteID   uuid.UUID
			Token    string
			IsPublic bool
		}
		RevokeShare []struct {
			Ctx    context.Context
			UserID uuid.UUID
			NoteID uuid.UUID
		}
		GetByShareToken []struct {
			Ctx   context.Context
			Token string
		}
		SearchFullText []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Query  string
			Limit  int
		}
		Stats []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Now    time.Time
		}
	}
	lockCreate          sync.RWMutex
	lockGetByID         sync.RWMutex
	lockList            sync.RWMutex
	lockUpdate          sync.RWMutex
	lockDelete          sync.RWMutex
	lockSetShare        sync.RWMutex
	lockRevokeShare     sync.RWMutex
	lockGetByShareToken sync.RWMutex
	lockSearchFullText  sync.RWMutex
	lockStats           sync.RWMutex
}

func (mock *noteRepoMock) Create(ctx context.Context, n domain.Note) (*domain.Note, error) {
	if mock.CreateFunc == nil {
		panic("noteRepoMock.CreateFunc: method is nil but noteRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.Note
	}{
		Ctx: ctx,
		N:   n,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, n)
}

func (mock *noteRepoMock) CreateCalls() []struct {
	Ctx context.Context
	N   domain.Note
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *noteRepoMock) GetByID(ctx context.Context, userID uuid.UUID, noteID uuid.UUID) (*domain.Note, error) {
	if mock.GetByIDFunc == nil {
		panic("noteRepoMock.GetByIDFunc: method is nil but noteRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		NoteID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
		NoteID: noteID,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, userID, noteID)
}

func (mock *noteRepoMock) GetByIDCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	NoteID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *noteRepoMock) List(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.Note, int, error) {
	if mock.ListFunc == nil {
		panic("noteRepoMock.ListFunc: method is nil but noteRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
		Offset int
	}{
		Ctx:    ctx,
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, limit, offset)
}

func (mock *noteRepoMock) ListCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Limit  int
	Offset int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *noteRepoMock) Update(ctx context.Context, userID uuid.UUID, noteID uuid.UUID, upd domain.NoteUpdate) (*domain.Note, error) {
	if mock.UpdateFunc == nil {
		panic("noteRepoMock.UpdateFunc: method is nil but noteRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		NoteID uuid.UUID
		Upd    domain.NoteUpdate
	}{
		Ctx:    ctx,
		UserID: userID,
		NoteID: noteID,
		Upd:    upd,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, userID, noteID, upd)
}

func (mock *noteRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	NoteID uuid.UUID
	Upd    domain.NoteUpdate
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *noteRepoMock) Delete(ctx context.Context, userID uuid.UUID, noteID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("noteRepoMock.DeleteFunc: method is nil but noteRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		NoteID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
		NoteID: noteID,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, noteID)
}

func (mock *noteRepoMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	NoteID uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *noteRepoMock) SetShare(ctx context.Context, userID uuid.UUID, noteID uuid.UUID, token string, isPublic bool) error {
	if mock.SetShareFunc == nil {
		panic("noteRepoMock.SetShareFunc: method is nil but noteRepo.SetShare was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		NoteID   uuid.UUID
		Token    string
		IsPublic bool
	}{
		Ctx:      ctx,
		UserID:   userID,
		NoteID:   noteID,
		Token:    token,
		IsPublic: isPublic,
	}
	mock.lockSetShare.Lock()
	mock.calls.SetShare = append(mock.calls.SetShare, callInfo)
	mock.lockSetShare.Unlock()
	return mock.SetShareFunc(ctx, userID, noteID, token, isPublic)
}

func (mock *noteRepoMock) SetShareCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	NoteID   uuid.UUID
	Token    string
	IsPublic bool
} {
	mock.lockSetShare.RLock()
	calls := mock.calls.SetShare
	mock.lockSetShare.RUnlock()
	return calls
}

func (mock *noteRepoMock) RevokeShare(ctx context.Context, userID uuid.UUID, noteID uuid.UUID) error {
	if mock.RevokeShareFunc == nil {
		panic("noteRepoMock.RevokeShareFunc: method is nil but noteRepo.RevokeShare was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		NoteID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
		NoteID: noteID,
	}
	mock.lockRevokeShare.Lock()
	mock.calls.RevokeShare = append(mock.calls.RevokeShare, callInfo)
	mock.lockRevokeShare.Unlock()
	return mock.RevokeShareFunc(ctx, userID, noteID)
}

func (mock *noteRepoMock) RevokeShareCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	NoteID uuid.UUID
} {
	mock.lockRevokeShare.RLock()
	calls := mock.calls.RevokeShare
	mock.lockRevokeShare.RUnlock()
	return calls
}

func (mock *noteRepoMock) GetByShareToken(ctx context.Context, token string) (*domain.SharedNote, error) {
	if mock.GetByShareTokenFunc == nil {
		panic("noteRepoMock.GetByShareTokenFunc: method is nil but noteRepo.GetByShareToken was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{
		Ctx:   ctx,
		Token: token,
	}
	mock.lockGetByShareToken.Lock()
	mock.calls.GetByShareToken = append(mock.calls.GetByShareToken, callInfo)
	mock.lockGetByShareToken.Unlock()
	return mock.GetByShareTokenFunc(ctx, token)
}

func (mock *noteRepoMock) GetByShareTokenCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockGetByShareToken.RLock()
	calls := mock.calls.GetByShareToken
	mock.lockGetByShareToken.RUnlock()
	return calls
}

func (mock *noteRepoMock) SearchFullText(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.FTSResult, error) {
	if mock.SearchFullTextFunc == nil {
		panic("noteRepoMock.SearchFullTextFunc: method is nil but noteRepo.SearchFullText was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Query  string
		Limit  int
	}{
		Ctx:    ctx,
		UserID: userID,
		Query:  query,
		Limit:  limit,
	}
	mock.lockSearchFullText.Lock()
	mock.calls.SearchFullText = append(mock.calls.SearchFullText, callInfo)
	mock.lockSearchFullText.Unlock()
	return mock.SearchFullTextFunc(ctx, userID, query, limit)
}

func (mock *noteRepoMock) SearchFullTextCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Query  string
	Limit  int
} {
	mock.lockSearchFullText.RLock()
	calls := mock.calls.SearchFullText
	mock.lockSearchFullText.RUnlock()
	return calls
}

func (mock *noteRepoMock) Stats(ctx context.Context, userID uuid.UUID, now time.Time) (domain.NoteStats, error) {
	if mock.StatsFunc == nil {
		panic("noteRepoMock.StatsFunc: method is nil but noteRepo.Stats was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Now    time.Time
	}{
		Ctx:    ctx,
		UserID: userID,
		Now:    now,
	}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx, userID, now)
}

func (mock *noteRepoMock) StatsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Now    time.Time
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}
