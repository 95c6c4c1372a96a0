package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/service/notes"
)

var _ notesService = &notesServiceMock{}

type notesServiceMock struct {
	CreateNoteFunc     func(context.Context, notes.CreateNoteInput) (*domain.Note, error)
	GetNoteFunc        func(context.Context, uuid.UUID) (*domain.Note, error)
	ListNotesFunc      func(context.Context, int, int) ([]domain.Note, int, error)
	UpdateNoteFunc     func(context.Context, uuid.UUID, notes.UpdateNoteInput) (*domain.Note, error)
	DeleteNoteFunc     func(context.Context, uuid.UUID) error
	ShareFunc          func(context.Context, uuid.UUID, bool) (string, error)
	RevokeShareFunc    func(context.Context, uuid.UUID) error
	GetSharedFunc      func(context.Context, string, *int64) (notes.SharedView, error)
	SearchFullTextFunc func(context.Context, string, int) ([]domain.FTSResult, error)
	StatsFunc          func(context.Context) (domain.NoteStats, error)

	calls struct {
		CreateNote []struct {
			Ctx   context.Context
			Input notes.CreateNoteInput
		}
		GetNote []struct {
			Ctx    context.Context
			NoteID uuid.UUID
		}
		ListNotes []struct {
			Ctx    context.Context
			Limit  int
			Offset int
		}
		UpdateNote []struct {
			Ctx    context.Context
			NoteID uuid.UUID
			Input  notes.UpdateNoteInput
		}
		DeleteNote []struct {
			Ctx    context.Context
			NoteID uuid.UUID
		}
		Share []struct {
			Ctx      context.Context
			NoteID   uuid.UUID
			IsPublic bool
		}
		RevokeShare []struct {
			Ctx    context.Context
			NoteID uuid.UUID
		}
		GetShared []struct {
			Ctx              context.Context
			Token            string
			ViewerTelegramID *int64
		}
		SearchFullText []struct {
			Ctx   context.Context
			Query string
			Limit int
		}
		Stats []struct {
			Ctx context.Context
		}
	}
	lockCreateNote     sync.RWMutex
	lockGetNote        sync.RWMutex
	lockListNotes      sync.RWMutex
	lockUpdateNote     sync.RWMutex
	lockDeleteNote     sync.RWMutex
	lockShare          sync.RWMutex
	lockRevokeShare    sync.RWMutex
	lockGetShared      sync.RWMutex
	lockSearchFullText sync.RWMutex
	lockStats          sync.RWMutex
}

func (mock *notesServiceMock) CreateNote(ctx context.Context, input notes.CreateNoteInput) (*domain.Note, error) {
	if mock.CreateNoteFunc == nil {
		panic("notesServiceMock.CreateNoteFunc: method is nil but notesService.CreateNote was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input notes.CreateNoteInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCreateNote.Lock()
	mock.calls.CreateNote = append(mock.calls.CreateNote, callInfo)
	mock.lockCreateNote.Unlock()
	return mock.CreateNoteFunc(ctx, input)
}

func (mock *notesServiceMock) CreateNoteCalls() []struct {
	Ctx   context.Context
	Input notes.CreateNoteInput
} {
	mock.lockCreateNote.RLock()
	calls := mock.calls.CreateNote
	mock.lockCreateNote.RUnlock()
	return calls
}

func (mock *notesServiceMock) GetNote(ctx context.Context, noteID uuid.UUID) (*domain.Note, error) {
	if mock.GetNoteFunc == nil {
		panic("notesServiceMock.GetNoteFunc: method is nil but notesService.GetNote was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		NoteID uuid.UUID
	}{
		Ctx:    ctx,
		NoteID: noteID,
	}
	mock.lockGetNote.Lock()
	mock.calls.GetNote = append(mock.calls.GetNote, callInfo)
	mock.lockGetNote.Unlock()
	return mock.GetNoteFunc(ctx, noteID)
}

func (mock *notesServiceMock) GetNoteCalls() []struct {
	Ctx    context.Context
	NoteID uuid.UUID
} {
	mock.lockGetNote.RLock()
	calls := mock.calls.GetNote
	mock.lockGetNote.RUnlock()
	return calls
}

func (mock *notesServiceMock) ListNotes(ctx context.Context, limit int, offset int) ([]domain.Note, int, error) {
	if mock.ListNotesFunc == nil {
		panic("notesServiceMock.ListNotesFunc: method is nil but notesService.ListNotes was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Limit  int
		Offset int
	}{
		Ctx:    ctx,
		Limit:  limit,
		Offset: offset,
	}
	mock.lockListNotes.Lock()
	mock.calls.ListNotes = append(mock.calls.ListNotes, callInfo)
	mock.lockListNotes.Unlock()
	return mock.ListNotesFunc(ctx, limit, offset)
}

func (mock *notesServiceMock) ListNotesCalls() []struct {
	Ctx    context.Context
	Limit  int
	Offset int
} {
	mock.lockListNotes.RLock()
	calls := mock.calls.ListNotes
	mock.lockListNotes.RUnlock()
	return calls
}

func (mock *notesServiceMock) UpdateNote(ctx context.Context, noteID uuid.UUID, input notes.UpdateNoteInput) (*domain.Note, error) {
	if mock.UpdateNoteFunc == nil {
		panic("notesServiceMock.UpdateNoteFunc: method is nil but notesService.UpdateNote was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		NoteID uuid.UUID
		Input  notes.UpdateNoteInput
	}{
		Ctx:    ctx,
		NoteID: noteID,
		Input:  input,
	}
	mock.lockUpdateNote.Lock()
	mock.calls.UpdateNote = append(mock.calls.UpdateNote, callInfo)
	mock.lockUpdateNote.Unlock()
	return mock.UpdateNoteFunc(ctx, noteID, input)
}

func (mock *notesServiceMock) UpdateNoteCalls() []struct {
	Ctx    context.Context
	NoteID uuid.UUID
	Input  notes.UpdateNoteInput
} {
	mock.lockUpdateNote.RLock()
	calls := mock.calls.UpdateNote
	mock.lockUpdateNote.RUnlock()
	return calls
}

func (mock *notesServiceMock) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	if mock.DeleteNoteFunc == nil {
		panic("notesServiceMock.DeleteNoteFunc: method is nil but notesService.DeleteNote was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		NoteID uuid.UUID
	}{
		Ctx:    ctx,
		NoteID: noteID,
	}
	mock.lockDeleteNote.Lock()
	mock.calls.DeleteNote = append(mock.calls.DeleteNote, callInfo)
	mock.lockDeleteNote.Unlock()
	return mock.DeleteNoteFunc(ctx, noteID)
}

func (mock *notesServiceMock) DeleteNoteCalls() []struct {
	Ctx    context.Context
	NoteID uuid.UUID
} {
	mock.lockDeleteNote.RLock()
	calls := mock.calls.DeleteNote
	mock.lockDeleteNote.RUnlock()
	return calls
}

func (mock *notesServiceMock) Share(ctx context.Context, noteID uuid.UUID, isPublic bool) (string, error) {
	if mock.ShareFunc == nil {
		panic("notesServiceMock.ShareFunc: method is nil but notesService.Share was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		NoteID   uuid.UUID
		IsPublic bool
	}{
		Ctx:      ctx,
		NoteID:   noteID,
		IsPublic: isPublic,
	}
	mock.lockShare.Lock()
	mock.calls.Share = append(mock.calls.Share, callInfo)
	mock.lockShare.Unlock()
	return mock.ShareFunc(ctx, noteID, isPublic)
}

func (mock *notesServiceMock) ShareCalls() []struct {
	Ctx      context.Context
	NoteID   uuid.UUID
	IsPublic bool
} {
	mock.lockShare.RLock()
	calls := mock.calls.Share
	mock.lockShare.RUnlock()
	return calls
}

func (mock *notesServiceMock) RevokeShare(ctx context.Context, noteID uuid.UUID) error {
	if mock.RevokeShareFunc == nil {
		panic("notesServiceMock.RevokeShareFunc: method is nil but notesService.RevokeShare was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		NoteID uuid.UUID
	}{
		Ctx:    ctx,
		NoteID: noteID,
	}
	mock.lockRevokeShare.Lock()
	mock.calls.RevokeShare = append(mock.calls.RevokeShare, callInfo)
	mock.lockRevokeShare.Unlock()
	return mock.RevokeShareFunc(ctx, noteID)
}

func (mock *notesServiceMock) RevokeShareCalls() []struct {
	Ctx    context.Context
	NoteID uuid.UUID
} {
	mock.lockRevokeShare.RLock()
	calls := mock.calls.RevokeShare
	mock.lockRevokeShare.RUnlock()
	return calls
}

func (mock *notesServiceMock) GetShared(ctx context.Context, token string, viewerTelegramID *int64) (notes.SharedView, error) {
	if mock.GetSharedFunc == nil {
		panic("notesServiceMock.GetSharedFunc: method is nil but notesService.GetShared was just called")
	}
	callInfo := struct {
		Ctx              context.Context
		Token            string
		ViewerTelegramID *int64
	}{
		Ctx:              ctx,
		Token:            token,
		ViewerTelegramID: viewerTelegramID,
	}
	mock.lockGetShared.Lock()
	mock.calls.GetShared = append(mock.calls.GetShared, callInfo)
	mock.lockGetShared.Unlock()
	return mock.GetSharedFunc(ctx, token, viewerTelegramID)
}

func (mock *notesServiceMock) GetSharedCalls() []struct {
	Ctx              context.Context
	Token            string
	ViewerTelegramID *int64
} {
	mock.lockGetShared.RLock()
	calls := mock.calls.GetShared
	mock.lockGetShared.RUnlock()
	return calls
}

func (mock *notesServiceMock) SearchFullText(ctx context.Context, query string, limit int) ([]domain.FTSResult, error) {
	if mock.SearchFullTextFunc == nil {
		panic("notesServiceMock.SearchFullTextFunc: method is nil but notesService.SearchFullText was just called")
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
	mock.lockSearchFullText.Lock()
	mock.calls.SearchFullText = append(mock.calls.SearchFullText, callInfo)
	mock.lockSearchFullText.Unlock()
	return mock.SearchFullTextFunc(ctx, query, limit)
}

func (mock *notesServiceMock) SearchFullTextCalls() []struct {
	Ctx   context.Context
	Query string
	Limit int
} {
	mock.lockSearchFullText.RLock()
	calls := mock.calls.SearchFullText
	mock.lockSearchFullText.RUnlock()
	return calls
}

func (mock *notesServiceMock) Stats(ctx context.Context) (domain.NoteStats, error) {
	if mock.StatsFunc == nil {
		panic("notesServiceMock.StatsFunc: method is nil but notesService.Stats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *notesServiceMock) StatsCalls() []struct {
	Ctx context.Context
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}
