package telegram

import (
	"context"
	"sync"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/service/notes"
)

var _ noteService = &noteServiceMock{}

type noteServiceMock struct {
	GetOrCreateUserFunc func(context.Context, domain.TelegramProfile) (*domain.User, error)
	CreateNoteFunc      func(context.Context, notes.CreateNoteInput) (*domain.Note, error)
	ListNotesFunc       func(context.Context, int, int) ([]domain.Note, int, error)
	StatsFunc           func(context.Context) (domain.NoteStats, error)
	IngestVoiceFunc     func(context.Context, notes.VoiceInput) (notes.VoiceResult, error)
	GetSharedFunc       func(context.Context, string, *int64) (notes.SharedView, error)

	calls struct {
		GetOrCreateUser []struct {
			Ctx context.Context
			P   domain.TelegramProfile
		}
		CreateNote []struct {
			Ctx   context.Context
			Input notes.CreateNoteInput
		}
		ListNotes []struct {
			Ctx    context.Context
			Limit  int
			Offset int
		}
		Stats []struct {
			Ctx context.Context
		}
		IngestVoice []struct {
			Ctx   context.Context
			Input notes.VoiceInput
		}
		GetShared []struct {
			Ctx              context.Context
			Token            string
			ViewerTelegramID *int64
		}
	}
	lockGetOrCreateUser sync.RWMutex
	lockCreateNote      sync.RWMutex
	lockListNotes       sync.RWMutex
	lockStats           sync.RWMutex
	lockIngestVoice     sync.RWMutex
	lockGetShared       sync.RWMutex
}

func (mock *noteServiceMock) GetOrCreateUser(ctx context.Context, p domain.TelegramProfile) (*domain.User, error) {
	if mock.GetOrCreateUserFunc == nil {
		panic("noteServiceMock.GetOrCreateUserFunc: method is nil but noteService.GetOrCreateUser was just called")
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

func (mock *noteServiceMock) GetOrCreateUserCalls() []struct {
	Ctx context.Context
	P   domain.TelegramProfile
} {
	mock.lockGetOrCreateUser.RLock()
	calls := mock.calls.GetOrCreateUser
	mock.lockGetOrCreateUser.RUnlock()
	return calls
}

func (mock *noteServiceMock) CreateNote(ctx context.Context, input notes.CreateNoteInput) (*domain.Note, error) {
	if mock.CreateNoteFunc == nil {
		panic("noteServiceMock.CreateNoteFunc: method is nil but noteService.CreateNote was just called")
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

func (mock *noteServiceMock) CreateNoteCalls() []struct {
	Ctx   context.Context
	Input notes.CreateNoteInput
} {
	mock.lockCreateNote.RLock()
	calls := mock.calls.CreateNote
	mock.lockCreateNote.RUnlock()
	return calls
}

func (mock *noteServiceMock) ListNotes(ctx context.Context, limit int, offset int) ([]domain.Note, int, error) {
	if mock.ListNotesFunc == nil {
		panic("noteServiceMock.ListNotesFunc: method is nil but noteService.ListNotes was just called")
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

func (mock *noteServiceMock) ListNotesCalls() []struct {
	Ctx    context.Context
	Limit  int
	Offset int
} {
	mock.lockListNotes.RLock()
	calls := mock.calls.ListNotes
	mock.lockListNotes.RUnlock()
	return calls
}

func (mock *noteServiceMock) Stats(ctx context.Context) (domain.NoteStats, error) {
	if mock.StatsFunc == nil {
		panic("noteServiceMock.StatsFunc: method is nil but noteService.Stats was just called")
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

func (mock *noteServiceMock) StatsCalls() []struct {
	Ctx context.Context
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}

func (mock *noteServiceMock) IngestVoice(ctx context.Context, input notes.VoiceInput) (notes.VoiceResult, error) {
	if mock.IngestVoiceFunc == nil {
		panic("noteServiceMock.IngestVoiceFunc: method is nil but noteService.IngestVoice was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input notes.VoiceInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockIngestVoice.Lock()
	mock.calls.IngestVoice = append(mock.calls.IngestVoice, callInfo)
	mock.lockIngestVoice.Unlock()
	return mock.IngestVoiceFunc(ctx, input)
}

func (mock *noteServiceMock) IngestVoiceCalls() []struct {
	Ctx   context.Context
	Input notes.VoiceInput
} {
	mock.lockIngestVoice.RLock()
	calls := mock.calls.IngestVoice
	mock.lockIngestVoice.RUnlock()
	return calls
}

func (mock *noteServiceMock) GetShared(ctx context.Context, token string, viewerTelegramID *int64) (notes.SharedView, error) {
	if mock.GetSharedFunc == nil {
		panic("noteServiceMock.GetSharedFunc: method is nil but noteService.GetShared was just called")
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

func (mock *noteServiceMock) GetSharedCalls() []struct {
	Ctx              context.Context
	Token            string
	ViewerTelegramID *int64
} {
	mock.lockGetShared.RLock()
	calls := mock.calls.GetShared
	mock.lockGetShared.RUnlock()
	return calls
}
