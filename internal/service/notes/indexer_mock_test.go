package notes

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ indexer = &indexerMock{}

type indexerMock struct {
	IndexNoteFunc func(context.Context, uuid.UUID, string) bool

	calls struct {
		IndexNote []struct {
			Ctx    context.Context
			NoteID uuid.UUID
			Text   string
		}
	}
	lockIndexNote sync.RWMutex
}

func (mock *indexerMock) IndexNote(ctx context.Context, noteID uuid.UUID, text string) bool {
	if mock.IndexNoteFunc == nil {
		panic("indexerMock.IndexNoteFunc: method is nil but indexer.IndexNote was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		NoteID uuid.UUID
		Text   string
	}{
		Ctx:    ctx,
		NoteID: noteID,
		Text:   text,
	}
	mock.lockIndexNote.Lock()
	mock.calls.IndexNote = append(mock.calls.IndexNote, callInfo)
	mock.lockIndexNote.Unlock()
	return mock.IndexNoteFunc(ctx, noteID, text)
}

func (mock *indexerMock) IndexNoteCalls() []struct {
	Ctx    context.Context
	NoteID uuid.UUID
	Text   string
} {
	mock.lockIndexNote.RLock()
	calls := mock.calls.IndexNote
	mock.lockIndexNote.RUnlock()
	return calls
}
