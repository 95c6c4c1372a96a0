package domain

import (
	"time"

	"github.com/google/uuid"
)

// NoteSource tells how a note was captured.
type NoteSource string

const (
	NoteSourceVoice NoteSource = "voice"
	NoteSourceText  NoteSource = "text"
)

func (s NoteSource) String() string { return string(s) }

func (s NoteSource) IsValid() bool {
	switch s {
	case NoteSourceVoice, NoteSourceText:
		return true
	}
	return false
}

// Note is a captured voice or text note. Embedding is attached after
// creation and is nil until the note has been indexed.
type Note struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Content         string
	Summary         *string
	Source          NoteSource
	DurationSeconds *int
	Embedding       []float32
	ShareToken      *string
	IsPublic        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsIndexed reports whether the note carries an embedding.
func (n Note) IsIndexed() bool { return len(n.Embedding) > 0 }

// NoteUpdate holds the partial fields of a note edit. Nil fields are left
// unchanged.
type NoteUpdate struct {
	Content *string
	Summary *string
}

// IsEmpty reports whether the update changes nothing.
func (u NoteUpdate) IsEmpty() bool { return u.Content == nil && u.Summary == nil }

// SharedNote is a note resolved through its share token, together with the
// chat-platform id of its owner.
type SharedNote struct {
	Note            Note
	OwnerTelegramID int64
}

// SearchResult is one semantic search hit. Similarity is in [0, 1],
// higher is more relevant.
type SearchResult struct {
	ID         uuid.UUID
	Content    string
	Summary    *string
	Similarity float64
	CreatedAt  time.Time
}

// FTSResult is one full-text search hit ranked by ts_rank.
type FTSResult struct {
	ID        uuid.UUID
	Content   string
	Summary   *string
	Rank      float64
	CreatedAt time.Time
}

// NoteStats aggregates a user's note collection.
type NoteStats struct {
	Total     int
	Voice     int
	Text      int
	ThisWeek  int
	ThisMonth int
}
