package notes

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

const (
	maxContentChars  = 100_000
	maxSummaryChars  = 10_000
	defaultListLimit = 50
	maxListLimit     = 100
	defaultFTSLimit  = 5
	maxFTSLimit      = 20
)

// CreateNoteInput holds parameters for creating a note.
type CreateNoteInput struct {
	Content         string
	Summary         *string
	Source          domain.NoteSource
	DurationSeconds *int
}

// Validate checks all fields and collects all errors.
func (i CreateNoteInput) Validate() error {
	var errs []domain.FieldError

	errs = appendContentErrors(errs, i.Content)

	if i.Summary != nil && utf8.RuneCountInString(*i.Summary) > maxSummaryChars {
		errs = append(errs, domain.FieldError{Field: "summary", Message: "too long (max 10000)"})
	}

	if !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "must be voice or text"})
	}

	if i.DurationSeconds != nil {
		if i.Source != domain.NoteSourceVoice {
			errs = append(errs, domain.FieldError{Field: "duration_seconds", Message: "only allowed for voice notes"})
		} else if *i.DurationSeconds < 0 {
			errs = append(errs, domain.FieldError{Field: "duration_seconds", Message: "must not be negative"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateNoteInput holds the fields of a note edit. Nil fields are unchanged.
type UpdateNoteInput struct {
	Content *string
	Summary *string
}

// Validate checks all fields and collects all errors.
func (i UpdateNoteInput) Validate() error {
	var errs []domain.FieldError

	if i.Content == nil && i.Summary == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "nothing to update"})
	}
	if i.Content != nil {
		errs = appendContentErrors(errs, *i.Content)
	}
	if i.Summary != nil && utf8.RuneCountInString(*i.Summary) > maxSummaryChars {
		errs = append(errs, domain.FieldError{Field: "summary", Message: "too long (max 10000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// VoiceInput is a voice message waiting to be turned into a note.
type VoiceInput struct {
	Audio           []byte
	Filename        string
	DurationSeconds int
}

// Validate checks all fields and collects all errors.
func (i VoiceInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Audio) == 0 {
		errs = append(errs, domain.FieldError{Field: "audio", Message: "required"})
	}
	if i.DurationSeconds < 0 {
		errs = append(errs, domain.FieldError{Field: "duration_seconds", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func appendContentErrors(errs []domain.FieldError, content string) []domain.FieldError {
	if strings.TrimSpace(content) == "" {
		return append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if utf8.RuneCountInString(content) > maxContentChars {
		return append(errs, domain.FieldError{Field: "content", Message: "too long (max 100000)"})
	}
	return errs
}

func validateLanguage(lang string) error {
	if l := len(lang); l < 2 || l > 10 {
		return domain.NewValidationError("language_code", "must be 2 to 10 characters")
	}
	return nil
}

// clampLimit maps a zero limit to def; anything else outside [1, upper] is a
// validation error.
func clampLimit(limit, def, upper int) (int, error) {
	if limit == 0 {
		return def, nil
	}
	if limit < 1 || limit > upper {
		return 0, domain.NewValidationError("limit", "out of range")
	}
	return limit, nil
}
