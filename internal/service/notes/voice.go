package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

// ErrEmptyTranscript is returned when speech-to-text recognised nothing.
var ErrEmptyTranscript = errors.New("empty transcript")

// VoiceResult is the outcome of a voice ingestion. Denied is set when the
// plan does not allow voice notes; Note is nil then. SummarySkipped means
// the plan had no summary left and the note was stored without one.
type VoiceResult struct {
	Note           *domain.Note
	Denied         *domain.FeatureDecision
	SummarySkipped bool
}

// IngestVoice turns a voice message into a note: it checks the voice quota,
// transcribes, meters the duration, summarizes when the plan allows it and
// stores the result.
func (s *Service) IngestVoice(ctx context.Context, input VoiceInput) (VoiceResult, error) {
	if err := input.Validate(); err != nil {
		return VoiceResult{}, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return VoiceResult{}, domain.ErrUnauthorized
	}

	if d := s.ledger.CanUseFeature(ctx, userID, domain.FeatureVoice); !d.Allowed {
		return VoiceResult{Denied: &d}, nil
	}

	text, err := s.transcriber.Transcribe(ctx, input.Audio, input.Filename)
	if err != nil {
		return VoiceResult{}, fmt.Errorf("notes.IngestVoice: transcribe: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return VoiceResult{}, ErrEmptyTranscript
	}

	s.ledger.IncrementUsage(ctx, userID, domain.UsageVoiceSeconds, input.DurationSeconds)

	var (
		res     VoiceResult
		summary *string
	)
	if d := s.ledger.CanUseFeature(ctx, userID, domain.FeatureSummary); d.Allowed {
		if sum, ok := s.summarizer.Summarize(ctx, text); ok {
			summary = &sum
			s.ledger.IncrementUsage(ctx, userID, domain.UsageSummaries, 1)
		}
	} else {
		res.SummarySkipped = true
	}

	duration := input.DurationSeconds
	n, err := s.create(ctx, userID, CreateNoteInput{
		Content:         domain.TruncateRunes(text, maxContentChars),
		Summary:         summary,
		Source:          domain.NoteSourceVoice,
		DurationSeconds: &duration,
	})
	if err != nil {
		return VoiceResult{}, err
	}

	s.log.InfoContext(ctx, "voice note ingested",
		slog.String("user_id", userID.String()),
		slog.Int("duration_seconds", duration),
		slog.Bool("summarized", summary != nil),
	)

	res.Note = n
	return res, nil
}
