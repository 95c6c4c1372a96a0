package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/service/assistant"
	"github.com/heartmarshall/fixnote-backend/internal/service/notes"
	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

const transcriptPreviewRunes = 500

// handleText answers questions from the notes when the plan has chat and
// relevant notes exist. Everything else is saved as a note.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	chatID := msg.Chat.ID

	if assistant.IsQuestion(text) && b.answer(ctx, chatID, text) {
		return
	}
	b.saveText(ctx, chatID, text)
}

// answer reports whether the question was answered.
func (b *Bot) answer(ctx context.Context, chatID int64, question string) bool {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false
	}
	if d := b.ledger.CanUseFeature(ctx, userID, domain.FeatureChat); !d.Allowed {
		return false
	}

	status := b.reply(ctx, chatID, msgTextSearch, nil)

	ans, err := b.asker.Ask(ctx, question)
	if err != nil || ans.Denied != nil || ans.NoRelevantNotes {
		if err != nil {
			b.log.ErrorContext(ctx, "ask", slog.String("error", err.Error()))
		}
		b.remove(ctx, chatID, status)
		return false
	}

	b.edit(ctx, chatID, status, fmt.Sprintf(msgAnswer, html.EscapeString(ans.Text)), nil)
	return true
}

func (b *Bot) saveText(ctx context.Context, chatID int64, text string) {
	_, err := b.notes.CreateNote(ctx, notes.CreateNoteInput{Content: text, Source: domain.NoteSourceText})
	if err != nil {
		b.log.ErrorContext(ctx, "save text note", slog.String("error", err.Error()))
		b.reply(ctx, chatID, msgProcessingFailed, nil)
		return
	}
	b.reply(ctx, chatID, msgNoteSaved, nil)
}

// flushForwarded stores a burst of forwarded messages as one note.
func (b *Bot) flushForwarded(telegramID int64, items []forwardedText) {
	if len(items) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	first := items[0]
	ctx = userContext(ctx, first.UserID, telegramID)

	texts := make([]string, 0, len(items))
	for _, it := range items {
		if it.Text != "" {
			texts = append(texts, it.Text)
		}
	}
	if len(texts) == 0 {
		return
	}

	_, err := b.notes.CreateNote(ctx, notes.CreateNoteInput{
		Content: strings.Join(texts, "\n\n"),
		Source:  domain.NoteSourceText,
	})
	if err != nil {
		b.log.ErrorContext(ctx, "save forwarded note",
			slog.Int64("telegram_id", telegramID),
			slog.Int("messages", len(items)),
			slog.String("error", err.Error()),
		)
		b.reply(ctx, first.ChatID, msgProcessingFailed, nil)
		return
	}
	b.reply(ctx, first.ChatID, fmt.Sprintf(msgForwardedSaved, len(items)), nil)
}

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message, user *domain.User) {
	chatID := msg.Chat.ID
	v := msg.Voice

	if b.opts.MaxVoiceBytes > 0 && int64(v.FileSize) > b.opts.MaxVoiceBytes {
		b.reply(ctx, chatID, msgVoiceTooLarge, nil)
		return
	}
	if d := b.ledger.CanUseFeature(ctx, user.ID, domain.FeatureVoice); !d.Allowed {
		b.reply(ctx, chatID, voiceDenial(d), b.notesKeyboard())
		return
	}

	status := b.reply(ctx, chatID, msgVoiceProcessing, nil)

	audio, err := b.download(ctx, v.FileID)
	if err != nil {
		b.log.ErrorContext(ctx, "download voice",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()),
		)
		b.edit(ctx, chatID, status, msgProcessingFailed, nil)
		return
	}

	res, err := b.notes.IngestVoice(ctx, notes.VoiceInput{
		Audio:           audio,
		Filename:        "voice_" + v.FileID + ".ogg",
		DurationSeconds: v.Duration,
	})
	switch {
	case errors.Is(err, notes.ErrEmptyTranscript):
		b.edit(ctx, chatID, status, msgTranscribeFailed, nil)
		return
	case err != nil:
		b.log.ErrorContext(ctx, "ingest voice",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()),
		)
		b.edit(ctx, chatID, status, msgProcessingFailed, nil)
		return
	case res.Denied != nil:
		b.edit(ctx, chatID, status, voiceDenial(*res.Denied), b.notesKeyboard())
		return
	}

	b.edit(ctx, chatID, status, voiceSavedText(res), nil)
}

func voiceSavedText(res notes.VoiceResult) string {
	out := fmt.Sprintf(msgVoiceSaved, html.EscapeString(truncate(res.Note.Content, transcriptPreviewRunes)))
	switch {
	case res.Note.Summary != nil:
		out += fmt.Sprintf(msgVoiceSummary, html.EscapeString(*res.Note.Summary))
	case res.SummarySkipped:
		out += msgVoiceNoSummary
	}
	return out
}

func voiceDenial(d domain.FeatureDecision) string {
	if d.Reason == domain.ReasonLimitReached {
		return fmt.Sprintf(msgVoiceLimit, planTitle(d.Plan))
	}
	return msgVoiceFreePlan
}

// download fetches a file from the Bot API file storage, refusing anything
// larger than MaxVoiceBytes.
func (b *Bot) download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch file: status %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if b.opts.MaxVoiceBytes > 0 {
		body = io.LimitReader(resp.Body, b.opts.MaxVoiceBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if b.opts.MaxVoiceBytes > 0 && int64(len(data)) > b.opts.MaxVoiceBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", b.opts.MaxVoiceBytes)
	}
	return data, nil
}
