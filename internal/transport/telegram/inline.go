package telegram

import (
	"context"
	"errors"
	"html"
	"log/slog"
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

const (
	shareQueryPrefix = "share_note_"
	minShareToken    = 16
	inlineTitleRunes = 60
	inlineCacheTime  = 60
)

// handleInlineQuery renders the preview of a shared note for
// "share_note_<token>" queries. Other queries get no answer.
func (b *Bot) handleInlineQuery(ctx context.Context, q *tgbotapi.InlineQuery) {
	token, ok := strings.CutPrefix(q.Query, shareQueryPrefix)
	if !ok || len(token) < minShareToken {
		return
	}
	if q.From != nil && !b.allowed(q.From.ID) {
		return
	}

	var viewer *int64
	if q.From != nil {
		viewer = &q.From.ID
	}
	view, err := b.notes.GetShared(ctx, token, viewer)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrForbidden) {
			b.log.ErrorContext(ctx, "inline share lookup", slog.String("error", err.Error()))
		}
		return
	}

	article := b.shareArticle(token, view.Note)
	_, err = b.api.Request(tgbotapi.InlineConfig{
		InlineQueryID: q.ID,
		Results:       []interface{}{article},
		CacheTime:     inlineCacheTime,
	})
	if err != nil {
		b.log.WarnContext(ctx, "answer inline query", slog.String("error", err.Error()))
	}
}

func (b *Bot) shareArticle(token string, n domain.Note) tgbotapi.InlineQueryResultArticle {
	first, _, _ := strings.Cut(n.Content, "\n")
	first = truncate(strings.TrimSpace(first), inlineTitleRunes)

	article := tgbotapi.NewInlineQueryResultArticleHTML(
		token,
		"📝 "+first,
		sourceIcon(n.Source)+" <b>"+html.EscapeString(first)+"</b>...",
	)
	article.Description = msgInlineDescription

	if b.opts.BotUsername != "" {
		link := "https://t.me/" + b.opts.BotUsername + "?startapp=" + url.QueryEscape(token)
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(btnOpenNote, link)),
		)
		article.ReplyMarkup = &kb
	}
	return article
}
