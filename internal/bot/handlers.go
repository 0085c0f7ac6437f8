package bot

import (
	"context"
	"errors"
	"math"
	"math/rand"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/timmy/memezvukach/internal/domain"
	"github.com/timmy/memezvukach/internal/logger"
	"github.com/timmy/memezvukach/internal/match"
	"github.com/timmy/memezvukach/internal/service"
)

// handleSearch runs the full free-text flow: rate limit, placeholder,
// match, orchestrate, send.
func (b *Bot) handleSearch(ctx context.Context, msg *tgbotapi.Message) {
	if !b.allow(ctx, msg) {
		return
	}

	placeholder, hasPlaceholder := b.sendPlaceholder(ctx, msg.Chat.ID, loadingText())

	memes := b.catalog.Memes(ctx)
	if len(memes) == 0 {
		b.finishPlaceholder(ctx, msg.Chat.ID, placeholder, hasPlaceholder, emptyCatalogText())
		return
	}

	rec, err := b.matcher.Find(ctx, msg.Text, memes)
	if err != nil {
		if !errors.Is(err, match.ErrNotFound) {
			logger.CtxError(ctx, "Matcher failed: %v", err)
		}
		b.finishPlaceholder(ctx, msg.Chat.ID, placeholder, hasPlaceholder, notFoundText())
		return
	}

	b.respondWithMeme(ctx, msg, rec, placeholder, hasPlaceholder)
}

// handleRandom picks a random catalog entry and responds with it.
func (b *Bot) handleRandom(ctx context.Context, msg *tgbotapi.Message) {
	if !b.allow(ctx, msg) {
		return
	}

	placeholder, hasPlaceholder := b.sendPlaceholder(ctx, msg.Chat.ID, loadingRandomText())

	memes := b.catalog.Memes(ctx)
	if len(memes) == 0 {
		b.finishPlaceholder(ctx, msg.Chat.ID, placeholder, hasPlaceholder, emptyCatalogText())
		return
	}

	rec := &memes[rand.Intn(len(memes))]
	b.respondWithMeme(ctx, msg, rec, placeholder, hasPlaceholder)
}

// respondWithMeme orchestrates and delivers the response for a matched
// record. The payload's temporary audio is released on every exit path.
func (b *Bot) respondWithMeme(ctx context.Context, msg *tgbotapi.Message, rec *domain.MemeRecord, placeholder int, hasPlaceholder bool) {
	ctx = logger.WithField(ctx, logger.FieldMeme, rec.Name)

	b.chatAction(ctx, msg.Chat.ID, tgbotapi.ChatRecordVoice)

	payload := b.orchestrator.Respond(ctx, msg.From.ID, rec)
	defer payload.Release()

	if hasPlaceholder {
		b.deleteMessage(ctx, msg.Chat.ID, placeholder)
	}

	b.sendPayload(ctx, msg.Chat.ID, payload)
}

// sendPayload delivers the assembled payload; a transport failure degrades
// to a plain-text fallback built from partial data.
func (b *Bot) sendPayload(ctx context.Context, chatID int64, payload *domain.ResponsePayload) {
	var err error
	switch payload.Kind {
	case domain.PayloadVoice:
		voice := tgbotapi.NewVoice(chatID, tgbotapi.FilePath(payload.VoicePath))
		voice.Caption = payload.Caption
		voice.ReplyMarkup = menuKeyboard
		_, err = b.api.Send(voice)
		if err == nil {
			logger.CtxInfo(ctx, "Voice message sent: meme=%q", payload.Meme.Name)
			return
		}
		logger.CtxError(ctx, "Failed to send voice message: %v", err)
	case domain.PayloadText:
		m := tgbotapi.NewMessage(chatID, payload.Text)
		m.ReplyMarkup = menuKeyboard
		_, err = b.api.Send(m)
		if err == nil {
			return
		}
		logger.CtxError(ctx, "Failed to send text response: %v", err)
	}

	// Degraded fallback: reuse whatever partial data survived.
	b.reply(ctx, chatID, service.FallbackText(payload.Meme, payload.Emoji))
}

// allow applies the rate limiter and informs the user about cooldowns.
func (b *Bot) allow(ctx context.Context, msg *tgbotapi.Message) bool {
	ok, retryAfter := b.limiter.Check(msg.From.ID)
	if ok {
		return true
	}
	seconds := int(math.Ceil(retryAfter.Seconds()))
	logger.CtxInfo(ctx, "Rate limited user %d for %d more seconds", msg.From.ID, seconds)
	b.reply(ctx, msg.Chat.ID, rateLimitedText(seconds))
	return false
}

// sendPlaceholder posts the "searching" notice and reports whether it can
// be edited or deleted later.
func (b *Bot) sendPlaceholder(ctx context.Context, chatID int64, text string) (int, bool) {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		logger.CtxWarn(ctx, "Failed to send placeholder: %v", err)
		return 0, false
	}
	return sent.MessageID, true
}

// finishPlaceholder ends the turn with a terminal message, editing the
// placeholder in place when one exists.
func (b *Bot) finishPlaceholder(ctx context.Context, chatID int64, placeholder int, hasPlaceholder bool, text string) {
	if hasPlaceholder {
		b.editOrReply(ctx, chatID, placeholder, text)
		return
	}
	b.reply(ctx, chatID, text)
}
