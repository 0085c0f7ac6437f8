package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/timmy/memezvukach/internal/catalog"
	"github.com/timmy/memezvukach/internal/logger"
	"github.com/timmy/memezvukach/internal/match"
	"github.com/timmy/memezvukach/internal/ratelimit"
	"github.com/timmy/memezvukach/internal/service"
)

// Config holds Telegram transport configuration.
type Config struct {
	Token          string
	PollingTimeout int
	Debug          bool
}

// Bot wires inbound Telegram updates to the matcher and orchestrator. Each
// update is handled on its own goroutine; per-user state lives behind its
// own locks, so handlers share nothing mutable.
type Bot struct {
	api          *tgbotapi.BotAPI
	catalog      *catalog.Catalog
	matcher      *match.Matcher
	orchestrator *service.Orchestrator
	limiter      *ratelimit.Limiter

	pollingTimeout int
}

// New connects to the Telegram Bot API and builds the transport.
// Parameters:
//   - cfg: transport configuration; the token must already be validated.
//   - cat: meme catalog.
//   - m: fuzzy matcher.
//   - orch: response orchestrator.
//   - limiter: per-user rate limiter.
// Returns:
//   - *Bot: connected bot.
//   - error: non-nil when authorization fails.
func New(cfg *Config, cat *catalog.Catalog, m *match.Matcher, orch *service.Orchestrator, limiter *ratelimit.Limiter) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize bot: %w", err)
	}
	api.Debug = cfg.Debug

	timeout := cfg.PollingTimeout
	if timeout <= 0 {
		timeout = 60
	}

	return &Bot{
		api:            api,
		catalog:        cat,
		matcher:        m,
		orchestrator:   orch,
		limiter:        limiter,
		pollingTimeout: timeout,
	}, nil
}

// Username returns the authorized bot account name.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Run starts long polling and dispatches updates until ctx is canceled.
// Parameters:
//   - ctx: cancellation context.
// Returns:
//   - error: always nil today; kept for transport symmetry.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollingTimeout
	updates := b.api.GetUpdatesChan(u)

	logger.CtxInfo(ctx, "Bot %s started polling", b.Username())

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage routes one inbound text message. A panic in a handler must
// not take down the polling loop, so each update gets its own guard.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			logger.CtxError(ctx, "Handler panicked: %v", r)
			b.reply(ctx, msg.Chat.ID, brokenText())
		}
	}()

	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldComponent:     "bot",
		logger.FieldInteractionID: uuid.New().String(),
		logger.FieldUserID:        msg.From.ID,
		logger.FieldChatID:        msg.Chat.ID,
	})

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.reply(ctx, msg.Chat.ID, startText())
		case "help":
			b.reply(ctx, msg.Chat.ID, helpText())
		case "random":
			b.handleRandom(ctx, msg)
		default:
			b.reply(ctx, msg.Chat.ID, helpText())
		}
		return
	}

	switch msg.Text {
	case buttonFind:
		b.reply(ctx, msg.Chat.ID, searchPromptText())
	case buttonRandom:
		b.handleRandom(ctx, msg)
	case buttonHelp:
		b.reply(ctx, msg.Chat.ID, helpText())
	default:
		b.handleSearch(ctx, msg)
	}
}

// reply sends plain text with the menu keyboard attached.
func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = menuKeyboard
	if _, err := b.api.Send(m); err != nil {
		logger.CtxError(ctx, "Failed to send message: %v", err)
	}
}

// editOrReply edits the placeholder message, falling back to a fresh send.
func (b *Bot) editOrReply(ctx context.Context, chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		logger.CtxWarn(ctx, "Failed to edit message %d: %v", messageID, err)
		b.reply(ctx, chatID, text)
	}
}

// deleteMessage removes the placeholder; failure is cosmetic.
func (b *Bot) deleteMessage(ctx context.Context, chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		logger.CtxWarn(ctx, "Failed to delete message %d: %v", messageID, err)
	}
}

// chatAction shows a typing/recording indicator; failure is cosmetic.
func (b *Bot) chatAction(ctx context.Context, chatID int64, action string) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, action)); err != nil {
		logger.CtxDebug(ctx, "Failed to send chat action: %v", err)
	}
}
