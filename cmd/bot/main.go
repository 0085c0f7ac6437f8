package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/memezvukach/internal/api"
	"github.com/timmy/memezvukach/internal/bot"
	"github.com/timmy/memezvukach/internal/catalog"
	"github.com/timmy/memezvukach/internal/config"
	"github.com/timmy/memezvukach/internal/logger"
	"github.com/timmy/memezvukach/internal/match"
	"github.com/timmy/memezvukach/internal/ratelimit"
	"github.com/timmy/memezvukach/internal/remote"
	"github.com/timmy/memezvukach/internal/service"
)

// sweepInterval is how often idle per-user state is evicted.
const sweepInterval = 10 * time.Minute

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	lg := logger.NewDefault()
	logger.SetDefaultLogger(lg)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = lg.WithContext(ctx)

	// Shared outbound concurrency gate for every third-party endpoint
	gate := remote.NewGate(cfg.Outbound.MaxConcurrent)

	cat := catalog.New(cfg.Catalog.Path)
	logger.CtxInfo(ctx, "Meme catalog configured: path=%s", cfg.Catalog.Path)

	matcher := match.New(match.Config{
		NameCutoff:      cfg.Match.NameCutoff,
		NameAcceptRatio: cfg.Match.NameAcceptRatio,
		DescCutoff:      cfg.Match.DescCutoff,
	})

	limiter := ratelimit.New(ratelimit.Config{
		Window:      cfg.RateLimit.Window,
		MaxRequests: cfg.RateLimit.MaxRequests,
		FirstBan:    cfg.RateLimit.FirstBan,
		RepeatBan:   cfg.RateLimit.RepeatBan,
		UserTTL:     cfg.RateLimit.UserTTL,
	})

	phrases := service.NewPhraseService(&service.PhraseConfig{
		TextGenURL:     cfg.Phrase.TextGenURL,
		ProfanityURL:   cfg.Phrase.ProfanityURL,
		Timeout:        cfg.Phrase.Timeout,
		Retries:        cfg.Phrase.Retries,
		MaxLength:      cfg.Phrase.MaxLength,
		HistorySize:    cfg.Phrase.HistorySize,
		UserTTL:        cfg.Phrase.UserTTL,
		MaxUsers:       cfg.Phrase.MaxUsers,
		CheckProfanity: cfg.Phrase.CheckProfanity,
	}, gate)

	effects := make([]service.EffectSource, 0, len(cfg.Audio.Effects))
	for _, e := range cfg.Audio.Effects {
		effects = append(effects, service.EffectSource{URL: e.URL, Fallback: e.Fallback})
	}
	voices := service.NewTTSService(&service.TTSConfig{
		TTSURL:       cfg.Audio.TTSURL,
		Voice:        cfg.Audio.Voice,
		Timeout:      cfg.Audio.Timeout,
		Retries:      cfg.Audio.Retries,
		MinBytes:     cfg.Audio.MinBytes,
		TempDir:      cfg.Audio.TempDir,
		CleanupDelay: cfg.Audio.CleanupDelay,
		EffectGap:    cfg.Audio.EffectGap,
		Effects:      effects,
	}, gate)

	photos := service.NewPhotoService(&service.PhotoConfig{
		AssistantURL:    cfg.Photo.AssistantURL,
		AssistantModel:  cfg.Photo.AssistantModel,
		AssistantAPIKey: cfg.Photo.AssistantAPIKey,
		ScrapeURL:       cfg.Photo.ScrapeURL,
		Timeout:         cfg.Photo.Timeout,
		MinBytes:        cfg.Photo.MinBytes,
		MinWidth:        cfg.Photo.MinWidth,
		MinHeight:       cfg.Photo.MinHeight,
	}, gate)

	orch := service.NewOrchestrator(phrases, voices, photos)

	b, err := bot.New(&bot.Config{
		Token:          cfg.Telegram.Token,
		PollingTimeout: cfg.Telegram.PollingTimeout,
		Debug:          cfg.Telegram.Debug,
	}, cat, matcher, orch, limiter)
	if err != nil {
		logger.CtxError(ctx, "Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}
	logger.CtxInfo(ctx, "Telegram bot authorized: username=%s", b.Username())

	// Keep-alive HTTP surface for uptime monitors
	srv := api.NewServer(cfg.Server.Port, cfg.Server.Mode)
	go func() {
		if err := srv.Run(ctx); err != nil {
			logger.CtxError(ctx, "Keep-alive server failed: %v", err)
		}
	}()

	// Periodic eviction of idle per-user state
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				evicted := limiter.Sweep() + phrases.Sweep()
				if evicted > 0 {
					logger.CtxDebug(ctx, "Swept %d idle user records", evicted)
				}
			}
		}
	}()

	if err := b.Run(ctx); err != nil {
		logger.CtxError(ctx, "Bot stopped with error: %v", err)
		os.Exit(1)
	}
	logger.CtxInfo(ctx, "Shutdown complete")
}
