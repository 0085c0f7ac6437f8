package service

import (
	"context"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/timmy/memezvukach/internal/logger"
	"github.com/timmy/memezvukach/internal/prompts"
	"github.com/timmy/memezvukach/internal/remote"
)

// PhraseConfig holds configuration for the phrase generator.
type PhraseConfig struct {
	TextGenURL     string
	ProfanityURL   string
	Timeout        time.Duration
	Retries        int
	MaxLength      int
	HistorySize    int
	UserTTL        time.Duration
	MaxUsers       int
	CheckProfanity bool
}

// PhraseService produces one short decorative phrase per response. It
// prefers the remote text-generation endpoint and degrades to a local fixed
// list, tracking recent per-user phrases to avoid immediate repeats.
type PhraseService struct {
	client  *resty.Client
	gate    *remote.Gate
	cfg     PhraseConfig
	history *historyTable
}

// NewPhraseService creates a phrase service.
// Parameters:
//   - cfg: generator configuration.
//   - gate: shared outbound concurrency gate.
// Returns:
//   - *PhraseService: initialized service.
func NewPhraseService(cfg *PhraseConfig, gate *remote.Gate) *PhraseService {
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &PhraseService{
		client:  remote.NewClient(cfg.Timeout),
		gate:    gate,
		cfg:     *cfg,
		history: newHistoryTable(cfg.HistorySize, cfg.MaxUsers, cfg.UserTTL),
	}
}

// Generate returns a phrase for the user, remote first, local list as the
// degraded fallback. The chosen phrase is recorded in the user's bounded
// history. Never fails: some phrase always comes back.
// Parameters:
//   - ctx: context for cancellation.
//   - userID: Telegram user identifier keying the history.
// Returns:
//   - string: the chosen phrase.
func (s *PhraseService) Generate(ctx context.Context, userID int64) string {
	endpoint := s.cfg.TextGenURL + "/" + url.PathEscape(prompts.PhrasePrompt)

	for attempt := 1; attempt <= s.cfg.Retries; attempt++ {
		phrase, err := s.fetchRemote(ctx, endpoint)
		if err != nil {
			logger.CtxWarn(ctx, "Phrase generation attempt %d failed for user %d: %v", attempt, userID, err)
			continue
		}
		if !s.valid(userID, phrase) {
			logger.CtxWarn(ctx, "Invalid or repeated phrase for user %d: %q", userID, phrase)
			continue
		}
		if s.cfg.CheckProfanity && s.isProfane(ctx, phrase) {
			logger.CtxWarn(ctx, "Profane phrase discarded for user %d", userID)
			continue
		}
		s.history.Add(userID, phrase)
		logger.CtxInfo(ctx, "Generated phrase for user %d: %q", userID, phrase)
		return phrase
	}

	return s.fallback(ctx, userID)
}

// Sweep evicts stale user histories. Intended for periodic background calls.
func (s *PhraseService) Sweep() int {
	return s.history.Sweep()
}

func (s *PhraseService) fetchRemote(ctx context.Context, endpoint string) (string, error) {
	var body string
	err := s.gate.Do(ctx, func(ctx context.Context) error {
		resp, err := s.client.R().SetContext(ctx).Get(endpoint)
		if err != nil {
			return err
		}
		if resp.IsError() {
			return &remote.StatusError{Code: resp.StatusCode()}
		}
		body = strings.TrimSpace(resp.String())
		return nil
	})
	return body, err
}

func (s *PhraseService) valid(userID int64, phrase string) bool {
	if phrase == "" || len([]rune(phrase)) > s.cfg.MaxLength {
		return false
	}
	return !s.history.Contains(userID, phrase)
}

// isProfane asks the profanity endpoint for a boolean-like verdict. Any
// call failure counts as clean: profanity filtering is best-effort.
func (s *PhraseService) isProfane(ctx context.Context, phrase string) bool {
	if s.cfg.ProfanityURL == "" {
		return false
	}
	var verdict string
	err := s.gate.Do(ctx, func(ctx context.Context) error {
		resp, err := s.client.R().
			SetContext(ctx).
			SetQueryParam("text", phrase).
			Get(s.cfg.ProfanityURL)
		if err != nil {
			return err
		}
		verdict = strings.TrimSpace(strings.ToLower(resp.String()))
		return nil
	})
	if err != nil {
		logger.CtxWarn(ctx, "Profanity check failed: %v", err)
		return false
	}
	return verdict == "true"
}

// fallback picks from the fixed local list, excluding phrases the user has
// already seen; when the whole list is exhausted the exclusion set resets.
func (s *PhraseService) fallback(ctx context.Context, userID int64) string {
	available := s.availablePhrases(userID)
	if len(available) == 0 {
		s.history.Clear(userID)
		available = prompts.FallbackPhrases
	}

	phrase := available[rand.Intn(len(available))]
	s.history.Add(userID, phrase)
	logger.CtxInfo(ctx, "Selected local phrase for user %d: %q", userID, phrase)
	return phrase
}

func (s *PhraseService) availablePhrases(userID int64) []string {
	used := s.history.Recent(userID)
	usedSet := make(map[string]bool, len(used))
	for _, p := range used {
		usedSet[p] = true
	}

	var available []string
	for _, p := range prompts.FallbackPhrases {
		if !usedSet[p] {
			available = append(available, p)
		}
	}
	return available
}
