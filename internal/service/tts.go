package service

import (
	"context"
	"math/rand"
	"net/url"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/timmy/memezvukach/internal/audio"
	"github.com/timmy/memezvukach/internal/logger"
	"github.com/timmy/memezvukach/internal/prompts"
	"github.com/timmy/memezvukach/internal/remote"
)

// EffectSource is a primary+fallback URL pair for one sound-effect clip.
type EffectSource struct {
	URL      string
	Fallback string
}

// TTSConfig holds configuration for voice synthesis.
type TTSConfig struct {
	TTSURL       string
	Voice        string
	Timeout      time.Duration
	Retries      int
	MinBytes     int64
	TempDir      string
	CleanupDelay time.Duration
	EffectGap    time.Duration
	Effects      []EffectSource
}

// Voice is the rendered result: the file to send plus every temporary
// resource backing it. Release is guaranteed to run on all exit paths of a
// request, after the grace delay.
type Voice struct {
	Path  string
	delay time.Duration
	temps []*audio.TempFile
}

// Release waits out the grace delay, then deletes all temporary files.
// Safe to call more than once.
func (v *Voice) Release(ctx context.Context) {
	if v == nil {
		return
	}
	if v.delay > 0 {
		time.Sleep(v.delay)
		v.delay = 0
	}
	for _, t := range v.temps {
		t.Release(ctx)
	}
}

// TTSService synthesizes spoken meme lines through the remote TTS endpoint
// and optionally appends a sound-effect tail.
type TTSService struct {
	client *resty.Client
	gate   *remote.Gate
	cfg    TTSConfig
}

// NewTTSService creates a TTS service.
// Parameters:
//   - cfg: synthesis configuration.
//   - gate: shared outbound concurrency gate.
// Returns:
//   - *TTSService: initialized service.
func NewTTSService(cfg *TTSConfig, gate *remote.Gate) *TTSService {
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	if cfg.MinBytes <= 0 {
		cfg.MinBytes = 1000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &TTSService{
		client: remote.NewClient(cfg.Timeout),
		gate:   gate,
		cfg:    *cfg,
	}
}

// Render synthesizes the voice line and, when effects are configured,
// appends one randomly chosen clip after a short gap. Effect failures are
// non-fatal: the plain speech file still counts as success. Returns false
// only when speech synthesis itself never succeeds.
// Parameters:
//   - ctx: context for cancellation.
//   - text: the voice line to speak.
// Returns:
//   - *Voice: rendered voice resource; nil on failure.
//   - bool: whether synthesis succeeded.
func (s *TTSService) Render(ctx context.Context, text string) (*Voice, bool) {
	speech, err := audio.NewTempFile(s.cfg.TempDir, "speech-*.mp3")
	if err != nil {
		logger.CtxError(ctx, "Failed to create temp audio file: %v", err)
		return nil, false
	}

	if !s.synthesize(ctx, text, speech.Path()) {
		speech.Release(ctx)
		return nil, false
	}

	voice := &Voice{
		Path:  speech.Path(),
		delay: s.cfg.CleanupDelay,
		temps: []*audio.TempFile{speech},
	}

	if len(s.cfg.Effects) > 0 {
		s.overlayEffect(ctx, voice)
	}
	return voice, true
}

// synthesize downloads speech for the prompt, retrying on failure. A file
// below MinBytes is a failed attempt, not a success with a tiny payload.
func (s *TTSService) synthesize(ctx context.Context, text, outPath string) bool {
	prompt := prompts.TTSPrompt(text)
	endpoint := s.cfg.TTSURL + "/" + url.PathEscape(prompt)

	for attempt := 1; attempt <= s.cfg.Retries; attempt++ {
		err := s.gate.Do(ctx, func(ctx context.Context) error {
			resp, err := s.client.R().
				SetContext(ctx).
				SetQueryParams(map[string]string{
					"model":    "openai-audio",
					"voice":    s.cfg.Voice,
					"attitude": "aggressive",
				}).
				SetOutput(outPath).
				Get(endpoint)
			if err != nil {
				return err
			}
			if resp.IsError() {
				return &remote.StatusError{Code: resp.StatusCode()}
			}
			return nil
		})
		if err != nil {
			logger.CtxWarn(ctx, "TTS attempt %d failed: %v", attempt, err)
			continue
		}

		info, err := os.Stat(outPath)
		if err != nil {
			logger.CtxWarn(ctx, "TTS attempt %d produced no file: %v", attempt, err)
			continue
		}
		if info.Size() < s.cfg.MinBytes {
			logger.CtxWarn(ctx, "TTS attempt %d produced undersized file: %d bytes", attempt, info.Size())
			continue
		}

		logger.CtxInfo(ctx, "Audio synthesized: %s, size=%d bytes", outPath, info.Size())
		return true
	}
	return false
}

// overlayEffect downloads one random effect clip and appends it after the
// speech. Any failure leaves the voice unchanged.
func (s *TTSService) overlayEffect(ctx context.Context, voice *Voice) {
	src := s.cfg.Effects[rand.Intn(len(s.cfg.Effects))]

	effect, err := audio.NewTempFile(s.cfg.TempDir, "effect-*.mp3")
	if err != nil {
		logger.CtxWarn(ctx, "Failed to create effect temp file: %v", err)
		return
	}

	if !s.downloadEffect(ctx, src, effect.Path()) {
		effect.Release(ctx)
		return
	}

	mixed, err := audio.NewTempFile(s.cfg.TempDir, "voice-*.wav")
	if err != nil {
		logger.CtxWarn(ctx, "Failed to create mixed temp file: %v", err)
		effect.Release(ctx)
		return
	}

	if err := audio.AppendEffect(voice.Path, effect.Path(), mixed.Path(), s.cfg.EffectGap); err != nil {
		logger.CtxWarn(ctx, "Effect overlay failed, keeping plain speech: %v", err)
		effect.Release(ctx)
		mixed.Release(ctx)
		return
	}

	effect.Release(ctx)
	voice.Path = mixed.Path()
	voice.temps = append(voice.temps, mixed)
	logger.CtxInfo(ctx, "Effect appended: %s", mixed.Path())
}

// downloadEffect fetches the clip, trying the primary URL then the fallback.
func (s *TTSService) downloadEffect(ctx context.Context, src EffectSource, outPath string) bool {
	for _, u := range []string{src.URL, src.Fallback} {
		if u == "" {
			continue
		}
		err := s.gate.Do(ctx, func(ctx context.Context) error {
			resp, err := s.client.R().SetContext(ctx).SetOutput(outPath).Get(u)
			if err != nil {
				return err
			}
			if resp.IsError() {
				return &remote.StatusError{Code: resp.StatusCode()}
			}
			return nil
		})
		if err != nil {
			logger.CtxWarn(ctx, "Effect download failed from %s: %v", u, err)
			continue
		}
		return true
	}
	return false
}
