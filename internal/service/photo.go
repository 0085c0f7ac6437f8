package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	// Registered for image.DecodeConfig during the photo quality check.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/timmy/memezvukach/internal/domain"
	"github.com/timmy/memezvukach/internal/logger"
	"github.com/timmy/memezvukach/internal/prompts"
	"github.com/timmy/memezvukach/internal/remote"
)

// PhotoConfig holds configuration for the photo resolver.
type PhotoConfig struct {
	AssistantURL    string
	AssistantModel  string
	AssistantAPIKey string
	ScrapeURL       string
	Timeout         time.Duration
	MinBytes        int64
	MinWidth        int
	MinHeight       int
}

// PhotoService resolves an image URL for a meme: a web-search-capable
// assistant first, an image-search scrape as the fallback, the fixed
// not-found marker when neither produces an acceptable URL.
type PhotoService struct {
	client   *resty.Client
	gate     *remote.Gate
	cfg      PhotoConfig
	endpoint string
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewPhotoService creates a photo resolver.
// Parameters:
//   - cfg: resolver configuration.
//   - gate: shared outbound concurrency gate.
// Returns:
//   - *PhotoService: initialized service.
func NewPhotoService(cfg *PhotoConfig, gate *remote.Gate) *PhotoService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	client := remote.NewClient(cfg.Timeout)
	if cfg.AssistantAPIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.AssistantAPIKey)
	}

	baseURL := cfg.AssistantURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &PhotoService{
		client:   client,
		gate:     gate,
		cfg:      *cfg,
		endpoint: baseURL + "/chat/completions",
	}
}

// Find resolves an image URL for the meme names.
// Parameters:
//   - ctx: context for cancellation.
//   - nameEnglish: preferred lookup name.
//   - nameLocal: local display name.
// Returns:
//   - string: image URL, or domain.PhotoNotFound.
func (s *PhotoService) Find(ctx context.Context, nameEnglish, nameLocal string) string {
	if answer := s.askAssistant(ctx, nameEnglish, nameLocal); isImageURL(answer) {
		logger.CtxInfo(ctx, "Photo resolved by assistant: %s", answer)
		return answer
	}

	lookup := nameEnglish
	if lookup == "" {
		lookup = nameLocal
	}
	if found := s.scrape(ctx, lookup); found != "" {
		logger.CtxInfo(ctx, "Photo resolved by scrape: %s", found)
		return found
	}

	logger.CtxInfo(ctx, "No photo found for %q", lookup)
	return domain.PhotoNotFound
}

// askAssistant sends the constrained lookup request. Any failure or a reply
// that is not a single URL yields an empty string so the caller falls
// through to scraping.
func (s *PhotoService) askAssistant(ctx context.Context, nameEnglish, nameLocal string) string {
	req := chatRequest{
		Model: s.cfg.AssistantModel,
		Messages: []chatMessage{
			{Role: "system", Content: prompts.PhotoSystemPrompt},
			{Role: "user", Content: prompts.PhotoUserPrompt(nameEnglish, nameLocal)},
		},
		MaxTokens: 100,
	}

	var resp chatResponse
	err := s.gate.Do(ctx, func(ctx context.Context) error {
		httpResp, err := s.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&resp).
			Post(s.endpoint)
		if err != nil {
			return err
		}
		if httpResp.IsError() {
			if resp.Error != nil {
				return fmt.Errorf("assistant API error: HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
			}
			return &remote.StatusError{Code: httpResp.StatusCode()}
		}
		return nil
	})
	if err != nil {
		logger.CtxWarn(ctx, "Photo assistant call failed: %v", err)
		return ""
	}
	if resp.Error != nil || len(resp.Choices) == 0 {
		return ""
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == domain.PhotoNotFound {
		return ""
	}
	return answer
}

// imageLinkPattern pulls direct image links out of a search results page.
var imageLinkPattern = regexp.MustCompile(`https?://[^\s"'<>\\]+\.(?:jpe?g|png|gif|webp)`)

// maxScrapeCandidates bounds how many quality checks a single request runs.
const maxScrapeCandidates = 6

// scrape fetches an image-search results page and returns the first
// candidate URL passing the quality check. The first hit on the page is
// skipped: it is routinely a site logo rather than content.
func (s *PhotoService) scrape(ctx context.Context, name string) string {
	var page string
	err := s.gate.Do(ctx, func(ctx context.Context) error {
		resp, err := s.client.R().
			SetContext(ctx).
			SetQueryParam("q", name+" meme").
			Get(s.cfg.ScrapeURL)
		if err != nil {
			return err
		}
		if resp.IsError() {
			return &remote.StatusError{Code: resp.StatusCode()}
		}
		page = resp.String()
		return nil
	})
	if err != nil {
		logger.CtxWarn(ctx, "Image search scrape failed: %v", err)
		return ""
	}

	candidates := imageLinkPattern.FindAllString(page, maxScrapeCandidates+1)
	if len(candidates) > 1 {
		candidates = candidates[1:]
	}
	for _, candidate := range candidates {
		if s.passesQualityCheck(ctx, candidate) {
			return candidate
		}
	}
	return ""
}

// passesQualityCheck downloads the candidate and rejects tiny files and
// low-resolution images.
func (s *PhotoService) passesQualityCheck(ctx context.Context, imageURL string) bool {
	var body []byte
	err := s.gate.Do(ctx, func(ctx context.Context) error {
		resp, err := s.client.R().SetContext(ctx).Get(imageURL)
		if err != nil {
			return err
		}
		if resp.IsError() {
			return &remote.StatusError{Code: resp.StatusCode()}
		}
		body = resp.Body()
		return nil
	})
	if err != nil {
		logger.CtxWarn(ctx, "Photo candidate fetch failed: url=%s, error=%v", imageURL, err)
		return false
	}

	if int64(len(body)) < s.cfg.MinBytes {
		logger.CtxDebug(ctx, "Photo candidate too small: url=%s, size=%d", imageURL, len(body))
		return false
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		logger.CtxDebug(ctx, "Photo candidate undecodable: url=%s, error=%v", imageURL, err)
		return false
	}
	if cfg.Width < s.cfg.MinWidth || cfg.Height < s.cfg.MinHeight {
		logger.CtxDebug(ctx, "Photo candidate low resolution: url=%s, %dx%d", imageURL, cfg.Width, cfg.Height)
		return false
	}
	return true
}

// isImageURL reports whether the assistant reply is a single well-formed
// absolute http(s) URL.
func isImageURL(raw string) bool {
	if raw == "" || strings.ContainsAny(raw, " \n\t") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
