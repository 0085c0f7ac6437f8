package match

import (
	"context"
	"errors"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/timmy/memezvukach/internal/domain"
	"github.com/timmy/memezvukach/internal/logger"
)

// ErrNotFound is returned when no catalog entry is similar enough to the query.
var ErrNotFound = errors.New("no matching meme")

// Config holds the similarity thresholds. The defaults reflect the most
// common tuning; all three are deliberately adjustable.
type Config struct {
	// NameCutoff is the minimum name similarity for a candidate to be
	// considered at all.
	NameCutoff float64
	// NameAcceptRatio accepts the name candidate outright when reached.
	NameAcceptRatio float64
	// DescCutoff is the minimum description similarity for the secondary
	// search to override a weak name match.
	DescCutoff float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		NameCutoff:      0.3,
		NameAcceptRatio: 0.6,
		DescCutoff:      0.5,
	}
}

// Matcher finds the best catalog entry for free-text input. Matching is a
// greedy single-pass best-match policy: name similarity first, description
// similarity as the fallback, catalog order breaking ties.
type Matcher struct {
	cfg Config
}

// New creates a matcher with the given thresholds.
// Parameters:
//   - cfg: similarity thresholds; zero values are replaced with defaults.
// Returns:
//   - *Matcher: initialized matcher.
func New(cfg Config) *Matcher {
	def := DefaultConfig()
	if cfg.NameCutoff == 0 {
		cfg.NameCutoff = def.NameCutoff
	}
	if cfg.NameAcceptRatio == 0 {
		cfg.NameAcceptRatio = def.NameAcceptRatio
	}
	if cfg.DescCutoff == 0 {
		cfg.DescCutoff = def.DescCutoff
	}
	return &Matcher{cfg: cfg}
}

// Find returns the catalog entry best matching the query.
// Parameters:
//   - ctx: context used for logging only.
//   - query: free-text user input.
//   - memes: catalog entries in stable catalog order.
// Returns:
//   - *domain.MemeRecord: matched entry.
//   - error: ErrNotFound when nothing clears the thresholds.
func (m *Matcher) Find(ctx context.Context, query string, memes []domain.MemeRecord) (*domain.MemeRecord, error) {
	query = normalize(query)
	if query == "" || len(memes) == 0 {
		return nil, ErrNotFound
	}

	byName, nameRatio := m.closestByName(query, memes)
	if byName != nil && nameRatio >= m.cfg.NameAcceptRatio {
		logger.CtxInfo(ctx, "Matched meme by name: query=%q, meme=%q, ratio=%.2f", query, byName.Name, nameRatio)
		return byName, nil
	}

	// No confident name match: fall through to description similarity.
	// A strong description hit overrides a weak name candidate.
	if byDesc, descRatio := m.closestByDescription(query, memes); byDesc != nil {
		logger.CtxInfo(ctx, "Matched meme by description: query=%q, meme=%q, ratio=%.2f", query, byDesc.Name, descRatio)
		return byDesc, nil
	}

	// Weak name match is the last resort.
	if byName != nil {
		logger.CtxInfo(ctx, "Matched meme by weak name: query=%q, meme=%q, ratio=%.2f", query, byName.Name, nameRatio)
		return byName, nil
	}

	logger.CtxInfo(ctx, "No meme matched: query=%q", query)
	return nil, ErrNotFound
}

// closestByName returns the best single name candidate above NameCutoff,
// first-encountered record winning ties.
func (m *Matcher) closestByName(query string, memes []domain.MemeRecord) (*domain.MemeRecord, float64) {
	var best *domain.MemeRecord
	bestRatio := 0.0
	for i := range memes {
		r := Ratio(query, normalize(memes[i].Name))
		if r >= m.cfg.NameCutoff && r > bestRatio {
			bestRatio = r
			best = &memes[i]
		}
	}
	return best, bestRatio
}

func (m *Matcher) closestByDescription(query string, memes []domain.MemeRecord) (*domain.MemeRecord, float64) {
	var best *domain.MemeRecord
	bestRatio := 0.0
	for i := range memes {
		r := Ratio(query, normalize(memes[i].Description))
		if r > m.cfg.DescCutoff && r > bestRatio {
			bestRatio = r
			best = &memes[i]
		}
	}
	return best, bestRatio
}

// Ratio computes a character-level similarity ratio in [0,1] between two
// text fragments using difflib's SequenceMatcher.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitChars(a), splitChars(b)).Ratio()
}

// splitChars splits a string into single-rune elements so the line-oriented
// SequenceMatcher compares characters, matching difflib.SequenceMatcher
// behavior on plain strings.
func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
