package catalog

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/timmy/memezvukach/internal/domain"
	"github.com/timmy/memezvukach/internal/logger"
)

// document mirrors the on-disk catalog format: {"memes": [...]}.
type document struct {
	Memes []domain.MemeRecord `json:"memes"`
}

// Catalog loads meme records from a JSON document and caches them
// process-wide. An unreadable or missing file yields an empty catalog,
// never an error surfaced to callers: consumers are required to handle
// the empty state anyway.
type Catalog struct {
	path string

	mu     sync.RWMutex
	memes  []domain.MemeRecord
	loaded bool
}

// New creates a catalog backed by the given JSON file path.
// Parameters:
//   - path: catalog document location.
// Returns:
//   - *Catalog: lazy catalog; nothing is read until the first Memes call.
func New(path string) *Catalog {
	return &Catalog{path: path}
}

// Memes returns the cached records, loading them on first use.
// Parameters:
//   - ctx: context used for logging only; loading is a local file read.
// Returns:
//   - []domain.MemeRecord: catalog entries, possibly empty.
func (c *Catalog) Memes(ctx context.Context) []domain.MemeRecord {
	c.mu.RLock()
	if c.loaded {
		memes := c.memes
		c.mu.RUnlock()
		return memes
	}
	c.mu.RUnlock()

	return c.Reload(ctx)
}

// Reload re-reads the document and replaces the cached records wholesale.
// Parameters:
//   - ctx: context used for logging only.
// Returns:
//   - []domain.MemeRecord: freshly loaded entries, possibly empty.
func (c *Catalog) Reload(ctx context.Context) []domain.MemeRecord {
	memes := c.read(ctx)

	c.mu.Lock()
	c.memes = memes
	c.loaded = true
	c.mu.Unlock()

	return memes
}

// Len returns the number of cached records without triggering a load.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memes)
}

func (c *Catalog) read(ctx context.Context) []domain.MemeRecord {
	data, err := os.ReadFile(c.path)
	if err != nil {
		logger.CtxError(ctx, "Failed to read catalog file %s: %v", c.path, err)
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.CtxError(ctx, "Failed to parse catalog file %s: %v", c.path, err)
		return nil
	}

	logger.CtxInfo(ctx, "Catalog loaded: path=%s, memes=%d", c.path, len(doc.Memes))
	return doc.Memes
}
