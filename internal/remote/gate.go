package remote

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/semaphore"
)

// Gate bounds the number of simultaneous outbound calls across all remote
// dependencies. The hosted endpoints the bot talks to are themselves
// rate-limited, so a handful of shared slots keeps retries from stampeding.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate creates a gate admitting at most n concurrent calls.
// Parameters:
//   - n: slot count; values below 1 fall back to 4.
// Returns:
//   - *Gate: initialized gate.
func NewGate(n int64) *Gate {
	if n < 1 {
		n = 4
	}
	return &Gate{sem: semaphore.NewWeighted(n)}
}

// Do runs fn while holding one slot. Acquisition respects ctx, so a caller
// timeout covers both the wait and the call itself.
// Parameters:
//   - ctx: caller context with the per-call deadline.
//   - fn: the outbound call to run.
// Returns:
//   - error: acquisition failure or fn's error.
func (g *Gate) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer g.sem.Release(1)
	return fn(ctx)
}

// NewClient builds a resty client with the standard per-call timeout applied.
// Every remote dependency gets its own client so timeouts stay independent.
// Parameters:
//   - timeout: per-call timeout.
// Returns:
//   - *resty.Client: configured client.
func NewClient(timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "memezvukach/1.0")
	return client
}
