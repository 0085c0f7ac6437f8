package ratelimit

import (
	"sync"
	"time"
)

// Config holds limiter tuning.
type Config struct {
	Window      time.Duration // sliding window length
	MaxRequests int           // requests allowed inside the window
	FirstBan    time.Duration // cooldown for a first offense
	RepeatBan   time.Duration // cooldown once the user has been banned before
	UserTTL     time.Duration // idle time after which per-user state is evicted
}

// DefaultConfig returns the standard limiter tuning.
func DefaultConfig() Config {
	return Config{
		Window:      10 * time.Second,
		MaxRequests: 5,
		FirstBan:    60 * time.Second,
		RepeatBan:   300 * time.Second,
		UserTTL:     24 * time.Hour,
	}
}

// userState is the per-user window plus ban bookkeeping.
type userState struct {
	stamps     []time.Time
	banUntil   time.Time
	everBanned bool
	lastSeen   time.Time
}

// Limiter is a fixed-window per-user rate limiter with escalating bans.
// Idle users are evicted after UserTTL so the table does not grow for the
// lifetime of the process.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu    sync.Mutex
	users map[int64]*userState
}

// New creates a limiter.
// Parameters:
//   - cfg: limiter tuning; zero fields are replaced with defaults.
// Returns:
//   - *Limiter: initialized limiter.
func New(cfg Config) *Limiter {
	def := DefaultConfig()
	if cfg.Window == 0 {
		cfg.Window = def.Window
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = def.MaxRequests
	}
	if cfg.FirstBan == 0 {
		cfg.FirstBan = def.FirstBan
	}
	if cfg.RepeatBan == 0 {
		cfg.RepeatBan = def.RepeatBan
	}
	if cfg.UserTTL == 0 {
		cfg.UserTTL = def.UserTTL
	}
	return &Limiter{
		cfg:   cfg,
		now:   time.Now,
		users: make(map[int64]*userState),
	}
}

// Check records a request and decides whether it may proceed.
// Parameters:
//   - userID: Telegram user identifier.
// Returns:
//   - bool: true when the request is allowed.
//   - time.Duration: remaining cooldown when rejected, zero otherwise.
func (l *Limiter) Check(userID int64) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.users[userID]
	if !ok {
		st = &userState{}
		l.users[userID] = st
	}
	st.lastSeen = now

	// Active ban takes precedence over everything else.
	if st.banUntil.After(now) {
		return false, st.banUntil.Sub(now)
	}

	// Prune stamps older than the window, then record this request.
	cutoff := now.Add(-l.cfg.Window)
	kept := st.stamps[:0]
	for _, ts := range st.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	st.stamps = append(kept, now)

	if len(st.stamps) > l.cfg.MaxRequests {
		ban := l.cfg.FirstBan
		if st.everBanned {
			ban = l.cfg.RepeatBan
		}
		st.banUntil = now.Add(ban)
		st.everBanned = true
		st.stamps = nil
		return false, ban
	}

	return true, 0
}

// Sweep evicts users idle longer than UserTTL and returns how many were
// removed. Intended to be called periodically from a background goroutine.
func (l *Limiter) Sweep() int {
	cutoff := l.now().Add(-l.cfg.UserTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, st := range l.users {
		if st.lastSeen.Before(cutoff) && !st.banUntil.After(l.now()) {
			delete(l.users, id)
			removed++
		}
	}
	return removed
}

// Users returns the number of tracked users.
func (l *Limiter) Users() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.users)
}
