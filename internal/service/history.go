package service

import (
	"sync"
	"time"
)

// userHistory keeps one user's recent phrases plus the last time the user
// was active, for eviction.
type userHistory struct {
	phrases  []string
	lastSeen time.Time
}

// historyTable is the per-user phrase history store. Histories are bounded
// per user, and whole users are evicted when idle past the TTL or when the
// table outgrows maxUsers (oldest activity first), so the table does not
// grow for the lifetime of the process.
type historyTable struct {
	mu       sync.Mutex
	users    map[int64]*userHistory
	capacity int // max phrases kept per user
	maxUsers int
	ttl      time.Duration
	now      func() time.Time
}

func newHistoryTable(capacity, maxUsers int, ttl time.Duration) *historyTable {
	if capacity <= 0 {
		capacity = 20
	}
	if maxUsers <= 0 {
		maxUsers = 10000
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &historyTable{
		users:    make(map[int64]*userHistory),
		capacity: capacity,
		maxUsers: maxUsers,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Contains reports whether the phrase is in the user's recent history.
func (t *historyTable) Contains(userID int64, phrase string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.users[userID]
	if !ok {
		return false
	}
	for _, p := range h.phrases {
		if p == phrase {
			return true
		}
	}
	return false
}

// Recent returns a copy of the user's history.
func (t *historyTable) Recent(userID int64) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.users[userID]
	if !ok {
		return nil
	}
	out := make([]string, len(h.phrases))
	copy(out, h.phrases)
	return out
}

// Add appends a phrase, truncating from the oldest entry when over capacity.
func (t *historyTable) Add(userID int64, phrase string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.users[userID]
	if !ok {
		t.evictLockedIfFull()
		h = &userHistory{}
		t.users[userID] = h
	}
	h.lastSeen = t.now()
	h.phrases = append(h.phrases, phrase)
	if len(h.phrases) > t.capacity {
		h.phrases = h.phrases[len(h.phrases)-t.capacity:]
	}
}

// Clear resets one user's history. Used when the fallback list is exhausted
// so a phrase may legally repeat.
func (t *historyTable) Clear(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h, ok := t.users[userID]; ok {
		h.phrases = nil
		h.lastSeen = t.now()
	}
}

// Sweep evicts users idle longer than the TTL and returns how many were removed.
func (t *historyTable) Sweep() int {
	cutoff := t.now().Add(-t.ttl)

	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, h := range t.users {
		if h.lastSeen.Before(cutoff) {
			delete(t.users, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked users.
func (t *historyTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.users)
}

// evictLockedIfFull drops the least recently active user to make room.
// Caller must hold the mutex.
func (t *historyTable) evictLockedIfFull() {
	if len(t.users) < t.maxUsers {
		return
	}
	var oldestID int64
	var oldest time.Time
	first := true
	for id, h := range t.users {
		if first || h.lastSeen.Before(oldest) {
			oldestID = id
			oldest = h.lastSeen
			first = false
		}
	}
	if !first {
		delete(t.users, oldestID)
	}
}
