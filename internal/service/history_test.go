package service

import (
	"fmt"
	"testing"
	"time"
)

func TestHistoryTable_AddAndContains(t *testing.T) {
	h := newHistoryTable(3, 100, time.Hour)

	if h.Contains(1, "а") {
		t.Fatal("empty table should not contain anything")
	}

	h.Add(1, "а")
	h.Add(1, "б")
	if !h.Contains(1, "а") || !h.Contains(1, "б") {
		t.Error("added phrases should be reported")
	}
	if h.Contains(2, "а") {
		t.Error("histories must be isolated per user")
	}
}

func TestHistoryTable_CapacityTruncatesOldest(t *testing.T) {
	h := newHistoryTable(3, 100, time.Hour)

	for i := 0; i < 5; i++ {
		h.Add(1, fmt.Sprintf("фраза %d", i))
	}

	recent := h.Recent(1)
	if len(recent) != 3 {
		t.Fatalf("history length = %d, want 3", len(recent))
	}
	if h.Contains(1, "фраза 0") || h.Contains(1, "фраза 1") {
		t.Error("oldest phrases should have been truncated")
	}
	if recent[0] != "фраза 2" || recent[2] != "фраза 4" {
		t.Errorf("unexpected survivors: %v", recent)
	}
}

func TestHistoryTable_Clear(t *testing.T) {
	h := newHistoryTable(3, 100, time.Hour)
	h.Add(1, "а")
	h.Clear(1)

	if h.Contains(1, "а") {
		t.Error("cleared history should be empty")
	}
	// The user entry itself survives a clear.
	if h.Len() != 1 {
		t.Errorf("tracked users = %d, want 1", h.Len())
	}
}

func TestHistoryTable_SweepEvictsIdleUsers(t *testing.T) {
	h := newHistoryTable(3, 100, time.Hour)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	h.now = func() time.Time { return now }

	h.Add(1, "а")
	now = base.Add(2 * time.Hour)
	h.Add(2, "б")

	if removed := h.Sweep(); removed != 1 {
		t.Fatalf("Sweep removed %d, want 1", removed)
	}
	if h.Len() != 1 || !h.Contains(2, "б") {
		t.Error("recently active user should survive the sweep")
	}
}

func TestHistoryTable_EvictsLRUWhenFull(t *testing.T) {
	h := newHistoryTable(3, 2, time.Hour)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	h.now = func() time.Time { return now }

	h.Add(1, "а")
	now = base.Add(time.Minute)
	h.Add(2, "б")
	now = base.Add(2 * time.Minute)
	h.Add(3, "в")

	if h.Len() != 2 {
		t.Fatalf("tracked users = %d, want 2", h.Len())
	}
	if h.Contains(1, "а") {
		t.Error("least recently active user should have been evicted")
	}
	if !h.Contains(2, "б") || !h.Contains(3, "в") {
		t.Error("newer users should survive eviction")
	}
}
