package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/timmy/memezvukach/internal/prompts"
	"github.com/timmy/memezvukach/internal/remote"
)

func newPhraseServiceForTest(t *testing.T, textGen http.HandlerFunc, profanity http.HandlerFunc) *PhraseService {
	t.Helper()

	cfg := PhraseConfig{
		Timeout:     2 * time.Second,
		Retries:     3,
		MaxLength:   100,
		HistorySize: 20,
	}
	if textGen != nil {
		srv := httptest.NewServer(textGen)
		t.Cleanup(srv.Close)
		cfg.TextGenURL = srv.URL
	}
	if profanity != nil {
		srv := httptest.NewServer(profanity)
		t.Cleanup(srv.Close)
		cfg.ProfanityURL = srv.URL
		cfg.CheckProfanity = true
	}

	return NewPhraseService(&cfg, remote.NewGate(4))
}

func isFallbackPhrase(s string) bool {
	for _, p := range prompts.FallbackPhrases {
		if p == s {
			return true
		}
	}
	return false
}

func TestPhraseService_RemotePhraseAccepted(t *testing.T) {
	svc := newPhraseServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  Мем пушка, брат!  \n"))
	}, nil)

	got := svc.Generate(context.Background(), 1)
	if got != "Мем пушка, брат!" {
		t.Fatalf("Generate = %q, want trimmed remote phrase", got)
	}
	if !svc.history.Contains(1, got) {
		t.Error("accepted phrase should be recorded in history")
	}
}

func TestPhraseService_RepeatedPhraseFallsBack(t *testing.T) {
	calls := 0
	svc := newPhraseServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("одна и та же фраза"))
	}, nil)

	first := svc.Generate(context.Background(), 1)
	if first != "одна и та же фраза" {
		t.Fatalf("first Generate = %q", first)
	}

	// Every retry now returns a phrase already in history.
	second := svc.Generate(context.Background(), 1)
	if second == first {
		t.Fatal("repeated remote phrase should not be returned again")
	}
	if !isFallbackPhrase(second) {
		t.Errorf("expected a local fallback phrase, got %q", second)
	}
	if calls != 4 {
		t.Errorf("remote endpoint called %d times, want 1+3 retries", calls)
	}
}

func TestPhraseService_OverlongPhraseFallsBack(t *testing.T) {
	svc := newPhraseServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("а", 101)))
	}, nil)

	got := svc.Generate(context.Background(), 1)
	if !isFallbackPhrase(got) {
		t.Errorf("overlong remote phrase should fall back to the local list, got %q", got)
	}
}

func TestPhraseService_ProfanePhraseFallsBack(t *testing.T) {
	svc := newPhraseServiceForTest(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("грязная фраза"))
		},
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("text") == "" {
				t.Error("profanity check called without text parameter")
			}
			w.Write([]byte("true"))
		})

	got := svc.Generate(context.Background(), 1)
	if got == "грязная фраза" {
		t.Fatal("profane phrase must not be returned")
	}
	if !isFallbackPhrase(got) {
		t.Errorf("expected a local fallback phrase, got %q", got)
	}
}

func TestPhraseService_ProfanityCheckFailureCountsClean(t *testing.T) {
	svc := newPhraseServiceForTest(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("нормальная фраза"))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

	if got := svc.Generate(context.Background(), 1); got != "нормальная фраза" {
		t.Errorf("Generate = %q, profanity check failure should not discard the phrase", got)
	}
}

func TestPhraseService_RemoteErrorFallsBack(t *testing.T) {
	svc := newPhraseServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, nil)

	got := svc.Generate(context.Background(), 1)
	if !isFallbackPhrase(got) {
		t.Errorf("expected a local fallback phrase, got %q", got)
	}
}

func TestPhraseService_FallbackExhaustionResetsHistory(t *testing.T) {
	svc := newPhraseServiceForTest(t, nil, nil)
	svc.cfg.HistorySize = len(prompts.FallbackPhrases) + 1
	svc.history = newHistoryTable(svc.cfg.HistorySize, 100, time.Hour)

	for _, p := range prompts.FallbackPhrases {
		svc.history.Add(1, p)
	}

	got := svc.fallback(context.Background(), 1)
	if !isFallbackPhrase(got) {
		t.Fatalf("fallback after exhaustion returned %q", got)
	}
	recent := svc.history.Recent(1)
	if len(recent) != 1 || recent[0] != got {
		t.Errorf("history should have been reset to just the new phrase, got %v", recent)
	}
}
