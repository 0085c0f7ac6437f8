package service

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/timmy/memezvukach/internal/remote"
)

func newTTSServiceForTest(t *testing.T, handler http.HandlerFunc) (*TTSService, string) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := TTSConfig{
		TTSURL:   srv.URL,
		Voice:    "echo",
		Timeout:  2 * time.Second,
		Retries:  3,
		MinBytes: 1000,
		TempDir:  dir,
	}
	return NewTTSService(&cfg, remote.NewGate(4)), dir
}

func TestTTSService_RenderSuccess(t *testing.T) {
	body := bytes.Repeat([]byte{0xff}, 2048)
	svc, _ := newTTSServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("model"); got != "openai-audio" {
			t.Errorf("model query param = %q", got)
		}
		if got := r.URL.Query().Get("voice"); got != "echo" {
			t.Errorf("voice query param = %q", got)
		}
		w.Write(body)
	})

	voice, ok := svc.Render(context.Background(), "Тралалеро Тралала!")
	if !ok {
		t.Fatal("Render should succeed")
	}

	info, err := os.Stat(voice.Path)
	if err != nil {
		t.Fatalf("voice file missing: %v", err)
	}
	if info.Size() != int64(len(body)) {
		t.Errorf("voice file size = %d, want %d", info.Size(), len(body))
	}

	voice.Release(context.Background())
	if _, err := os.Stat(voice.Path); !os.IsNotExist(err) {
		t.Error("Release should delete the voice file")
	}
}

func TestTTSService_UndersizedBodyIsFailure(t *testing.T) {
	calls := 0
	svc, dir := newTTSServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("tiny"))
	})

	voice, ok := svc.Render(context.Background(), "텍스트")
	if ok || voice != nil {
		t.Fatal("undersized responses must fail synthesis")
	}
	if calls != 3 {
		t.Errorf("synthesis attempted %d times, want 3", calls)
	}

	// The temp file must not leak on failure.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir not cleaned up: %d files left", len(entries))
	}
}

func TestTTSService_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	body := bytes.Repeat([]byte{0x01}, 1500)
	svc, _ := newTTSServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(body)
	})

	voice, ok := svc.Render(context.Background(), "привет")
	if !ok {
		t.Fatalf("Render should succeed on the third attempt, calls=%d", calls)
	}
	defer voice.Release(context.Background())

	if calls != 3 {
		t.Errorf("synthesis attempted %d times, want 3", calls)
	}
	if filepath.Ext(voice.Path) != ".mp3" {
		t.Errorf("voice path = %q, want an mp3 temp file", voice.Path)
	}
}
