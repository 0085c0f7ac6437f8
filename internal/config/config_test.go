package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingTokenIsFatal(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	if _, err := Load(""); err == nil {
		t.Fatal("Load should fail without a Telegram token")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:test-token")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Telegram.Token != "123:test-token" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("server port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Match.NameCutoff != 0.3 || cfg.Match.NameAcceptRatio != 0.6 || cfg.Match.DescCutoff != 0.5 {
		t.Errorf("match thresholds = %+v", cfg.Match)
	}
	if cfg.RateLimit.Window != 10*time.Second || cfg.RateLimit.MaxRequests != 5 {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	if cfg.RateLimit.FirstBan != 60*time.Second || cfg.RateLimit.RepeatBan != 300*time.Second {
		t.Errorf("ban durations = %+v", cfg.RateLimit)
	}
	if cfg.Audio.MinBytes != 1000 {
		t.Errorf("audio min bytes = %d, want 1000", cfg.Audio.MinBytes)
	}
	if cfg.Phrase.HistorySize != 20 {
		t.Errorf("phrase history size = %d, want 20", cfg.Phrase.HistorySize)
	}
	if cfg.Outbound.MaxConcurrent != 4 {
		t.Errorf("outbound max concurrent = %d, want 4", cfg.Outbound.MaxConcurrent)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:test-token")
	t.Setenv("PORT", "8080")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
phrase:
  max_length: 64
rate_limit:
  max_requests: 3
audio:
  effects:
    - url: https://cdn.example.com/boom.mp3
      fallback: https://mirror.example.com/boom.mp3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Phrase.MaxLength != 64 {
		t.Errorf("phrase max length = %d, want 64", cfg.Phrase.MaxLength)
	}
	if cfg.RateLimit.MaxRequests != 3 {
		t.Errorf("rate limit max requests = %d, want 3", cfg.RateLimit.MaxRequests)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("PORT env should override the default, got %d", cfg.Server.Port)
	}
	if len(cfg.Audio.Effects) != 1 || cfg.Audio.Effects[0].URL != "https://cdn.example.com/boom.mp3" {
		t.Errorf("effects = %+v", cfg.Audio.Effects)
	}
}
