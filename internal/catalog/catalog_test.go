package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memes.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return path
}

func TestCatalog_LazyLoad(t *testing.T) {
	path := writeCatalogFile(t, `{"memes": [
		{"name": "Бомбардиро Крокодило", "name_english": "Bombardiro Crocodilo", "description": "крокодил бомбардировщик", "tiktok_phrase": "bombardare tutto"},
		{"name": "Тралалеро Тралала", "name_english": "Tralalero Tralala", "description": "акула в кроссовках", "tiktok_phrase": "tralalero tralala"}
	]}`)
	c := New(path)

	if c.Len() != 0 {
		t.Errorf("Len before first read = %d, want 0", c.Len())
	}

	memes := c.Memes(context.Background())
	if len(memes) != 2 {
		t.Fatalf("loaded %d memes, want 2", len(memes))
	}
	if memes[0].Name != "Бомбардиро Крокодило" {
		t.Errorf("first meme = %q", memes[0].Name)
	}
	if memes[1].NameEnglish != "Tralalero Tralala" {
		t.Errorf("second meme english name = %q", memes[1].NameEnglish)
	}
	if c.Len() != 2 {
		t.Errorf("Len after read = %d, want 2", c.Len())
	}
}

func TestCatalog_MissingFileYieldsEmpty(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "nope.json"))
	if memes := c.Memes(context.Background()); len(memes) != 0 {
		t.Errorf("missing file should yield empty catalog, got %d entries", len(memes))
	}
}

func TestCatalog_MalformedFileYieldsEmpty(t *testing.T) {
	path := writeCatalogFile(t, `{"memes": [`)
	c := New(path)
	if memes := c.Memes(context.Background()); len(memes) != 0 {
		t.Errorf("malformed file should yield empty catalog, got %d entries", len(memes))
	}
}

func TestCatalog_ReloadReplacesEntries(t *testing.T) {
	path := writeCatalogFile(t, `{"memes": [{"name": "Старый"}]}`)
	c := New(path)

	if memes := c.Memes(context.Background()); len(memes) != 1 || memes[0].Name != "Старый" {
		t.Fatalf("unexpected initial load: %v", memes)
	}

	next := `{"memes": [{"name": "Новый"}, {"name": "Ещё один"}]}`
	if err := os.WriteFile(path, []byte(next), 0o644); err != nil {
		t.Fatalf("failed to rewrite catalog: %v", err)
	}

	memes := c.Reload(context.Background())
	if len(memes) != 2 || memes[0].Name != "Новый" {
		t.Fatalf("reload did not replace entries: %v", memes)
	}
}
