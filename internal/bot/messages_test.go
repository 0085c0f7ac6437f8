package bot

import (
	"strings"
	"testing"
)

func TestRateLimitedText(t *testing.T) {
	got := rateLimitedText(42)
	if !strings.Contains(got, "42") {
		t.Errorf("cooldown seconds missing from %q", got)
	}
}

func TestMenuTexts(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"start", startText()},
		{"help", helpText()},
		{"search prompt", searchPromptText()},
		{"loading", loadingText()},
		{"loading random", loadingRandomText()},
		{"empty catalog", emptyCatalogText()},
		{"not found", notFoundText()},
		{"broken", brokenText()},
	}
	for _, tt := range tests {
		if tt.text == "" {
			t.Errorf("%s text is empty", tt.name)
		}
	}
}

func TestHelpTextListsCommands(t *testing.T) {
	help := helpText()
	for _, cmd := range []string{"/start", "/help", "/random"} {
		if !strings.Contains(help, cmd) {
			t.Errorf("help text missing %s", cmd)
		}
	}
}
