package service

import (
	"context"
	"strings"
	"testing"

	"github.com/timmy/memezvukach/internal/domain"
)

type stubPhrases struct{ phrase string }

func (s *stubPhrases) Generate(ctx context.Context, userID int64) string { return s.phrase }

type stubVoices struct {
	voice   *Voice
	ok      bool
	gotText string
}

func (s *stubVoices) Render(ctx context.Context, text string) (*Voice, bool) {
	s.gotText = text
	return s.voice, s.ok
}

type stubPhotos struct{ url string }

func (s *stubPhotos) Find(ctx context.Context, nameEnglish, nameLocal string) string {
	return s.url
}

var testRecord = &domain.MemeRecord{
	Name:         "Тралалеро Тралала",
	NameEnglish:  "Tralalero Tralala",
	Description:  "акула в кроссовках найк",
	TikTokPhrase: "Tralalero tralala",
}

func TestOrchestrator_VoicePayload(t *testing.T) {
	voices := &stubVoices{voice: &Voice{Path: "/tmp/voice.wav"}, ok: true}
	o := NewOrchestrator(
		&stubPhrases{phrase: "мем пушка"},
		voices,
		&stubPhotos{url: "https://example.com/shark.jpg"},
	)

	p := o.Respond(context.Background(), 42, testRecord)
	defer p.Release()

	if p.Kind != domain.PayloadVoice {
		t.Fatalf("payload kind = %q, want voice", p.Kind)
	}
	if p.VoicePath != "/tmp/voice.wav" {
		t.Errorf("voice path = %q", p.VoicePath)
	}
	if want := "Тралалеро Тралала! Tralalero tralala, мем пушка"; voices.gotText != want {
		t.Errorf("voice text = %q, want %q", voices.gotText, want)
	}
	if p.Emoji != "🦈" {
		t.Errorf("emoji = %q, want shark for the description keyword", p.Emoji)
	}
	if !strings.Contains(p.Caption, "Тралалеро Тралала") ||
		!strings.Contains(p.Caption, "акула в кроссовках найк") {
		t.Errorf("caption missing meme name or description: %q", p.Caption)
	}
	if !strings.Contains(p.Caption, "https://example.com/shark.jpg") {
		t.Errorf("caption missing photo link: %q", p.Caption)
	}
}

func TestOrchestrator_TextPayloadWhenSynthesisFails(t *testing.T) {
	o := NewOrchestrator(
		&stubPhrases{phrase: "мем пушка"},
		&stubVoices{ok: false},
		&stubPhotos{url: domain.PhotoNotFound},
	)

	p := o.Respond(context.Background(), 42, testRecord)
	defer p.Release()

	if p.Kind != domain.PayloadText {
		t.Fatalf("payload kind = %q, want text", p.Kind)
	}
	if p.VoicePath != "" {
		t.Errorf("text payload should carry no voice path, got %q", p.VoicePath)
	}
	if !strings.Contains(p.Text, "Тралалеро Тралала") {
		t.Errorf("text missing meme name: %q", p.Text)
	}
	if strings.Contains(p.Text, domain.PhotoNotFound) {
		t.Errorf("the not-found marker must never reach the user: %q", p.Text)
	}
}

func TestOrchestrator_UnresolvedPhotoOmittedFromCaption(t *testing.T) {
	o := NewOrchestrator(
		&stubPhrases{phrase: "ф"},
		&stubVoices{voice: &Voice{Path: "/tmp/v.wav"}, ok: true},
		&stubPhotos{url: domain.PhotoNotFound},
	)

	p := o.Respond(context.Background(), 1, testRecord)
	defer p.Release()

	if p.HasPhoto() {
		t.Error("not-found marker should not count as a photo")
	}
	if strings.Contains(p.Caption, "🖼") {
		t.Errorf("caption should omit the photo line: %q", p.Caption)
	}
}

func TestResponsePayload_ReleaseIsIdempotent(t *testing.T) {
	p := &domain.ResponsePayload{}
	calls := 0
	p.SetRelease(func() { calls++ })

	p.Release()
	p.Release()
	if calls != 1 {
		t.Errorf("release ran %d times, want exactly once", calls)
	}
}

func TestFallbackText(t *testing.T) {
	got := FallbackText(testRecord, "🦈")
	if !strings.Contains(got, "Тралалеро Тралала") || !strings.Contains(got, "🦈") {
		t.Errorf("fallback text missing meme data: %q", got)
	}

	// Empty emoji falls back to the fixed meme glyph.
	got = FallbackText(testRecord, "")
	if !strings.Contains(got, StatusEmojis["meme"]) {
		t.Errorf("fallback text missing default glyph: %q", got)
	}
}
