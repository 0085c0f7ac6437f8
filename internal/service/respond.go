package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/timmy/memezvukach/internal/domain"
	"github.com/timmy/memezvukach/internal/logger"
)

// phraseGenerator, voiceRenderer, and photoFinder are the three remote
// collaborators the orchestrator fans out to. Each is a small interface so
// tests can simulate timeouts and invalid content per dependency.
type phraseGenerator interface {
	Generate(ctx context.Context, userID int64) string
}

type voiceRenderer interface {
	Render(ctx context.Context, text string) (*Voice, bool)
}

type photoFinder interface {
	Find(ctx context.Context, nameEnglish, nameLocal string) string
}

// Orchestrator assembles the multi-part meme response. The phrase is
// resolved first because the voice line embeds it; audio, photo, and emoji
// then run concurrently and are joined before assembly. No single
// collaborator failure is fatal to the others.
type Orchestrator struct {
	phrases phraseGenerator
	voices  voiceRenderer
	photos  photoFinder
}

// NewOrchestrator creates a response orchestrator.
// Parameters:
//   - phrases: phrase generator.
//   - voices: voice renderer.
//   - photos: photo resolver.
// Returns:
//   - *Orchestrator: initialized orchestrator.
func NewOrchestrator(phrases phraseGenerator, voices voiceRenderer, photos photoFinder) *Orchestrator {
	return &Orchestrator{phrases: phrases, voices: voices, photos: photos}
}

// Respond builds the payload for a matched meme. The result is a voice
// payload when synthesis succeeded and a text payload otherwise; the photo
// link and emoji attach in either case when available. The caller owns the
// payload and must Release it after sending.
// Parameters:
//   - ctx: request context.
//   - userID: Telegram user identifier.
//   - rec: the matched catalog entry.
// Returns:
//   - *domain.ResponsePayload: assembled payload, never nil.
func (o *Orchestrator) Respond(ctx context.Context, userID int64, rec *domain.MemeRecord) *domain.ResponsePayload {
	phrase := o.phrases.Generate(ctx, userID)
	voiceText := fmt.Sprintf("%s! %s, %s", rec.Name, rec.TikTokPhrase, phrase)

	logger.CtxInfo(ctx, "Preparing response: meme=%q, user=%d, voice_text=%q", rec.Name, userID, voiceText)

	var (
		wg       sync.WaitGroup
		voice    *Voice
		voiceOK  bool
		photoURL string
		emoji    string
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		voice, voiceOK = o.voices.Render(ctx, voiceText)
	}()
	go func() {
		defer wg.Done()
		photoURL = o.photos.Find(ctx, rec.NameEnglish, rec.Name)
	}()
	go func() {
		defer wg.Done()
		emoji = PickEmoji(rec.Description)
	}()
	wg.Wait()

	payload := &domain.ResponsePayload{
		Meme:     rec,
		Emoji:    emoji,
		Phrase:   phrase,
		PhotoURL: photoURL,
	}

	if voiceOK {
		payload.Kind = domain.PayloadVoice
		payload.VoicePath = voice.Path
		payload.Caption = buildCaption(rec, emoji, payload)
		payload.SetRelease(func() { voice.Release(ctx) })
		return payload
	}

	payload.Kind = domain.PayloadText
	payload.Text = buildNoAudioText(rec, emoji, payload)
	return payload
}

// FallbackText is the degraded message built from whatever partial data a
// failed send left behind.
func FallbackText(rec *domain.MemeRecord, emoji string) string {
	if emoji == "" {
		emoji = StatusEmojis["meme"]
	}
	return fmt.Sprintf("%s Сломалось, блэ!\n\n%s %s\n%s\n\nГо ещё? 😣",
		StatusEmojis["error"], emoji, rec.Name, rec.Description)
}

func buildCaption(rec *domain.MemeRecord, emoji string, p *domain.ResponsePayload) string {
	caption := fmt.Sprintf("%s %s\n\n%s", emoji, rec.Name, rec.Description)
	if p.HasPhoto() {
		caption += fmt.Sprintf("\n\n🖼 %s", p.PhotoURL)
	}
	caption += fmt.Sprintf("\n\n%s Го ещё мемас? 🔥", StatusEmojis["success"])
	return caption
}

func buildNoAudioText(rec *domain.MemeRecord, emoji string, p *domain.ResponsePayload) string {
	text := fmt.Sprintf("%s %s\n\n%s", emoji, rec.Name, rec.Description)
	if p.HasPhoto() {
		text += fmt.Sprintf("\n\n🖼 %s", p.PhotoURL)
	}
	text += fmt.Sprintf("\n\n%s API блочит, xiy! Мем пушка! 😣", StatusEmojis["error"])
	return text
}
