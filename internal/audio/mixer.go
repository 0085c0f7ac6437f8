package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// resampleQuality trades speed for accuracy; 4 is beep's recommended middle.
const resampleQuality = 4

// AppendEffect decodes the speech clip and the effect clip, plays the effect
// after the speech with a short silence gap, and exports the result as WAV.
// Both inputs are MP3 files; the effect is resampled to the speech rate when
// they differ.
// Parameters:
//   - speechPath: synthesized speech MP3.
//   - effectPath: sound-effect MP3.
//   - outPath: destination WAV file.
//   - gap: silence inserted between speech and effect.
// Returns:
//   - error: non-nil when decoding or encoding fails.
func AppendEffect(speechPath, effectPath, outPath string, gap time.Duration) error {
	speechFile, err := os.Open(speechPath)
	if err != nil {
		return fmt.Errorf("open speech: %w", err)
	}
	speech, speechFormat, err := mp3.Decode(speechFile)
	if err != nil {
		speechFile.Close()
		return fmt.Errorf("decode speech: %w", err)
	}
	defer speech.Close()

	effectFile, err := os.Open(effectPath)
	if err != nil {
		return fmt.Errorf("open effect: %w", err)
	}
	effect, effectFormat, err := mp3.Decode(effectFile)
	if err != nil {
		effectFile.Close()
		return fmt.Errorf("decode effect: %w", err)
	}
	defer effect.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	var tail beep.Streamer = effect
	if effectFormat.SampleRate != speechFormat.SampleRate {
		tail = beep.Resample(resampleQuality, effectFormat.SampleRate, speechFormat.SampleRate, effect)
	}

	mixed := Sequence(speechFormat.SampleRate, gap, speech, tail)
	if err := wav.Encode(out, mixed, speechFormat); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}

// Sequence chains the given streamers with a gap of silence between each
// pair, all at the given sample rate.
func Sequence(rate beep.SampleRate, gap time.Duration, streamers ...beep.Streamer) beep.Streamer {
	if len(streamers) == 0 {
		return beep.Silence(0)
	}

	gapSamples := rate.N(gap)
	parts := make([]beep.Streamer, 0, len(streamers)*2-1)
	for i, s := range streamers {
		if i > 0 && gapSamples > 0 {
			parts = append(parts, beep.Silence(gapSamples))
		}
		parts = append(parts, s)
	}
	return beep.Seq(parts...)
}
