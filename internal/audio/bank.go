package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
)

// DefaultSampleRate is used when the config leaves it at zero.
const DefaultSampleRate = beep.SampleRate(44100)

func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return Envelope(Tone(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Sound builds a fresh streamer for one sound kind. Unknown kinds yield nil.
func Sound(kind breakout.SoundKind, rate beep.SampleRate) beep.Streamer {
	switch kind {
	case breakout.SoundWall:
		return note(440, 40*time.Millisecond, WaveSquare, rate)
	case breakout.SoundPaddle:
		return note(660, 50*time.Millisecond, WaveSquare, rate)
	case breakout.SoundBlockBreak:
		d := 150 * time.Millisecond
		return beep.Mix(
			withVolume(note(0, d, WaveNoise, rate), 0.5),
			withVolume(note(110, d, WaveSine, rate), 0.5),
		)
	case breakout.SoundWon:
		return beep.Seq(
			note(523.25, 120*time.Millisecond, WaveSine, rate),
			note(659.25, 120*time.Millisecond, WaveSine, rate),
			note(783.99, 240*time.Millisecond, WaveSine, rate),
		)
	case breakout.SoundLost:
		return beep.Seq(
			note(392, 150*time.Millisecond, WaveSquare, rate),
			note(311.13, 150*time.Millisecond, WaveSquare, rate),
			note(196, 300*time.Millisecond, WaveSquare, rate),
		)
	default:
		return nil
	}
}

// withVolume scales s linearly; vol <= 0 silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
