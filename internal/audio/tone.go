package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// tone is a fixed-length oscillator.
type tone struct {
	freq  float64
	phase float64
	left  int
	wave  Wave
	rate  beep.SampleRate
	noise uint32
}

// Tone returns a streamer that plays one oscillator for d.
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:  freq,
		left:  rate.N(d),
		wave:  wave,
		rate:  rate,
		noise: 0x2545f491,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.left <= 0 {
		return 0, false
	}
	for i := range samples {
		if t.left <= 0 {
			return i, true
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveNoise:
			// xorshift keeps noise reproducible
			t.noise ^= t.noise << 13
			t.noise ^= t.noise >> 17
			t.noise ^= t.noise << 5
			v = float64(t.noise)/float64(math.MaxUint32)*2 - 1
		}

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.left--
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a streamer in over attack and out over release.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

// Envelope shapes s, which is expected to last d.
func Envelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		s:       s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := range n {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if rest := e.total - e.pos; rest < e.release {
			vol = math.Max(0, float64(rest)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }
