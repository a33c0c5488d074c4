// Package audio synthesizes the game's sound effects and plays them through
// the system speaker.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
)

// Player plays sound effects. Implementations must not block the caller.
type Player interface {
	Play(kind breakout.SoundKind)
	Close()
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Play(breakout.SoundKind) {}
func (Nop) Close() {}

// Options configures a Speaker.
type Options struct {
	SampleRate int
	Volume     float64 // linear, 1 = unchanged
	Logger     *log.Logger
}

// Speaker plays sounds through the default output device.
type Speaker struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer
	ctrl   *beep.Ctrl
	logger *log.Logger
	closed bool
}

var speakerOnce struct {
	sync.Once
	err error
}

// NewSpeaker initializes the output device. The device can only be opened
// once per process; later calls reuse it.
func NewSpeaker(opts Options) (*Speaker, error) {
	rate := beep.SampleRate(opts.SampleRate)
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	speakerOnce.Do(func() {
		speakerOnce.err = speaker.Init(rate, rate.N(100*time.Millisecond))
	})
	if speakerOnce.err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", speakerOnce.err)
	}

	s := &Speaker{
		rate:   rate,
		volume: opts.Volume,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
	s.ctrl = &beep.Ctrl{Streamer: s.mixer}
	speaker.Play(s.ctrl)
	return s, nil
}

// Play queues a sound on the mixer.
func (s *Speaker) Play(kind breakout.SoundKind) {
	st := Sound(kind, s.rate)
	if st == nil {
		s.logger.Debug("no sound for kind", "kind", kind)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(withVolume(st, s.volume))
	speaker.Unlock()
}

// Close stops this player's output.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Lock()
	s.ctrl.Paused = true
	s.mixer.Clear()
	speaker.Unlock()
}

// New returns a Speaker when enabled and the device opens, and Nop
// otherwise. A device failure is logged, not returned.
func New(enabled bool, opts Options) Player {
	if !enabled {
		return Nop{}
	}
	s, err := NewSpeaker(opts)
	if err != nil {
		if opts.Logger != nil {
			opts.Logger.Warn("audio disabled", "err", err)
		}
		return Nop{}
	}
	return s
}
