// Package game hosts a breakout session: it owns the contact world, turns
// input frames into session events and draws the result into a screen
// buffer. One Scene lives for the whole program; sessions come and go.
package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/physics"
)

// Minimum playable terminal size.
const (
	MinScreenW = 30
	MinScreenH = 12
)

// hudRows is the number of rows above the field.
const hudRows = 1

// Result describes a finished session, for persistence.
type Result struct {
	SessionID       uuid.UUID
	Outcome         breakout.Outcome
	Score           int
	BlocksDestroyed int
	BlocksTotal     int
	Elapsed         time.Duration
	Seed            uint64
}

// Options configures a Scene. Zero values are usable: default config,
// silent audio, no observer, discarded logs.
type Options struct {
	Config   *config.BreakoutConfig
	Sound    audio.Player
	Observer breakout.Observer
	Logger   *log.Logger
}

// Scene implements core.Game on top of breakout.Session. It is also the
// session's Presenter and HitTester.
type Scene struct {
	cfg      config.BreakoutConfig
	runtime  core.RuntimeConfig
	sound    audio.Player
	observer breakout.Observer
	logger   *log.Logger

	session    *breakout.Session
	world      *physics.World
	sessionID  uuid.UUID
	seed       uint64
	generation int

	message *message
	bursts  []burst
	score   int
	tick    uint64

	pointerX     int
	resetPending bool
	result       *Result
	tooSmall     bool
}

// New creates a Scene. Call Reset before the first Step.
func New(opts Options) *Scene {
	cfg := config.DefaultBreakoutConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	sound := opts.Sound
	if sound == nil {
		sound = audio.Nop{}
	}
	observer := opts.Observer
	if observer == nil {
		observer = breakout.NopObserver{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Scene{
		cfg:      cfg,
		sound:    sound,
		observer: observer,
		logger:   logger,
	}
}

// ID returns the unique identifier for this game.
func (s *Scene) ID() string { return "breakout" }

// Title returns the display name for this game.
func (s *Scene) Title() string { return "Breakout" }

// Reset adapts to the runtime and starts a fresh session.
func (s *Scene) Reset(runtime core.RuntimeConfig) {
	s.runtime = runtime
	s.tooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH
	s.generation = 0
	s.tick = 0
	s.result = nil
	s.newSession()
}

func (s *Scene) fieldSize() (int, int) {
	return s.runtime.ScreenW, s.runtime.ScreenH - hudRows
}

// settings maps the config onto session settings for the current field.
func (s *Scene) settings() breakout.Settings {
	w, h := s.fieldSize()
	set := breakout.DefaultSettings(float64(w), float64(h))
	set.BlockCount = s.cfg.Blocks.Count
	set.BlockWidth = float64(s.cfg.Blocks.Width)
	set.BlockRow = s.cfg.Blocks.Row
	set.PaddleHalfWidth = float64(s.cfg.Paddle.Width) / 2
	set.BallSpeed = s.cfg.Ball.Speed
	set.LaunchMinAngle = s.cfg.Ball.LaunchMinAngle
	set.LaunchMaxAngle = s.cfg.Ball.LaunchMaxAngle
	set.MaxDamping = s.cfg.Ball.MaxDamping
	set.Seed = s.seed
	return set
}

// newSession throws away the current session and world and builds new
// ones. Nothing mutable carries over.
func (s *Scene) newSession() {
	s.generation++
	s.seed = uint64(s.runtime.Seed) + uint64(s.generation) - 1 //#nosec G115 -- seed bits only
	s.sessionID = uuid.New()
	s.message = newMessage(s.cfg.Gameplay.MessageReveal)
	s.bursts = nil
	s.score = 0
	s.resetPending = false

	set := s.settings()
	s.session = breakout.NewSession(set, breakout.Collaborators{
		Presenter: s,
		HitTester: s,
		Observer:  relay{s},
		Logger:    s.logger.With("session", s.sessionID.String()[:8]),
	})

	w, h := s.fieldSize()
	s.world = physics.New(physics.Layout{
		Width:           w,
		Height:          h,
		PaddleHalfWidth: set.PaddleHalfWidth,
		PaddleX:         s.session.Paddle().X(),
		Blocks:          s.session.Blocks().Blocks(),
	})

	s.session.Start()
}

// Step advances the simulation by one fixed tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if s.tooSmall {
		return core.StepResult{State: s.State()}
	}
	s.tick++

	s.handlePointer(in.Pointer)
	if !s.resetPending {
		s.handleActions(in)
	}

	if !s.resetPending {
		dt := s.runtime.TickSeconds()
		for _, c := range s.world.Step(dt) {
			s.session.OnContact(c.A, c.B)
		}
		s.session.OnFrameUpdate(dt)
		s.message.update(dt)
		s.bursts = updateBursts(s.bursts, dt)
	}

	if s.resetPending {
		s.newSession()
	}
	return core.StepResult{State: s.State()}
}

// toField converts a screen cell to field coordinates (cell centre).
func toField(x, y int) core.Vec {
	return core.Vec{X: float64(x) + 0.5, Y: float64(y-hudRows) + 0.5}
}

func (s *Scene) handlePointer(events []core.PointerEvent) {
	for _, ev := range events {
		switch ev.Kind {
		case core.PointerPress:
			s.pointerX = ev.X
			s.session.OnTap(toField(ev.X, ev.Y))
		case core.PointerMove:
			dx := ev.X - s.pointerX
			s.pointerX = ev.X
			if dx != 0 {
				s.session.OnDragMove(float64(dx))
			}
		case core.PointerRelease:
			s.session.OnDragEnd()
		}
		if s.resetPending {
			return
		}
	}
}

func (s *Scene) handleActions(in core.InputFrame) {
	if in.Has(core.ActionTap) {
		r := s.world.PaddleRect()
		s.session.OnTap(core.Vec{X: s.session.Paddle().X(), Y: float64(r.Y) + 0.5})
		if s.resetPending {
			return
		}
	}
	step := s.cfg.Paddle.SteerStep
	if in.Has(core.ActionLeft) {
		s.session.Steer(-step)
	}
	if in.Has(core.ActionRight) {
		s.session.Steer(step)
	}
}

// State returns the platform-facing summary.
func (s *Scene) State() core.GameState {
	return core.GameState{
		Score:    s.score,
		GameOver: s.session != nil && s.session.State() == breakout.StateGameOver,
	}
}

// Session returns the running session.
func (s *Scene) Session() *breakout.Session { return s.session }

// SessionID returns the identifier of the running session.
func (s *Scene) SessionID() uuid.UUID { return s.sessionID }

// TakeResult returns the result of the last finished session, once.
func (s *Scene) TakeResult() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	r := *s.result
	s.result = nil
	return r, true
}

// Presenter

func (s *Scene) ShowMessage() {
	s.message.show("TAP TO PLAY", "click or press space")
}

func (s *Scene) HideMessage() {
	s.message.hide()
}

func (s *Scene) SetBallDamping(v float64) { s.world.SetDamping(v) }
func (s *Scene) SetGravity(g core.Vec)    { s.world.SetGravity(g) }
func (s *Scene) LaunchBall(v core.Vec)    { s.world.Launch(v) }
func (s *Scene) MovePaddle(x float64)     { s.world.SetPaddleX(x) }

func (s *Scene) RemoveNode(node breakout.NodeRef) {
	s.world.Remove(node)
}

func (s *Scene) SpawnEffect(kind breakout.EffectKind, at core.Vec) {
	if kind != breakout.EffectBlockBurst || s.cfg.Gameplay.BurstDuration <= 0 {
		return
	}
	s.bursts = append(s.bursts, burst{
		pos:   at,
		color: blockColor(at),
		ttl:   s.cfg.Gameplay.BurstDuration,
	})
}

func (s *Scene) PlaySound(kind breakout.SoundKind) {
	s.sound.Play(kind)
}

func (s *Scene) PresentOutcome(won bool) {
	if won {
		s.message.show("YOU WON!", "tap to play again")
	} else {
		s.message.show("GAME OVER", "tap to play again")
	}
}

func (s *Scene) ResetSession() {
	s.resetPending = true
}

// HitTester

func (s *Scene) PaddleAt(p core.Vec) bool {
	return s.world.PaddleAt(p)
}

// relay feeds session notifications into the scene and on to the
// configured observer.
type relay struct{ s *Scene }

func (r relay) SessionStarted() {
	r.s.observer.SessionStarted()
}

func (r relay) BlockDestroyed(b breakout.Block) {
	r.s.score += r.s.cfg.Blocks.Points
	r.s.observer.BlockDestroyed(b)
}

func (r relay) SessionFinished(o breakout.Outcome, elapsed time.Duration) {
	blocks := r.s.session.Blocks()
	r.s.result = &Result{
		SessionID:       r.s.sessionID,
		Outcome:         o,
		Score:           r.s.score,
		BlocksDestroyed: blocks.Total() - blocks.Remaining(),
		BlocksTotal:     blocks.Total(),
		Elapsed:         elapsed,
		Seed:            r.s.seed,
	}
	r.s.observer.SessionFinished(o, elapsed)
}

func (r relay) TransitionRejected(from, to breakout.GameState) {
	r.s.observer.TransitionRejected(from, to)
}

var (
	_ core.Game          = (*Scene)(nil)
	_ breakout.Presenter = (*Scene)(nil)
	_ breakout.HitTester = (*Scene)(nil)
)
