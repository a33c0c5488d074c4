package breakout

import (
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Settings holds the tunables of one session.
type Settings struct {
	FieldWidth  float64
	FieldHeight float64

	BlockCount int
	BlockWidth float64
	BlockRow   float64 // fraction of the field height, measured from the bottom

	PaddleHalfWidth float64
	PaddleStartX    float64

	BallSpeed      float64
	LaunchMinAngle float64 // degrees from +x, pointing up
	LaunchMaxAngle float64
	MaxDamping     float64

	Seed uint64
}

// DefaultSettings returns settings for a field of the given size.
func DefaultSettings(width, height float64) Settings {
	return Settings{
		FieldWidth:      width,
		FieldHeight:     height,
		BlockCount:      DefaultBlockCount,
		BlockWidth:      6,
		BlockRow:        0.8,
		PaddleHalfWidth: 5,
		PaddleStartX:    width / 2,
		BallSpeed:       20,
		LaunchMinAngle:  30,
		LaunchMaxAngle:  150,
		MaxDamping:      1,
		Seed:            1,
	}
}

// Collaborators bundles the host objects a session talks to.
// Presenter and HitTester are required; Observer and Logger may be nil.
type Collaborators struct {
	Presenter Presenter
	HitTester HitTester
	Observer  Observer
	Logger    *log.Logger
}

// Session is one playthrough: from the first "tap to play" until the
// ball is lost or the last block breaks. Sessions are never reused; the
// host builds a new one when ResetSession is requested.
type Session struct {
	settings Settings
	machine  *StateMachine
	blocks   *BlockField
	paddle   *PaddleController
	rng      *rand.Rand

	presenter Presenter
	hits      HitTester
	observer  Observer
	logger    *log.Logger

	dragging bool
	outcome  Outcome
	elapsed  time.Duration
}

// NewSession builds a session in StateNone. Call Start to show the
// "tap to play" message.
func NewSession(s Settings, c Collaborators) *Session {
	logger := c.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	observer := c.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	sess := &Session{
		settings: s,
		machine:  NewStateMachine(logger),
		blocks: NewBlockField(BlockLayout{
			Count:       s.BlockCount,
			Width:       s.BlockWidth,
			FieldWidth:  s.FieldWidth,
			FieldHeight: s.FieldHeight,
			Row:         s.BlockRow,
		}),
		paddle:    NewPaddleController(s.PaddleStartX, s.PaddleHalfWidth, s.FieldWidth),
		rng:       rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15)),
		presenter: c.Presenter,
		hits:      c.HitTester,
		observer:  observer,
		logger:    logger,
	}
	sess.registerHooks()
	return sess
}

func (s *Session) registerHooks() {
	s.machine.Handle(StateWaitingForTap, StateHooks{
		Enter: func(GameState) {
			s.presenter.ShowMessage()
		},
		Exit: func(next GameState) {
			if next == StatePlaying {
				s.presenter.HideMessage()
			}
		},
	})
	s.machine.Handle(StatePlaying, StateHooks{
		Enter: func(prev GameState) {
			if prev == StateWaitingForTap {
				s.presenter.LaunchBall(s.launchVelocity())
			}
		},
		Update: func(dt float64) {
			s.elapsed += time.Duration(dt * float64(time.Second))
		},
	})
	s.machine.Handle(StateGameOver, StateHooks{
		Enter: func(prev GameState) {
			if prev == StatePlaying {
				s.presenter.SetBallDamping(s.settings.MaxDamping)
				s.presenter.SetGravity(core.Vec{})
			}
		},
	})
}

// launchVelocity picks a random upward direction within the launch range.
func (s *Session) launchVelocity() core.Vec {
	lo, hi := s.settings.LaunchMinAngle, s.settings.LaunchMaxAngle
	if hi < lo {
		lo, hi = hi, lo
	}
	deg := lo + s.rng.Float64()*(hi-lo)
	rad := deg * math.Pi / 180
	// Screen y grows downward, so "up" is negative.
	return core.Vec{
		X: s.settings.BallSpeed * math.Cos(rad),
		Y: -s.settings.BallSpeed * math.Sin(rad),
	}
}

func (s *Session) enter(target GameState) bool {
	from := s.machine.Current()
	if err := s.machine.Enter(target); err != nil {
		s.observer.TransitionRejected(from, target)
		return false
	}
	return true
}

// Start enters WaitingForTap.
func (s *Session) Start() {
	if s.enter(StateWaitingForTap) {
		s.observer.SessionStarted()
	}
}

// OnTap handles a press anywhere on the field.
func (s *Session) OnTap(p core.Vec) {
	switch s.machine.Current() {
	case StateWaitingForTap:
		if s.enter(StatePlaying) {
			s.dragging = true
		}
	case StatePlaying:
		s.OnDragStart(p)
	case StateGameOver:
		s.presenter.ResetSession()
	}
}

// OnDragStart arms dragging when the press lands on the paddle.
func (s *Session) OnDragStart(p core.Vec) {
	s.dragging = s.hits != nil && s.hits.PaddleAt(p)
}

// OnDragMove moves the paddle by dx while a drag is active.
func (s *Session) OnDragMove(dx float64) {
	if !s.dragging {
		return
	}
	s.presenter.MovePaddle(s.paddle.MoveBy(dx))
}

// OnDragEnd disarms dragging.
func (s *Session) OnDragEnd() {
	s.dragging = false
}

// Steer moves the paddle by dx without a drag, for keyboard control.
func (s *Session) Steer(dx float64) {
	s.presenter.MovePaddle(s.paddle.MoveBy(dx))
}

// OnContact reacts to a contact between two bodies. Contacts outside
// Playing are ignored. It returns the reaction that was applied.
func (s *Session) OnContact(a, b Body) Reaction {
	if s.machine.Current() != StatePlaying {
		return ReactionNone
	}

	_, other := Canonical(a, b)
	r := Resolve(a.Category, b.Category)
	switch r {
	case ReactionLose:
		s.finish(OutcomeLost)
	case ReactionBreakBlock:
		s.breakBlock(other.Node)
	case ReactionWallSound:
		s.presenter.PlaySound(SoundWall)
	case ReactionPaddleSound:
		s.presenter.PlaySound(SoundPaddle)
	}
	return r
}

func (s *Session) breakBlock(node NodeRef) {
	b, ok := s.blocks.Block(node)
	if !ok || !s.blocks.Destroy(node) {
		return
	}

	s.presenter.PlaySound(SoundBlockBreak)
	s.presenter.SpawnEffect(EffectBlockBurst, b.Pos)
	s.presenter.RemoveNode(node)
	s.observer.BlockDestroyed(b)
	s.logger.Debug("block destroyed", "node", node, "remaining", s.blocks.Remaining())

	if s.blocks.IsCleared() {
		s.finish(OutcomeWon)
	}
}

func (s *Session) finish(o Outcome) {
	if !s.enter(StateGameOver) {
		return
	}
	if s.outcome == OutcomeNone {
		s.outcome = o
	}
	s.logger.Info("session finished", "outcome", s.outcome, "elapsed", s.elapsed)
	s.observer.SessionFinished(s.outcome, s.elapsed)

	won := s.outcome == OutcomeWon
	s.presenter.PresentOutcome(won)
	if won {
		s.presenter.PlaySound(SoundWon)
	} else {
		s.presenter.PlaySound(SoundLost)
	}
}

// OnFrameUpdate advances the active state by dt seconds.
func (s *Session) OnFrameUpdate(dt float64) {
	s.machine.Update(dt)
}

// State returns the current phase.
func (s *Session) State() GameState { return s.machine.Current() }

// Outcome returns the result, or OutcomeNone while the session runs.
func (s *Session) Outcome() Outcome { return s.outcome }

// Elapsed returns the time spent in Playing.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Dragging reports whether a paddle drag is active.
func (s *Session) Dragging() bool { return s.dragging }

// Blocks returns the session's block field.
func (s *Session) Blocks() *BlockField { return s.blocks }

// Paddle returns the session's paddle controller.
func (s *Session) Paddle() *PaddleController { return s.paddle }

// Settings returns the settings the session was built with.
func (s *Session) Settings() Settings { return s.settings }
