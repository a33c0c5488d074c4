package breakout

import (
	"time"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Outcome is the result of a finished session.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}

// SoundKind names a sound effect the host knows how to play.
type SoundKind int

const (
	SoundWall SoundKind = iota
	SoundPaddle
	SoundBlockBreak
	SoundWon
	SoundLost
)

func (k SoundKind) String() string {
	switch k {
	case SoundWall:
		return "wall"
	case SoundPaddle:
		return "paddle"
	case SoundBlockBreak:
		return "block-break"
	case SoundWon:
		return "won"
	case SoundLost:
		return "lost"
	default:
		return "unknown"
	}
}

// EffectKind names a short-lived visual effect.
type EffectKind int

const (
	EffectBlockBurst EffectKind = iota
)

func (k EffectKind) String() string {
	if k == EffectBlockBurst {
		return "block-burst"
	}
	return "unknown"
}

// Presenter is the host side of a session: everything the rules ask the
// outside world to show, move or play.
type Presenter interface {
	ShowMessage()
	HideMessage()
	SetBallDamping(v float64)
	SetGravity(g core.Vec)
	LaunchBall(v core.Vec)
	MovePaddle(x float64)
	RemoveNode(node NodeRef)
	SpawnEffect(kind EffectKind, at core.Vec)
	PlaySound(kind SoundKind)
	PresentOutcome(won bool)
	// ResetSession asks the host to throw the session away and start a
	// fresh one.
	ResetSession()
}

// HitTester answers whether a point in field coordinates lies on the paddle.
type HitTester interface {
	PaddleAt(p core.Vec) bool
}

// Observer receives session lifecycle notifications. It never influences
// the rules.
type Observer interface {
	SessionStarted()
	BlockDestroyed(b Block)
	SessionFinished(outcome Outcome, elapsed time.Duration)
	TransitionRejected(from, to GameState)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) SessionStarted() {}
func (NopObserver) BlockDestroyed(Block) {}
func (NopObserver) SessionFinished(Outcome, time.Duration) {}
func (NopObserver) TransitionRejected(GameState, GameState) {}
