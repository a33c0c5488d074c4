package breakout

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// GameState is the phase of a session. Exactly one is active at a time.
type GameState int

const (
	StateNone GameState = iota // before Start
	StateWaitingForTap
	StatePlaying
	StateGameOver
)

// String returns the state name.
func (s GameState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateWaitingForTap:
		return "waiting-for-tap"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned when the transition table does not allow
// the requested state change. The machine stays where it was.
var ErrInvalidTransition = errors.New("invalid state transition")

type transition struct {
	from, to GameState
}

// transitions lists every legal (from, to) pair.
var transitions = map[transition]bool{
	{StateNone, StateWaitingForTap}:     true,
	{StateWaitingForTap, StatePlaying}:  true,
	{StatePlaying, StateGameOver}:       true,
	{StateGameOver, StateWaitingForTap}: true,
}

// CanTransition reports whether from -> to is in the transition table.
func CanTransition(from, to GameState) bool {
	return transitions[transition{from, to}]
}

// StateHooks are the callbacks attached to one state. Any of them may be nil.
type StateHooks struct {
	// Enter runs after the machine has switched into the state.
	Enter func(prev GameState)
	// Exit runs before the machine leaves the state.
	Exit func(next GameState)
	// Update runs once per frame while the state is active.
	Update func(dt float64)
}

// StateMachine is a validated three-phase state machine with per-state hooks.
type StateMachine struct {
	current GameState
	hooks   map[GameState]StateHooks
	logger  *log.Logger
}

// NewStateMachine creates a machine in StateNone. A nil logger discards output.
func NewStateMachine(logger *log.Logger) *StateMachine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &StateMachine{
		current: StateNone,
		hooks:   make(map[GameState]StateHooks),
		logger:  logger,
	}
}

// Handle registers the hooks for a state, replacing any earlier ones.
func (m *StateMachine) Handle(state GameState, h StateHooks) {
	m.hooks[state] = h
}

// Current returns the active state.
func (m *StateMachine) Current() GameState {
	return m.current
}

// CanEnter reports whether target is a valid next state.
func (m *StateMachine) CanEnter(target GameState) bool {
	return CanTransition(m.current, target)
}

// Enter switches to target. The old state's exit hook runs before the new
// state's enter hook. An illegal target leaves the machine untouched.
func (m *StateMachine) Enter(target GameState) error {
	prev := m.current
	if !CanTransition(prev, target) {
		m.logger.Warn("rejected state transition", "from", prev, "to", target)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, prev, target)
	}

	if h := m.hooks[prev]; h.Exit != nil {
		h.Exit(target)
	}
	m.current = target
	m.logger.Debug("state transition", "from", prev, "to", target)
	if h := m.hooks[target]; h.Enter != nil {
		h.Enter(prev)
	}
	return nil
}

// Update runs the active state's per-frame hook.
func (m *StateMachine) Update(dt float64) {
	if h := m.hooks[m.current]; h.Update != nil {
		h.Update(dt)
	}
}
