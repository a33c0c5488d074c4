package breakout

import (
	"errors"
	"reflect"
	"testing"
)

var allStates = []GameState{StateNone, StateWaitingForTap, StatePlaying, StateGameOver}

func TestTransitionTable(t *testing.T) {
	allowed := map[GameState]GameState{
		StateNone:          StateWaitingForTap,
		StateWaitingForTap: StatePlaying,
		StatePlaying:       StateGameOver,
		StateGameOver:      StateWaitingForTap,
	}

	for _, from := range allStates {
		for _, to := range allStates {
			want := allowed[from] == to
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, expected %v", from, to, got, want)
			}
		}
	}
}

func TestNoSelfTransitions(t *testing.T) {
	for _, s := range allStates {
		if CanTransition(s, s) {
			t.Errorf("self transition %s -> %s must be rejected", s, s)
		}
	}
}

func TestStateMachineFullCycle(t *testing.T) {
	m := NewStateMachine(nil)

	for _, target := range []GameState{StateWaitingForTap, StatePlaying, StateGameOver, StateWaitingForTap} {
		if err := m.Enter(target); err != nil {
			t.Fatalf("Enter(%s) from %s failed: %v", target, m.Current(), err)
		}
		if m.Current() != target {
			t.Fatalf("Current() = %s, expected %s", m.Current(), target)
		}
	}
}

func TestStateMachineRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		path   []GameState
		target GameState
	}{
		{"playing before waiting", nil, StatePlaying},
		{"game over from waiting", []GameState{StateWaitingForTap}, StateGameOver},
		{"playing from game over", []GameState{StateWaitingForTap, StatePlaying, StateGameOver}, StatePlaying},
		{"waiting from playing", []GameState{StateWaitingForTap, StatePlaying}, StateWaitingForTap},
		{"self playing", []GameState{StateWaitingForTap, StatePlaying}, StatePlaying},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewStateMachine(nil)
			for _, s := range tc.path {
				if err := m.Enter(s); err != nil {
					t.Fatalf("setup Enter(%s) failed: %v", s, err)
				}
			}
			before := m.Current()

			err := m.Enter(tc.target)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Enter(%s) error = %v, expected ErrInvalidTransition", tc.target, err)
			}
			if m.Current() != before {
				t.Errorf("state changed to %s after rejected transition", m.Current())
			}
		})
	}
}

func TestStateMachineHookOrder(t *testing.T) {
	m := NewStateMachine(nil)
	var calls []string

	m.Handle(StateWaitingForTap, StateHooks{
		Enter: func(prev GameState) { calls = append(calls, "enter waiting from "+prev.String()) },
		Exit:  func(next GameState) { calls = append(calls, "exit waiting to "+next.String()) },
	})
	m.Handle(StatePlaying, StateHooks{
		Enter: func(prev GameState) {
			if m.Current() != StatePlaying {
				t.Errorf("enter hook saw state %s, expected playing", m.Current())
			}
			calls = append(calls, "enter playing from "+prev.String())
		},
	})

	_ = m.Enter(StateWaitingForTap)
	_ = m.Enter(StatePlaying)
	_ = m.Enter(StateWaitingForTap) // rejected, no hooks

	expected := []string{
		"enter waiting from none",
		"exit waiting to playing",
		"enter playing from waiting-for-tap",
	}
	if !reflect.DeepEqual(calls, expected) {
		t.Errorf("hook calls = %v, expected %v", calls, expected)
	}
}

func TestStateMachineUpdate(t *testing.T) {
	m := NewStateMachine(nil)
	var total float64
	m.Handle(StatePlaying, StateHooks{Update: func(dt float64) { total += dt }})

	m.Update(1) // StateNone has no hooks
	_ = m.Enter(StateWaitingForTap)
	_ = m.Enter(StatePlaying)
	m.Update(0.5)
	m.Update(0.25)

	if total != 0.75 {
		t.Errorf("update total = %v, expected 0.75", total)
	}
}
