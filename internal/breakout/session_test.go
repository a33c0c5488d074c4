package breakout

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// recorder implements Presenter, HitTester and Observer and logs every call.
type recorder struct {
	calls    []string
	launched []core.Vec
	paddleAt bool
	resets   int
	finished []Outcome
	rejected int
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) ShowMessage()             { r.add("show") }
func (r *recorder) HideMessage()             { r.add("hide") }
func (r *recorder) SetBallDamping(v float64) { r.add("damping %.1f", v) }
func (r *recorder) SetGravity(g core.Vec)    { r.add("gravity %.1f,%.1f", g.X, g.Y) }
func (r *recorder) LaunchBall(v core.Vec) {
	r.launched = append(r.launched, v)
	r.add("launch")
}
func (r *recorder) MovePaddle(x float64)                  { r.add("paddle %.0f", x) }
func (r *recorder) RemoveNode(n NodeRef)                  { r.add("remove %d", n) }
func (r *recorder) SpawnEffect(k EffectKind, at core.Vec) { r.add("effect %s", k) }
func (r *recorder) PlaySound(k SoundKind)                 { r.add("sound %s", k) }
func (r *recorder) PresentOutcome(won bool)               { r.add("outcome won=%v", won) }
func (r *recorder) ResetSession()                         { r.resets++; r.add("reset") }

func (r *recorder) PaddleAt(core.Vec) bool { return r.paddleAt }

func (r *recorder) SessionStarted()        {}
func (r *recorder) BlockDestroyed(Block)   {}
func (r *recorder) SessionFinished(o Outcome, _ time.Duration) {
	r.finished = append(r.finished, o)
}
func (r *recorder) TransitionRejected(GameState, GameState) { r.rejected++ }

func (r *recorder) reset() { r.calls = nil }

var (
	ball   = Body{Category: CategoryBall, Node: NodeBall}
	bottom = Body{Category: CategoryBottom, Node: NodeBottom}
	border = Body{Category: CategoryBorder, Node: NodeBorder}
	paddle = Body{Category: CategoryPaddle, Node: NodePaddle}
)

func blockBody(id NodeRef) Body {
	return Body{Category: CategoryBlock, Node: id}
}

func newTestSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := NewSession(DefaultSettings(80, 20), Collaborators{
		Presenter: rec,
		HitTester: rec,
		Observer:  rec,
	})
	return s, rec
}

func playingSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	s, rec := newTestSession(t)
	s.Start()
	s.OnTap(core.Vec{})
	if s.State() != StatePlaying {
		t.Fatalf("state = %s, expected playing", s.State())
	}
	rec.reset()
	return s, rec
}

func TestSessionStartShowsMessage(t *testing.T) {
	s, rec := newTestSession(t)
	if s.State() != StateNone {
		t.Fatalf("new session state = %s, expected none", s.State())
	}

	s.Start()

	if s.State() != StateWaitingForTap {
		t.Errorf("state = %s, expected waiting-for-tap", s.State())
	}
	if !reflect.DeepEqual(rec.calls, []string{"show"}) {
		t.Errorf("calls = %v, expected [show]", rec.calls)
	}
}

func TestSessionTapLaunchesBall(t *testing.T) {
	s, rec := newTestSession(t)
	s.Start()
	rec.reset()

	s.OnTap(core.Vec{X: 1, Y: 1})

	if s.State() != StatePlaying {
		t.Fatalf("state = %s, expected playing", s.State())
	}
	if !reflect.DeepEqual(rec.calls, []string{"hide", "launch"}) {
		t.Errorf("calls = %v, expected hide before launch", rec.calls)
	}
	if !s.Dragging() {
		t.Error("first tap should arm dragging")
	}

	v := rec.launched[0]
	if v.Y >= 0 {
		t.Errorf("launch velocity %+v should point up", v)
	}
	if math.Abs(v.Len()-s.Settings().BallSpeed) > 1e-9 {
		t.Errorf("launch speed = %v, expected %v", v.Len(), s.Settings().BallSpeed)
	}
}

func TestLaunchAngleWithinRange(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		rec := &recorder{}
		set := DefaultSettings(80, 20)
		set.Seed = seed
		s := NewSession(set, Collaborators{Presenter: rec, HitTester: rec})
		s.Start()
		s.OnTap(core.Vec{})

		v := rec.launched[0]
		deg := math.Atan2(-v.Y, v.X) * 180 / math.Pi
		if deg < set.LaunchMinAngle-1e-9 || deg > set.LaunchMaxAngle+1e-9 {
			t.Errorf("seed %d: launch angle %.2f outside [%v, %v]", seed, deg, set.LaunchMinAngle, set.LaunchMaxAngle)
		}
	}
}

func TestLaunchDeterministicPerSeed(t *testing.T) {
	launch := func() core.Vec {
		rec := &recorder{}
		s := NewSession(DefaultSettings(80, 20), Collaborators{Presenter: rec, HitTester: rec})
		s.Start()
		s.OnTap(core.Vec{})
		return rec.launched[0]
	}
	if a, b := launch(), launch(); a != b {
		t.Errorf("same seed launched %+v and %+v", a, b)
	}
}

func TestContactsIgnoredOutsidePlaying(t *testing.T) {
	s, rec := newTestSession(t)
	s.Start()
	rec.reset()

	for _, other := range []Body{bottom, border, paddle, blockBody(firstBlockNode)} {
		if r := s.OnContact(ball, other); r != ReactionNone {
			t.Errorf("contact with %s while waiting = %s, expected none", other.Category, r)
		}
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls = %v, expected none", rec.calls)
	}
	if s.Blocks().Remaining() != DefaultBlockCount {
		t.Errorf("remaining = %d, expected %d", s.Blocks().Remaining(), DefaultBlockCount)
	}
}

func TestBottomContactLoses(t *testing.T) {
	s, rec := playingSession(t)

	s.OnContact(bottom, ball) // reversed order on purpose

	if s.State() != StateGameOver {
		t.Fatalf("state = %s, expected game-over", s.State())
	}
	if s.Outcome() != OutcomeLost {
		t.Errorf("outcome = %s, expected lost", s.Outcome())
	}
	expected := []string{"damping 1.0", "gravity 0.0,0.0", "outcome won=false", "sound lost"}
	if !reflect.DeepEqual(rec.calls, expected) {
		t.Errorf("calls = %v, expected %v", rec.calls, expected)
	}

	// A block contact after the game is over changes nothing.
	rec.reset()
	if r := s.OnContact(ball, blockBody(firstBlockNode)); r != ReactionNone {
		t.Errorf("block contact after game over = %s, expected none", r)
	}
	if s.Blocks().Remaining() != DefaultBlockCount {
		t.Error("block destroyed after game over")
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls after game over = %v", rec.calls)
	}
	if !reflect.DeepEqual(rec.finished, []Outcome{OutcomeLost}) {
		t.Errorf("finished = %v, expected exactly one loss", rec.finished)
	}
}

func TestBreakingAllBlocksWins(t *testing.T) {
	s, rec := playingSession(t)
	blocks := s.Blocks().Blocks()

	for i, b := range blocks[:len(blocks)-1] {
		s.OnContact(ball, blockBody(b.ID))
		if s.Blocks().IsCleared() {
			t.Fatalf("cleared after %d blocks", i+1)
		}
		if s.State() != StatePlaying {
			t.Fatalf("state = %s after %d blocks", s.State(), i+1)
		}
	}

	rec.reset()
	last := blocks[len(blocks)-1]
	s.OnContact(blockBody(last.ID), ball)

	if !s.Blocks().IsCleared() {
		t.Fatal("field should be cleared")
	}
	if s.State() != StateGameOver || s.Outcome() != OutcomeWon {
		t.Errorf("state = %s outcome = %s, expected game-over won", s.State(), s.Outcome())
	}
	expected := []string{
		"sound block-break",
		"effect block-burst",
		fmt.Sprintf("remove %d", last.ID),
		"damping 1.0",
		"gravity 0.0,0.0",
		"outcome won=true",
		"sound won",
	}
	if !reflect.DeepEqual(rec.calls, expected) {
		t.Errorf("calls = %v, expected %v", rec.calls, expected)
	}
}

func TestRepeatedBlockContactIsNoop(t *testing.T) {
	s, rec := playingSession(t)
	id := s.Blocks().Blocks()[0].ID

	s.OnContact(ball, blockBody(id))
	rec.reset()
	s.OnContact(ball, blockBody(id))

	if len(rec.calls) != 0 {
		t.Errorf("second contact produced calls %v", rec.calls)
	}
	if s.Blocks().Remaining() != DefaultBlockCount-1 {
		t.Errorf("remaining = %d, expected %d", s.Blocks().Remaining(), DefaultBlockCount-1)
	}
}

func TestBounceSounds(t *testing.T) {
	s, rec := playingSession(t)

	s.OnContact(border, ball)
	s.OnContact(ball, paddle)
	s.OnContact(paddle, border) // no rule

	expected := []string{"sound wall", "sound paddle"}
	if !reflect.DeepEqual(rec.calls, expected) {
		t.Errorf("calls = %v, expected %v", rec.calls, expected)
	}
	if s.State() != StatePlaying {
		t.Errorf("state = %s, expected playing", s.State())
	}
}

func TestDragMovesPaddle(t *testing.T) {
	s, rec := playingSession(t)

	s.OnDragEnd()
	s.OnDragMove(10)
	if len(rec.calls) != 0 {
		t.Errorf("move without drag produced %v", rec.calls)
	}

	rec.paddleAt = false
	s.OnDragStart(core.Vec{})
	s.OnDragMove(10)
	if len(rec.calls) != 0 {
		t.Errorf("drag off paddle produced %v", rec.calls)
	}

	rec.paddleAt = true
	s.OnTap(core.Vec{}) // in Playing a tap is a drag start
	s.OnDragMove(5)
	s.OnDragMove(1000)
	s.OnDragEnd()
	s.OnDragMove(-5)

	expected := []string{"paddle 45", "paddle 75"}
	if !reflect.DeepEqual(rec.calls, expected) {
		t.Errorf("calls = %v, expected %v", rec.calls, expected)
	}
}

func TestSteerIgnoresDrag(t *testing.T) {
	s, rec := playingSession(t)
	s.OnDragEnd()

	s.Steer(-1000)

	if !reflect.DeepEqual(rec.calls, []string{"paddle 5"}) {
		t.Errorf("calls = %v, expected [paddle 5]", rec.calls)
	}
}

func TestTapAfterGameOverRequestsReset(t *testing.T) {
	s, rec := playingSession(t)
	s.OnContact(ball, bottom)

	s.OnTap(core.Vec{})

	if rec.resets != 1 {
		t.Errorf("resets = %d, expected 1", rec.resets)
	}
	if s.State() != StateGameOver {
		t.Errorf("state = %s, the old session must stay finished", s.State())
	}
}

func TestFrameUpdateCountsPlayTime(t *testing.T) {
	s, _ := newTestSession(t)
	s.Start()
	s.OnFrameUpdate(1) // waiting: not counted
	s.OnTap(core.Vec{})
	s.OnFrameUpdate(0.5)
	s.OnFrameUpdate(0.5)
	s.OnContact(ball, bottom)
	s.OnFrameUpdate(3) // game over: not counted

	if s.Elapsed() != time.Second {
		t.Errorf("elapsed = %v, expected 1s", s.Elapsed())
	}
}

func TestRejectedTransitionsReachObserver(t *testing.T) {
	s, rec := newTestSession(t)
	s.Start()
	s.Start() // waiting -> waiting

	if rec.rejected != 1 {
		t.Errorf("rejected = %d, expected 1", rec.rejected)
	}
	if s.State() != StateWaitingForTap {
		t.Errorf("state = %s, expected waiting-for-tap", s.State())
	}
}
