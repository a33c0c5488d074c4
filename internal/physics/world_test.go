package physics

import (
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

const (
	fieldW = 80
	fieldH = 20
)

func newWorld(blocks []breakout.Block) *World {
	return New(Layout{
		Width:           fieldW,
		Height:          fieldH,
		PaddleHalfWidth: 5,
		PaddleX:         40,
		Blocks:          blocks,
	})
}

func centreBlock() []breakout.Block {
	return breakout.NewBlockField(breakout.BlockLayout{
		Count:       1,
		Width:       6,
		FieldWidth:  fieldW,
		FieldHeight: fieldH,
		Row:         0.8,
	}).Blocks()
}

// stepUntilContact steps in 0.1s frames and returns the first contacts seen.
func stepUntilContact(t *testing.T, w *World, limit int) []Contact {
	t.Helper()
	for range limit {
		if c := w.Step(0.1); len(c) > 0 {
			return c
		}
	}
	t.Fatalf("no contact after %d steps, ball at %+v", limit, w.Ball())
	return nil
}

func TestBallStartsAbovePaddle(t *testing.T) {
	w := newWorld(nil)

	if got := w.Ball(); got != (core.Vec{X: 40, Y: 17}) {
		t.Errorf("ball = %+v, expected {40 17}", got)
	}
	if r := w.PaddleRect(); r != core.NewRect(35, 18, 10, 1) {
		t.Errorf("paddle = %+v", r)
	}
	if c := w.Step(1); c != nil {
		t.Errorf("resting ball produced contacts %v", c)
	}
}

func TestTopBorderContact(t *testing.T) {
	w := newWorld(nil)
	w.Launch(core.Vec{X: 0, Y: -10})

	contacts := stepUntilContact(t, w, 30)

	if len(contacts) != 1 {
		t.Fatalf("contacts = %v, expected one", contacts)
	}
	c := contacts[0]
	if c.A.Category != breakout.CategoryBall || c.B.Category != breakout.CategoryBorder {
		t.Errorf("contact = %+v, expected ball/border", c)
	}
	if w.Ball().Y != 0 {
		t.Errorf("ball y = %v, expected 0", w.Ball().Y)
	}
	if w.Velocity().Y <= 0 {
		t.Errorf("velocity %+v should point down after the bounce", w.Velocity())
	}
}

func TestPaddleBounceAddsEnglish(t *testing.T) {
	w := newWorld(nil)
	w.Launch(core.Vec{X: 0, Y: 10})

	contacts := w.Step(0.1)

	if len(contacts) != 1 || contacts[0].B.Category != breakout.CategoryPaddle {
		t.Fatalf("contacts = %v, expected paddle", contacts)
	}
	v := w.Velocity()
	if v.Y >= 0 {
		t.Errorf("velocity %+v should point up", v)
	}
	if v.X <= 0 {
		t.Errorf("hit right of centre should send the ball right, got %+v", v)
	}
	if d := v.Len() - 10; d > 1e-9 || d < -1e-9 {
		t.Errorf("speed changed to %v", v.Len())
	}
}

func TestBottomContact(t *testing.T) {
	w := newWorld(nil)
	w.SetPaddleX(5)
	w.Launch(core.Vec{X: 0, Y: 10})

	contacts := stepUntilContact(t, w, 10)

	if contacts[0].B.Category != breakout.CategoryBottom {
		t.Errorf("contact = %+v, expected bottom", contacts[0])
	}
}

func TestBlockContactAndRemove(t *testing.T) {
	blocks := centreBlock()
	w := newWorld(blocks)
	w.Launch(core.Vec{X: 0, Y: -10})

	contacts := stepUntilContact(t, w, 30)
	c := contacts[0]
	if c.B.Category != breakout.CategoryBlock || c.B.Node != blocks[0].ID {
		t.Fatalf("contact = %+v, expected block %d", c, blocks[0].ID)
	}

	w.Remove(blocks[0].ID)
	w.Remove(blocks[0].ID) // second remove is ignored
	w.Launch(core.Vec{X: 0, Y: -10})

	contacts = stepUntilContact(t, w, 30)
	if contacts[0].B.Category != breakout.CategoryBorder {
		t.Errorf("contact = %+v, expected border once the block is gone", contacts[0])
	}
}

func TestFullDampingFreezesBall(t *testing.T) {
	w := newWorld(nil)
	w.Launch(core.Vec{X: 3, Y: -4})
	w.SetDamping(1)

	before := w.Ball()
	if c := w.Step(0.1); c != nil {
		t.Errorf("frozen ball produced contacts %v", c)
	}
	if w.Ball() != before || !w.Velocity().IsZero() {
		t.Errorf("ball moved to %+v with velocity %+v", w.Ball(), w.Velocity())
	}
}

func TestGravityAccelerates(t *testing.T) {
	w := newWorld(nil)
	w.SetGravity(core.Vec{Y: 5})

	w.Step(0.1)

	if v := w.Velocity(); v.Y < 0.49 || v.Y > 0.51 {
		t.Errorf("velocity = %+v, expected y near 0.5", v)
	}
}

func TestPaddleAt(t *testing.T) {
	w := newWorld(nil)

	tests := []struct {
		p    core.Vec
		want bool
	}{
		{core.Vec{X: 40, Y: 18}, true},
		{core.Vec{X: 35, Y: 18}, true},
		{core.Vec{X: 44, Y: 17}, true},
		{core.Vec{X: 45, Y: 18}, false},
		{core.Vec{X: 40, Y: 10}, false},
		{core.Vec{X: -5, Y: -5}, false},
	}
	for _, tc := range tests {
		if got := w.PaddleAt(tc.p); got != tc.want {
			t.Errorf("PaddleAt(%+v) = %v, expected %v", tc.p, got, tc.want)
		}
	}

	w.SetPaddleX(10)
	if !w.PaddleAt(core.Vec{X: 10, Y: 18}) || w.PaddleAt(core.Vec{X: 40, Y: 18}) {
		t.Error("PaddleAt did not follow SetPaddleX")
	}
}
