// Package physics is the contact world behind a breakout session. It moves
// the ball through a cell-sized resolv space, bounces it off solid bodies and
// reports which bodies were touched. It knows nothing about the rules.
package physics

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

const (
	tagSolid  = "solid"
	tagBall   = "ball"
	tagPaddle = "paddle"
	tagBlock  = "block"

	// margin cells around the field hold the border and bottom bodies.
	margin = 1

	// maxEnglish caps how far off vertical a paddle hit can send the ball.
	maxEnglish = 0.75
)

// Contact is one ball-versus-body touch produced by Step.
type Contact struct {
	A, B breakout.Body
}

// Layout places the fixed bodies of a field.
type Layout struct {
	Width, Height   int
	PaddleHalfWidth float64
	PaddleX         float64
	Blocks          []breakout.Block
}

// World owns the resolv space and the ball's velocity.
type World struct {
	width, height int
	space         *resolv.Space
	bodies        map[*resolv.Object]breakout.Body
	nodes         map[breakout.NodeRef]*resolv.Object

	ball     *resolv.Object
	paddle   *resolv.Object
	velocity core.Vec
	gravity  core.Vec
	damping  float64

	paddleX   float64
	paddleHW  float64
	paddleRow int
}

// New builds a world for the layout. The ball rests just above the paddle.
func New(l Layout) *World {
	w := &World{
		width:     l.Width,
		height:    l.Height,
		space:     resolv.NewSpace(l.Width+2*margin, l.Height+2*margin, 1, 1),
		bodies:    make(map[*resolv.Object]breakout.Body),
		nodes:     make(map[breakout.NodeRef]*resolv.Object),
		paddleHW:  l.PaddleHalfWidth,
		paddleRow: l.Height - 2,
	}

	border := breakout.Body{Category: breakout.CategoryBorder, Node: breakout.NodeBorder}
	w.addBody(border, -margin, -margin, float64(l.Width+2*margin), 1, tagSolid)
	w.addBody(border, -margin, 0, 1, float64(l.Height), tagSolid)
	w.addBody(border, float64(l.Width), 0, 1, float64(l.Height), tagSolid)
	w.addBody(breakout.Body{Category: breakout.CategoryBottom, Node: breakout.NodeBottom},
		-margin, float64(l.Height), float64(l.Width+2*margin), 1, tagSolid)

	for _, b := range l.Blocks {
		r := BlockRect(b)
		w.addBody(breakout.Body{Category: breakout.CategoryBlock, Node: b.ID},
			float64(r.X), float64(r.Y), float64(r.W), float64(r.H), tagSolid, tagBlock)
	}

	w.paddleX = l.PaddleX
	pr := w.PaddleRect()
	w.paddle = w.addBody(breakout.Body{Category: breakout.CategoryPaddle, Node: breakout.NodePaddle},
		float64(pr.X), float64(pr.Y), float64(pr.W), 1, tagSolid, tagPaddle)

	w.ball = w.addBody(breakout.Body{Category: breakout.CategoryBall, Node: breakout.NodeBall},
		math.Floor(l.PaddleX), float64(w.paddleRow-1), 1, 1, tagBall)
	return w
}

func (w *World) addBody(b breakout.Body, x, y, width, height float64, tags ...string) *resolv.Object {
	obj := resolv.NewObject(x+margin, y+margin, width, height, tags...)
	w.space.Add(obj)
	w.bodies[obj] = b
	if b.Node != breakout.NodeBorder && b.Node != breakout.NodeBottom {
		w.nodes[b.Node] = obj
	}
	return obj
}

// BlockRect returns the cells a block covers.
func BlockRect(b breakout.Block) core.Rect {
	x0 := int(math.Round(b.Pos.X - b.Width/2))
	x1 := int(math.Round(b.Pos.X + b.Width/2))
	return core.NewRect(x0, int(math.Round(b.Pos.Y)), max(1, x1-x0), 1)
}

// PaddleRect returns the cells the paddle covers.
func (w *World) PaddleRect() core.Rect {
	x0 := int(math.Round(w.paddleX - w.paddleHW))
	width := max(1, int(math.Round(2*w.paddleHW)))
	return core.NewRect(x0, w.paddleRow, width, 1)
}

// Ball returns the ball position in field coordinates.
func (w *World) Ball() core.Vec {
	return core.Vec{X: w.ball.X - margin, Y: w.ball.Y - margin}
}

// Velocity returns the ball velocity in cells per second.
func (w *World) Velocity() core.Vec {
	return w.velocity
}

// Launch sets the ball velocity.
func (w *World) Launch(v core.Vec) {
	w.velocity = v
}

// SetDamping sets how much velocity the ball loses per second, from 0
// (none) to 1 (stops at once).
func (w *World) SetDamping(d float64) {
	w.damping = core.ClampF(d, 0, 1)
}

// SetGravity sets a constant acceleration on the ball.
func (w *World) SetGravity(g core.Vec) {
	w.gravity = g
}

// SetPaddleX moves the paddle centre.
func (w *World) SetPaddleX(x float64) {
	w.paddleX = x
	w.paddle.X = float64(w.PaddleRect().X) + margin
	w.paddle.Update()
}

// Remove takes a node out of the world. Unknown nodes are ignored.
func (w *World) Remove(node breakout.NodeRef) {
	obj, ok := w.nodes[node]
	if !ok {
		return
	}
	w.space.Remove(obj)
	delete(w.nodes, node)
	delete(w.bodies, obj)
}

// PaddleAt reports whether p is on the paddle or the row just above it.
func (w *World) PaddleAt(p core.Vec) bool {
	x := int(math.Floor(p.X)) + margin
	for _, y := range []int{int(math.Floor(p.Y)), int(math.Floor(p.Y)) + 1} {
		cell := w.space.Cell(x, y+margin)
		if cell == nil {
			continue
		}
		for _, o := range cell.Objects {
			if o == w.paddle {
				return true
			}
		}
	}
	return false
}

// Step advances the ball by dt seconds and returns the bodies it touched,
// each at most once.
func (w *World) Step(dt float64) []Contact {
	w.velocity = w.velocity.Add(w.gravity.Scale(dt))
	switch {
	case w.damping >= 1:
		w.velocity = core.Vec{}
	case w.damping > 0:
		w.velocity = w.velocity.Scale(math.Pow(1-w.damping, dt))
	}
	if w.velocity.IsZero() {
		return nil
	}

	dx, dy := w.velocity.X*dt, w.velocity.Y*dt
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	sx, sy := dx/float64(steps), dy/float64(steps)

	var contacts []Contact
	seen := make(map[*resolv.Object]bool)
	touch := func(o *resolv.Object) {
		if seen[o] {
			return
		}
		seen[o] = true
		contacts = append(contacts, Contact{A: w.bodies[w.ball], B: w.bodies[o]})
	}

	for range steps {
		if hit := w.solidAt(sx, 0); hit != nil {
			touch(hit)
			w.velocity.X = -w.velocity.X
			sx = -sx
		} else {
			w.ball.X += sx
		}

		if hit := w.solidAt(0, sy); hit != nil {
			touch(hit)
			if hit == w.paddle && sy > 0 {
				w.english()
			} else {
				w.velocity.Y = -w.velocity.Y
			}
			sy = math.Copysign(sy, w.velocity.Y)
			sx = math.Copysign(sx, w.velocity.X)
		} else {
			w.ball.Y += sy
		}
		w.ball.Update()
	}
	return contacts
}

// solidAt returns the first solid body the ball would overlap after moving
// by (dx, dy), ignoring bodies it already overlaps.
func (w *World) solidAt(dx, dy float64) *resolv.Object {
	if dx == 0 && dy == 0 {
		return nil
	}
	if math.Floor(w.ball.X+dx) == math.Floor(w.ball.X) && math.Floor(w.ball.Y+dy) == math.Floor(w.ball.Y) {
		return nil
	}
	check := w.ball.Check(dx, dy, tagSolid)
	if check == nil {
		return nil
	}
	for _, o := range check.ObjectsByTags(tagSolid) {
		if _, ok := w.bodies[o]; ok {
			return o
		}
	}
	return nil
}

// english sends the ball back up at an angle that depends on where it hit
// the paddle: the further from the centre, the flatter the bounce.
func (w *World) english() {
	speed := w.velocity.Len()
	offset := 0.0
	if w.paddleHW > 0 {
		offset = core.ClampF((w.ball.X-margin+0.5-w.paddleX)/w.paddleHW, -1, 1)
	}
	vx := speed * offset * maxEnglish
	w.velocity = core.Vec{X: vx, Y: -math.Sqrt(speed*speed - vx*vx)}
}
