package game

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// burst is the debris left where a block broke. It spreads out and
// disappears after ttl seconds.
type burst struct {
	pos   core.Vec
	color core.Color
	age   float64
	ttl   float64
}

var burstDirs = []core.Vec{
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: -0.5}, {X: 1, Y: -0.5},
	{X: -1, Y: 0.5}, {X: 1, Y: 0.5},
	{X: 0, Y: -0.5}, {X: 0, Y: 0.5},
}

func (b *burst) alive() bool {
	return b.age < b.ttl
}

func (b *burst) draw(dst *core.Screen, yOffset int) {
	t := b.age / b.ttl
	radius := 1 + 3*t
	glyph := '*'
	if t > 0.6 {
		glyph = '.'
	}
	for _, d := range burstDirs {
		x := int(math.Round(b.pos.X + d.X*radius))
		y := int(math.Round(b.pos.Y+d.Y*radius)) + yOffset
		dst.SetColored(x, y, glyph, b.color)
	}
}

// updateBursts ages every burst and drops the finished ones.
func updateBursts(bursts []burst, dt float64) []burst {
	live := bursts[:0]
	for _, b := range bursts {
		b.age += dt
		if b.alive() {
			live = append(live, b)
		}
	}
	return live
}
