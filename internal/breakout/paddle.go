package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// PaddleController keeps the paddle centre inside the field.
type PaddleController struct {
	x          float64
	halfWidth  float64
	fieldWidth float64
}

// NewPaddleController creates a controller with the paddle centre at x,
// clamped into the allowed range.
func NewPaddleController(x, halfWidth, fieldWidth float64) *PaddleController {
	p := &PaddleController{
		halfWidth:  halfWidth,
		fieldWidth: fieldWidth,
	}
	p.x = p.clamp(x)
	return p
}

// Bounds returns the lowest and highest allowed centre positions.
func (p *PaddleController) Bounds() (lo, hi float64) {
	lo, hi = p.halfWidth, p.fieldWidth-p.halfWidth
	if lo > hi {
		// Paddle wider than the field: pin to the middle.
		mid := p.fieldWidth / 2
		return mid, mid
	}
	return lo, hi
}

func (p *PaddleController) clamp(x float64) float64 {
	lo, hi := p.Bounds()
	return core.ClampF(x, lo, hi)
}

// MoveBy shifts the paddle by dx and returns the clamped position.
func (p *PaddleController) MoveBy(dx float64) float64 {
	p.x = p.clamp(p.x + dx)
	return p.x
}

// X returns the paddle centre.
func (p *PaddleController) X() float64 {
	return p.x
}

// HalfWidth returns half the paddle width.
func (p *PaddleController) HalfWidth() float64 {
	return p.halfWidth
}
