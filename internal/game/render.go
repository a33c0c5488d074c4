package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/physics"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	BlockChar  = '█'
	HUDChar    = '─'
)

var blockColors = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorCyan,
	core.ColorBlue,
	core.ColorMagenta,
}

// blockColor picks a colour from the block's column so a burst matches
// the block it came from.
func blockColor(pos core.Vec) core.Color {
	return blockColors[int(math.Max(0, pos.X))/4%len(blockColors)]
}

// Render draws the current game state to the screen.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()

	if s.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	s.renderHUD(dst)
	s.renderBlocks(dst)
	s.renderPaddle(dst)
	s.renderBall(dst)
	for i := range s.bursts {
		s.bursts[i].draw(dst, hudRows)
	}
	s.renderMessage(dst)
}

// renderHUD draws score, block count and session number on the top row.
func (s *Scene) renderHUD(dst *core.Screen) {
	dst.DrawHLine(0, 0, dst.Width(), HUDChar, core.ColorGray)

	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d ", s.score))

	blocks := s.session.Blocks()
	dst.DrawTextCentered(0, fmt.Sprintf(" Blocks: %d/%d ", blocks.Remaining(), blocks.Total()))

	right := fmt.Sprintf(" Game %d ", s.generation)
	dst.DrawText(dst.Width()-len(right)-1, 0, right)
}

func (s *Scene) renderBlocks(dst *core.Screen) {
	for _, b := range s.session.Blocks().Blocks() {
		r := physics.BlockRect(b)
		c := blockColor(b.Pos)
		// Leave a one-cell gap on the right so neighbours read as separate.
		width := r.W
		if width > 1 {
			width--
		}
		dst.DrawHLine(r.X, r.Y+hudRows, width, BlockChar, c)
	}
}

func (s *Scene) renderPaddle(dst *core.Screen) {
	r := s.world.PaddleRect()
	dst.DrawHLine(r.X, r.Y+hudRows, r.W, PaddleChar, core.ColorWhite)
}

func (s *Scene) renderBall(dst *core.Screen) {
	if s.session.State() == breakout.StateGameOver && s.session.Outcome() == breakout.OutcomeLost {
		return
	}
	p := s.world.Ball()
	dst.SetColored(int(math.Floor(p.X)), int(math.Floor(p.Y))+hudRows, BallChar, core.ColorWhite)
}

// renderMessage draws the banner scaled horizontally by its animation.
func (s *Scene) renderMessage(dst *core.Screen) {
	m := s.message
	if !m.visible() {
		return
	}

	fullW := max(len(m.text), len(m.subtitle)) + 6
	scale := math.Min(float64(m.scale), 1.2)
	boxW := max(2, int(math.Round(float64(fullW)*scale)))
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorYellow)

	if boxW < fullW-2 {
		return
	}
	dst.DrawTextColored(boxX+(boxW-len(m.text))/2, boxY+1, m.text, core.ColorYellow)
	dst.DrawText(boxX+(boxW-len(m.subtitle))/2, boxY+3, m.subtitle)
}
