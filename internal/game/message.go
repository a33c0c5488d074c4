package game

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// message is the centred banner. Its scale animates between 0 (hidden)
// and 1 (fully shown).
type message struct {
	text     string
	subtitle string
	scale    float32
	tween    *gween.Tween
	duration float32
}

func newMessage(duration float64) *message {
	return &message{duration: float32(duration)}
}

// show sets the text and scales the banner in.
func (m *message) show(text, subtitle string) {
	m.text = text
	m.subtitle = subtitle
	m.animate(1, ease.OutBack)
}

// hide scales the banner out, keeping the text until it is gone.
func (m *message) hide() {
	m.animate(0, ease.InQuad)
}

func (m *message) animate(to float32, fn ease.TweenFunc) {
	if m.duration <= 0 {
		m.scale = to
		m.tween = nil
		return
	}
	m.tween = gween.New(m.scale, to, m.duration, fn)
}

func (m *message) update(dt float64) {
	if m.tween == nil {
		return
	}
	v, done := m.tween.Update(float32(dt))
	m.scale = v
	if done {
		m.tween = nil
	}
}

func (m *message) visible() bool {
	return m.scale > 0.05
}

func (m *message) animating() bool {
	return m.tween != nil
}
