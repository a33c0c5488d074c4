// Package breakout holds the rules of a single breakout session: the phase
// state machine, collision reactions, the block row and the paddle clamp.
// It has no terminal, physics or audio code; those arrive through the
// Presenter and HitTester interfaces.
package breakout

import "strings"

// ColliderCategory tags the role of a physical body for contact filtering.
// Each body carries exactly one category bit.
type ColliderCategory uint32

const (
	CategoryBall ColliderCategory = 1 << iota
	CategoryBottom
	CategoryBlock
	CategoryPaddle
	CategoryBorder
)

// CategoryNone is the zero value; no body uses it.
const CategoryNone ColliderCategory = 0

// String returns the lowercase name of a single category, or a "|" joined
// list when more than one bit is set.
func (c ColliderCategory) String() string {
	if c == CategoryNone {
		return "none"
	}

	names := make([]string, 0, 1)
	for _, n := range []struct {
		bit  ColliderCategory
		name string
	}{
		{CategoryBall, "ball"},
		{CategoryBottom, "bottom"},
		{CategoryBlock, "block"},
		{CategoryPaddle, "paddle"},
		{CategoryBorder, "border"},
	} {
		if c&n.bit != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, "|")
}

// NodeRef is a handle to a host-side body. Blocks use their block ID; the
// other bodies use the fixed handles below. Zero means "no node".
type NodeRef int

// Fixed handles for the singleton bodies. Block IDs start after these.
const (
	NodeNone NodeRef = iota
	NodeBall
	NodePaddle
	NodeBorder
	NodeBottom

	firstBlockNode
)

// Body identifies one side of a contact: its category and its node.
type Body struct {
	Category ColliderCategory
	Node     NodeRef
}
