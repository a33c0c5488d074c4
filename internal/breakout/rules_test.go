package breakout

import "testing"

var allCategories = []ColliderCategory{
	CategoryBall,
	CategoryBottom,
	CategoryBlock,
	CategoryPaddle,
	CategoryBorder,
}

func TestResolveTable(t *testing.T) {
	tests := []struct {
		name     string
		a, b     ColliderCategory
		expected Reaction
	}{
		{"ball bottom", CategoryBall, CategoryBottom, ReactionLose},
		{"ball block", CategoryBall, CategoryBlock, ReactionBreakBlock},
		{"ball border", CategoryBall, CategoryBorder, ReactionWallSound},
		{"ball paddle", CategoryBall, CategoryPaddle, ReactionPaddleSound},
		{"paddle border", CategoryPaddle, CategoryBorder, ReactionNone},
		{"block bottom", CategoryBlock, CategoryBottom, ReactionNone},
		{"ball ball", CategoryBall, CategoryBall, ReactionNone},
		{"none ball", CategoryNone, CategoryBall, ReactionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.a, tc.b); got != tc.expected {
				t.Errorf("Resolve(%s, %s) = %s, expected %s", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestResolveIsOrderIndependent(t *testing.T) {
	for _, a := range allCategories {
		for _, b := range allCategories {
			if Resolve(a, b) != Resolve(b, a) {
				t.Errorf("Resolve(%s, %s) = %s but Resolve(%s, %s) = %s",
					a, b, Resolve(a, b), b, a, Resolve(b, a))
			}
		}
	}
}

func TestCanonical(t *testing.T) {
	ball := Body{Category: CategoryBall, Node: NodeBall}
	block := Body{Category: CategoryBlock, Node: firstBlockNode + 3}

	lo, hi := Canonical(block, ball)
	if lo != ball || hi != block {
		t.Errorf("Canonical(block, ball) = (%+v, %+v), expected ball first", lo, hi)
	}

	lo, hi = Canonical(ball, block)
	if lo != ball || hi != block {
		t.Errorf("Canonical(ball, block) = (%+v, %+v), expected ball first", lo, hi)
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		c        ColliderCategory
		expected string
	}{
		{CategoryBall, "ball"},
		{CategoryBorder, "border"},
		{CategoryNone, "none"},
		{CategoryBall | CategoryPaddle, "ball|paddle"},
		{1 << 10, "unknown"},
	}
	for _, tc := range tests {
		if got := tc.c.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}
