package breakout

// Reaction is what the session does in response to a contact.
type Reaction int

const (
	ReactionNone        Reaction = iota
	ReactionLose                 // ball reached the bottom edge
	ReactionBreakBlock           // ball hit a block
	ReactionWallSound            // ball bounced off the border
	ReactionPaddleSound          // ball bounced off the paddle
)

// String returns a short name used in logs.
func (r Reaction) String() string {
	switch r {
	case ReactionNone:
		return "none"
	case ReactionLose:
		return "lose"
	case ReactionBreakBlock:
		return "break-block"
	case ReactionWallSound:
		return "wall-sound"
	case ReactionPaddleSound:
		return "paddle-sound"
	default:
		return "unknown"
	}
}

type contactRule struct {
	lower    ColliderCategory
	higher   ColliderCategory
	reaction Reaction
}

// contactRules is matched top to bottom against a canonical pair.
var contactRules = []contactRule{
	{CategoryBall, CategoryBottom, ReactionLose},
	{CategoryBall, CategoryBlock, ReactionBreakBlock},
	{CategoryBall, CategoryBorder, ReactionWallSound},
	{CategoryBall, CategoryPaddle, ReactionPaddleSound},
}

// Canonical orders two bodies by ascending category value. Physics engines
// report contact pairs in arbitrary order; every rule lookup goes through here.
func Canonical(a, b Body) (lower, higher Body) {
	if a.Category <= b.Category {
		return a, b
	}
	return b, a
}

// Resolve maps an unordered category pair to a reaction. Pairs without a
// rule resolve to ReactionNone.
func Resolve(a, b ColliderCategory) Reaction {
	if a > b {
		a, b = b, a
	}
	for _, r := range contactRules {
		if r.lower == a && r.higher == b {
			return r.reaction
		}
	}
	return ReactionNone
}
