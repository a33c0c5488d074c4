package game

import (
	"math"
)

// Snapshot captures the observable scene state for determinism tests and
// debugging. Uses primitive types only.
type Snapshot struct {
	Tick       uint64
	Generation int
	State      string
	Outcome    string
	Score      int
	PaddleX    int // paddle centre in 1/100 cells
	BallX      int // ball position in 1/100 cells
	BallY      int
	BallVX     int
	BallVY     int
	Remaining  int
	BlockIDs   []int
	Seed       uint64
}

func fixed(v float64) int {
	return int(math.Round(v * 100))
}

// Snapshot returns the current scene state.
func (s *Scene) Snapshot() Snapshot {
	ball := s.world.Ball()
	vel := s.world.Velocity()
	blocks := s.session.Blocks().Blocks()
	ids := make([]int, len(blocks))
	for i, b := range blocks {
		ids[i] = int(b.ID)
	}

	return Snapshot{
		Tick:       s.tick,
		Generation: s.generation,
		State:      s.session.State().String(),
		Outcome:    s.session.Outcome().String(),
		Score:      s.score,
		PaddleX:    fixed(s.session.Paddle().X()),
		BallX:      fixed(ball.X),
		BallY:      fixed(ball.Y),
		BallVX:     fixed(vel.X),
		BallVY:     fixed(vel.Y),
		Remaining:  len(blocks),
		BlockIDs:   ids,
		Seed:       s.seed,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Generation) //#nosec G115 -- hash computation
	for _, r := range snap.State + "/" + snap.Outcome {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	for _, v := range []int{snap.Score, snap.PaddleX, snap.BallX, snap.BallY, snap.BallVX, snap.BallVY, snap.Remaining} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BlockIDs {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h*31 + snap.Seed
}
