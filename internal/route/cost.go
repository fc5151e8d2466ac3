package route

// CostTable holds the named move costs.
type CostTable struct {
	Stay      int // zero displacement
	Turn      int // diagonal move onto a free cell
	Collision int // diagonal move onto an obstacle
	Straight  int // any orthogonal move, matching the facing or not
}

// DefaultCosts returns the stock cost table: 1000 / 1 / 1000 / 0.
func DefaultCosts() CostTable {
	return CostTable{
		Stay:      1000,
		Turn:      1,
		Collision: 1000,
		Straight:  0,
	}
}

// Validate rejects negative costs.
func (t CostTable) Validate() error {
	if t.Stay < 0 || t.Turn < 0 || t.Collision < 0 || t.Straight < 0 {
		return configError(CodeInvalidCosts,
			"costs must be non-negative (stay=%d turn=%d collision=%d straight=%d)",
			t.Stay, t.Turn, t.Collision, t.Straight)
	}
	return nil
}

// Cost prices a single move attempted while facing the given direction.
//
// Only diagonal moves pay for reorienting. Orthogonal moves cost Straight
// whether or not they match the facing, and an orthogonal move onto an
// obstacle is never priced here because the finder rejects it first.
func (t CostTable) Cost(facing Direction, dx, dy int, targetBlocked bool) int {
	if dx == 0 && dy == 0 {
		return t.Stay
	}

	diagonal := dx != 0 && dy != 0
	if !diagonal {
		if fdx, fdy := facing.Delta(); fdx == dx && fdy == dy {
			return t.Straight
		}
	}

	if diagonal {
		if targetBlocked {
			return t.Collision
		}
		return t.Turn
	}

	return t.Straight
}
