package route

import "fmt"

// Reconstruct walks predecessor indices from the terminal state back to the
// root and returns the positions in start-to-terminal order.
func Reconstruct(arena []SearchState, terminal int) ([]Coord, error) {
	if terminal < 0 || terminal >= len(arena) {
		return nil, fmt.Errorf("%w: terminal %d, arena size %d", ErrInvalidState, terminal, len(arena))
	}

	path := make([]Coord, 0, 16)
	id := terminal
	for steps := 0; id != NoPredecessor; steps++ {
		if steps == len(arena) {
			return nil, ErrCyclicPath
		}
		if id < 0 || id >= len(arena) {
			return nil, fmt.Errorf("%w: index %d, arena size %d", ErrInvalidState, id, len(arena))
		}
		path = append(path, arena[id].Pos)
		id = arena[id].Parent
	}

	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// PathCost re-prices a route move by move for an agent whose facing never
// changes. It fails if two consecutive cells are not neighbours or if the
// route steps orthogonally onto an obstacle.
func PathCost(g *Grid, costs CostTable, facing Direction, path []Coord) (int, error) {
	total := 0
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		if !from.Adjacent(to) {
			return 0, fmt.Errorf("route: step %d from %v to %v is not a single move", i, from, to)
		}
		dx, dy := to.X-from.X, to.Y-from.Y
		blocked := g.IsObstacle(to)
		if blocked && (dx == 0 || dy == 0) {
			return 0, fmt.Errorf("route: step %d moves orthogonally onto obstacle %v", i, to)
		}
		total += costs.Cost(facing, dx, dy, blocked)
	}
	return total, nil
}
