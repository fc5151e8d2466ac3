package route

import "fmt"

// Coord represents a cell position on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the neighbouring Coord one step in the given direction.
func (c Coord) Step(d Direction) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Manhattan returns the Manhattan distance to another coordinate.
// It is the search heuristic.
func (c Coord) Manhattan(other Coord) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// Adjacent reports whether other is one of the 8 neighbours of c.
func (c Coord) Adjacent(other Coord) bool {
	dx, dy := abs(c.X-other.X), abs(c.Y-other.Y)
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
