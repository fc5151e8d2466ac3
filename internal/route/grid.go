package route

// Grid is a static occupancy map with a start and a goal cell.
// Cells are stored in row-major order: index = y*width + x.
// A Grid is read-only after NewGrid returns and may be shared between searches.
type Grid struct {
	width   int
	height  int
	blocked []bool
	start   Coord
	goal    Coord
}

// NewGrid validates the inputs and builds a grid.
// Duplicate obstacles are tolerated. A start or goal that is itself an
// obstacle is rejected rather than silently cleared.
func NewGrid(width, height int, obstacles []Coord, start, goal Coord) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, configError(CodeInvalidSize, "grid size %dx%d must be at least 1x1", width, height)
	}

	g := &Grid{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
		start:   start,
		goal:    goal,
	}

	if !g.InBounds(start) {
		return nil, configError(CodeStartOutOfBounds, "start %v outside %dx%d grid", start, width, height)
	}
	if !g.InBounds(goal) {
		return nil, configError(CodeGoalOutOfBounds, "goal %v outside %dx%d grid", goal, width, height)
	}

	for _, c := range obstacles {
		if !g.InBounds(c) {
			return nil, configError(CodeObstacleOutOfBounds, "obstacle %v outside %dx%d grid", c, width, height)
		}
		g.blocked[g.index(c)] = true
	}

	if g.IsObstacle(start) {
		return nil, configError(CodeStartBlocked, "start %v is an obstacle", start)
	}
	if g.IsObstacle(goal) {
		return nil, configError(CodeGoalBlocked, "goal %v is an obstacle", goal)
	}

	return g, nil
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.width + c.X
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Cells returns width*height.
func (g *Grid) Cells() int {
	return g.width * g.height
}

// Start returns the start cell.
func (g *Grid) Start() Coord {
	return g.start
}

// Goal returns the goal cell.
func (g *Grid) Goal() Coord {
	return g.goal
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// IsObstacle reports whether c is blocked. Out-of-bounds cells report false;
// callers check InBounds first.
func (g *Grid) IsObstacle(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.blocked[g.index(c)]
}

// ObstacleCount returns the number of distinct blocked cells.
func (g *Grid) ObstacleCount() int {
	count := 0
	for _, b := range g.blocked {
		if b {
			count++
		}
	}
	return count
}

// Obstacles returns all blocked cells ordered by row then column.
func (g *Grid) Obstacles() []Coord {
	coords := make([]Coord, 0, g.ObstacleCount())
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.blocked[y*g.width+x] {
				coords = append(coords, C(x, y))
			}
		}
	}
	return coords
}

// Density returns the fraction of blocked cells.
func (g *Grid) Density() float64 {
	return float64(g.ObstacleCount()) / float64(g.Cells())
}
