// Package render draws grids and search results into a pure cell buffer.
// Frames know nothing about terminals; the CLI, the TUI and the web feed
// each style the same cell kinds their own way.
package render

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/robopath/internal/route"
)

// Cell is what a board position shows.
type Cell uint8

const (
	CellFree Cell = iota
	CellObstacle
	CellStart
	CellGoal
	CellExplored
	CellPath
	CellCollision // path cell entered through an obstacle
	CellAgent
)

// String returns the cell name used by the web feed.
func (c Cell) String() string {
	switch c {
	case CellFree:
		return "free"
	case CellObstacle:
		return "obstacle"
	case CellStart:
		return "start"
	case CellGoal:
		return "goal"
	case CellExplored:
		return "explored"
	case CellPath:
		return "path"
	case CellCollision:
		return "collision"
	case CellAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// Rune returns the ASCII glyph for the cell. Agents are drawn with their
// facing arrow instead.
func (c Cell) Rune() rune {
	switch c {
	case CellObstacle:
		return '#'
	case CellStart:
		return 'S'
	case CellGoal:
		return 'G'
	case CellExplored:
		return '+'
	case CellPath:
		return '*'
	case CellCollision:
		return 'X'
	case CellAgent:
		return '@'
	default:
		return '.'
	}
}

// Frame is a width x height buffer of cells, row-major.
type Frame struct {
	width  int
	height int
	cells  []Cell
	facing route.Direction
}

// NewFrame draws the static board: obstacles, start and goal.
func NewFrame(g *route.Grid) *Frame {
	f := &Frame{
		width:  g.Width(),
		height: g.Height(),
		cells:  make([]Cell, g.Cells()),
		facing: route.North,
	}
	for _, c := range g.Obstacles() {
		f.Set(c, CellObstacle)
	}
	f.Set(g.Start(), CellStart)
	f.Set(g.Goal(), CellGoal)
	return f
}

// Width returns the frame width in cells.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the frame height in cells.
func (f *Frame) Height() int {
	return f.height
}

// Facing returns the direction the agent glyph points to.
func (f *Frame) Facing() route.Direction {
	return f.facing
}

// SetFacing sets the direction the agent glyph points to.
func (f *Frame) SetFacing(d route.Direction) {
	f.facing = d
}

// Set changes a cell. Out-of-bounds coordinates are silently ignored.
func (f *Frame) Set(c route.Coord, k Cell) {
	if c.X < 0 || c.X >= f.width || c.Y < 0 || c.Y >= f.height {
		return
	}
	f.cells[c.Y*f.width+c.X] = k
}

// At returns the cell at (x, y), or CellFree outside the frame.
func (f *Frame) At(x, y int) Cell {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return CellFree
	}
	return f.cells[y*f.width+x]
}

// MarkExplored shades expanded cells. Only free cells change, so endpoints
// and obstacles stay readable.
func (f *Frame) MarkExplored(cells []route.Coord) {
	for _, c := range cells {
		if f.At(c.X, c.Y) == CellFree {
			f.Set(c, CellExplored)
		}
	}
}

// MarkPath draws the first n cells of path with the agent on the last one.
// n is clamped to the path length; n <= 0 draws nothing.
func (f *Frame) MarkPath(path []route.Coord, n int) {
	if n > len(path) {
		n = len(path)
	}
	for i := 0; i < n; i++ {
		c := path[i]
		switch {
		case i == n-1:
			f.Set(c, CellAgent)
		case f.At(c.X, c.Y) == CellObstacle:
			f.Set(c, CellCollision)
		case f.At(c.X, c.Y) == CellStart || f.At(c.X, c.Y) == CellGoal:
			// keep endpoint markers
		default:
			f.Set(c, CellPath)
		}
	}
}

// Snapshot draws a result after step path cells have been revealed.
func Snapshot(g *route.Grid, r route.Result, step int, showExplored bool) *Frame {
	f := NewFrame(g)
	f.SetFacing(r.Facing)
	if showExplored {
		f.MarkExplored(r.Explored)
	}
	f.MarkPath(r.Path, step)
	return f
}

// Glyph returns the rune drawn at (x, y).
func (f *Frame) Glyph(x, y int) rune {
	k := f.At(x, y)
	if k == CellAgent {
		return f.facing.Arrow()
	}
	return k.Rune()
}

// String renders the frame as ASCII rows separated by newlines.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow((f.width + 1) * f.height)
	for y := 0; y < f.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < f.width; x++ {
			sb.WriteRune(f.Glyph(x, y))
		}
	}
	return sb.String()
}

// Legend explains the ASCII glyphs.
func Legend() string {
	return "S start  G goal  # obstacle  * path  X collision  + explored"
}

// Summary describes a result in one line.
func Summary(r route.Result) string {
	if r.Found() {
		return fmt.Sprintf("route found: cost %d, %d cells, %d expanded, facing %s",
			r.Cost, len(r.Path), r.Expanded(), r.Facing)
	}
	return fmt.Sprintf("no route: %s (%d expanded, facing %s)", r.Reason, r.Expanded(), r.Facing)
}
