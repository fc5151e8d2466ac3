// Package route computes routes for a directional agent crossing an
// occupancy grid.
//
// The search is a single-pass best-first expansion: the frontier is ordered by
// accumulated cost plus Manhattan distance to the goal, and every cell is
// claimed by the first state that reaches it. Claimed cells are never
// revisited, so the result is deterministic but not guaranteed to be the
// cheapest route under the anisotropic cost table.
//
// This package has no external dependencies and never touches the terminal.
package route

import (
	"container/heap"
	"context"
)

// ReasonNoPath is the failure reason reported when the frontier empties.
const ReasonNoPath = "no path exists"

// unclaimed marks a cell without a search state.
const unclaimed = -1

// Status is the lifecycle state of a Finder.
type Status uint8

const (
	StatusReady Status = iota
	StatusRunning
	StatusSucceeded
	StatusFailed
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusRunning:
		return "Running"
	case StatusSucceeded:
		return "Succeeded"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result is the outcome of one search.
type Result struct {
	Status   Status
	Path     []Coord   // start to goal inclusive; nil unless Succeeded
	Cost     int       // accumulated cost of the terminal state
	Facing   Direction // facing the search started (and ended) with
	Explored []Coord   // cells in the order they were popped from the frontier
	Created  int       // number of search states created, start included
	Reason   string    // set when Failed
}

// Found returns true if a route was produced.
func (r Result) Found() bool {
	return r.Status == StatusSucceeded
}

// Expanded returns the number of states popped from the frontier.
func (r Result) Expanded() int {
	return len(r.Explored)
}

// Options defines parameters for the search.
type Options struct {
	Costs    CostTable
	TieBreak TieBreak
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithCosts overrides the move cost table.
func WithCosts(costs CostTable) Option {
	return func(o *Options) { o.Costs = costs }
}

// WithTieBreak selects how equal-priority frontier entries are ordered.
func WithTieBreak(rule TieBreak) Option {
	return func(o *Options) { o.TieBreak = rule }
}

// Finder runs searches over one grid. It is not safe for concurrent use;
// create one Finder per goroutine.
type Finder struct {
	grid   *Grid
	opts   Options
	status Status
}

// NewFinder creates a finder in the Ready state.
func NewFinder(g *Grid, options ...Option) *Finder {
	opts := Options{
		Costs:    DefaultCosts(),
		TieBreak: TieBreakNearestGoal,
	}
	for _, option := range options {
		option(&opts)
	}
	return &Finder{grid: g, opts: opts, status: StatusReady}
}

// Status returns the state of the most recent invocation.
func (f *Finder) Status() Status {
	return f.status
}

// Options returns the options the finder was built with.
func (f *Finder) Options() Options {
	return f.opts
}

// Find searches from the grid's start to its goal with the agent initially
// facing the given direction.
//
// Exhaustion is reported as a Failed result, not an error. The error return is
// reserved for bad input, context cancellation and a corrupt state arena.
func (f *Finder) Find(ctx context.Context, facing Direction) (Result, error) {
	if !facing.IsValid() {
		return Result{}, configError(CodeInvalidFacing, "facing %d is not a compass direction", facing)
	}
	if err := f.opts.Costs.Validate(); err != nil {
		return Result{}, err
	}
	if !f.opts.TieBreak.IsValid() {
		return Result{}, configError(CodeInvalidTieBreak, "tie-break rule %d is not known", f.opts.TieBreak)
	}

	f.status = StatusRunning

	g := f.grid
	goal := g.Goal()

	claimed := make([]int, g.Cells())
	for i := range claimed {
		claimed[i] = unclaimed
	}
	arena := make([]SearchState, 0, g.Cells())
	open := &frontier{rule: f.opts.TieBreak}
	var seq uint64

	// push records a new state, claims its cell and queues it.
	push := func(s SearchState) {
		id := len(arena)
		arena = append(arena, s)
		claimed[g.index(s.Pos)] = id

		h := s.Pos.Manhattan(goal)
		heap.Push(open, frontierItem{
			id:        id,
			priority:  s.Cost + h,
			heuristic: h,
			cost:      s.Cost,
			seq:       seq,
		})
		seq++
	}

	push(SearchState{Pos: g.Start(), Facing: facing, Cost: 0, Parent: NoPredecessor})

	var explored []Coord
	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			f.status = StatusFailed
			return Result{}, err
		}

		item := heap.Pop(open).(frontierItem)
		current := arena[item.id]
		explored = append(explored, current.Pos)

		if current.Pos == goal {
			path, err := Reconstruct(arena, item.id)
			if err != nil {
				f.status = StatusFailed
				return Result{}, err
			}
			f.status = StatusSucceeded
			return Result{
				Status:   StatusSucceeded,
				Path:     path,
				Cost:     current.Cost,
				Facing:   facing,
				Explored: explored,
				Created:  len(arena),
			}, nil
		}

		for _, d := range Directions() {
			dx, dy := d.Delta()
			next := current.Pos.Add(dx, dy)
			if !g.InBounds(next) || claimed[g.index(next)] != unclaimed {
				continue
			}

			blocked := g.IsObstacle(next)
			if blocked && !d.IsDiagonal() {
				continue
			}

			push(SearchState{
				Pos:    next,
				Facing: current.Facing,
				Cost:   current.Cost + f.opts.Costs.Cost(current.Facing, dx, dy, blocked),
				Parent: item.id,
			})
		}
	}

	f.status = StatusFailed
	return Result{
		Status:   StatusFailed,
		Facing:   facing,
		Explored: explored,
		Created:  len(arena),
		Reason:   ReasonNoPath,
	}, nil
}

// Find is a convenience wrapper that builds a Finder and runs one search.
func Find(ctx context.Context, g *Grid, facing Direction, options ...Option) (Result, error) {
	return NewFinder(g, options...).Find(ctx, facing)
}
