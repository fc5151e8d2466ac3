package route

import (
	"fmt"
	"strings"
)

// TieBreak selects how frontier entries with equal priority are ordered.
// Every rule falls back to insertion order, so searches are reproducible.
type TieBreak uint8

const (
	// TieBreakNearestGoal prefers the entry with the smaller heuristic.
	TieBreakNearestGoal TieBreak = iota
	// TieBreakLowestCost prefers the entry with the smaller accumulated cost.
	TieBreakLowestCost
)

// String returns the configuration name of the rule.
func (t TieBreak) String() string {
	switch t {
	case TieBreakNearestGoal:
		return "nearest-goal"
	case TieBreakLowestCost:
		return "lowest-cost"
	default:
		return "unknown"
	}
}

// IsValid returns true for known rules.
func (t TieBreak) IsValid() bool {
	return t == TieBreakNearestGoal || t == TieBreakLowestCost
}

// ParseTieBreak parses a rule name as produced by String.
func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest-goal", "nearest_goal", "heuristic":
		return TieBreakNearestGoal, nil
	case "lowest-cost", "lowest_cost", "cost":
		return TieBreakLowestCost, nil
	default:
		return 0, fmt.Errorf("route: unknown tie-break rule %q", s)
	}
}

// frontierItem is a heap entry pointing at a state in the arena.
type frontierItem struct {
	id        int
	priority  int // cost + heuristic
	heuristic int
	cost      int
	seq       uint64
}

// frontier implements heap.Interface as a min-priority queue.
type frontier struct {
	items []frontierItem
	rule  TieBreak
}

func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Less(i, j int) bool {
	a, b := f.items[i], f.items[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	switch f.rule {
	case TieBreakLowestCost:
		if a.cost != b.cost {
			return a.cost < b.cost
		}
	default:
		if a.heuristic != b.heuristic {
			return a.heuristic < b.heuristic
		}
	}
	return a.seq < b.seq
}

func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier) Push(x any) {
	f.items = append(f.items, x.(frontierItem))
}

func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	item := old[n-1]
	f.items = old[:n-1]
	return item
}
