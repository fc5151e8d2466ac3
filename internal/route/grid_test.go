package route

import (
	"errors"
	"testing"
)

func TestNewGridRejectsBadConfiguration(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		obstacles []Coord
		start     Coord
		goal      Coord
		code      string
	}{
		{"zero width", 0, 5, nil, C(0, 0), C(0, 0), CodeInvalidSize},
		{"negative height", 5, -1, nil, C(0, 0), C(0, 0), CodeInvalidSize},
		{"start outside", 3, 3, nil, C(3, 0), C(2, 2), CodeStartOutOfBounds},
		{"goal outside", 3, 3, nil, C(0, 0), C(0, -1), CodeGoalOutOfBounds},
		{"obstacle outside", 3, 3, []Coord{C(5, 5)}, C(0, 0), C(2, 2), CodeObstacleOutOfBounds},
		{"start blocked", 3, 3, []Coord{C(0, 0)}, C(0, 0), C(2, 2), CodeStartBlocked},
		{"goal blocked", 2, 2, []Coord{C(1, 1)}, C(0, 0), C(1, 1), CodeGoalBlocked},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewGrid(tc.w, tc.h, tc.obstacles, tc.start, tc.goal)
			if err == nil {
				t.Fatalf("NewGrid() = %v, expected error", g)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("errors.Is(%v, ErrConfiguration) = false", err)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T", err)
			}
			if cfgErr.Code != tc.code {
				t.Errorf("Code = %q, expected %q", cfgErr.Code, tc.code)
			}
		})
	}
}

func TestGridQueries(t *testing.T) {
	obstacles := []Coord{C(2, 1), C(0, 2), C(2, 1), C(1, 0)}
	g, err := NewGrid(4, 3, obstacles, C(0, 0), C(3, 2))
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}

	if g.Width() != 4 || g.Height() != 3 || g.Cells() != 12 {
		t.Errorf("expected 4x3 (12 cells), got %dx%d (%d)", g.Width(), g.Height(), g.Cells())
	}
	if g.Start() != C(0, 0) || g.Goal() != C(3, 2) {
		t.Errorf("Start/Goal = %v/%v", g.Start(), g.Goal())
	}

	// Duplicates collapse into one cell
	if g.ObstacleCount() != 3 {
		t.Errorf("ObstacleCount() = %d, expected 3", g.ObstacleCount())
	}

	// Row-major order
	expected := []Coord{C(1, 0), C(2, 1), C(0, 2)}
	got := g.Obstacles()
	if len(got) != len(expected) {
		t.Fatalf("Obstacles() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Obstacles()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}

	if g.Density() != 0.25 {
		t.Errorf("Density() = %f, expected 0.25", g.Density())
	}
}

func TestGridInBoundsAndObstacle(t *testing.T) {
	g, err := NewGrid(5, 5, []Coord{C(2, 2)}, C(0, 0), C(4, 4))
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}

	tests := []struct {
		coord    Coord
		inBounds bool
		obstacle bool
	}{
		{C(0, 0), true, false},
		{C(4, 4), true, false},
		{C(2, 2), true, true},
		{C(-1, 0), false, false},
		{C(0, -1), false, false},
		{C(5, 0), false, false},
		{C(0, 5), false, false},
	}

	for _, tc := range tests {
		if got := g.InBounds(tc.coord); got != tc.inBounds {
			t.Errorf("InBounds(%v) = %v, expected %v", tc.coord, got, tc.inBounds)
		}
		if got := g.IsObstacle(tc.coord); got != tc.obstacle {
			t.Errorf("IsObstacle(%v) = %v, expected %v", tc.coord, got, tc.obstacle)
		}
	}
}

func TestCoordHelpers(t *testing.T) {
	if d := C(0, 0).Manhattan(C(3, -4)); d != 7 {
		t.Errorf("Manhattan() = %d, expected 7", d)
	}
	if C(2, 2).Step(NorthWest) != C(1, 1) {
		t.Errorf("Step(NorthWest) = %v", C(2, 2).Step(NorthWest))
	}
	if !C(1, 1).Adjacent(C(2, 2)) || !C(1, 1).Adjacent(C(1, 0)) {
		t.Error("expected neighbouring cells to be adjacent")
	}
	if C(1, 1).Adjacent(C(1, 1)) || C(1, 1).Adjacent(C(3, 1)) {
		t.Error("a cell is not adjacent to itself or to cells two steps away")
	}
	if C(3, 7).String() != "(3,7)" {
		t.Errorf("String() = %q", C(3, 7).String())
	}
}
