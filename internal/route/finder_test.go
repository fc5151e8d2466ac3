package route_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/robopath/internal/route"
)

func mustGrid(t *testing.T, w, h int, obstacles []route.Coord, start, goal route.Coord) *route.Grid {
	t.Helper()
	g, err := route.NewGrid(w, h, obstacles, start, goal)
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	return g
}

func assertPath(t *testing.T, got, expected []route.Coord) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("path = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("path = %v, expected %v", got, expected)
		}
	}
}

// randomGrid scatters obstacles like the scatter generator, keeping the
// start and goal free.
func randomGrid(t *testing.T, seed int64, w, h int, p float64) *route.Grid {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	start, goal := route.C(0, 0), route.C(w-1, h-1)
	var obstacles []route.Coord
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := route.C(x, y)
			if c != start && c != goal && rng.Float64() < p {
				obstacles = append(obstacles, c)
			}
		}
	}
	return mustGrid(t, w, h, obstacles, start, goal)
}

func TestScenarioOpenDiagonal(t *testing.T) {
	g := mustGrid(t, 3, 3, nil, route.C(0, 0), route.C(2, 2))

	for _, facing := range route.Directions() {
		t.Run(facing.String(), func(t *testing.T) {
			result, err := route.Find(context.Background(), g, facing)
			if err != nil {
				t.Fatalf("Find() failed: %v", err)
			}
			if !result.Found() {
				t.Fatalf("Status = %v, expected Succeeded", result.Status)
			}
			assertPath(t, result.Path, []route.Coord{route.C(0, 0), route.C(1, 1), route.C(2, 2)})
			if result.Cost != 2 {
				t.Errorf("Cost = %d, expected 2", result.Cost)
			}
			if result.Facing != facing {
				t.Errorf("Facing = %v, expected %v", result.Facing, facing)
			}
		})
	}
}

func TestScenarioBlockedCentreAvoided(t *testing.T) {
	g := mustGrid(t, 3, 3, []route.Coord{route.C(1, 1)}, route.C(0, 0), route.C(2, 2))

	result, err := route.Find(context.Background(), g, route.East)
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	if !result.Found() {
		t.Fatalf("Status = %v, expected Succeeded", result.Status)
	}

	// (2,1) is claimed through the free diagonal from (1,0) before the
	// straight run along the top edge can reach it.
	assertPath(t, result.Path, []route.Coord{route.C(0, 0), route.C(1, 0), route.C(2, 1), route.C(2, 2)})
	if result.Cost != 1 {
		t.Errorf("Cost = %d, expected 1", result.Cost)
	}
	for _, c := range result.Path {
		if g.IsObstacle(c) {
			t.Errorf("path crosses obstacle %v", c)
		}
	}
}

func TestStraightCorridorCostsNothing(t *testing.T) {
	g := mustGrid(t, 5, 1, nil, route.C(0, 0), route.C(4, 0))

	result, err := route.Find(context.Background(), g, route.East)
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	assertPath(t, result.Path, []route.Coord{
		route.C(0, 0), route.C(1, 0), route.C(2, 0), route.C(3, 0), route.C(4, 0),
	})
	if result.Cost != 0 {
		t.Errorf("Cost = %d, expected 0", result.Cost)
	}
}

func TestSingleCellGrid(t *testing.T) {
	g := mustGrid(t, 1, 1, nil, route.C(0, 0), route.C(0, 0))

	result, err := route.Find(context.Background(), g, route.North)
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	if !result.Found() {
		t.Fatalf("Status = %v, expected Succeeded", result.Status)
	}
	assertPath(t, result.Path, []route.Coord{route.C(0, 0)})
	if result.Cost != 0 {
		t.Errorf("Cost = %d, expected 0", result.Cost)
	}
	if result.Created != 1 || result.Expanded() != 1 {
		t.Errorf("Created/Expanded = %d/%d, expected 1/1", result.Created, result.Expanded())
	}
}

func TestStartEqualsGoal(t *testing.T) {
	g := mustGrid(t, 6, 6, []route.Coord{route.C(3, 3)}, route.C(2, 4), route.C(2, 4))

	result, err := route.Find(context.Background(), g, route.West)
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	assertPath(t, result.Path, []route.Coord{route.C(2, 4)})
	if result.Cost != 0 {
		t.Errorf("Cost = %d, expected 0", result.Cost)
	}
}

func TestGoalObstacleRejected(t *testing.T) {
	_, err := route.NewGrid(2, 2, []route.Coord{route.C(1, 1)}, route.C(0, 0), route.C(1, 1))
	var cfgErr *route.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("NewGrid() error = %v, expected *ConfigurationError", err)
	}
	if cfgErr.Code != route.CodeGoalBlocked {
		t.Errorf("Code = %q, expected %q", cfgErr.Code, route.CodeGoalBlocked)
	}
}

func TestExhaustedCorridor(t *testing.T) {
	g := mustGrid(t, 1, 5, []route.Coord{route.C(0, 2)}, route.C(0, 0), route.C(0, 4))
	finder := route.NewFinder(g)

	result, err := finder.Find(context.Background(), route.South)
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	if result.Found() {
		t.Fatalf("expected Failed, got path %v", result.Path)
	}
	if result.Status != route.StatusFailed || finder.Status() != route.StatusFailed {
		t.Errorf("Status = %v / %v, expected Failed", result.Status, finder.Status())
	}
	if result.Reason != route.ReasonNoPath {
		t.Errorf("Reason = %q, expected %q", result.Reason, route.ReasonNoPath)
	}
	if result.Path != nil {
		t.Errorf("Path = %v, expected nil", result.Path)
	}
	if result.Created != 2 || result.Expanded() != 2 {
		t.Errorf("Created/Expanded = %d/%d, expected 2/2", result.Created, result.Expanded())
	}
}

func TestDiagonalCollisionIsPricedNotRejected(t *testing.T) {
	// The only way down is through the wall row; the agent enters (0,1)
	// diagonally and pays the collision cost.
	g := mustGrid(t, 2, 3, []route.Coord{route.C(0, 1), route.C(1, 1)}, route.C(0, 0), route.C(0, 2))

	result, err := route.Find(context.Background(), g, route.South)
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	assertPath(t, result.Path, []route.Coord{route.C(0, 0), route.C(1, 0), route.C(0, 1), route.C(0, 2)})
	if result.Cost != 1000 {
		t.Errorf("Cost = %d, expected 1000", result.Cost)
	}
}

func TestLowestCostTieBreak(t *testing.T) {
	g := mustGrid(t, 3, 3, nil, route.C(0, 0), route.C(2, 2))

	result, err := route.Find(context.Background(), g, route.North, route.WithTieBreak(route.TieBreakLowestCost))
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	assertPath(t, result.Path, []route.Coord{route.C(0, 0), route.C(1, 0), route.C(2, 1), route.C(2, 2)})
	if result.Cost != 1 {
		t.Errorf("Cost = %d, expected 1", result.Cost)
	}
	assertPath(t, result.Explored, []route.Coord{
		route.C(0, 0), route.C(1, 0), route.C(2, 0), route.C(2, 1), route.C(2, 2),
	})
}

func TestCustomCosts(t *testing.T) {
	g := mustGrid(t, 3, 3, nil, route.C(0, 0), route.C(2, 2))
	costs := route.CostTable{Stay: 1000, Turn: 5, Collision: 1000, Straight: 0}

	result, err := route.Find(context.Background(), g, route.East, route.WithCosts(costs))
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	if !result.Found() {
		t.Fatal("expected a route")
	}
	price, err := route.PathCost(g, costs, route.East, result.Path)
	if err != nil {
		t.Fatalf("PathCost() failed: %v", err)
	}
	if price != result.Cost {
		t.Errorf("PathCost() = %d, Result.Cost = %d", price, result.Cost)
	}
}

func TestRandomGridProperties(t *testing.T) {
	found := 0
	for seed := int64(1); seed <= 60; seed++ {
		g := randomGrid(t, seed, 15, 15, 0.3)
		facing := route.Directions()[seed%8]

		result, err := route.Find(context.Background(), g, facing)
		if err != nil {
			t.Fatalf("seed %d: Find() failed: %v", seed, err)
		}
		if !result.Found() {
			continue
		}
		found++

		path := result.Path
		if path[0] != g.Start() || path[len(path)-1] != g.Goal() {
			t.Errorf("seed %d: path runs %v -> %v", seed, path[0], path[len(path)-1])
		}

		seen := make(map[route.Coord]bool)
		for i, c := range path {
			if seen[c] {
				t.Errorf("seed %d: %v visited twice", seed, c)
			}
			seen[c] = true
			if i > 0 && !path[i-1].Adjacent(c) {
				t.Errorf("seed %d: %v -> %v is not a single move", seed, path[i-1], c)
			}
		}

		price, err := route.PathCost(g, route.DefaultCosts(), facing, path)
		if err != nil {
			t.Errorf("seed %d: %v", seed, err)
		}
		if price != result.Cost {
			t.Errorf("seed %d: PathCost() = %d, Result.Cost = %d", seed, price, result.Cost)
		}
	}
	if found == 0 {
		t.Error("no random grid produced a route")
	}
}

func TestDeterminism(t *testing.T) {
	for seed := int64(100); seed < 110; seed++ {
		g := randomGrid(t, seed, 15, 15, 0.3)

		first, err := route.Find(context.Background(), g, route.SouthWest)
		if err != nil {
			t.Fatalf("Find() failed: %v", err)
		}
		second, err := route.Find(context.Background(), g, route.SouthWest)
		if err != nil {
			t.Fatalf("Find() failed: %v", err)
		}

		if first.Status != second.Status || first.Cost != second.Cost {
			t.Fatalf("seed %d: runs differ: %v/%d vs %v/%d",
				seed, first.Status, first.Cost, second.Status, second.Cost)
		}
		assertPath(t, second.Path, first.Path)
		assertPath(t, second.Explored, first.Explored)
	}
}

func TestFinderLifecycle(t *testing.T) {
	g := mustGrid(t, 3, 3, nil, route.C(0, 0), route.C(2, 2))
	finder := route.NewFinder(g)

	if finder.Status() != route.StatusReady {
		t.Errorf("Status() = %v, expected Ready", finder.Status())
	}
	if _, err := finder.Find(context.Background(), route.East); err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	if finder.Status() != route.StatusSucceeded {
		t.Errorf("Status() = %v, expected Succeeded", finder.Status())
	}
}

func TestFindCancelled(t *testing.T) {
	g := randomGrid(t, 7, 15, 15, 0.2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := route.Find(ctx, g, route.East)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Find() error = %v, expected context.Canceled", err)
	}
}

func TestFindRejectsBadInput(t *testing.T) {
	g := mustGrid(t, 3, 3, nil, route.C(0, 0), route.C(2, 2))

	tests := []struct {
		name    string
		facing  route.Direction
		options []route.Option
		code    string
	}{
		{"invalid facing", route.Direction(9), nil, route.CodeInvalidFacing},
		{"negative cost", route.East, []route.Option{route.WithCosts(route.CostTable{Stay: -1})}, route.CodeInvalidCosts},
		{"unknown tie-break", route.East, []route.Option{route.WithTieBreak(route.TieBreak(7))}, route.CodeInvalidTieBreak},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := route.Find(context.Background(), g, tc.facing, tc.options...)
			var cfgErr *route.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Find() error = %v, expected *ConfigurationError", err)
			}
			if cfgErr.Code != tc.code {
				t.Errorf("Code = %q, expected %q", cfgErr.Code, tc.code)
			}
		})
	}
}
