package mapgen

import (
	"testing"

	"github.com/vovakirdan/robopath/internal/registry"
	"github.com/vovakirdan/robopath/internal/route"
)

func board(seed int64, probability float64) registry.Params {
	return registry.Params{
		Width:       15,
		Height:      15,
		Start:       route.C(0, 0),
		Goal:        route.C(14, 14),
		Probability: probability,
		Seed:        seed,
	}
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"empty", "scatter", "stripes", "rooms"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Errorf("Create(%q) failed: %v", id, err)
			continue
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}

func TestGeneratorsRespectBoard(t *testing.T) {
	generators := []registry.Generator{Empty{}, Scatter{}, Stripes{Spacing: 3}, Rooms{Size: 5}}

	for _, g := range generators {
		t.Run(g.ID(), func(t *testing.T) {
			p := board(42, 0.3)
			cells := g.Generate(p)

			// Every layout must be accepted by the grid
			if _, err := route.NewGrid(p.Width, p.Height, cells, p.Start, p.Goal); err != nil {
				t.Fatalf("NewGrid() rejected layout: %v", err)
			}

			again := g.Generate(p)
			if len(again) != len(cells) {
				t.Fatalf("Generate() not deterministic: %d vs %d cells", len(cells), len(again))
			}
			for i := range cells {
				if cells[i] != again[i] {
					t.Fatalf("Generate() not deterministic at %d: %v vs %v", i, cells[i], again[i])
				}
			}
		})
	}
}

func TestScatterProbabilityExtremes(t *testing.T) {
	if cells := (Scatter{}).Generate(board(1, 0)); len(cells) != 0 {
		t.Errorf("probability 0 produced %d obstacles", len(cells))
	}

	cells := Scatter{}.Generate(board(1, 1))
	if len(cells) != 15*15-2 {
		t.Errorf("probability 1 produced %d obstacles, expected %d", len(cells), 15*15-2)
	}
}

func TestScatterSeedsDiffer(t *testing.T) {
	a := Scatter{}.Generate(board(1, 0.3))
	b := Scatter{}.Generate(board(2, 0.3))

	same := len(a) == len(b)
	for i := 0; same && i < len(a); i++ {
		same = a[i] == b[i]
	}
	if same {
		t.Error("different seeds produced identical layouts")
	}
}

func TestStripesLeaveOneGapPerWall(t *testing.T) {
	p := board(9, 0)
	p.Start, p.Goal = route.C(0, 0), route.C(0, 14) // keep endpoints off the walls
	cells := Stripes{Spacing: 3}.Generate(p)

	perColumn := make(map[int]int)
	for _, c := range cells {
		if c.X%3 != 2 {
			t.Errorf("obstacle %v outside a wall column", c)
		}
		perColumn[c.X]++
	}
	if len(perColumn) != 5 {
		t.Errorf("expected 5 walls, got %d", len(perColumn))
	}
	for x, n := range perColumn {
		if n != p.Height-1 {
			t.Errorf("wall at x=%d has %d cells, expected %d", x, n, p.Height-1)
		}
	}
}

func TestRoomsHaveDoors(t *testing.T) {
	p := board(5, 0)
	p.Width, p.Height = 11, 11
	p.Goal = route.C(10, 10)
	cells := Rooms{Size: 5}.Generate(p)

	// One vertical and one horizontal wall, each split in two segments with
	// a door apiece. Doors never land on the crossing.
	if len(cells) != 11+11-1-4 {
		t.Errorf("Rooms produced %d obstacles, expected 17", len(cells))
	}
	crossing := false
	for _, c := range cells {
		crossing = crossing || c == route.C(5, 5)
	}
	if !crossing {
		t.Error("wall crossing (5,5) should stay solid")
	}
	for _, c := range cells {
		if c.X != 5 && c.Y != 5 {
			t.Errorf("obstacle %v not on a wall line", c)
		}
	}
}

func TestGeneratorsHandleEmptyBoard(t *testing.T) {
	p := registry.Params{Seed: 3}
	for _, g := range []registry.Generator{Empty{}, Scatter{}, Stripes{}, Rooms{}} {
		if cells := g.Generate(p); len(cells) != 0 {
			t.Errorf("%s: Generate() on empty board = %v", g.ID(), cells)
		}
	}
}
