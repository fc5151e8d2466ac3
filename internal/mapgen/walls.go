package mapgen

import (
	"github.com/vovakirdan/robopath/internal/registry"
	"github.com/vovakirdan/robopath/internal/route"
)

// Stripes draws vertical walls every Spacing columns, each with a single
// randomly placed gap.
type Stripes struct {
	Spacing int
}

func (Stripes) ID() string    { return "stripes" }
func (Stripes) Title() string { return "Vertical walls with gaps" }

func (s Stripes) Generate(p registry.Params) []route.Coord {
	if p.Width <= 0 || p.Height <= 0 {
		return nil
	}
	spacing := s.Spacing
	if spacing < 2 {
		spacing = 2
	}
	rng := newRNG(p.Seed)

	var cells []route.Coord
	for x := spacing - 1; x < p.Width; x += spacing {
		gap := rng.Intn(p.Height)
		for y := 0; y < p.Height; y++ {
			c := route.C(x, y)
			if y != gap && !reserved(p, c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// Rooms partitions the board into Size x Size rooms separated by one-cell
// walls, and opens one door in every wall segment.
type Rooms struct {
	Size int
}

func (Rooms) ID() string    { return "rooms" }
func (Rooms) Title() string { return "Rooms and doors" }

func (r Rooms) Generate(p registry.Params) []route.Coord {
	size := r.Size
	if size < 2 {
		size = 2
	}
	pitch := size + 1
	rng := newRNG(p.Seed)

	blocked := make(map[route.Coord]bool)

	// Vertical walls, one door per room-high segment
	for x := size; x < p.Width; x += pitch {
		for top := 0; top < p.Height; top += pitch {
			door := top + rng.Intn(min(size, p.Height-top))
			for y := top; y < top+pitch && y < p.Height; y++ {
				if y != door {
					blocked[route.C(x, y)] = true
				}
			}
		}
	}

	// Horizontal walls; doors never land on a crossing
	for y := size; y < p.Height; y += pitch {
		for left := 0; left < p.Width; left += pitch {
			door := left + rng.Intn(min(size, p.Width-left))
			for x := left; x < left+pitch && x < p.Width; x++ {
				if x != door {
					blocked[route.C(x, y)] = true
				}
			}
		}
	}

	var cells []route.Coord
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c := route.C(x, y)
			if blocked[c] && !reserved(p, c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}
