package mapgen

import (
	"github.com/vovakirdan/robopath/internal/registry"
	"github.com/vovakirdan/robopath/internal/route"
)

// Scatter blocks every cell independently with the configured probability.
type Scatter struct{}

func (Scatter) ID() string    { return "scatter" }
func (Scatter) Title() string { return "Random scatter" }

// Generate draws once per cell in row-major order, start and goal included,
// and then drops the reserved cells. A seed therefore maps to the same layout
// whatever the endpoints are.
func (Scatter) Generate(p registry.Params) []route.Coord {
	rng := newRNG(p.Seed)
	var cells []route.Coord
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			hit := rng.Float64() < p.Probability
			c := route.C(x, y)
			if hit && !reserved(p, c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}
