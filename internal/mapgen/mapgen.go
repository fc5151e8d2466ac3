// Package mapgen contains the built-in obstacle generators. Each one
// registers itself with the generator registry on import.
package mapgen

import (
	"math/rand"

	"github.com/vovakirdan/robopath/internal/registry"
	"github.com/vovakirdan/robopath/internal/route"
)

// newRNG returns the deterministic source every generator draws from.
func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// reserved returns true for cells a generator must leave free.
func reserved(p registry.Params, c route.Coord) bool {
	return c == p.Start || c == p.Goal
}

// Empty leaves the whole board free.
type Empty struct{}

func (Empty) ID() string    { return "empty" }
func (Empty) Title() string { return "Empty board" }

func (Empty) Generate(registry.Params) []route.Coord {
	return nil
}

func init() {
	registry.Register("empty", func() registry.Generator { return Empty{} })
	registry.Register("scatter", func() registry.Generator { return Scatter{} })
	registry.Register("stripes", func() registry.Generator { return Stripes{Spacing: 3} })
	registry.Register("rooms", func() registry.Generator { return Rooms{Size: 5} })
}
