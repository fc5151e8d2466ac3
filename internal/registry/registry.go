// Package registry provides a global registry for obstacle generators.
// Generators register themselves in init() functions, allowing the planner
// and the CLI to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/robopath/internal/route"
)

// Params describes the board a generator fills.
type Params struct {
	Width       int
	Height      int
	Start       route.Coord
	Goal        route.Coord
	Probability float64 // obstacle density hint in [0, 1]
	Seed        int64
}

// Generator produces obstacle layouts.
// Generators are pure: the same Params always yield the same obstacles, and
// the start and goal cells are never returned.
type Generator interface {
	// ID returns a unique identifier for this generator (e.g., "scatter").
	// Used for CLI flags and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Generate returns the obstacle cells for the given board.
	Generate(p Params) []route.Coord
}

// GeneratorInfo contains metadata about a registered generator.
type GeneratorInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a generator.
type Factory func() Generator

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a generator factory to the registry.
// Panics if a generator with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: generator %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered generators, sorted by ID.
func List() []GeneratorInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GeneratorInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GeneratorInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new generator by its ID.
func Create(id string) (Generator, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown generator %q", id)
	}

	return f(), nil
}

// Exists checks if a generator with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
