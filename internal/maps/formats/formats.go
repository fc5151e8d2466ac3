// Package formats provides map file parsers.
package formats

import "github.com/vovakirdan/robopath/internal/route"

// Map represents a parsed map ready for use.
type Map struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Start     route.Coord
	Goal      route.Coord
	Obstacles []route.Coord
	Metadata  map[string]string
}

// ToGrid validates the map and builds a grid from it.
func (m *Map) ToGrid() (*route.Grid, error) {
	return route.NewGrid(m.Width, m.Height, m.Obstacles, m.Start, m.Goal)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".png", ".pgm", ".pbm", ".ppm", ".bmp"}
}

// IsImageExtension returns true for extensions handled by ParseImage.
func IsImageExtension(ext string) bool {
	switch ext {
	case ".png", ".pgm", ".pbm", ".ppm", ".bmp":
		return true
	}
	return false
}
