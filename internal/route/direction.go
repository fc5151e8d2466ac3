package route

import (
	"fmt"
	"strings"
)

// Direction is one of the eight compass headings an agent can face.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// directionCount is the number of valid directions.
const directionCount = 8

// Directions returns all eight directions in clockwise order starting at North.
// This is also the order in which the finder tries displacements.
func Directions() []Direction {
	return []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}

// IsValid returns true if d is one of the eight compass values.
func (d Direction) IsValid() bool {
	return d < directionCount
}

// String returns the long name of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case NorthEast:
		return "NorthEast"
	case East:
		return "East"
	case SouthEast:
		return "SouthEast"
	case South:
		return "South"
	case SouthWest:
		return "SouthWest"
	case West:
		return "West"
	case NorthWest:
		return "NorthWest"
	default:
		return "Unknown"
	}
}

// Short returns the compass abbreviation (N, NE, E, ...).
func (d Direction) Short() string {
	switch d {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	default:
		return "?"
	}
}

// Arrow returns a single rune pointing in the direction.
func (d Direction) Arrow() rune {
	switch d {
	case North:
		return '↑'
	case NorthEast:
		return '↗'
	case East:
		return '→'
	case SouthEast:
		return '↘'
	case South:
		return '↓'
	case SouthWest:
		return '↙'
	case West:
		return '←'
	case NorthWest:
		return '↖'
	default:
		return '?'
	}
}

// Delta returns the unit (dx, dy) displacement for the direction.
// North decreases Y, South increases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	case West:
		return -1, 0
	case NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}

// IsDiagonal returns true for NE, SE, SW and NW.
func (d Direction) IsDiagonal() bool {
	dx, dy := d.Delta()
	return dx != 0 && dy != 0
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 4) % directionCount
}

// DirectionOf classifies a displacement. It returns false for the zero
// vector and for anything outside {-1,0,1}².
func DirectionOf(dx, dy int) (Direction, bool) {
	for _, d := range Directions() {
		ddx, ddy := d.Delta()
		if ddx == dx && ddy == dy {
			return d, true
		}
	}
	return 0, false
}

// ParseDirection parses a direction name. Long names, compass abbreviations
// and hyphenated or underscored forms are accepted, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)

	for _, d := range Directions() {
		if key == strings.ToLower(d.String()) || key == strings.ToLower(d.Short()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("route: unknown direction %q", s)
}
