package formats

import (
	"fmt"

	"github.com/vovakirdan/robopath/internal/route"
	"gopkg.in/yaml.v3"
)

// Cell characters used by row-based YAML maps.
const (
	CellFree     = '.'
	CellObstacle = '#'
	CellStart    = 'S'
	CellGoal     = 'G'
)

// YAMLMap represents the YAML structure for a map file. A map gives either
// Rows (one string per line, see the Cell constants) or Size plus an explicit
// Obstacles list.
type YAMLMap struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Size      YAMLSize          `yaml:"size,omitempty"`
	Start     *YAMLPoint        `yaml:"start,omitempty"`
	Goal      *YAMLPoint        `yaml:"goal,omitempty"`
	Rows      []string          `yaml:"rows,omitempty"`
	Obstacles []YAMLPoint       `yaml:"obstacles,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPoint represents a single cell in YAML format.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ParseYAML parses a YAML map file. Start defaults to the top-left corner
// and goal to the bottom-right one. Bounds and occupancy are checked later by
// ToGrid.
func ParseYAML(data []byte) (Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	m := Map{
		ID:       ym.ID,
		Name:     ym.Name,
		Width:    ym.Size.W,
		Height:   ym.Size.H,
		Metadata: ym.Metadata,
	}

	var start, goal *route.Coord
	if len(ym.Rows) > 0 {
		if m.Width == 0 && m.Height == 0 {
			m.Width, m.Height = len(ym.Rows[0]), len(ym.Rows)
		}
		if len(ym.Rows) != m.Height {
			return Map{}, fmt.Errorf("map has %d rows, expected %d", len(ym.Rows), m.Height)
		}
		for y, row := range ym.Rows {
			if len(row) != m.Width {
				return Map{}, fmt.Errorf("row %d has %d cells, expected %d", y, len(row), m.Width)
			}
			for x := 0; x < len(row); x++ {
				c := route.C(x, y)
				switch row[x] {
				case CellFree:
				case CellObstacle:
					m.Obstacles = append(m.Obstacles, c)
				case CellStart:
					if start != nil {
						return Map{}, fmt.Errorf("second start marker at %v", c)
					}
					start = &c
				case CellGoal:
					if goal != nil {
						return Map{}, fmt.Errorf("second goal marker at %v", c)
					}
					goal = &c
				default:
					return Map{}, fmt.Errorf("unknown cell %q at %v", row[x], c)
				}
			}
		}
	}

	for _, p := range ym.Obstacles {
		m.Obstacles = append(m.Obstacles, route.C(p.X, p.Y))
	}

	// Explicit points win over row markers
	if ym.Start != nil {
		c := route.C(ym.Start.X, ym.Start.Y)
		start = &c
	}
	if ym.Goal != nil {
		c := route.C(ym.Goal.X, ym.Goal.Y)
		goal = &c
	}

	m.Start = route.C(0, 0)
	if start != nil {
		m.Start = *start
	}
	m.Goal = route.C(m.Width-1, m.Height-1)
	if goal != nil {
		m.Goal = *goal
	}

	return m, nil
}
