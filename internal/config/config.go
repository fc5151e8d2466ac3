// Package config provides YAML-based configuration loading and density
// presets for the route planner.
package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/robopath/internal/route"
)

// FacingRandom asks the planner to pick a facing at random for every run.
const FacingRandom = "random"

// Config contains all configuration for a planning run.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Agent   AgentConfig   `yaml:"agent"`
	Costs   CostsConfig   `yaml:"costs"`
	Search  SearchConfig  `yaml:"search"`
	Display DisplayConfig `yaml:"display"`
}

// Point is a cell position in configuration files.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Coord converts the point to a grid coordinate.
func (p Point) Coord() route.Coord {
	return route.C(p.X, p.Y)
}

// GridConfig defines the board and how its obstacles are produced.
type GridConfig struct {
	Width               int     `yaml:"width"`
	Height              int     `yaml:"height"`
	Start               Point   `yaml:"start"`
	Goal                Point   `yaml:"goal"`
	Generator           string  `yaml:"generator"`
	ObstacleProbability float64 `yaml:"obstacle_probability"` // 0.0 = empty, 1.0 = solid
	MapFile             string  `yaml:"map_file,omitempty"`   // overrides the generator
}

// AgentConfig defines the agent's initial state.
type AgentConfig struct {
	Facing string `yaml:"facing"` // "random" or a direction name
}

// CostsConfig mirrors route.CostTable.
type CostsConfig struct {
	Stay      int `yaml:"stay"`
	Turn      int `yaml:"turn"`
	Collision int `yaml:"collision"`
	Straight  int `yaml:"straight"`
}

// Table converts the configured costs for the finder.
func (c CostsConfig) Table() route.CostTable {
	return route.CostTable{
		Stay:      c.Stay,
		Turn:      c.Turn,
		Collision: c.Collision,
		Straight:  c.Straight,
	}
}

// SearchConfig defines finder options and the planner's retry policy.
type SearchConfig struct {
	TieBreak    string `yaml:"tie_break"`
	MaxAttempts int    `yaml:"max_attempts"` // regenerate obstacles after a failed search
}

// DisplayConfig defines animation parameters.
type DisplayConfig struct {
	StepDelayMS  int  `yaml:"step_delay_ms"`
	ShowExplored bool `yaml:"show_explored"`
}

// RandomFacing returns true if the facing is chosen per run.
func (a AgentConfig) RandomFacing() bool {
	f := strings.ToLower(strings.TrimSpace(a.Facing))
	return f == "" || f == FacingRandom
}

// Validate checks the configuration for values the planner cannot use.
func (c Config) Validate() error {
	g := c.Grid
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("config: grid size %dx%d must be positive", g.Width, g.Height)
	}
	if g.ObstacleProbability < 0 || g.ObstacleProbability > 1 {
		return fmt.Errorf("config: obstacle_probability %.2f outside [0, 1]", g.ObstacleProbability)
	}
	if g.MapFile == "" {
		if !inside(g.Start, g.Width, g.Height) {
			return fmt.Errorf("config: start (%d,%d) outside %dx%d grid", g.Start.X, g.Start.Y, g.Width, g.Height)
		}
		if !inside(g.Goal, g.Width, g.Height) {
			return fmt.Errorf("config: goal (%d,%d) outside %dx%d grid", g.Goal.X, g.Goal.Y, g.Width, g.Height)
		}
	}
	if !c.Agent.RandomFacing() {
		if _, err := route.ParseDirection(c.Agent.Facing); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if _, err := route.ParseTieBreak(c.Search.TieBreak); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Costs.Table().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Search.MaxAttempts < 0 {
		return fmt.Errorf("config: max_attempts %d must not be negative", c.Search.MaxAttempts)
	}
	if c.Display.StepDelayMS < 0 {
		return fmt.Errorf("config: step_delay_ms %d must not be negative", c.Display.StepDelayMS)
	}
	return nil
}

func inside(p Point, w, h int) bool {
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
}
