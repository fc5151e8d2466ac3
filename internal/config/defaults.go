package config

import (
	_ "embed"
)

//go:embed defaults/robopath.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration: a 15x15 board crossed
// from the top-left to the bottom-right corner with 30% scattered obstacles.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			Width:               15,
			Height:              15,
			Start:               Point{X: 0, Y: 0},
			Goal:                Point{X: 14, Y: 14},
			Generator:           "scatter",
			ObstacleProbability: 0.3,
		},
		Agent: AgentConfig{
			Facing: FacingRandom,
		},
		Costs: CostsConfig{
			Stay:      1000,
			Turn:      1,
			Collision: 1000,
			Straight:  0,
		},
		Search: SearchConfig{
			TieBreak:    "nearest-goal",
			MaxAttempts: 1,
		},
		Display: DisplayConfig{
			StepDelayMS:  300,
			ShowExplored: false,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
