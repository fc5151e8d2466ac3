package main

import (
	"testing"

	"github.com/vovakirdan/robopath/internal/config"
)

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool)
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestBoardFlagsApply(t *testing.T) {
	cfg := config.DefaultConfig()
	b := boardFlags{
		generator: "rooms",
		facing:    "north",
		density:   "dense",
		tieBreak:  "lowest-cost",
		width:     20,
		height:    8,
		explored:  true,
	}

	err := b.apply(&cfg, changedSet("generator", "facing", "density", "tie-break", "width", "height", "explored"))
	if err != nil {
		t.Fatalf("apply() failed: %v", err)
	}

	if cfg.Grid.Generator != "rooms" || cfg.Agent.Facing != "north" || cfg.Search.TieBreak != "lowest-cost" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Grid.ObstacleProbability != 0.45 || cfg.Search.MaxAttempts != 3 {
		t.Errorf("dense preset gave p=%v attempts=%d", cfg.Grid.ObstacleProbability, cfg.Search.MaxAttempts)
	}
	if cfg.Grid.Width != 20 || cfg.Grid.Height != 8 || cfg.Grid.Goal != (config.Point{X: 19, Y: 7}) {
		t.Errorf("size = %dx%d goal %v", cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Goal)
	}
	if !cfg.Display.ShowExplored {
		t.Error("ShowExplored = false")
	}
}

func TestBoardFlagsUnsetKeepConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	b := boardFlags{generator: "rooms", width: 3}

	if err := b.apply(&cfg, changedSet()); err != nil {
		t.Fatalf("apply() failed: %v", err)
	}
	if cfg != config.DefaultConfig() {
		t.Errorf("unchanged flags altered the config: %+v", cfg)
	}
}

func TestBoardFlagsErrors(t *testing.T) {
	tests := []struct {
		name    string
		flags   boardFlags
		changed []string
	}{
		{"unknown generator", boardFlags{generator: "spiral"}, []string{"generator"}},
		{"unknown density", boardFlags{density: "thick"}, []string{"density"}},
		{"bad facing", boardFlags{facing: "up"}, []string{"facing"}},
		{"bad tie-break", boardFlags{tieBreak: "coin"}, []string{"tie-break"}},
		{"zero width", boardFlags{width: 0}, []string{"width"}},
		{"negative attempts", boardFlags{attempts: -1}, []string{"attempts"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			if err := tc.flags.apply(&cfg, changedSet(tc.changed...)); err == nil {
				t.Error("apply() should fail")
			}
		})
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"localhost:8080": "8080",
		"9000":           "9000",
	}
	for addr, expected := range tests {
		if got := portOf(addr); got != expected {
			t.Errorf("portOf(%q) = %q, expected %q", addr, got, expected)
		}
	}
}
