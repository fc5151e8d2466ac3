package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/robopath/internal/config"
	"github.com/vovakirdan/robopath/internal/planner"
	"github.com/vovakirdan/robopath/internal/registry"
	"github.com/vovakirdan/robopath/internal/storage"
)

// boardFlags are the configuration overrides shared by every command that
// plans routes.
type boardFlags struct {
	generator string
	mapFile   string
	facing    string
	density   string
	tieBreak  string
	width     int
	height    int
	attempts  int
	explored  bool
	noSave    bool
}

func (b *boardFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&b.generator, "generator", "", "Obstacle generator (see 'robopath generators')")
	fs.StringVar(&b.mapFile, "map", "", "Load the board from a map file instead of a generator")
	fs.StringVar(&b.facing, "facing", "", "Initial facing: a direction name or random")
	fs.StringVar(&b.density, "density", "", "Density preset: sparse, normal, dense, fixed")
	fs.StringVar(&b.tieBreak, "tie-break", "", "Frontier tie-break: nearest-goal or lowest-cost")
	fs.IntVar(&b.width, "width", 0, "Board width (goal moves to the bottom-right corner)")
	fs.IntVar(&b.height, "height", 0, "Board height (goal moves to the bottom-right corner)")
	fs.IntVar(&b.attempts, "attempts", 0, "Regenerate the board up to this many times when no route exists")
	fs.BoolVar(&b.explored, "explored", false, "Show expanded cells")
	fs.BoolVar(&b.noSave, "no-save", false, "Do not record runs in the history database")
}

// apply overlays the flags that were set on cfg.
func (b *boardFlags) apply(cfg *config.Config, changed func(string) bool) error {
	if changed("generator") {
		if !registry.Exists(b.generator) {
			return fmt.Errorf("unknown generator %q (run 'robopath generators')", b.generator)
		}
		cfg.Grid.Generator = b.generator
	}
	if changed("map") {
		cfg.Grid.MapFile = b.mapFile
	}
	if changed("facing") {
		cfg.Agent.Facing = b.facing
	}
	if changed("density") {
		preset := config.DensityPreset(b.density)
		if !config.IsKnownPreset(preset) {
			return fmt.Errorf("unknown density preset %q", b.density)
		}
		config.ApplyDensityPreset(cfg, preset)
	}
	if changed("tie-break") {
		cfg.Search.TieBreak = b.tieBreak
	}
	if changed("width") || changed("height") {
		if changed("width") {
			cfg.Grid.Width = b.width
		}
		if changed("height") {
			cfg.Grid.Height = b.height
		}
		cfg.Grid.Goal = config.Point{X: cfg.Grid.Width - 1, Y: cfg.Grid.Height - 1}
	}
	if changed("attempts") {
		cfg.Search.MaxAttempts = b.attempts
	}
	if changed("explored") {
		cfg.Display.ShowExplored = b.explored
	}
	return cfg.Validate()
}

// loadConfig loads the configuration and overlays the command's flags.
func loadConfig(cmd *cobra.Command, b *boardFlags) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := b.apply(&cfg, cmd.Flags().Changed); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openStore opens the run database unless recording is off. Failures only
// warn; planning works without history.
func openStore(b *boardFlags) *storage.Store {
	if b.noSave || flagDBPath == "" {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		newLogger("robopath").Warn("could not open run database", "error", err)
		return nil
	}
	return store
}

// newPlanner builds a planner for cfg that records into store when given.
func newPlanner(cfg config.Config, store *storage.Store, logger *log.Logger) (*planner.Planner, error) {
	opts := []planner.Option{planner.WithLogger(logger)}
	if store != nil {
		opts = append(opts, planner.WithRecorder(store))
	}
	return planner.New(cfg, opts...)
}

// seedOrNow returns the --seed value or a time-based seed.
func seedOrNow() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
