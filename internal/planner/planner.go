// Package planner turns a configuration into finished searches. It builds the
// board from a generator or a map file, picks the agent's facing, runs the
// finder and optionally regenerates the board when no route exists.
package planner

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/robopath/internal/config"
	"github.com/vovakirdan/robopath/internal/maps"
	"github.com/vovakirdan/robopath/internal/registry"
	"github.com/vovakirdan/robopath/internal/route"
)

// Outcome is one finished planning run.
type Outcome struct {
	Source   string // generator ID or map ID
	Seed     int64  // seed of the board that was searched
	Grid     *route.Grid
	TieBreak route.TieBreak
	Result   route.Result
	Attempts int
	Duration time.Duration
}

// RunRecorder persists outcomes. It is implemented by storage.Store.
type RunRecorder interface {
	RecordRun(o Outcome) error
}

// Planner is safe for concurrent use once built; every Plan call works on
// its own grid and finder.
type Planner struct {
	cfg      config.Config
	costs    route.CostTable
	tieBreak route.TieBreak
	facing   *route.Direction // nil when chosen per run
	fixedMap *maps.Map
	fixed    *route.Grid
	gen      registry.Generator
	logger   *log.Logger
	recorder RunRecorder
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger. Without it the planner is silent.
func WithLogger(l *log.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// WithRecorder stores every outcome through r.
func WithRecorder(r RunRecorder) Option {
	return func(p *Planner) { p.recorder = r }
}

// New validates cfg and prepares a planner. Map files are loaded here, so a
// broken map is reported before any search runs.
func New(cfg config.Config, opts ...Option) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Planner{
		cfg:    cfg,
		costs:  cfg.Costs.Table(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}

	var err error
	if p.tieBreak, err = route.ParseTieBreak(cfg.Search.TieBreak); err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}
	if !cfg.Agent.RandomFacing() {
		d, err := route.ParseDirection(cfg.Agent.Facing)
		if err != nil {
			return nil, fmt.Errorf("planner: %w", err)
		}
		p.facing = &d
	}

	if cfg.Grid.MapFile != "" {
		m, g, err := maps.LoadGrid(cfg.Grid.MapFile)
		if err != nil {
			return nil, fmt.Errorf("planner: %w", err)
		}
		p.fixedMap, p.fixed = &m, g
		return p, nil
	}

	p.gen, err = registry.Create(cfg.Grid.Generator)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}
	return p, nil
}

// Config returns the configuration the planner was built with.
func (p *Planner) Config() config.Config {
	return p.cfg
}

// Source returns the generator or map ID boards come from.
func (p *Planner) Source() string {
	if p.fixedMap != nil {
		return p.fixedMap.ID
	}
	return p.gen.ID()
}

// Board returns the grid for a seed without searching it.
func (p *Planner) Board(seed int64) (*route.Grid, error) {
	if p.fixed != nil {
		return p.fixed, nil
	}

	g := p.cfg.Grid
	params := registry.Params{
		Width:       g.Width,
		Height:      g.Height,
		Start:       g.Start.Coord(),
		Goal:        g.Goal.Coord(),
		Probability: g.ObstacleProbability,
		Seed:        seed,
	}
	grid, err := route.NewGrid(params.Width, params.Height, p.gen.Generate(params), params.Start, params.Goal)
	if err != nil {
		return nil, fmt.Errorf("planner: generator %s: %w", p.gen.ID(), err)
	}
	return grid, nil
}

// Facing returns the initial facing used for a seed.
func (p *Planner) Facing(seed int64) route.Direction {
	if p.facing != nil {
		return *p.facing
	}
	dirs := route.Directions()
	return dirs[rand.New(rand.NewSource(seed)).Intn(len(dirs))]
}

// Plan searches the board for seed. When no route exists and max_attempts
// allows it, the board is regenerated with seed+1, seed+2 and so on. Fixed
// maps are searched once. The facing is chosen once per call and kept across
// attempts.
func (p *Planner) Plan(ctx context.Context, seed int64) (Outcome, error) {
	began := time.Now()
	facing := p.Facing(seed)

	attempts := p.cfg.Search.MaxAttempts
	if attempts < 1 || p.fixed != nil {
		attempts = 1
	}

	var out Outcome
	for i := 0; i < attempts; i++ {
		boardSeed := seed + int64(i)
		grid, err := p.Board(boardSeed)
		if err != nil {
			return Outcome{}, err
		}

		result, err := route.Find(ctx, grid, facing,
			route.WithCosts(p.costs),
			route.WithTieBreak(p.tieBreak),
		)
		if err != nil {
			return Outcome{}, fmt.Errorf("planner: %w", err)
		}

		out = Outcome{
			Source:   p.Source(),
			Seed:     boardSeed,
			Grid:     grid,
			TieBreak: p.tieBreak,
			Result:   result,
			Attempts: i + 1,
		}

		p.logger.Debug("search finished",
			"attempt", i+1,
			"seed", boardSeed,
			"status", result.Status,
			"expanded", result.Expanded(),
		)
		if result.Found() {
			break
		}
	}
	out.Duration = time.Since(began)

	if out.Result.Found() {
		p.logger.Info("route found",
			"source", out.Source,
			"seed", out.Seed,
			"facing", facing,
			"cost", out.Result.Cost,
			"length", len(out.Result.Path),
		)
	} else {
		p.logger.Info("no route",
			"source", out.Source,
			"seed", out.Seed,
			"facing", facing,
			"attempts", out.Attempts,
		)
	}

	if p.recorder != nil {
		if err := p.recorder.RecordRun(out); err != nil {
			p.logger.Warn("could not record run", "error", err)
		}
	}

	return out, nil
}
