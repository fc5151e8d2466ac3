package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robopath/internal/planner"
	"github.com/vovakirdan/robopath/internal/render"
)

var runFlags boardFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Plan one route and print it",
	Long: `Build a board, search it once and print the result as ASCII.

Board glyphs:
  S start   G goal   # obstacle   * path   X collision   + explored
  The arrow on the goal shows the agent's facing.

Density options:
  sparse - 15% of cells blocked
  normal - 30% of cells blocked
  dense  - 45% of cells blocked, regenerates up to 3 times
  fixed  - Keep the configured probability

Examples:
  robopath run
  robopath run --seed 42 --facing north-east
  robopath run --generator stripes --width 30 --height 12
  robopath run --map ./maps/warehouse.pgm --explored
  robopath run --tie-break lowest-cost --no-save`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func init() {
	runFlags.register(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd, &runFlags)
	if err != nil {
		fail("%v", err)
	}

	store := openStore(&runFlags)

	p, err := newPlanner(cfg, store, newLogger("robopath"))
	if err != nil {
		if store != nil {
			store.Close()
		}
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := p.Plan(ctx, seedOrNow())
	if store != nil {
		store.Close()
	}
	if err != nil {
		fail("%v", err)
	}

	printOutcome(out, cfg.Display.ShowExplored)
	if !out.Result.Found() {
		os.Exit(2)
	}
}

// printOutcome writes the finished board and its summary to stdout.
func printOutcome(out planner.Outcome, showExplored bool) {
	frame := render.Snapshot(out.Grid, out.Result, len(out.Result.Path), showExplored)

	fmt.Printf("%s  seed %d  %dx%d  %d obstacles", out.Source, out.Seed,
		out.Grid.Width(), out.Grid.Height(), out.Grid.ObstacleCount())
	if out.Attempts > 1 {
		fmt.Printf("  attempt %d", out.Attempts)
	}
	fmt.Println()
	fmt.Println()
	fmt.Println(frame.String())
	fmt.Println()
	fmt.Println(render.Legend())
	fmt.Println(render.Summary(out.Result))

	if out.Result.Found() {
		fmt.Print("path:")
		for _, c := range out.Result.Path {
			fmt.Printf(" %s", c)
		}
		fmt.Println()
	}
}
