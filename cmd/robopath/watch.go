package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/robopath/internal/platform/tui"
)

var watchFlags boardFlags

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Animate routes in the terminal",
	Long: `Plan boards and reveal each route one cell per tick.

Controls:
  Space/P    - Pause
  N/R        - New board
  Enter      - Replay
  E          - Toggle explored cells
  +/-        - Faster / slower
  Ctrl+S     - Save a screenshot to ~/.robopath/screenshots
  ?          - Help
  Q/Ctrl+C   - Quit

Examples:
  robopath watch
  robopath watch --density dense --facing random
  robopath watch --generator rooms --explored`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	watchFlags.register(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd, &watchFlags)
	if err != nil {
		fail("%v", err)
	}

	// Two columns per cell plus the border, and room for status and help.
	// Map files bring their own size.
	needW := cfg.Grid.Width*2 + 4
	needH := cfg.Grid.Height + 8
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && cfg.Grid.MapFile == "" {
		if w < needW || h < needH {
			fail("terminal is %dx%d, the board needs at least %dx%d", w, h, needW, needH)
		}
	}

	store := openStore(&watchFlags)
	if store != nil {
		defer store.Close()
	}

	// The viewer owns the terminal; planner logs would tear the frame.
	p, err := newPlanner(cfg, store, log.New(io.Discard))
	if err != nil {
		fail("%v", err)
	}

	if err := tui.Run(p, flagSeed); err != nil {
		fail("running viewer: %v", err)
	}
}
