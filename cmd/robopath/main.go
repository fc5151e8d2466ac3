// robopath plans routes for a directional agent on obstacle grids and shows
// them in the terminal, over SSH or in a browser.
//
// Usage:
//
//	robopath run                  - Plan one route and print it
//	robopath watch                - Animate routes in the terminal
//	robopath history [source]     - Show recorded runs
//	robopath generators           - List obstacle generators and maps
//	robopath serve                - Start SSH server for remote viewing
//	robopath web                  - Start the browser renderer
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible boards
//	--db <path>     - Set database path (default: ~/.robopath/runs.db)
//	--config <path> - Load configuration from a YAML file
//	--verbose       - Log every search attempt
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import generators to register them
	_ "github.com/vovakirdan/robopath/internal/mapgen"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "robopath",
	Short: "robopath - Route planning for a directional agent",
	Long: `robopath finds routes across obstacle grids for an agent that has a
facing direction. Turning costs, collisions cost more, and the search
never revisits a cell it has claimed.

Available commands:
  run          - Plan one route and print the board
  watch        - Animate routes step by step
  history      - Browse recorded runs
  generators   - List obstacle generators and map files
  serve        - Start SSH server for remote viewing
  web          - Start the browser renderer

Examples:
  robopath run --seed 42
  robopath run --generator rooms --facing north
  robopath watch --density dense
  robopath run --map ./maps/warehouse.pgm
  robopath serve --ssh :2222
  robopath history scatter`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.robopath/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every search attempt")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(generatorsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// newLogger builds the CLI logger. --verbose lowers the level to debug.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fail prints an error the way every command reports one and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
