package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/robopath/internal/platform/tui"
	"github.com/vovakirdan/robopath/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
	flagHistoryStats bool
	flagHistoryTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [source]",
	Short: "Show recorded runs",
	Long: `Display recent runs, optionally for one generator or map only.

Examples:
  robopath history
  robopath history scatter --limit 20
  robopath history --stats
  robopath history --tui
  robopath history rooms --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs instead of showing them")
	historyCmd.Flags().BoolVar(&flagHistoryStats, "stats", false, "Show per-source statistics")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse runs interactively")
}

func runHistory(_ *cobra.Command, args []string) {
	source := ""
	if len(args) == 1 {
		source = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run database: %v", err)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		if err := store.ClearRuns(source); err != nil {
			fail("%v", err)
		}
		if source == "" {
			fmt.Println("Cleared all runs.")
		} else {
			fmt.Printf("Cleared runs for %s.\n", source)
		}

	case flagHistoryTUI:
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fail("running history: %v", err)
		}

	case flagHistoryStats:
		printStats(store)

	default:
		printRuns(store, source)
	}
}

func printRuns(store *storage.Store, source string) {
	runs, err := store.RecentRuns(source, flagHistoryLimit)
	if err != nil {
		fail("%v", err)
	}

	title := "Recent runs"
	if source != "" {
		title += " - " + source
	}
	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'robopath run' to plan the first route!")
		return
	}

	fmt.Printf("  %-5s  %-12s  %-20s  %-6s  %-4s  %-5s  %-9s  %s\n",
		"ID", "Source", "Seed", "Cost", "Len", "Exp", "Facing", "Date")
	fmt.Printf("  %-5s  %-12s  %-20s  %-6s  %-4s  %-5s  %-9s  %s\n",
		"--", "------", "----", "----", "---", "---", "------", "----")

	for _, r := range runs {
		cost := "-"
		if r.Found {
			cost = fmt.Sprintf("%d", r.Cost)
		}
		fmt.Printf("  %-5d  %-12s  %-20d  %-6s  %-4d  %-5d  %-9s  %s\n",
			r.ID, r.Source, r.Seed, cost, r.PathLength, r.Expanded, r.Facing,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printStats(store *storage.Store) {
	stats, err := store.AllSourceStats()
	if err != nil {
		fail("%v", err)
	}

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	sources := make([]string, 0, len(stats))
	for id := range stats {
		sources = append(sources, id)
	}
	sort.Strings(sources)

	fmt.Printf("  %-12s  %-5s  %-7s  %-5s  %-8s  %-8s  %s\n",
		"Source", "Runs", "Found", "Best", "AvgCost", "AvgLen", "Last run")
	fmt.Printf("  %-12s  %-5s  %-7s  %-5s  %-8s  %-8s  %s\n",
		"------", "----", "-----", "----", "-------", "------", "--------")
	for _, id := range sources {
		st := stats[id]
		fmt.Printf("  %-12s  %-5d  %-6.0f%%  %-5d  %-8.1f  %-8.1f  %s\n",
			st.Source, st.Runs, st.SuccessRate()*100, st.BestCost, st.AvgCost, st.AvgLength,
			st.LastRun.Format("2006-01-02 15:04"))
	}
}
