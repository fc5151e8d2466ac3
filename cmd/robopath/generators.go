package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robopath/internal/maps"
	"github.com/vovakirdan/robopath/internal/registry"
)

var flagMapsDir string

var generatorsCmd = &cobra.Command{
	Use:     "generators",
	Aliases: []string{"list"},
	Short:   "List obstacle generators and map files",
	Long: `Shows every registered obstacle generator and the map files found in
the maps directory.`,
	Run: runGenerators,
}

func init() {
	generatorsCmd.Flags().StringVar(&flagMapsDir, "maps", "./maps", "Directory to scan for map files")
}

func runGenerators(_ *cobra.Command, _ []string) {
	gens := registry.List()

	fmt.Println("Generators:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range gens {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range gens {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}
	fmt.Println()
	fmt.Println("Run 'robopath run --generator <id>' to use one.")

	loaded, err := maps.NewLoader(flagMapsDir).LoadAll()
	if err != nil || len(loaded) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("Maps in %s:\n", flagMapsDir)
	fmt.Println()
	for _, m := range loaded {
		fmt.Printf("  %-16s  %3dx%-3d  %4d obstacles  %s\n",
			m.ID, m.Width, m.Height, len(m.Obstacles), m.FilePath)
	}
	fmt.Println()
	fmt.Println("Run 'robopath run --map <file>' to use one.")
}
