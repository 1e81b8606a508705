package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels and move policies",
	Long:  `Shows the built-in and user levels, and the move policies level files can use.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	cfg := loadConfig(cmd)
	catalog := loadCatalog(cfg)

	// Stats are optional; list works without a database
	var best map[string]int
	if store := openStore(cfg); store != nil {
		stats, err := store.LevelStats()
		store.Close()
		if err == nil {
			best = make(map[string]int, len(stats))
			for id, st := range stats {
				best[id] = st.BestTurns
			}
		}
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range catalog {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Size", "Best", "Title")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", "----", "----", "-----")

	for _, l := range catalog {
		size := "?"
		if g, err := l.Grid(); err == nil {
			size = fmt.Sprintf("%dx%d", g.Width(), g.Height())
		}
		bestStr := "-"
		if b := best[l.ID]; b > 0 {
			bestStr = fmt.Sprintf("%d", b)
		}
		fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, l.ID, size, bestStr, l.Title())
	}

	fmt.Println()
	fmt.Println("Move policies:")
	fmt.Println()
	for _, p := range registry.List() {
		fmt.Printf("  %-9s  %s\n", p.Name, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'maze play <id>' to play a level.")
}
