package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/maze/replay"
)

var flagCheckRecordings bool

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate level files and stored recordings",
	Long: `Parse and validate every level file in a directory (default: the
configured levels directory) and the built-in levels. With --recordings,
also replay every stored recording and compare its final state.

Exits with status 1 if anything fails.

Examples:
  maze check
  maze check ./my-levels
  maze check --recordings`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagCheckRecordings, "recordings", false, "Also verify stored recordings")
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	dir := config.ExpandHome(cfg.LevelsDir)
	if len(args) == 1 {
		dir = args[0]
	}

	failed := 0

	builtin, err := levels.Builtin()
	if err != nil {
		fmt.Printf("  FAIL  built-in levels: %v\n", err)
		failed++
	}
	for _, l := range builtin {
		if err := l.Validate(); err != nil {
			fmt.Printf("  FAIL  %s (built-in): %v\n", l.ID, err)
			failed++
			continue
		}
		fmt.Printf("  ok    %s (built-in)\n", l.ID)
	}

	if _, statErr := os.Stat(dir); statErr == nil {
		results, err := levels.NewLoader(dir).Check()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("  FAIL  %s: %v\n", r.Path, r.Err)
				failed++
				continue
			}
			fmt.Printf("  ok    %s (%s)\n", r.Level.ID, r.Path)
		}
	} else if len(args) == 1 {
		fmt.Fprintf(os.Stderr, "Error: %v\n", statErr)
		os.Exit(1)
	}

	if flagCheckRecordings {
		failed += checkRecordings(cfg)
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%d problem(s) found.\n", failed)
		os.Exit(1)
	}
	fmt.Println("All good.")
}

// checkRecordings verifies every stored recording and returns the number
// of failures.
func checkRecordings(cfg config.MazeConfig) int {
	catalog := loadCatalog(cfg)
	store := mustOpenStore(cfg)
	defer store.Close()

	recs, err := store.Recordings("", -1)
	if err != nil {
		fmt.Printf("  FAIL  recordings: %v\n", err)
		return 1
	}

	failed := 0
	for _, rec := range recs {
		lvl, ok := levels.Find(catalog, rec.LevelID)
		if !ok {
			fmt.Printf("  FAIL  recording %s: level %q not found\n", rec.ID, rec.LevelID)
			failed++
			continue
		}
		if err := replay.Verify(rec, lvl); err != nil {
			reason := "error"
			if errors.Is(err, replay.ErrDiverged) {
				reason = "diverged"
			}
			fmt.Printf("  FAIL  recording %s (%s): %s: %v\n", rec.ID, rec.LevelID, reason, err)
			failed++
			continue
		}
		fmt.Printf("  ok    recording %s (%s, %d steps)\n", rec.ID, rec.LevelID, len(rec.Steps))
	}
	return failed
}
