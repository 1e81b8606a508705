package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/maze/replay"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
)

var (
	flagReplayStepMS int
	flagReplayDump   bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <recording-id>",
	Short: "Watch a saved recording",
	Long: `Play back a recording saved by 'maze play'.

The recording is re-applied move by move to a fresh copy of its level, so
playback matches the original game exactly.

Controls:
  Space/P  - Play/pause
  Right    - Step one turn
  +/-      - Faster/slower
  R        - Rewind
  Q        - Quit

Examples:
  maze replay 01J9ZK3W8Q5N6V7X2Y4T0R1M3S
  maze replay 01J9ZK3W8Q5N6V7X2Y4T0R1M3S --step-ms 100
  maze replay 01J9ZK3W8Q5N6V7X2Y4T0R1M3S --dump`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&flagReplayStepMS, "step-ms", 0, "Delay between turns in milliseconds (default from config)")
	replayCmd.Flags().BoolVar(&flagReplayDump, "dump", false, "Print the final board instead of animating")
}

func runReplay(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	if flagReplayStepMS > 0 {
		cfg.Replay.StepMillis = flagReplayStepMS
	}
	catalog := loadCatalog(cfg)

	store := mustOpenStore(cfg)
	rec, err := store.Recording(args[0])
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "Error: no recording %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'maze recordings' to see saved recordings.")
		os.Exit(1)
	}

	lvl, ok := levels.Find(catalog, rec.LevelID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: level %q of recording %s is not available\n", rec.LevelID, rec.ID)
		os.Exit(1)
	}

	if flagReplayDump {
		dumpReplay(*rec, lvl)
		return
	}

	if err := tui.RunReplay(*rec, lvl, cfg.Replay.StepInterval()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// dumpReplay applies the whole recording and prints the final board.
func dumpReplay(rec replay.Recording, lvl levels.Level) {
	gs, err := lvl.Build(rec.Seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := replay.Apply(gs, rec.Steps); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recording %s - %s (%s)\n", rec.ID, lvl.Title(), rec.Outcome())
	fmt.Println()
	fmt.Print(gs.String())
	fmt.Println()
	fmt.Printf("Turns: %d  Treasure: %d/%d  Steps: %d\n",
		rec.Turns, gs.TreasureCollected(), gs.TreasureInitial(), len(rec.Steps))
	fmt.Printf("Final hash: %016x (recorded %016x)\n", gs.Snapshot(), rec.FinalHash)
}
