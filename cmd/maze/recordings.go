package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
)

var (
	flagRecordingsLimit  int
	flagRecordingsBrowse bool
	flagRecordingsDelete string
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings [level]",
	Short: "List saved recordings",
	Long: `Display the most recent recordings, optionally for one level.

Examples:
  maze recordings
  maze recordings level02 --limit 5
  maze recordings --browse
  maze recordings --delete 01J9ZK3W8Q5N6V7X2Y4T0R1M3S`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecordings,
}

func init() {
	recordingsCmd.Flags().IntVar(&flagRecordingsLimit, "limit", 20, "Maximum number of recordings to show")
	recordingsCmd.Flags().BoolVar(&flagRecordingsBrowse, "browse", false, "Open the interactive recordings browser")
	recordingsCmd.Flags().StringVar(&flagRecordingsDelete, "delete", "", "Delete the recording with this ID")
}

func runRecordings(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	store := mustOpenStore(cfg)
	defer store.Close()

	if flagRecordingsDelete != "" {
		if err := store.DeleteRecording(flagRecordingsDelete); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted recording %s\n", flagRecordingsDelete)
		return
	}

	if flagRecordingsBrowse {
		catalog := loadCatalog(cfg)
		logger, closeLog := fileLogger(cfg)
		defer closeLog()

		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
			height = h
		}

		err := tui.RunSession(store, logger, tui.SessionConfig{
			Play: tui.PlayOptions{
				Levels: catalog,
				Seed:   cfg.Game.Seed,
				Policy: config.PolicyOverride(cfg.Game.Difficulty),
				Record: cfg.Game.Record,
				Player: "local",
			},
			ReplayInterval: cfg.Replay.StepInterval(),
			Recordings:     true,
			Width:          width,
			Height:         height,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
	}

	recs, err := store.Recordings(levelID, flagRecordingsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving recordings: %v\n", err)
		os.Exit(1)
	}

	if len(recs) == 0 {
		fmt.Println("No recordings saved yet.")
		fmt.Println()
		fmt.Println("Play 'maze play' to record your first game!")
		return
	}

	fmt.Printf("  %-26s  %-10s  %-9s  %5s  %8s  %s\n", "ID", "Level", "Outcome", "Turns", "Treasure", "Date")
	fmt.Printf("  %-26s  %-10s  %-9s  %5s  %8s  %s\n", "--", "-----", "-------", "-----", "--------", "----")
	for _, r := range recs {
		fmt.Printf("  %-26s  %-10s  %-9s  %5d  %8d  %s\n",
			r.ID, r.LevelID, r.Outcome(), r.Turns, r.Treasure, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'maze replay <id>' to watch a recording.")
}
