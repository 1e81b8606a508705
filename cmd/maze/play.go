package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
)

var flagNoRecord bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level. Without a level, a menu lets you pick one.

Controls:
  Arrows/WASD  - Move (or click a neighbouring cell)
  R            - Restart the level
  N/Enter      - Next level (after finishing)
  Esc/B        - Back to menu
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Bugs stand still
  normal - Bugs move the way the level says
  hard   - Every bug wanders randomly

Examples:
  maze play
  maze play level02
  maze play level03 --difficulty easy
  maze play level02 --seed 42 --no-record`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save a recording of this session")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	catalog := loadCatalog(cfg)

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
		if _, ok := levels.Find(catalog, levelID); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
			fmt.Fprintln(os.Stderr, "Run 'maze list' to see available levels.")
			os.Exit(1)
		}
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}
	logger, closeLog := fileLogger(cfg)
	defer closeLog()

	opts := tui.PlayOptions{
		Levels:     catalog,
		StartLevel: cfg.Game.StartLevel,
		Seed:       cfg.Game.Seed,
		Policy:     config.PolicyOverride(cfg.Game.Difficulty),
		Record:     cfg.Game.Record && !flagNoRecord,
		Player:     "local",
	}

	var err error
	if levelID != "" {
		opts.StartLevel = levelID
		err = tui.Run(store, logger, opts)
	} else {
		// Get terminal size for the menu layout
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		err = tui.RunSession(store, logger, tui.SessionConfig{
			Play:           opts,
			ReplayInterval: cfg.Replay.StepInterval(),
			Width:          width,
			Height:         height,
		})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
