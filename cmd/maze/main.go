// maze is a turn-based tile maze game for the terminal.
//
// Usage:
//
//	maze list                - List levels and move policies
//	maze play [level]        - Play from a level, or pick one from the menu
//	maze replay <id>         - Watch a saved recording
//	maze recordings [level]  - List saved recordings
//	maze check               - Validate level files and stored recordings
//	maze serve               - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.maze/config.yaml, ./configs/maze.yaml)
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: ~/.maze/maze.db)
//	--levels <dir>      - Extra level directory
//	--difficulty <name> - easy, normal or hard
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagSeed       int64
	flagDBPath     string
	flagLevelsDir  string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	// Optional .env next to the binary's working directory
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maze",
	Short: "Maze - a turn-based tile maze for your terminal",
	Long: `Maze is a turn-based puzzle game. Collect every chip, open the
exit barrier and reach the exit without getting caught by the bugs.

Available commands:
  list        - Show levels and move policies
  play        - Play a level
  replay      - Watch a saved recording
  recordings  - List saved recordings
  check       - Validate level files and recordings
  serve       - Start SSH server for remote play

Examples:
  maze list
  maze play level02
  maze play --difficulty hard --seed 42
  maze recordings --browse
  maze serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(recordingsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the configuration and applies command-line overrides.
// Flags win over environment variables, which win over the config file.
func loadConfig(cmd *cobra.Command) config.MazeConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("levels") {
		cfg.LevelsDir = flagLevelsDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("difficulty") {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Game.Difficulty = preset
	}

	return cfg
}

// newLogger creates the application logger writing to w.
func newLogger(cfg config.MazeConfig, w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "maze",
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger returns a logger for full-screen views, which own the terminal.
// Logs go to the configured log file, or nowhere if it cannot be opened.
func fileLogger(cfg config.MazeConfig) (*log.Logger, func()) {
	path := config.ExpandHome(cfg.LogFile)
	if path == "" {
		return newLogger(cfg, io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(cfg, io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newLogger(cfg, io.Discard), func() {}
	}
	//nolint:errcheck // Best-effort close
	return newLogger(cfg, f), func() { f.Close() }
}

// loadCatalog loads the built-in levels merged with the configured directory.
func loadCatalog(cfg config.MazeConfig) []levels.Level {
	catalog, err := levels.Catalog(config.ExpandHome(cfg.LevelsDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}
	if len(catalog) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no levels available.")
		os.Exit(1)
	}
	return catalog
}

// openStore opens the database, or returns nil with a warning when it
// cannot be opened. Play continues without persistence.
func openStore(cfg config.MazeConfig) *storage.Store {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// mustOpenStore opens the database or exits.
func mustOpenStore(cfg config.MazeConfig) *storage.Store {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}
