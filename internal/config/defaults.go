package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the built-in configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		LevelsDir: "~/.maze/levels",
		DBPath:    "~/.maze/maze.db",
		LogLevel:  "info",
		LogFile:   "~/.maze/maze.log",
		Game: GameConfig{
			Difficulty: DifficultyNormal,
			Record:     true,
			StartLevel: "level01",
		},
		Replay: ReplayConfig{
			StepMillis: 250,
		},
		Server: ServerConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMazeYAML
}
