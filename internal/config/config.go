// Package config provides YAML-based configuration loading and
// difficulty presets for the maze game.
package config

import "time"

// MazeConfig contains all application configuration.
type MazeConfig struct {
	LevelsDir string       `yaml:"levels_dir"` // Extra level files, merged over the built-in set
	DBPath    string       `yaml:"db_path"`
	LogLevel  string       `yaml:"log_level"` // debug, info, warn or error
	LogFile   string       `yaml:"log_file"`  // Log destination while a full-screen view is open
	Game      GameConfig   `yaml:"game"`
	Replay    ReplayConfig `yaml:"replay"`
	Server    ServerConfig `yaml:"server"`
}

// GameConfig defines how a level is played.
type GameConfig struct {
	Seed       int64            `yaml:"seed"` // 0 = random based on time
	Difficulty DifficultyPreset `yaml:"difficulty"`
	Record     bool             `yaml:"record"` // Save a recording of every attempt
	StartLevel string           `yaml:"start_level"`
}

// ReplayConfig defines playback parameters.
type ReplayConfig struct {
	StepMillis int `yaml:"step_ms"` // Delay between replayed turns
}

// StepInterval returns the playback delay between turns.
func (r ReplayConfig) StepInterval() time.Duration {
	if r.StepMillis <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(r.StepMillis) * time.Millisecond
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key"` // Auto-generated under ~/.maze when empty
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	if s.IdleTimeoutMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}
