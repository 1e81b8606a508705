package config

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/registry"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// PolicyOverride returns the policy that replaces every autonomous entity's
// policy for a preset, or "" to keep the policies the level names.
//   - easy: entities stand still
//   - normal: as authored
//   - hard: every entity wanders randomly
func PolicyOverride(preset DifficultyPreset) string {
	switch preset {
	case DifficultyEasy:
		return registry.Still
	case DifficultyHard:
		return registry.Random
	default:
		return ""
	}
}
