// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Info     string            `yaml:"info,omitempty"`
	Policy   string            `yaml:"policy,omitempty"`
	Layout   []string          `yaml:"layout"`
	Entities []YAMLEntity      `yaml:"entities,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLEntity places or configures one autonomous entity.
type YAMLEntity struct {
	Row    int    `yaml:"row"`
	Col    int    `yaml:"col"`
	Policy string `yaml:"policy,omitempty"`
	Path   string `yaml:"path,omitempty"` // Direction letters, e.g. "LLRR"
}

// Level represents a parsed level file. Letters are decoded by the caller.
type Level struct {
	ID       string
	Name     string
	Info     string
	Policy   string
	Layout   []string
	Entities []YAMLEntity
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing level id")
	}

	return Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Info:     yl.Info,
		Policy:   yl.Policy,
		Layout:   yl.Layout,
		Entities: yl.Entities,
		Metadata: yl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
