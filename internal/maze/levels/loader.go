// Package levels provides level loading for the maze game.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-maze/internal/maze/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Info     string // Help text shown while the avatar stands on an info tile
	Policy   string // Default policy for U cells
	Layout   []string
	Entities []Entity
	Metadata map[string]string
	FilePath string
}

// Entity configures the autonomous entity on a U cell, or adds one on an
// empty free cell.
type Entity struct {
	Row    int
	Col    int
	Policy string
	Path   string
}

// Title returns the display name, falling back to the ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// CheckResult is the outcome of checking one level file.
type CheckResult struct {
	Path  string
	Level Level
	Err   error
}

// LoadAll recursively scans and loads all level files.
// Files that fail to parse or validate are skipped.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	results, err := l.Check()
	if err != nil {
		return nil, err
	}

	var levels []Level
	for _, r := range results {
		if r.Err == nil {
			levels = append(levels, r.Level)
		}
	}

	sortLevels(levels)
	return levels, nil
}

// Check parses and validates every level file under Root.
func (l *Loader) Check() ([]CheckResult, error) {
	var results []CheckResult

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err == nil {
			err = level.Validate()
		}
		results = append(results, CheckResult{Path: p, Level: level, Err: err})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	return results, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}
	return parseFile(data, p)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	if lvl, ok := Find(levels, id); ok {
		return lvl, nil
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Builtin returns the levels shipped with the binary, sorted by ID.
func Builtin() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(builtinFS, "builtin", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		data, err := builtinFS.ReadFile(p)
		if err != nil {
			return err
		}
		level, err := parseFile(data, p)
		if err != nil {
			return err
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: builtin: %w", err)
	}

	sortLevels(levels)
	return levels, nil
}

// Catalog returns the built-in levels merged with the levels found under
// root. A level in root replaces a built-in level with the same ID.
// A missing root is not an error.
func Catalog(root string) ([]Level, error) {
	levels, err := Builtin()
	if err != nil {
		return nil, err
	}
	if root == "" {
		return levels, nil
	}
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return levels, nil
	}

	custom, err := NewLoader(root).LoadAll()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(levels))
	for i, lvl := range levels {
		byID[lvl.ID] = i
	}
	for _, lvl := range custom {
		if i, ok := byID[lvl.ID]; ok {
			levels[i] = lvl
			continue
		}
		levels = append(levels, lvl)
	}

	sortLevels(levels)
	return levels, nil
}

// Find returns the level with the given ID.
func Find(levels []Level, id string) (Level, bool) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return Level{}, false
}

// Next returns the level that follows id in catalog order.
func Next(levels []Level, id string) (Level, bool) {
	for i, lvl := range levels {
		if lvl.ID == id && i+1 < len(levels) {
			return levels[i+1], true
		}
	}
	return Level{}, false
}

func parseFile(data []byte, p string) (Level, error) {
	parsed, err := parseByExtension(data, strings.ToLower(filepath.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", p, err)
	}

	entities := make([]Entity, len(parsed.Entities))
	for i, e := range parsed.Entities {
		entities[i] = Entity{Row: e.Row, Col: e.Col, Policy: e.Policy, Path: e.Path}
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Info:     parsed.Info,
		Policy:   parsed.Policy,
		Layout:   parsed.Layout,
		Entities: entities,
		Metadata: parsed.Metadata,
		FilePath: p,
	}, nil
}

func sortLevels(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
