package levels_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/maze/levels"
)

// getTestdataPath returns path to testdata/levels.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// broken.yaml and loose.yaml are skipped, notes.txt is ignored.
	if len(lvls) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(lvls))
	}
	if lvls[0].ID != "corridor" || lvls[1].ID != "tiny" {
		t.Errorf("expected [corridor tiny], got [%s %s]", lvls[0].ID, lvls[1].ID)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("tiny")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "Tiny" {
		t.Errorf("expected Name 'Tiny', got %q", lvl.Name)
	}
	if lvl.Info == "" {
		t.Error("expected info text")
	}
	if len(lvl.Layout) != 3 {
		t.Errorf("expected 3 layout rows, got %d", len(lvl.Layout))
	}

	if _, err := loader.LoadByID("loose"); err == nil {
		t.Error("invalid level should not be loadable")
	}
	if _, err := loader.LoadByID("nope"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoaderListIDs(t *testing.T) {
	ids, err := levels.NewLoader(getTestdataPath()).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "corridor" || ids[1] != "tiny" {
		t.Errorf("unexpected ids %v", ids)
	}
}

func TestLoaderCheck(t *testing.T) {
	results, err := levels.NewLoader(getTestdataPath()).Check()
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 checked files, got %d", len(results))
	}

	failed := make(map[string]bool)
	for _, r := range results {
		failed[filepath.Base(r.Path)] = r.Err != nil
	}
	for name, want := range map[string]bool{
		"tiny.yaml":    false,
		"corridor.yml": false,
		"loose.yaml":   true,
		"broken.yaml":  true,
	} {
		if failed[name] != want {
			t.Errorf("%s: expected failure=%v", name, want)
		}
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	if _, err := levels.NewLoader(filepath.Join(t.TempDir(), "missing")).LoadAll(); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestBuiltinLevelsAreValid(t *testing.T) {
	lvls, err := levels.Builtin()
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	if len(lvls) < 3 {
		t.Fatalf("expected at least 3 built-in levels, got %d", len(lvls))
	}

	for _, lvl := range lvls {
		if err := lvl.Validate(); err != nil {
			t.Errorf("%s: %v", lvl.ID, err)
		}
		if _, err := lvl.Build(1); err != nil {
			t.Errorf("%s: Build: %v", lvl.ID, err)
		}
	}
}

func TestCatalogMergesDirectory(t *testing.T) {
	lvls, err := levels.Catalog(getTestdataPath())
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}

	builtin, _ := levels.Builtin()
	if len(lvls) != len(builtin)+2 {
		t.Errorf("expected %d levels, got %d", len(builtin)+2, len(lvls))
	}
	if _, ok := levels.Find(lvls, "tiny"); !ok {
		t.Error("expected tiny in catalog")
	}
	if _, ok := levels.Find(lvls, "level01"); !ok {
		t.Error("expected level01 in catalog")
	}

	only, err := levels.Catalog(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Catalog with missing dir: %v", err)
	}
	if len(only) != len(builtin) {
		t.Errorf("expected only built-in levels, got %d", len(only))
	}
}

func TestNext(t *testing.T) {
	lvls, _ := levels.Builtin()

	next, ok := levels.Next(lvls, "level01")
	if !ok || next.ID != "level02" {
		t.Errorf("expected level02 after level01, got %q (%v)", next.ID, ok)
	}
	if _, ok := levels.Next(lvls, lvls[len(lvls)-1].ID); ok {
		t.Error("last level should have no successor")
	}
}
