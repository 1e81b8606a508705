package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
)

func TestDirDelta(t *testing.T) {
	testCases := []struct {
		dir        core.Dir
		drow, dcol int
	}{
		{core.DirUp, -1, 0},
		{core.DirDown, 1, 0},
		{core.DirLeft, 0, -1},
		{core.DirRight, 0, 1},
		{core.DirNone, 0, 0},
	}

	for _, tc := range testCases {
		dr, dc := tc.dir.Delta()
		if dr != tc.drow || dc != tc.dcol {
			t.Errorf("%s.Delta(): expected (%d,%d), got (%d,%d)", tc.dir, tc.drow, tc.dcol, dr, dc)
		}
	}
}

func TestParseDir(t *testing.T) {
	testCases := []struct {
		in   string
		want core.Dir
		ok   bool
	}{
		{"U", core.DirUp, true},
		{"down", core.DirDown, true},
		{"Left", core.DirLeft, true},
		{"r", core.DirRight, true},
		{"noMove", core.DirNone, true},
		{"N", core.DirNone, true},
		{"north", core.DirNone, false},
		{"", core.DirNone, false},
	}

	for _, tc := range testCases {
		got, ok := core.ParseDir(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseDir(%q): expected (%s,%v), got (%s,%v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestParsePath(t *testing.T) {
	path, ok := core.ParsePath("UULRN")
	if !ok {
		t.Fatal("expected path to parse")
	}
	want := []core.Dir{core.DirUp, core.DirUp, core.DirLeft, core.DirRight, core.DirNone}
	if len(path) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(path))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("step %d: expected %s, got %s", i, want[i], path[i])
		}
	}

	if _, ok := core.ParsePath("UQ"); ok {
		t.Error("expected unknown letter to fail")
	}
}

func TestTileValid(t *testing.T) {
	valid := []core.Tile{
		core.Wall(), core.Free(), core.SingleUse(), core.InfoField(), core.Exit(),
		core.LockedDoor(core.ColorYellow),
		core.FreeWith(core.TreasureItem()),
		core.FreeWith(core.KeyItem(core.ColorBlue)),
		core.FreeWith(core.ExitBarrierItem()),
	}
	for _, tile := range valid {
		if !tile.Valid() {
			t.Errorf("expected %s tile to be valid", tile.Kind)
		}
	}

	invalid := []core.Tile{
		{Kind: core.TileLockedDoor},
		{Kind: core.TileWall, Item: core.TreasureItem()},
		{Kind: core.TileFree, Item: core.Item{Kind: core.ItemKey}},
		{Kind: core.TileFree, Door: core.ColorRed},
		{Kind: core.TileKind(99)},
	}
	for _, tile := range invalid {
		if tile.Valid() {
			t.Errorf("expected %+v to be invalid", tile)
		}
	}
}

func TestTileLetter(t *testing.T) {
	testCases := []struct {
		tile core.Tile
		want byte
	}{
		{core.Wall(), 'W'},
		{core.Free(), ' '},
		{core.SingleUse(), 'S'},
		{core.InfoField(), 'I'},
		{core.Exit(), 'E'},
		{core.LockedDoor(core.ColorRed), 'R'},
		{core.LockedDoor(core.ColorBlue), 'B'},
		{core.FreeWith(core.KeyItem(core.ColorGreen)), 'g'},
		{core.FreeWith(core.TreasureItem()), 'C'},
		{core.FreeWith(core.ExitBarrierItem()), 'X'},
	}

	for _, tc := range testCases {
		if got := tc.tile.Letter(); got != tc.want {
			t.Errorf("%s.Letter(): expected %q, got %q", tc.tile.Kind, tc.want, got)
		}
	}
}
