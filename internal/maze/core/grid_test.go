package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
)

func TestNewGrid(t *testing.T) {
	g, err := core.NewGrid(3, 4)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Height() != 3 || g.Width() != 4 {
		t.Errorf("expected 3x4 grid, got %dx%d", g.Height(), g.Width())
	}

	free := g.Count(func(tile core.Tile) bool { return tile == core.Free() })
	if free != 12 {
		t.Errorf("expected 12 free tiles, got %d", free)
	}
}

func TestNewGridRejectsEmpty(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		if _, err := core.NewGrid(dims[0], dims[1]); !errors.Is(err, core.ErrPrecondition) {
			t.Errorf("NewGrid(%d,%d): expected precondition error, got %v", dims[0], dims[1], err)
		}
	}
}

func TestGridInBounds(t *testing.T) {
	g, _ := core.NewGrid(5, 5)

	testCases := []struct {
		row, col int
		expected bool
	}{
		{0, 0, true},
		{4, 4, true},
		{2, 2, true},
		{-1, 0, false},
		{0, -1, false},
		{5, 0, false},
		{0, 5, false},
	}

	for _, tc := range testCases {
		if got := g.InBounds(tc.row, tc.col); got != tc.expected {
			t.Errorf("InBounds(%d,%d): expected %v, got %v", tc.row, tc.col, tc.expected, got)
		}
	}
}

func TestGridSetAndGet(t *testing.T) {
	g, _ := core.NewGrid(3, 3)

	if err := g.Set(1, 2, core.LockedDoor(core.ColorGreen)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	tile, err := g.Get(1, 2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tile != core.LockedDoor(core.ColorGreen) {
		t.Errorf("expected green door, got %+v", tile)
	}

	if _, err := g.Get(3, 0); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("Get off board: expected ErrOutOfBounds, got %v", err)
	}
	if err := g.Set(0, -1, core.Wall()); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("Set off board: expected ErrOutOfBounds, got %v", err)
	}
}

func TestGridCloneAndEqual(t *testing.T) {
	g, _ := core.NewGrid(2, 2)
	_ = g.Set(0, 0, core.Wall())

	clone := g.Clone()
	if !g.Equal(clone) {
		t.Fatal("clone should equal original")
	}

	_ = clone.Set(1, 1, core.Exit())
	if g.Equal(clone) {
		t.Error("modifying clone should not affect original")
	}
	if tile, _ := g.Get(1, 1); tile != core.Free() {
		t.Errorf("original changed: %+v", tile)
	}

	other, _ := core.NewGrid(2, 3)
	if g.Equal(other) || g.Equal(nil) {
		t.Error("grids of different size should not be equal")
	}
}

func TestGridHash(t *testing.T) {
	a, _ := core.NewGrid(2, 2)
	b, _ := core.NewGrid(2, 2)
	if a.Hash() != b.Hash() {
		t.Error("equal grids should hash equal")
	}

	_ = b.Set(0, 1, core.FreeWith(core.KeyItem(core.ColorRed)))
	if a.Hash() == b.Hash() {
		t.Error("different grids should hash differently")
	}
}

func TestMustGridPanicsOnRaggedRows(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	core.MustGrid([][]core.Tile{{core.Free(), core.Free()}, {core.Free()}})
}
