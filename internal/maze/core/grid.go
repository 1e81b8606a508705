package core

import "fmt"

// Grid represents the board as a rectangular grid of tiles.
// Tiles are stored in row-major order: index = row*cols + col.
// The grid is plain storage; every game rule lives in GameState.
type Grid struct {
	rows  int
	cols  int
	tiles []Tile
}

// NewGrid creates a grid with the given dimensions, every tile Free.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, preconditionf("EMPTY_GRID", "grid dimensions must be positive, got %dx%d", rows, cols)
	}
	tiles := make([]Tile, rows*cols)
	for i := range tiles {
		tiles[i] = Free()
	}
	return &Grid{rows: rows, cols: cols, tiles: tiles}, nil
}

// MustGrid builds a grid from rows of tiles and panics on ragged input.
// Intended for tests and hand-built fixtures.
func MustGrid(rows [][]Tile) *Grid {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("core: MustGrid needs at least one tile")
	}
	g, err := NewGrid(len(rows), len(rows[0]))
	if err != nil {
		panic(err)
	}
	for r, row := range rows {
		if len(row) != g.cols {
			panic(fmt.Sprintf("core: MustGrid row %d has %d tiles, want %d", r, len(row), g.cols))
		}
		copy(g.tiles[r*g.cols:], row)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.cols
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.rows
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

// Get returns the tile at (row, col).
func (g *Grid) Get(row, col int) (Tile, error) {
	if !g.InBounds(row, col) {
		return Tile{}, outOfBounds(row, col, g)
	}
	return g.tiles[g.index(row, col)], nil
}

// Set replaces the tile at (row, col).
func (g *Grid) Set(row, col int, t Tile) error {
	if !g.InBounds(row, col) {
		return outOfBounds(row, col, g)
	}
	g.tiles[g.index(row, col)] = t
	return nil
}

// at skips the bounds check; callers have already validated.
func (g *Grid) at(row, col int) *Tile {
	return &g.tiles[g.index(row, col)]
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.tiles))
	copy(tiles, g.tiles)
	return &Grid{rows: g.rows, cols: g.cols, tiles: tiles}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, t := range g.tiles {
		if t != other.tiles[i] {
			return false
		}
	}
	return true
}

// Count returns the number of tiles matching the predicate.
func (g *Grid) Count(match func(Tile) bool) int {
	n := 0
	for _, t := range g.tiles {
		if match(t) {
			n++
		}
	}
	return n
}

// Each calls fn for every tile in row-major order.
func (g *Grid) Each(fn func(row, col int, t Tile)) {
	for i, t := range g.tiles {
		fn(i/g.cols, i%g.cols, t)
	}
}

func outOfBounds(row, col int, g *Grid) error {
	return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, row, col, g.rows, g.cols)
}
