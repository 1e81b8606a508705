package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
)

// cellWidth is the number of terminal columns used per board cell.
const cellWidth = 2

// paint identifies a cell style.
type paint uint8

const (
	paintFloor paint = iota
	paintWall
	paintSingleUse
	paintInfo
	paintExit
	paintBarrier
	paintTreasure
	paintAvatar
	paintDead
	paintBug
	paintRed
	paintBlue
	paintGreen
	paintYellow
)

// paintStyles maps paints to lipgloss styles.
var paintStyles = map[paint]lipgloss.Style{
	paintFloor:     lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	paintWall:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	paintSingleUse: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	paintInfo:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	paintExit:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	paintBarrier:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	paintTreasure:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	paintAvatar:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
	paintDead:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	paintBug:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
	paintRed:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	paintBlue:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	paintGreen:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	paintYellow:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
}

func keyPaint(c core.KeyColor) paint {
	switch c {
	case core.ColorRed:
		return paintRed
	case core.ColorBlue:
		return paintBlue
	case core.ColorGreen:
		return paintGreen
	default:
		return paintYellow
	}
}

// glyph returns the two-column text and paint for one cell.
func glyph(t core.Tile, alive bool) (string, paint) {
	switch {
	case t.Occupant == core.AvatarID && alive:
		return "@ ", paintAvatar
	case t.Occupant == core.AvatarID:
		return "x ", paintDead
	case t.Occupied():
		return "&&", paintBug
	}

	switch t.Kind {
	case core.TileWall:
		return "██", paintWall
	case core.TileSingleUse:
		return "░░", paintSingleUse
	case core.TileInfo:
		return "? ", paintInfo
	case core.TileExit:
		return "[]", paintExit
	case core.TileLockedDoor:
		return "▐▌", keyPaint(t.Door)
	}

	switch t.Item.Kind {
	case core.ItemTreasure:
		return "$ ", paintTreasure
	case core.ItemKey:
		return "k ", keyPaint(t.Item.Color)
	case core.ItemExitBarrier:
		return "==", paintBarrier
	}
	return "· ", paintFloor
}

// RenderBoard draws the game board, one terminal row per grid row.
// Groups adjacent cells with the same paint to minimize ANSI escape sequences.
func RenderBoard(gs *core.GameState) string {
	grid := gs.Grid()
	alive := gs.AvatarAlive()

	var sb strings.Builder
	sb.Grow(grid.Width()*grid.Height()*cellWidth*2 + grid.Height())

	for row, height := 0, grid.Height(); row < height; row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}

		col := 0
		for col < grid.Width() {
			t, _ := grid.Get(row, col)
			_, start := glyph(t, alive)

			// Collect consecutive cells with the same paint
			var run strings.Builder
			for col < grid.Width() {
				t, _ = grid.Get(row, col)
				text, p := glyph(t, alive)
				if p != start {
					break
				}
				run.WriteString(text)
				col++
			}
			sb.WriteString(paintStyles[start].Render(run.String()))
		}
	}
	return sb.String()
}

// cellAt converts a terminal position inside the rendered board to a grid cell.
// originX and originY are where the board's top-left corner was drawn.
func cellAt(x, y, originX, originY int) (row, col int, ok bool) {
	if x < originX || y < originY {
		return 0, 0, false
	}
	return y - originY, (x - originX) / cellWidth, true
}

// RenderKeys draws the avatar's key inventory.
func RenderKeys(keys []core.KeyColor) string {
	if len(keys) == 0 {
		return "none"
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = paintStyles[keyPaint(k)].Render(k.String())
	}
	return strings.Join(parts, " ")
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
