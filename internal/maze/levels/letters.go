package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
)

// Layout letters. H and U stand on a free tile.
const (
	LetterAvatar     = 'H'
	LetterAutonomous = 'U'
)

// TileForLetter decodes one layout letter.
func TileForLetter(c byte) (core.Tile, bool) {
	switch c {
	case 'W':
		return core.Wall(), true
	case 'F', '.', ' ', LetterAvatar, LetterAutonomous:
		return core.Free(), true
	case 'I':
		return core.InfoField(), true
	case 'S':
		return core.SingleUse(), true
	case 'E':
		return core.Exit(), true
	case 'R':
		return core.LockedDoor(core.ColorRed), true
	case 'G':
		return core.LockedDoor(core.ColorGreen), true
	case 'B':
		return core.LockedDoor(core.ColorBlue), true
	case 'Y':
		return core.LockedDoor(core.ColorYellow), true
	case 'r':
		return core.FreeWith(core.KeyItem(core.ColorRed)), true
	case 'g':
		return core.FreeWith(core.KeyItem(core.ColorGreen)), true
	case 'b':
		return core.FreeWith(core.KeyItem(core.ColorBlue)), true
	case 'y':
		return core.FreeWith(core.KeyItem(core.ColorYellow)), true
	case 'C':
		return core.FreeWith(core.TreasureItem()), true
	case 'X':
		return core.FreeWith(core.ExitBarrierItem()), true
	default:
		return core.Tile{}, false
	}
}

// board is a decoded layout.
type board struct {
	grid       *core.Grid
	avatars    []core.Placement
	autonomous []core.Placement // Row-major order
}

func decodeLayout(layout []string) (*board, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, core.ValidationError{Code: "EMPTY_LAYOUT", Message: "layout has no cells"}
	}

	width := len(layout[0])
	g, err := core.NewGrid(len(layout), width)
	if err != nil {
		return nil, err
	}

	b := &board{grid: g}
	for row, line := range layout {
		if len(line) != width {
			return nil, core.ValidationError{
				Code:    "RAGGED_LAYOUT",
				Message: fmt.Sprintf("row %d has %d cells, want %d", row, len(line), width),
			}
		}
		for col := 0; col < width; col++ {
			c := line[col]
			tile, ok := TileForLetter(c)
			if !ok {
				return nil, core.ValidationError{
					Code:    "UNKNOWN_LETTER",
					Message: fmt.Sprintf("unknown letter %q at (%d,%d)", c, row, col),
				}
			}
			if err := g.Set(row, col, tile); err != nil {
				return nil, err
			}

			switch c {
			case LetterAvatar:
				b.avatars = append(b.avatars, core.Placement{Row: row, Col: col})
			case LetterAutonomous:
				b.autonomous = append(b.autonomous, core.Placement{Row: row, Col: col})
			}
		}
	}
	return b, nil
}
