// Package core provides the turn engine for the maze game.
// This package is UI-agnostic and deterministic: all randomness comes from
// move policies supplied by the caller.
package core

import "strings"

// Dir represents a requested move direction. DirNone is the "no move" sentinel.
type Dir uint8

const (
	DirNone Dir = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Cardinal lists the four movement directions in a stable order.
var Cardinal = []Dir{DirUp, DirDown, DirLeft, DirRight}

// Valid reports whether d is one of the defined values (including DirNone).
func (d Dir) Valid() bool {
	return d <= DirRight
}

// IsCardinal reports whether d is an actual movement direction.
func (d Dir) IsCardinal() bool {
	return d >= DirUp && d <= DirRight
}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirNone:
		return "None"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Letter returns the single-letter code used in recordings and patrol paths.
func (d Dir) Letter() byte {
	switch d {
	case DirUp:
		return 'U'
	case DirDown:
		return 'D'
	case DirLeft:
		return 'L'
	case DirRight:
		return 'R'
	default:
		return 'N'
	}
}

// Delta returns the (drow, dcol) offset for one step in this direction.
// Up decreases the row, Down increases it.
func (d Dir) Delta() (drow, dcol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// ParseDir parses a direction name ("up", "left", "noMove", ...) or its letter.
func ParseDir(s string) (Dir, bool) {
	switch strings.ToLower(s) {
	case "u", "up":
		return DirUp, true
	case "d", "down":
		return DirDown, true
	case "l", "left":
		return DirLeft, true
	case "r", "right":
		return DirRight, true
	case "n", "none", "nomove":
		return DirNone, true
	default:
		return DirNone, false
	}
}

// ParsePath parses a string of direction letters such as "UULRN".
func ParsePath(s string) ([]Dir, bool) {
	path := make([]Dir, 0, len(s))
	for _, r := range s {
		d, ok := ParseDir(string(r))
		if !ok {
			return nil, false
		}
		path = append(path, d)
	}
	return path, true
}

// KeyColor identifies a key and the doors it opens. The zero value is invalid.
type KeyColor uint8

const (
	ColorRed KeyColor = iota + 1
	ColorBlue
	ColorGreen
	ColorYellow
)

// Valid reports whether c is one of the four key colors.
func (c KeyColor) Valid() bool {
	return c >= ColorRed && c <= ColorYellow
}

// String returns the color name.
func (c KeyColor) String() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorBlue:
		return "Blue"
	case ColorGreen:
		return "Green"
	case ColorYellow:
		return "Yellow"
	default:
		return "Invalid"
	}
}

// ItemKind is the kind of a pickup lying on a free tile.
type ItemKind uint8

const (
	ItemNone ItemKind = iota
	ItemKey
	ItemTreasure
	ItemExitBarrier
)

// Item is an immutable pickup. The zero value means "no item".
type Item struct {
	Kind  ItemKind
	Color KeyColor // Valid only for ItemKey
}

// NoItem returns the absent item.
func NoItem() Item {
	return Item{}
}

// KeyItem returns a key of the given color.
func KeyItem(c KeyColor) Item {
	return Item{Kind: ItemKey, Color: c}
}

// TreasureItem returns a treasure chip.
func TreasureItem() Item {
	return Item{Kind: ItemTreasure}
}

// ExitBarrierItem returns the barrier that blocks the exit while treasure remains.
func ExitBarrierItem() Item {
	return Item{Kind: ItemExitBarrier}
}

// IsNone reports whether the item is absent.
func (i Item) IsNone() bool {
	return i.Kind == ItemNone
}

// Valid reports whether the item is well formed.
func (i Item) Valid() bool {
	switch i.Kind {
	case ItemNone, ItemTreasure, ItemExitBarrier:
		return i.Color == 0
	case ItemKey:
		return i.Color.Valid()
	default:
		return false
	}
}

// Letter returns the level-file letter for the item.
func (i Item) Letter() byte {
	switch i.Kind {
	case ItemKey:
		switch i.Color {
		case ColorRed:
			return 'r'
		case ColorBlue:
			return 'b'
		case ColorGreen:
			return 'g'
		case ColorYellow:
			return 'y'
		}
	case ItemTreasure:
		return 'C'
	case ItemExitBarrier:
		return 'X'
	}
	return ' '
}

// String returns a readable item name.
func (i Item) String() string {
	switch i.Kind {
	case ItemNone:
		return "None"
	case ItemKey:
		return "Key" + i.Color.String()
	case ItemTreasure:
		return "Treasure"
	case ItemExitBarrier:
		return "ExitBarrier"
	default:
		return "Unknown"
	}
}
