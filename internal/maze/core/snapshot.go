package core

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Hash returns a hash of the grid contents, occupants included.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%dx%d;", g.rows, g.cols)
	for _, t := range g.tiles {
		fmt.Fprintf(h, "%d:%d:%d:%d:%d,", t.Kind, t.Item.Kind, t.Item.Color, t.Door, t.Occupant)
	}
	return h.Sum64()
}

// Snapshot returns a hash representing the current state. Two games that
// applied the same steps to the same level hash equal.
func (s *GameState) Snapshot() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "G:%d;", s.grid.Hash())

	fmt.Fprintf(h, "A:%d:%d:%v:", s.avatar.Row, s.avatar.Col, s.avatar.Alive)
	for _, k := range s.avatar.Keys {
		fmt.Fprintf(h, "%d,", k)
	}

	fmt.Fprintf(h, ";E:")
	for _, e := range s.autonomous {
		fmt.Fprintf(h, "%d:%d:%d,", e.ID, e.Row, e.Col)
	}

	fmt.Fprintf(h, ";T:%d:%d:%d;S:%d", s.treasureInitial, s.treasureRemaining, s.treasureCollected, s.status)

	return h.Sum64()
}

// String dumps the board one row per line, cells separated by '|'.
// Occupants are drawn as H (avatar) and U (autonomous) over the tile.
func (s *GameState) String() string {
	var b strings.Builder
	for row := 0; row < s.grid.rows; row++ {
		for col := 0; col < s.grid.cols; col++ {
			if col > 0 {
				b.WriteByte('|')
			}
			b.WriteByte(s.letterAt(row, col))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *GameState) letterAt(row, col int) byte {
	t := s.grid.at(row, col)
	switch {
	case t.Occupant == AvatarID:
		return 'H'
	case t.Occupied():
		return 'U'
	default:
		return t.Letter()
	}
}
