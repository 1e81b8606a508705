package core

import (
	"errors"
	"testing"
)

// parseBoard builds a grid from level letters. H marks the avatar and U an
// autonomous entity, both standing on a free tile.
func parseBoard(t *testing.T, rows ...string) (*Grid, Placement, []Placement) {
	t.Helper()
	tiles := make([][]Tile, len(rows))
	var avatar Placement
	var entities []Placement
	for r, line := range rows {
		for c := 0; c < len(line); c++ {
			var tile Tile
			switch line[c] {
			case 'W':
				tile = Wall()
			case '.', ' ', 'F':
				tile = Free()
			case 'H':
				tile = Free()
				avatar = Placement{Row: r, Col: c}
			case 'U':
				tile = Free()
				entities = append(entities, Placement{Row: r, Col: c})
			case 'I':
				tile = InfoField()
			case 'S':
				tile = SingleUse()
			case 'E':
				tile = Exit()
			case 'C':
				tile = FreeWith(TreasureItem())
			case 'X':
				tile = FreeWith(ExitBarrierItem())
			case 'R':
				tile = LockedDoor(ColorRed)
			case 'B':
				tile = LockedDoor(ColorBlue)
			case 'r':
				tile = FreeWith(KeyItem(ColorRed))
			case 'b':
				tile = FreeWith(KeyItem(ColorBlue))
			default:
				t.Fatalf("unknown board letter %q", line[c])
			}
			tiles[r] = append(tiles[r], tile)
		}
	}
	return MustGrid(tiles), avatar, entities
}

// newGame builds a game where every U entity uses the matching policy.
func newGame(t *testing.T, policies []MovePolicy, rows ...string) *GameState {
	t.Helper()
	g, avatar, places := parseBoard(t, rows...)
	if len(policies) != len(places) {
		t.Fatalf("board has %d entities, got %d policies", len(places), len(policies))
	}
	specs := make([]AutonomousSpec, len(places))
	for i, p := range places {
		specs[i] = AutonomousSpec{Row: p.Row, Col: p.Col, Policy: policies[i]}
	}
	s, err := NewGameState(g, avatar, specs)
	if err != nil {
		t.Fatalf("NewGameState: %v", err)
	}
	return s
}

func errCode(err error) string {
	var pe *PreconditionError
	if errors.As(err, &pe) {
		return pe.Code
	}
	var ie *InvariantError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}

func avatarCells(g *Grid) int {
	return g.Count(func(t Tile) bool { return t.Occupant == AvatarID })
}
