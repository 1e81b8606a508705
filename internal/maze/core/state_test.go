package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameStatePreconditions(t *testing.T) {
	still := Still()
	g, _, _ := parseBoard(t,
		"W.C",
		"R.I",
		"S..",
	)

	tests := []struct {
		name     string
		grid     *Grid
		avatar   Placement
		entities []AutonomousSpec
		code     string
	}{
		{"nil grid", nil, Placement{}, nil, "EMPTY_GRID"},
		{"negative avatar", g, Placement{Row: -1, Col: 0}, nil, "NEGATIVE_COORD"},
		{"avatar off board", g, Placement{Row: 3, Col: 0}, nil, "OUT_OF_BOUNDS"},
		{"avatar on wall", g, Placement{Row: 0, Col: 0}, nil, "AVATAR_TILE"},
		{"avatar on door", g, Placement{Row: 1, Col: 0}, nil, "AVATAR_TILE"},
		{"avatar on item", g, Placement{Row: 0, Col: 2}, nil, "AVATAR_TILE"},
		{"nil policy", g, Placement{Row: 1, Col: 1},
			[]AutonomousSpec{{Row: 2, Col: 2}}, "NIL_POLICY"},
		{"entity on info", g, Placement{Row: 1, Col: 1},
			[]AutonomousSpec{{Row: 1, Col: 2, Policy: still}}, "ENTITY_TILE"},
		{"entity on avatar", g, Placement{Row: 1, Col: 1},
			[]AutonomousSpec{{Row: 1, Col: 1, Policy: still}}, "SHARED_CELL"},
		{"entities share", g, Placement{Row: 1, Col: 1},
			[]AutonomousSpec{{Row: 2, Col: 2, Policy: still}, {Row: 2, Col: 2, Policy: still}}, "SHARED_CELL"},
		{"entity off board", g, Placement{Row: 1, Col: 1},
			[]AutonomousSpec{{Row: 0, Col: 7, Policy: still}}, "OUT_OF_BOUNDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewGameState(tt.grid, tt.avatar, tt.entities)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, ErrPrecondition))
			assert.Equal(t, tt.code, errCode(err))
		})
	}
}

func TestNewGameStateRejectsMalformedTiles(t *testing.T) {
	g := MustGrid([][]Tile{{Free(), {Kind: TileLockedDoor}}})
	_, err := NewGameState(g, Placement{}, nil)
	assert.Equal(t, "INVALID_TILE", errCode(err))

	g = MustGrid([][]Tile{{Free(), {Kind: TileFree, Occupant: 5}}})
	_, err = NewGameState(g, Placement{}, nil)
	assert.Equal(t, "PREOCCUPIED", errCode(err))
}

func TestNewGameStateCopiesGrid(t *testing.T) {
	g, avatar, _ := parseBoard(t, "H.C")
	s, err := NewGameState(g, avatar, nil)
	require.NoError(t, err)

	require.NoError(t, g.Set(0, 1, Wall()))
	out, err := s.AttemptMove(DirRight)
	require.NoError(t, err)
	assert.True(t, out.Moved)

	tile, err := g.Get(0, 0)
	require.NoError(t, err)
	assert.False(t, tile.Occupied(), "caller grid never sees occupants")
}

func TestNewGameStateInitialState(t *testing.T) {
	s := newGame(t, []MovePolicy{Still(), Still()},
		"U.C",
		"H.U",
		"C.E",
	)

	assert.Equal(t, 3, s.Width())
	assert.Equal(t, 3, s.Height())
	assert.Equal(t, 2, s.TreasureInitial())
	assert.Equal(t, 2, s.TreasureRemaining())
	assert.Zero(t, s.TreasureCollected())
	assert.Equal(t, StatusActive, s.Status())
	assert.True(t, s.AvatarAlive())
	assert.False(t, s.LevelFinished())
	assert.Equal(t, Outcome{AvatarAlive: true, Status: StatusActive}, s.LastOutcome())

	a := s.Avatar()
	assert.Equal(t, AvatarID, a.ID)
	assert.Equal(t, 1, a.Row)
	assert.Equal(t, 0, a.Col)

	views := s.Autonomous()
	require.Len(t, views, 2)
	assert.Equal(t, EntityID(2), views[0].ID)
	assert.Equal(t, EntityID(3), views[1].ID)
	assert.Equal(t, 1, views[1].Row)
	assert.Equal(t, 2, views[1].Col)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := newGame(t, nil, "Hr.")
	_, err := s.AttemptMove(DirRight)
	require.NoError(t, err)

	a := s.Avatar()
	a.Keys[0] = ColorBlue
	assert.True(t, s.Avatar().HasKey(ColorRed))

	g := s.Grid()
	require.NoError(t, g.Set(0, 2, Wall()))
	out, err := s.AttemptMove(DirRight)
	require.NoError(t, err)
	assert.True(t, out.Moved)
}

func TestLastOutcome(t *testing.T) {
	s := newGame(t, nil, "HCW")

	out, err := s.AttemptMove(DirRight)
	require.NoError(t, err)
	assert.Equal(t, out, s.LastOutcome())
	assert.True(t, s.LastOutcome().TreasureCollected)

	_, err = s.AttemptMove(DirRight)
	require.NoError(t, err)
	assert.False(t, s.LastOutcome().Moved)
	assert.False(t, s.LastOutcome().TreasureCollected)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "dead", StatusDead.String())
	assert.Equal(t, "finished", StatusFinished.String())
	assert.False(t, StatusActive.Terminal())
	assert.True(t, StatusDead.Terminal())
	assert.True(t, StatusFinished.Terminal())
}
