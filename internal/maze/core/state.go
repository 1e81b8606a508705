package core

// Status is the state-machine position of a game.
type Status uint8

const (
	StatusActive Status = iota
	StatusDead
	StatusFinished
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDead:
		return "dead"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further avatar movement is possible.
func (s Status) Terminal() bool {
	return s == StatusDead || s == StatusFinished
}

// MaxPolicyAttempts bounds how often an entity's policy is consulted in one
// turn. After that the entity stays put.
const MaxPolicyAttempts = 16

// Outcome is the result of one avatar move. The per-turn flags are fresh on
// every call, so a stale value can never leak into the next turn.
type Outcome struct {
	Moved             bool
	TreasureCollected bool
	KeyCollected      bool
	OnInfoTile        bool
	AvatarAlive       bool
	LevelFinished     bool
	Status            Status
}

// Step is one applied move in the history log.
type Step struct {
	Entity EntityID
	Dir    Dir
}

// GameState owns the grid, the avatar and the autonomous entities, and applies
// turns. It is not safe for concurrent use; callers serialize turns.
type GameState struct {
	grid       *Grid
	avatar     Avatar
	autonomous []Autonomous // Turn order == id order
	entityNum  int          // Autonomous count captured at construction

	treasureInitial   int
	treasureRemaining int
	treasureCollected int

	status Status
	last   Outcome
	steps  []Step
}

// NewGameState validates the loader output and builds a game.
// The grid is copied; later changes to it are not observed.
func NewGameState(grid *Grid, avatar Placement, autonomous []AutonomousSpec) (*GameState, error) {
	if grid == nil || grid.rows <= 0 || grid.cols <= 0 || len(grid.tiles) != grid.rows*grid.cols {
		return nil, preconditionf("EMPTY_GRID", "grid must be non-empty")
	}

	g := grid.Clone()
	var bad error
	g.Each(func(row, col int, t Tile) {
		switch {
		case bad != nil:
		case !t.Valid():
			bad = preconditionf("INVALID_TILE", "malformed %s tile at (%d,%d)", t.Kind, row, col)
		case t.Occupied():
			bad = preconditionf("PREOCCUPIED", "tile (%d,%d) already has occupant %d", row, col, t.Occupant)
		}
	})
	if bad != nil {
		return nil, bad
	}

	if err := checkPlacement(g, "avatar", avatar.Row, avatar.Col); err != nil {
		return nil, err
	}
	start := g.at(avatar.Row, avatar.Col)
	if !avatarCanStart(*start) {
		return nil, preconditionf("AVATAR_TILE", "avatar cannot start on %s tile at (%d,%d)", start.Kind, avatar.Row, avatar.Col)
	}
	start.Occupant = AvatarID

	s := &GameState{
		grid: g,
		avatar: Avatar{
			ID:    AvatarID,
			Row:   avatar.Row,
			Col:   avatar.Col,
			Alive: true,
		},
		autonomous: make([]Autonomous, 0, len(autonomous)),
		entityNum:  len(autonomous),
	}

	for i, spec := range autonomous {
		id := AvatarID + EntityID(i+1)
		if err := checkPlacement(g, "autonomous entity", spec.Row, spec.Col); err != nil {
			return nil, err
		}
		if spec.Policy == nil {
			return nil, preconditionf("NIL_POLICY", "autonomous entity %d has no move policy", id)
		}
		t := g.at(spec.Row, spec.Col)
		if t.Kind != TileFree || !t.Item.IsNone() {
			return nil, preconditionf("ENTITY_TILE", "autonomous entity %d must start on an empty free tile, got %s at (%d,%d)",
				id, t.Kind, spec.Row, spec.Col)
		}
		if t.Occupied() {
			return nil, preconditionf("SHARED_CELL", "autonomous entity %d shares (%d,%d) with entity %d",
				id, spec.Row, spec.Col, t.Occupant)
		}
		t.Occupant = id
		s.autonomous = append(s.autonomous, Autonomous{
			ID:     id,
			Row:    spec.Row,
			Col:    spec.Col,
			Name:   spec.Name,
			Policy: spec.Policy,
		})
	}

	s.treasureInitial = g.Count(func(t Tile) bool {
		return t.Kind == TileFree && t.Item.Kind == ItemTreasure
	})
	s.treasureRemaining = s.treasureInitial
	s.last = s.statusOutcome()

	if err := s.CheckInvariants(); err != nil {
		return nil, err
	}
	return s, nil
}

func checkPlacement(g *Grid, what string, row, col int) error {
	if row < 0 || col < 0 {
		return preconditionf("NEGATIVE_COORD", "%s placed at negative coordinate (%d,%d)", what, row, col)
	}
	if !g.InBounds(row, col) {
		return preconditionf("OUT_OF_BOUNDS", "%s placed at (%d,%d) outside %dx%d grid", what, row, col, g.rows, g.cols)
	}
	return nil
}

func avatarCanStart(t Tile) bool {
	switch t.Kind {
	case TileFree:
		return t.Item.IsNone()
	case TileSingleUse, TileInfo:
		return true
	default:
		return false
	}
}

// Grid returns a copy of the board. Later turns do not affect the copy.
func (s *GameState) Grid() *Grid {
	return s.grid.Clone()
}

// Width returns the board width.
func (s *GameState) Width() int {
	return s.grid.cols
}

// Height returns the board height.
func (s *GameState) Height() int {
	return s.grid.rows
}

// Tile returns the tile at (row, col).
func (s *GameState) Tile(row, col int) (Tile, error) {
	return s.grid.Get(row, col)
}

// Avatar returns a copy of the avatar.
func (s *GameState) Avatar() Avatar {
	return s.avatar.clone()
}

// Autonomous returns copies of the autonomous entities in turn order.
func (s *GameState) Autonomous() []AutonomousView {
	views := make([]AutonomousView, len(s.autonomous))
	for i, e := range s.autonomous {
		views[i] = AutonomousView{ID: e.ID, Row: e.Row, Col: e.Col, Name: e.Name}
	}
	return views
}

// TreasureInitial returns how much treasure the level started with.
func (s *GameState) TreasureInitial() int {
	return s.treasureInitial
}

// TreasureRemaining returns how much treasure is still on the board.
func (s *GameState) TreasureRemaining() int {
	return s.treasureRemaining
}

// TreasureCollected returns how much treasure the avatar picked up.
func (s *GameState) TreasureCollected() int {
	return s.treasureCollected
}

// Status returns the current state-machine status.
func (s *GameState) Status() Status {
	return s.status
}

// AvatarAlive reports whether the avatar is still on the board.
func (s *GameState) AvatarAlive() bool {
	return s.avatar.Alive
}

// LevelFinished reports whether the avatar reached the exit.
func (s *GameState) LevelFinished() bool {
	return s.status == StatusFinished
}

// LastOutcome returns the outcome of the most recent avatar move.
func (s *GameState) LastOutcome() Outcome {
	return s.last
}

// statusOutcome returns an Outcome carrying only the current status fields.
func (s *GameState) statusOutcome() Outcome {
	return Outcome{
		AvatarAlive:   s.avatar.Alive,
		LevelFinished: s.status == StatusFinished,
		Status:        s.status,
	}
}

// entityIndex returns the slice index of an autonomous entity, or -1.
func (s *GameState) entityIndex(id EntityID) int {
	i := int(id - AvatarID - 1)
	if i < 0 || i >= len(s.autonomous) {
		return -1
	}
	return i
}
