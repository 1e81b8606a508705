package core

import "slices"

// AttemptMove plays one full turn: the avatar moves in dir and, only if that
// succeeds, every autonomous entity moves once in id order.
//
// A refused move (wall, locked door, occupied cell, closed exit barrier,
// board edge) returns Outcome.Moved == false and a nil error, and changes
// nothing. Errors are reserved for bad arguments and engine bugs.
func (s *GameState) AttemptMove(dir Dir) (Outcome, error) {
	if !dir.IsCardinal() {
		return Outcome{}, preconditionf("INVALID_DIRECTION", "avatar direction must be Up, Down, Left or Right, got %d", dir)
	}
	if s.status.Terminal() {
		return s.statusOutcome(), nil
	}

	cp := s.checkpoint()
	out, err := s.moveAvatar(dir)
	if err != nil {
		s.rollback(cp)
		return Outcome{}, err
	}
	if out.Moved {
		if err := s.runAutonomous(); err != nil {
			s.rollback(cp)
			return Outcome{}, err
		}
		// An entity may have landed on the avatar.
		out.AvatarAlive = s.avatar.Alive
		out.Status = s.status
	}
	s.last = out

	if err := s.CheckInvariants(); err != nil {
		s.rollback(cp)
		return Outcome{}, err
	}
	return out, nil
}

// MoveByTarget moves the avatar onto an orthogonally adjacent cell.
// Diagonal, distant, same-cell and off-board targets are refused.
// Only the avatar moves; use DirectionTo with AttemptMove for a full turn.
func (s *GameState) MoveByTarget(row, col int) (bool, error) {
	if row < 0 || col < 0 {
		return false, preconditionf("NEGATIVE_COORD", "target (%d,%d) is negative", row, col)
	}
	dir, ok := s.DirectionTo(row, col)
	if !ok || s.status.Terminal() {
		return false, nil
	}

	cp := s.checkpoint()
	out, err := s.moveAvatar(dir)
	if err != nil {
		s.rollback(cp)
		return false, err
	}
	s.last = out

	if err := s.CheckInvariants(); err != nil {
		s.rollback(cp)
		return false, err
	}
	return out.Moved, nil
}

// DirectionTo translates a target cell into the direction of a single step
// from the avatar. ok is false unless the target is exactly one orthogonal
// step away and on the board.
func (s *GameState) DirectionTo(row, col int) (dir Dir, ok bool) {
	if !s.grid.InBounds(row, col) {
		return DirNone, false
	}
	dr, dc := row-s.avatar.Row, col-s.avatar.Col
	switch {
	case dr == -1 && dc == 0:
		return DirUp, true
	case dr == 1 && dc == 0:
		return DirDown, true
	case dr == 0 && dc == -1:
		return DirLeft, true
	case dr == 0 && dc == 1:
		return DirRight, true
	default:
		return DirNone, false
	}
}

// ExecuteMove resolves a single move for one entity without running a turn.
// Replay drivers use it to re-apply a recorded step log. DirNone changes
// nothing but the history; it is accepted for autonomous entities at any
// time and for the avatar only while the game is active.
func (s *GameState) ExecuteMove(dir Dir, id EntityID) (bool, error) {
	if !dir.Valid() {
		return false, preconditionf("INVALID_DIRECTION", "unknown direction %d", dir)
	}

	cp := s.checkpoint()
	var moved bool
	switch {
	case id == AvatarID:
		out, err := s.moveAvatar(dir)
		if err != nil {
			s.rollback(cp)
			return false, err
		}
		if !s.status.Terminal() || out.Moved {
			s.last = out
		}
		moved = out.Moved
	case s.entityIndex(id) >= 0:
		moved = s.moveAutonomous(s.entityIndex(id), dir)
	default:
		return false, preconditionf("UNKNOWN_ENTITY", "no entity with id %d", id)
	}

	if err := s.CheckInvariants(); err != nil {
		s.rollback(cp)
		return false, err
	}
	return moved, nil
}

// moveAvatar validates and applies one avatar move. Nothing is written
// until every rule has accepted the move.
func (s *GameState) moveAvatar(dir Dir) (Outcome, error) {
	out := s.statusOutcome()
	if s.status.Terminal() {
		return out, nil
	}
	if dir == DirNone {
		out.Moved = true
		s.record(AvatarID, dir)
		return out, nil
	}

	dr, dc := dir.Delta()
	row, col := s.avatar.Row+dr, s.avatar.Col+dc
	if !s.grid.InBounds(row, col) {
		return out, nil
	}
	origin := s.grid.at(s.avatar.Row, s.avatar.Col)
	dest := s.grid.at(row, col)

	// The avatar is on origin, so any occupant here is an autonomous entity.
	if dest.Occupied() {
		return out, nil
	}

	next := *dest
	switch dest.Kind {
	case TileWall:
		return out, nil
	case TileFree:
		switch dest.Item.Kind {
		case ItemExitBarrier:
			if s.treasureRemaining > 0 {
				return out, nil
			}
		case ItemKey:
			out.KeyCollected = true
		case ItemTreasure:
			out.TreasureCollected = true
		}
		next.Item = NoItem()
	case TileLockedDoor:
		if !s.avatar.HasKey(dest.Door) {
			return out, nil
		}
		next = Free()
	case TileExit:
		if s.treasureRemaining != 0 {
			return out, invariantf("EXIT_WITH_TREASURE", "exit at (%d,%d) reached with %d treasure remaining",
				row, col, s.treasureRemaining)
		}
		out.LevelFinished = true
	case TileInfo:
		out.OnInfoTile = true
	case TileSingleUse:
	default:
		return out, invariantf("INVALID_TILE", "unknown tile kind %d at (%d,%d)", dest.Kind, row, col)
	}

	if out.KeyCollected {
		s.avatar.addKey(dest.Item.Color)
	}
	if out.TreasureCollected {
		s.treasureCollected++
		s.treasureRemaining--
	}
	if dest.Kind == TileLockedDoor {
		s.avatar.removeKey(dest.Door)
	}

	if origin.Kind == TileSingleUse {
		*origin = Wall()
	} else {
		origin.Occupant = NoEntity
	}
	next.Occupant = AvatarID
	*dest = next
	s.avatar.Row, s.avatar.Col = row, col

	if out.LevelFinished {
		s.status = StatusFinished
		out.Status = s.status
	}
	out.Moved = true
	s.record(AvatarID, dir)
	return out, nil
}

// moveAutonomous applies one move for the entity at index i. Entities only
// walk on empty free tiles; walking onto the avatar kills it.
func (s *GameState) moveAutonomous(i int, dir Dir) bool {
	e := &s.autonomous[i]
	if dir == DirNone {
		s.record(e.ID, dir)
		return true
	}

	dr, dc := dir.Delta()
	row, col := e.Row+dr, e.Col+dc
	if !s.grid.InBounds(row, col) {
		return false
	}
	dest := s.grid.at(row, col)
	if dest.Kind != TileFree || !dest.Item.IsNone() {
		return false
	}

	switch dest.Occupant {
	case NoEntity:
	case AvatarID:
		s.avatar.Alive = false
		if s.status == StatusActive {
			s.status = StatusDead
		}
	default:
		return false
	}

	s.grid.at(e.Row, e.Col).Occupant = NoEntity
	dest.Occupant = e.ID
	e.Row, e.Col = row, col
	s.record(e.ID, dir)
	return true
}

// runAutonomous gives every entity one successful move, asking its policy
// again after each refusal.
func (s *GameState) runAutonomous() error {
	for i := range s.autonomous {
		for attempt := 0; ; attempt++ {
			e := s.autonomous[i]
			dir := DirNone
			if attempt < MaxPolicyAttempts {
				dir = e.Policy(MoveContext{ID: e.ID, Row: e.Row, Col: e.Col, Attempt: attempt})
			}
			if !dir.Valid() {
				return preconditionf("INVALID_DIRECTION", "policy of entity %d returned unknown direction %d", e.ID, dir)
			}
			if s.moveAutonomous(i, dir) {
				break
			}
		}
	}
	return nil
}

// checkpoint is the mutable part of a game, taken before a move so that a
// move ending in an error leaves the game untouched. Policy internals
// (script positions, rng draws) are not part of it.
type checkpoint struct {
	grid              *Grid
	avatar            Avatar
	autonomous        []Autonomous
	treasureRemaining int
	treasureCollected int
	status            Status
	last              Outcome
	steps             int
}

func (s *GameState) checkpoint() checkpoint {
	return checkpoint{
		grid:              s.grid.Clone(),
		avatar:            s.avatar.clone(),
		autonomous:        slices.Clone(s.autonomous),
		treasureRemaining: s.treasureRemaining,
		treasureCollected: s.treasureCollected,
		status:            s.status,
		last:              s.last,
		steps:             len(s.steps),
	}
}

func (s *GameState) rollback(cp checkpoint) {
	s.grid = cp.grid
	s.avatar = cp.avatar
	s.autonomous = cp.autonomous
	s.treasureRemaining = cp.treasureRemaining
	s.treasureCollected = cp.treasureCollected
	s.status = cp.status
	s.last = cp.last
	s.steps = s.steps[:cp.steps]
}
