package core

import "github.com/zyedidia/generic/mapset"

// CheckInvariants verifies the board against the entity arena and the
// treasure counters. Every mutating operation runs it before returning.
func (s *GameState) CheckInvariants() error {
	avatarCells := 0
	seen := mapset.New[EntityID]()
	var bad error

	s.grid.Each(func(row, col int, t Tile) {
		if bad != nil {
			return
		}
		if !t.Valid() {
			bad = invariantf("INVALID_TILE", "malformed %s tile at (%d,%d)", t.Kind, row, col)
			return
		}
		switch {
		case t.Occupant == NoEntity:
		case t.Occupant == AvatarID:
			avatarCells++
			if row != s.avatar.Row || col != s.avatar.Col {
				bad = invariantf("AVATAR_DESYNC", "avatar cell (%d,%d) but avatar at (%d,%d)",
					row, col, s.avatar.Row, s.avatar.Col)
				return
			}
			if t.Kind == TileWall || t.Kind == TileLockedDoor {
				bad = invariantf("AVATAR_ON_BLOCKED", "avatar stands on %s at (%d,%d)", t.Kind, row, col)
			}
		default:
			i := s.entityIndex(t.Occupant)
			if i < 0 || seen.Has(t.Occupant) {
				bad = invariantf("UNKNOWN_OCCUPANT", "unexpected occupant %d at (%d,%d)", t.Occupant, row, col)
				return
			}
			seen.Put(t.Occupant)
			e := s.autonomous[i]
			if e.Row != row || e.Col != col {
				bad = invariantf("ENTITY_DESYNC", "entity %d cell (%d,%d) but entity at (%d,%d)",
					e.ID, row, col, e.Row, e.Col)
			}
		}
	})
	if bad != nil {
		return bad
	}

	want := 1
	if !s.avatar.Alive {
		want = 0
	}
	if avatarCells != want {
		return invariantf("AVATAR_COUNT", "%d avatar cells, want %d", avatarCells, want)
	}
	if seen.Size() != s.entityNum || len(s.autonomous) != s.entityNum {
		return invariantf("ENTITY_COUNT", "%d autonomous cells, want %d", seen.Size(), s.entityNum)
	}
	if s.treasureRemaining < 0 || s.treasureCollected < 0 {
		return invariantf("NEGATIVE_TREASURE", "remaining %d, collected %d", s.treasureRemaining, s.treasureCollected)
	}
	if s.treasureInitial != s.treasureCollected+s.treasureRemaining {
		return invariantf("TREASURE_CONSERVATION", "initial %d != collected %d + remaining %d",
			s.treasureInitial, s.treasureCollected, s.treasureRemaining)
	}
	onBoard := s.grid.Count(func(t Tile) bool {
		return t.Kind == TileFree && t.Item.Kind == ItemTreasure
	})
	if onBoard != s.treasureRemaining {
		return invariantf("TREASURE_CONSERVATION", "%d treasure on board, counter says %d", onBoard, s.treasureRemaining)
	}
	if s.status == StatusDead && s.avatar.Alive {
		return invariantf("STATUS_DESYNC", "status dead but avatar alive")
	}
	return nil
}
