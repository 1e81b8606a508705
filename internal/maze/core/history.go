package core

func (s *GameState) record(id EntityID, dir Dir) {
	s.steps = append(s.steps, Step{Entity: id, Dir: dir})
}

// Steps returns a copy of every applied move, in the order it was applied.
func (s *GameState) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// AvatarMoves returns the applied avatar moves in order.
func (s *GameState) AvatarMoves() []Dir {
	var moves []Dir
	for _, st := range s.steps {
		if st.Entity == AvatarID {
			moves = append(moves, st.Dir)
		}
	}
	return moves
}

// AutonomousMoves returns one move list per autonomous entity, in id order.
func (s *GameState) AutonomousMoves() [][]Dir {
	moves := make([][]Dir, len(s.autonomous))
	for _, st := range s.steps {
		if i := s.entityIndex(st.Entity); i >= 0 {
			moves[i] = append(moves[i], st.Dir)
		}
	}
	return moves
}

// ClearHistory forgets every recorded move. The board is left as is.
func (s *GameState) ClearHistory() {
	s.steps = nil
}
