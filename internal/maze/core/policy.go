package core

import "math/rand"

// MoveContext is what a policy sees when asked for a move.
// Attempt counts rejected requests for this entity in the current turn,
// starting at 0.
type MoveContext struct {
	ID      EntityID
	Row     int
	Col     int
	Attempt int
}

// MovePolicy chooses the next direction for an autonomous entity.
// Policies must eventually return DirNone when their moves keep failing.
type MovePolicy func(ctx MoveContext) Dir

// RandomWalk picks a cardinal direction or DirNone.
// The four directions are equally likely; "no move" comes up one time in nine.
func RandomWalk(rng *rand.Rand) MovePolicy {
	return func(MoveContext) Dir {
		switch n := rng.Intn(9); {
		case n < 2:
			return DirUp
		case n < 4:
			return DirLeft
		case n < 6:
			return DirRight
		case n < 8:
			return DirDown
		default:
			return DirNone
		}
	}
}

// Still never moves.
func Still() MovePolicy {
	return func(MoveContext) Dir {
		return DirNone
	}
}

// Patrol walks the path in a loop. A blocked step is retried as a wait,
// so the entity resumes the path on the next turn.
func Patrol(path []Dir) MovePolicy {
	steps := append([]Dir(nil), path...)
	next := 0
	return func(ctx MoveContext) Dir {
		if len(steps) == 0 || ctx.Attempt > 0 {
			return DirNone
		}
		d := steps[next]
		next = (next + 1) % len(steps)
		return d
	}
}

// Scripted plays dirs once, one per turn, and then stays put.
func Scripted(dirs []Dir) MovePolicy {
	steps := append([]Dir(nil), dirs...)
	next := 0
	return func(ctx MoveContext) Dir {
		if ctx.Attempt > 0 || next >= len(steps) {
			return DirNone
		}
		d := steps[next]
		next++
		return d
	}
}
