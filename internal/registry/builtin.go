package registry

import (
	"errors"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
)

// Built-in policy names.
const (
	Random   = "random"
	Still    = "still"
	Patrol   = "patrol"
	Scripted = "scripted"
)

func init() {
	Register(Random, "wanders in a random direction each turn", func(p Params) (core.MovePolicy, error) {
		if p.Rng == nil {
			return nil, errors.New("needs a random source")
		}
		return core.RandomWalk(p.Rng), nil
	})

	Register(Still, "never moves", func(Params) (core.MovePolicy, error) {
		return core.Still(), nil
	})

	Register(Patrol, "walks its path in a loop, waiting when blocked", func(p Params) (core.MovePolicy, error) {
		if len(p.Path) == 0 {
			return nil, errors.New("needs a non-empty path")
		}
		return core.Patrol(p.Path), nil
	})

	Register(Scripted, "plays its path once, then stays put", func(p Params) (core.MovePolicy, error) {
		return core.Scripted(p.Path), nil
	})
}
