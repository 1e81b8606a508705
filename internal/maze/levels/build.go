package levels

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

// Build validates the level and creates a fresh game from it.
// All randomized policies draw from one source seeded with seed, in entity
// order, so the same seed and the same avatar moves replay identically.
func (l *Level) Build(seed int64) (*core.GameState, error) {
	c, err := l.compile()
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.ID, err)
	}

	rng := rand.New(rand.NewSource(seed))
	specs := make([]core.AutonomousSpec, len(c.entities))
	for i, e := range c.entities {
		policy, err := registry.Create(e.Policy, registry.Params{Path: e.Path, Rng: rng})
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", l.ID, err)
		}
		specs[i] = core.AutonomousSpec{
			Row:    e.Row,
			Col:    e.Col,
			Policy: policy,
			Name:   e.Policy,
		}
	}

	gs, err := core.NewGameState(c.board.grid, c.avatar, specs)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.ID, err)
	}
	return gs, nil
}

// Grid decodes the layout into a board without any entities.
func (l *Level) Grid() (*core.Grid, error) {
	b, err := decodeLayout(l.Layout)
	if err != nil {
		return nil, err
	}
	return b.grid, nil
}

// WithPolicy returns a copy of the level in which every autonomous entity
// uses the named policy. Placements are unchanged. An empty name returns the
// level as is.
func (l *Level) WithPolicy(name string) Level {
	out := *l
	if name == "" {
		return out
	}
	out.Policy = name
	out.Entities = make([]Entity, len(l.Entities))
	for i, e := range l.Entities {
		e.Policy = name
		out.Entities[i] = e
	}
	return out
}
