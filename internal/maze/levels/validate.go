package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/zyedidia/generic/mapset"
)

// DefaultPolicy drives U cells when a level names no policy.
const DefaultPolicy = registry.Random

// placedEntity is an autonomous entity resolved from the layout and the
// entity overrides.
type placedEntity struct {
	core.Placement
	Policy string
	Path   []core.Dir
}

// compiled is a level decoded into engine inputs.
type compiled struct {
	board    *board
	avatar   core.Placement
	entities []placedEntity
}

// Validate performs comprehensive validation of a level.
// Checks:
//   - Layout is rectangular and uses known letters
//   - Exactly one avatar, at least one exit
//   - Entity overrides hit U cells or empty free cells, with known policies
//   - While treasure remains, no exit is reachable without crossing a barrier
func (l *Level) Validate() error {
	_, err := l.compile()
	return err
}

func (l *Level) compile() (*compiled, error) {
	if l.ID == "" {
		return nil, core.ValidationError{Code: "MISSING_ID", Message: "level has no id"}
	}

	b, err := decodeLayout(l.Layout)
	if err != nil {
		return nil, err
	}

	if len(b.avatars) != 1 {
		return nil, core.ValidationError{
			Code:    "AVATAR_COUNT",
			Message: fmt.Sprintf("layout has %d avatars, want exactly 1", len(b.avatars)),
		}
	}
	c := &compiled{board: b, avatar: b.avatars[0]}

	exits := b.grid.Count(func(t core.Tile) bool { return t.Kind == core.TileExit })
	if exits == 0 {
		return nil, core.ValidationError{Code: "NO_EXIT", Message: "layout has no exit"}
	}

	if c.entities, err = l.resolveEntities(b); err != nil {
		return nil, err
	}

	if err := validateExitGuard(b.grid, c.avatar); err != nil {
		return nil, err
	}

	return c, nil
}

func (l *Level) resolveEntities(b *board) ([]placedEntity, error) {
	defaultPolicy := l.Policy
	if defaultPolicy == "" {
		defaultPolicy = DefaultPolicy
	}

	entities := make([]placedEntity, len(b.autonomous))
	byCell := make(map[core.Placement]int, len(b.autonomous))
	for i, p := range b.autonomous {
		entities[i] = placedEntity{Placement: p, Policy: defaultPolicy}
		byCell[p] = i
	}

	configured := mapset.New[core.Placement]()
	for _, e := range l.Entities {
		p := core.Placement{Row: e.Row, Col: e.Col}
		if configured.Has(p) {
			return nil, core.ValidationError{
				Code:    "BAD_ENTITY",
				Message: fmt.Sprintf("entity at (%d,%d) configured twice", e.Row, e.Col),
			}
		}
		configured.Put(p)

		i, ok := byCell[p]
		if !ok {
			tile, err := b.grid.Get(e.Row, e.Col)
			if err != nil || tile.Kind != core.TileFree || !tile.Item.IsNone() || p == b.avatars[0] {
				return nil, core.ValidationError{
					Code:    "BAD_ENTITY",
					Message: fmt.Sprintf("entity at (%d,%d) must stand on an empty free cell", e.Row, e.Col),
				}
			}
			entities = append(entities, placedEntity{Placement: p, Policy: defaultPolicy})
			i = len(entities) - 1
		}

		if e.Policy != "" {
			entities[i].Policy = e.Policy
		}
		path, ok := core.ParsePath(e.Path)
		if !ok {
			return nil, core.ValidationError{
				Code:    "BAD_PATH",
				Message: fmt.Sprintf("entity at (%d,%d) has invalid path %q", e.Row, e.Col, e.Path),
			}
		}
		entities[i].Path = path
	}

	for _, e := range entities {
		if !registry.Exists(e.Policy) {
			return nil, core.ValidationError{
				Code:    "UNKNOWN_POLICY",
				Message: fmt.Sprintf("entity at (%d,%d) uses unknown policy %q", e.Row, e.Col, e.Policy),
			}
		}
		if e.Policy == registry.Patrol && len(e.Path) == 0 {
			return nil, core.ValidationError{
				Code:    "BAD_PATH",
				Message: fmt.Sprintf("patrol entity at (%d,%d) needs a path", e.Row, e.Col),
			}
		}
	}

	return entities, nil
}

// validateExitGuard checks that every exit is behind an exit barrier when
// the level has treasure. Entering an exit with treasure left is an engine
// invariant failure, so such levels must never load.
func validateExitGuard(g *core.Grid, from core.Placement) error {
	treasure := g.Count(func(t core.Tile) bool {
		return t.Kind == core.TileFree && t.Item.Kind == core.ItemTreasure
	})
	if treasure == 0 {
		return nil
	}

	if exit, ok := findReachable(g, from, isExit, isBarrierOrWall); ok {
		return core.ValidationError{
			Code:    "EXIT_UNGUARDED",
			Message: fmt.Sprintf("exit at (%d,%d) is reachable without crossing an exit barrier", exit.Row, exit.Col),
		}
	}
	return nil
}

func isExit(t core.Tile) bool {
	return t.Kind == core.TileExit
}

func isBarrierOrWall(t core.Tile) bool {
	return t.Kind == core.TileWall || (t.Kind == core.TileFree && t.Item.Kind == core.ItemExitBarrier)
}

// findReachable flood-fills from start and returns the first cell matching
// goal. Doors count as passable: keys may be found along the way.
func findReachable(g *core.Grid, start core.Placement, goal, blocked func(core.Tile) bool) (core.Placement, bool) {
	visited := mapset.New[core.Placement]()
	visited.Put(start)
	queue := []core.Placement{start}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		tile, _ := g.Get(p.Row, p.Col)
		if goal(tile) {
			return p, true
		}

		for _, d := range core.Cardinal {
			dr, dc := d.Delta()
			next := core.Placement{Row: p.Row + dr, Col: p.Col + dc}
			t, err := g.Get(next.Row, next.Col)
			if err != nil || blocked(t) || visited.Has(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}

	return core.Placement{}, false
}
