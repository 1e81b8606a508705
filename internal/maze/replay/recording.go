// Package replay records finished games and plays them back.
// A recording is the engine's ordered step log; playback re-applies it
// through GameState.ExecuteMove, so no policy or randomness is involved.
package replay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
	"github.com/vovakirdan/tui-maze/internal/maze/levels"
)

// ErrDiverged is returned when a recorded step is refused on playback.
var ErrDiverged = errors.New("replay: recording diverged")

// Recording is a captured game.
type Recording struct {
	ID        string
	LevelID   string
	Seed      int64
	Steps     []core.Step
	FinalHash uint64
	Finished  bool
	Dead      bool
	Turns     int
	Treasure  int
	CreatedAt time.Time
}

// Outcome returns a short result label.
func (r Recording) Outcome() string {
	switch {
	case r.Finished:
		return "finished"
	case r.Dead:
		return "dead"
	default:
		return "abandoned"
	}
}

// Capture builds a recording from the current state of a game.
func Capture(levelID string, seed int64, gs *core.GameState) Recording {
	return Recording{
		ID:        ulid.Make().String(),
		LevelID:   levelID,
		Seed:      seed,
		Steps:     gs.Steps(),
		FinalHash: gs.Snapshot(),
		Finished:  gs.LevelFinished(),
		Dead:      !gs.AvatarAlive(),
		Turns:     len(gs.AvatarMoves()),
		Treasure:  gs.TreasureCollected(),
		CreatedAt: time.Now().UTC(),
	}
}

// Apply re-applies steps to gs in order.
func Apply(gs *core.GameState, steps []core.Step) error {
	for i, st := range steps {
		if err := applyStep(gs, i, st); err != nil {
			return err
		}
	}
	return nil
}

func applyStep(gs *core.GameState, i int, st core.Step) error {
	moved, err := gs.ExecuteMove(st.Dir, st.Entity)
	if err != nil {
		return fmt.Errorf("replay: step %d: %w", i, err)
	}
	if !moved {
		return fmt.Errorf("%w: step %d (%s) was refused", ErrDiverged, i, formatStep(st))
	}
	return nil
}

// Verify rebuilds the level, applies the recording and compares the final
// state hash.
func Verify(rec Recording, lvl levels.Level) error {
	gs, err := lvl.Build(rec.Seed)
	if err != nil {
		return err
	}
	if err := Apply(gs, rec.Steps); err != nil {
		return err
	}
	if got := gs.Snapshot(); got != rec.FinalHash {
		return fmt.Errorf("%w: final hash %016x, recorded %016x", ErrDiverged, got, rec.FinalHash)
	}
	return nil
}

// EncodeSteps renders steps in the compact storage form, e.g. "H:U 2:L 3:N".
// The avatar is written as H, autonomous entities by id.
func EncodeSteps(steps []core.Step) string {
	parts := make([]string, len(steps))
	for i, st := range steps {
		parts[i] = formatStep(st)
	}
	return strings.Join(parts, " ")
}

// DecodeSteps parses the form written by EncodeSteps.
func DecodeSteps(s string) ([]core.Step, error) {
	fields := strings.Fields(s)
	steps := make([]core.Step, 0, len(fields))
	for i, f := range fields {
		who, dir, ok := strings.Cut(f, ":")
		if !ok {
			return nil, fmt.Errorf("replay: step %d: missing ':' in %q", i, f)
		}

		var id core.EntityID
		if who == "H" {
			id = core.AvatarID
		} else {
			n, err := strconv.Atoi(who)
			if err != nil || core.EntityID(n) <= core.AvatarID {
				return nil, fmt.Errorf("replay: step %d: bad entity %q", i, who)
			}
			id = core.EntityID(n)
		}

		d, ok := core.ParseDir(dir)
		if !ok {
			return nil, fmt.Errorf("replay: step %d: bad direction %q", i, dir)
		}
		steps = append(steps, core.Step{Entity: id, Dir: d})
	}
	return steps, nil
}

func formatStep(st core.Step) string {
	who := "H"
	if st.Entity != core.AvatarID {
		who = strconv.Itoa(int(st.Entity))
	}
	return who + ":" + string(st.Dir.Letter())
}
