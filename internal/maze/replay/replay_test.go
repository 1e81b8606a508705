package replay

import (
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
	"github.com/vovakirdan/tui-maze/internal/maze/levels"
)

func bugLevel() levels.Level {
	return levels.Level{
		ID:     "bugs",
		Policy: "random",
		Layout: []string{
			"WWWWWWWW",
			"WH..C..W",
			"W.U..U.W",
			"W...C..W",
			"WWWWWWXW",
			"WWWWWWEW",
		},
	}
}

func playLevel(t *testing.T, lvl levels.Level, seed int64, moves []core.Dir) *core.GameState {
	t.Helper()
	gs, err := lvl.Build(seed)
	require.NoError(t, err)
	for _, d := range moves {
		_, err := gs.AttemptMove(d)
		require.NoError(t, err)
	}
	return gs
}

var walk = []core.Dir{
	core.DirRight, core.DirRight, core.DirRight, core.DirDown, core.DirDown,
	core.DirLeft, core.DirUp, core.DirRight, core.DirRight, core.DirDown,
}

func TestCaptureAndVerify(t *testing.T) {
	lvl := bugLevel()
	gs := playLevel(t, lvl, 5, walk)

	rec := Capture(lvl.ID, 5, gs)
	_, err := ulid.ParseStrict(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "bugs", rec.LevelID)
	assert.Equal(t, gs.Snapshot(), rec.FinalHash)
	assert.Equal(t, len(gs.AvatarMoves()), rec.Turns)
	assert.Equal(t, gs.TreasureCollected(), rec.Treasure)
	assert.Equal(t, !gs.AvatarAlive(), rec.Dead)
	assert.False(t, rec.CreatedAt.IsZero())

	require.NoError(t, Verify(rec, lvl))

	// Verify does not depend on the seed: the steps carry every move.
	rec.Seed = 99
	require.NoError(t, Verify(rec, lvl))
}

func TestVerifyDetectsTampering(t *testing.T) {
	lvl := bugLevel()
	rec := Capture(lvl.ID, 5, playLevel(t, lvl, 5, walk))

	bad := rec
	bad.FinalHash++
	assert.True(t, errors.Is(Verify(bad, lvl), ErrDiverged))

	bad = rec
	bad.Steps = append([]core.Step{{Entity: core.AvatarID, Dir: core.DirUp}}, rec.Steps...)
	assert.True(t, errors.Is(Verify(bad, lvl), ErrDiverged), "walking into the wall is refused")
}

func TestRecordingOutcome(t *testing.T) {
	assert.Equal(t, "finished", Recording{Finished: true}.Outcome())
	assert.Equal(t, "dead", Recording{Dead: true}.Outcome())
	assert.Equal(t, "abandoned", Recording{}.Outcome())
}

func TestEncodeDecodeSteps(t *testing.T) {
	steps := []core.Step{
		{Entity: core.AvatarID, Dir: core.DirUp},
		{Entity: 2, Dir: core.DirLeft},
		{Entity: 3, Dir: core.DirNone},
		{Entity: core.AvatarID, Dir: core.DirRight},
	}

	text := EncodeSteps(steps)
	assert.Equal(t, "H:U 2:L 3:N H:R", text)

	decoded, err := DecodeSteps(text)
	require.NoError(t, err)
	assert.Equal(t, steps, decoded)

	empty, err := DecodeSteps("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDecodeStepsRejectsGarbage(t *testing.T) {
	for _, in := range []string{"HU", "H:Q", "x:U", "1:U", "0:L"} {
		_, err := DecodeSteps(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestPlayer(t *testing.T) {
	lvl := bugLevel()
	played := playLevel(t, lvl, 3, walk)
	steps := played.Steps()

	gs, err := lvl.Build(0)
	require.NoError(t, err)
	p := NewPlayer(gs, steps)
	assert.Equal(t, len(steps), p.Len())

	st, err := p.Step()
	require.NoError(t, err)
	assert.Equal(t, core.AvatarID, st.Entity)
	assert.Equal(t, 1, p.Pos())

	// The first turn finishes with the autonomous moves.
	n, err := p.StepTurn()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for !p.Done() {
		_, err := p.StepTurn()
		require.NoError(t, err)
	}
	assert.Equal(t, played.Snapshot(), p.State().Snapshot())

	st, err = p.Step()
	require.NoError(t, err)
	assert.Equal(t, core.Step{}, st)
}
