package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
	"github.com/vovakirdan/tui-maze/internal/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/maze/replay"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

func testLevels() []levels.Level {
	return []levels.Level{
		{ID: "first", Name: "First", Layout: []string{"HC.XE"}},
		{ID: "second", Layout: []string{"H.E"}},
	}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	m, err := NewModel(store, nil, PlayOptions{Levels: testLevels(), Seed: 7, Record: true})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return pm
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyNext  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}
	keyReset = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	keyBack  = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestModelPlaysLevelWithKeys(t *testing.T) {
	m := newTestModel(t, nil)

	// Edge move is refused and does not count as a turn.
	m = press(t, m, keyLeft)
	if m.turns != 0 {
		t.Errorf("refused move counted, turns = %d", m.turns)
	}

	for i := 0; i < 4; i++ {
		m = press(t, m, keyRight)
	}
	if !m.State().LevelFinished() {
		t.Fatalf("expected level finished, board:\n%s", m.State())
	}
	if m.turns != 4 {
		t.Errorf("expected 4 turns, got %d", m.turns)
	}
	if !strings.Contains(m.View(), "Level complete in 4 turns") {
		t.Error("view should announce the finished level")
	}

	m = press(t, m, keyNext)
	if m.Level().ID != "second" {
		t.Errorf("expected next level, got %q", m.Level().ID)
	}
	if m.turns != 0 || m.State().Status() != core.StatusActive {
		t.Error("next level should start fresh")
	}
}

func TestModelNextIgnoredWhileActive(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyNext)
	if m.Level().ID != "first" {
		t.Errorf("next must wait for the level to finish, got %q", m.Level().ID)
	}
}

func TestModelRestart(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyRight)
	if m.State().TreasureCollected() != 1 {
		t.Fatal("expected treasure collected")
	}

	m = press(t, m, keyReset)
	if m.turns != 0 || m.State().TreasureCollected() != 0 {
		t.Error("restart should rebuild the level")
	}
	if m.Level().ID != "first" {
		t.Errorf("restart changed level to %q", m.Level().ID)
	}
}

func TestModelMouseClickMovesToNeighbour(t *testing.T) {
	m := newTestModel(t, nil)

	click := func(row, col int) {
		next, _ := m.Update(tea.MouseMsg{
			X:      boardOriginX + col*cellWidth,
			Y:      boardOriginY + row,
			Action: tea.MouseActionPress,
			Button: tea.MouseButtonLeft,
		})
		m = next.(Model)
	}

	click(0, 3) // Not adjacent
	if m.turns != 0 {
		t.Error("click on a distant cell must not move")
	}

	click(0, 1)
	if m.turns != 1 || m.State().Avatar().Col != 1 {
		t.Errorf("click on neighbour should move, avatar at col %d", m.State().Avatar().Col)
	}
}

func TestModelBackToMenu(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyBack)
	if !m.BackToMenu() {
		t.Error("esc should request the menu")
	}
}

func TestModelSavesRecordingAndResult(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "maze.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	for i := 0; i < 4; i++ {
		m = press(t, m, keyRight)
	}

	recs, err := store.Recordings("first", 10)
	if err != nil {
		t.Fatalf("Recordings failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recording, got %d", len(recs))
	}
	if recs[0].Outcome() != "finished" || recs[0].Turns != 4 {
		t.Errorf("unexpected recording %+v", recs[0])
	}
	if err := replay.Verify(recs[0], testLevels()[0]); err != nil {
		t.Errorf("saved recording does not verify: %v", err)
	}

	best, err := store.BestTurns("first")
	if err != nil || best != 4 {
		t.Errorf("expected best 4, got %d (%v)", best, err)
	}

	// A second key press after finishing must not save again.
	press(t, m, keyRight)
	recs, _ = store.Recordings("first", 10)
	if len(recs) != 1 {
		t.Errorf("finished attempt saved twice")
	}
}

func TestModelUnknownStartLevel(t *testing.T) {
	_, err := NewModel(nil, nil, PlayOptions{Levels: testLevels(), StartLevel: "nope"})
	if err == nil {
		t.Error("expected error for unknown start level")
	}
	if _, err := NewModel(nil, nil, PlayOptions{}); err == nil {
		t.Error("expected error without levels")
	}
}

func TestReplayModelStepsToEnd(t *testing.T) {
	lvl := testLevels()[0]
	gs, err := lvl.Build(3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if _, err := gs.AttemptMove(core.DirRight); err != nil {
			t.Fatal(err)
		}
	}
	rec := replay.Capture(lvl.ID, 3, gs)

	rm, err := NewReplayModel(rec, lvl, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewReplayModel failed: %v", err)
	}

	step := tea.KeyMsg{Type: tea.KeyRight}
	for i := 0; i < 10 && !rm.Player().Done(); i++ {
		next, _ := rm.Update(step)
		rm = next.(ReplayModel)
	}
	if !rm.Player().Done() {
		t.Fatal("replay did not reach the end")
	}
	if rm.Err() != nil {
		t.Errorf("unexpected replay error: %v", rm.Err())
	}
	if rm.turn != 4 {
		t.Errorf("expected 4 turns, got %d", rm.turn)
	}
	if rm.player.State().Snapshot() != gs.Snapshot() {
		t.Error("replayed state differs from the recorded game")
	}
}

func TestReplayModelIgnoresStaleTicks(t *testing.T) {
	lvl := testLevels()[1]
	gs, _ := lvl.Build(1)
	if _, err := gs.AttemptMove(core.DirRight); err != nil {
		t.Fatal(err)
	}
	rm, err := NewReplayModel(replay.Capture(lvl.ID, 1, gs), lvl, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	next, _ := rm.Update(TickMsg{Gen: rm.gen + 1})
	rm = next.(ReplayModel)
	if rm.player.Pos() != 0 {
		t.Error("tick from another chain must be ignored")
	}

	next, _ = rm.Update(TickMsg{Gen: rm.gen})
	rm = next.(ReplayModel)
	if rm.player.Pos() != 1 {
		t.Errorf("expected one step applied, got %d", rm.player.Pos())
	}
}

func TestReplayModelRejectsOtherLevel(t *testing.T) {
	rec := replay.Recording{LevelID: "second"}
	if _, err := NewReplayModel(rec, testLevels()[0], time.Second); err == nil {
		t.Error("expected level mismatch error")
	}
}

func TestRenderBoard(t *testing.T) {
	lvl := levels.Level{ID: "r", Layout: []string{"UHC", "WXW", "WEW"}}
	gs, err := lvl.Build(1)
	if err != nil {
		t.Fatal(err)
	}

	out := RenderBoard(gs)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, want := range []string{"@", "&&", "$", "==", "[]", "██"} {
		if !strings.Contains(out, want) {
			t.Errorf("board missing %q:\n%s", want, out)
		}
	}
}

func TestCellAt(t *testing.T) {
	row, col, ok := cellAt(boardOriginX+2*cellWidth+1, boardOriginY+3, boardOriginX, boardOriginY)
	if !ok || row != 3 || col != 2 {
		t.Errorf("got (%d,%d,%v), want (3,2,true)", row, col, ok)
	}
	if _, _, ok := cellAt(0, 0, boardOriginX, boardOriginY); ok {
		t.Error("position left of the board should not map to a cell")
	}
}

func TestSessionMenuToPlayAndBack(t *testing.T) {
	sm := NewSessionModel(nil, nil, SessionConfig{
		Play:           PlayOptions{Levels: testLevels(), Seed: 1},
		ReplayInterval: time.Millisecond,
		Width:          80,
		Height:         24,
	})

	update := func(msg tea.Msg) {
		next, _ := sm.Update(msg)
		sm = next.(SessionModel)
	}

	update(tea.KeyMsg{Type: tea.KeyDown})
	update(tea.KeyMsg{Type: tea.KeyEnter})
	if sm.screen != screenPlay {
		t.Fatalf("expected play screen, got %d", sm.screen)
	}
	if sm.play.Level().ID != "second" {
		t.Errorf("expected second level, got %q", sm.play.Level().ID)
	}

	update(keyBack)
	if sm.screen != screenMenu {
		t.Errorf("expected menu after back, got %d", sm.screen)
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	if sm.screen != screenRecordings {
		t.Errorf("expected recordings browser, got %d", sm.screen)
	}
	update(keyBack)
	if sm.screen != screenMenu {
		t.Errorf("expected menu after leaving recordings, got %d", sm.screen)
	}
}
