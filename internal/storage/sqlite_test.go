package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
	"github.com/vovakirdan/tui-maze/internal/maze/replay"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecording(id, levelID string, created time.Time) replay.Recording {
	return replay.Recording{
		ID:      id,
		LevelID: levelID,
		Seed:    42,
		Steps: []core.Step{
			{Entity: core.AvatarID, Dir: core.DirRight},
			{Entity: 2, Dir: core.DirNone},
		},
		FinalHash: 0xfedcba9876543210,
		Finished:  true,
		Turns:     1,
		Treasure:  1,
		CreatedAt: created,
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndLoadRecording(t *testing.T) {
	store := openTestStore(t)
	created := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	rec := testRecording("01HZX0000000000000000000AA", "level01", created)

	if err := store.SaveRecording(rec); err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	if err := store.SaveRecording(rec); err == nil {
		t.Error("expected duplicate ID to fail")
	}

	got, err := store.Recording(rec.ID)
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected recording, got nil")
	}

	if got.LevelID != "level01" || got.Seed != 42 || got.Turns != 1 || got.Treasure != 1 {
		t.Errorf("unexpected recording %+v", got)
	}
	if got.FinalHash != rec.FinalHash {
		t.Errorf("expected hash %x, got %x", rec.FinalHash, got.FinalHash)
	}
	if !got.Finished || got.Dead {
		t.Errorf("expected finished and alive, got finished=%v dead=%v", got.Finished, got.Dead)
	}
	if replay.EncodeSteps(got.Steps) != "H:R 2:N" {
		t.Errorf("unexpected steps %q", replay.EncodeSteps(got.Steps))
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("expected created %v, got %v", created, got.CreatedAt)
	}
}

func TestStoreRecordingNotFound(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Recording("missing")
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestStoreRecordingsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	recs := []replay.Recording{
		testRecording("01HZX0000000000000000000A1", "level01", base),
		testRecording("01HZX0000000000000000000A2", "level02", base.Add(time.Minute)),
		testRecording("01HZX0000000000000000000A3", "level01", base.Add(2*time.Minute)),
	}
	for _, rec := range recs {
		if err := store.SaveRecording(rec); err != nil {
			t.Fatalf("SaveRecording() failed: %v", err)
		}
	}

	all, err := store.Recordings("", 10)
	if err != nil {
		t.Fatalf("Recordings() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 recordings, got %d", len(all))
	}
	if all[0].ID != recs[2].ID || all[2].ID != recs[0].ID {
		t.Errorf("expected newest first, got %s..%s", all[0].ID, all[2].ID)
	}

	level01, err := store.Recordings("level01", 10)
	if err != nil {
		t.Fatalf("Recordings() failed: %v", err)
	}
	if len(level01) != 2 {
		t.Errorf("expected 2 level01 recordings, got %d", len(level01))
	}

	limited, _ := store.Recordings("", 1)
	if len(limited) != 1 {
		t.Errorf("expected limit 1, got %d", len(limited))
	}

	unlimited, _ := store.Recordings("", -1)
	if len(unlimited) != 3 {
		t.Errorf("expected every recording for a negative limit, got %d", len(unlimited))
	}

	if err := store.DeleteRecording(recs[0].ID); err != nil {
		t.Fatalf("DeleteRecording() failed: %v", err)
	}
	all, _ = store.Recordings("", 10)
	if len(all) != 2 {
		t.Errorf("expected 2 recordings after delete, got %d", len(all))
	}
}

func TestStoreResultsAndStats(t *testing.T) {
	store := openTestStore(t)

	results := []Result{
		{LevelID: "level01", Outcome: "finished", Turns: 40, Treasure: 3},
		{LevelID: "level01", Outcome: "finished", Turns: 31, Treasure: 3, RecordingID: "01HZX0000000000000000000AA"},
		{LevelID: "level01", Outcome: "dead", Turns: 12, Treasure: 1},
		{LevelID: "level02", Outcome: "abandoned", Turns: 5},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	best, err := store.BestTurns("level01")
	if err != nil {
		t.Fatalf("BestTurns() failed: %v", err)
	}
	if best != 31 {
		t.Errorf("expected best 31, got %d", best)
	}

	best, err = store.BestTurns("level02")
	if err != nil {
		t.Fatalf("BestTurns() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("expected 0 for unfinished level, got %d", best)
	}

	stats, err := store.LevelStats()
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for 2 levels, got %d", len(stats))
	}

	s := stats["level01"]
	if s.Plays != 3 || s.Finishes != 2 || s.Deaths != 1 || s.BestTurns != 31 {
		t.Errorf("unexpected level01 stats %+v", s)
	}
	if s.LastPlayed.IsZero() {
		t.Error("expected last played time")
	}
	if stats["level02"].BestTurns != 0 {
		t.Errorf("expected no best turns for level02, got %d", stats["level02"].BestTurns)
	}
}
