// Package storage provides SQLite-based persistence for maze recordings
// and level results. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-maze/internal/maze/replay"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Result is one finished attempt at a level.
type Result struct {
	ID          int64
	LevelID     string
	Outcome     string // "finished", "dead" or "abandoned"
	Turns       int
	Treasure    int
	RecordingID string // Empty if the attempt was not recorded
	CreatedAt   time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Plays      int
	Finishes   int
	Deaths     int
	BestTurns  int // Fewest turns among finished attempts, 0 if none
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			steps TEXT NOT NULL,
			final_hash INTEGER NOT NULL,
			finished INTEGER NOT NULL DEFAULT 0,
			dead INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			treasure INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_level_id ON recordings(level_id);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			turns INTEGER NOT NULL DEFAULT 0,
			treasure INTEGER NOT NULL DEFAULT 0,
			recording_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_level_id ON results(level_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores a recording. Saving the same ID twice fails.
func (s *Store) SaveRecording(rec replay.Recording) error {
	_, err := s.db.Exec(
		`INSERT INTO recordings
		 (id, level_id, seed, steps, final_hash, finished, dead, turns, treasure, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.LevelID,
		rec.Seed,
		replay.EncodeSteps(rec.Steps),
		int64(rec.FinalHash),
		rec.Finished,
		rec.Dead,
		rec.Turns,
		rec.Treasure,
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save recording: %w", err)
	}
	return nil
}

// Recording retrieves a recording by ID. Returns nil if it does not exist.
func (s *Store) Recording(id string) (*replay.Recording, error) {
	row := s.db.QueryRow(
		`SELECT id, level_id, seed, steps, final_hash, finished, dead, turns, treasure, created_at
		 FROM recordings
		 WHERE id = ?`,
		id,
	)

	rec, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recording: %w", err)
	}
	return rec, nil
}

// Recordings retrieves the most recent recordings, newest first.
// An empty levelID matches every level. A zero limit means 20, a negative
// limit returns every recording.
func (s *Store) Recordings(levelID string, limit int) ([]replay.Recording, error) {
	switch {
	case limit == 0:
		limit = 20
	case limit < 0:
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, seed, steps, final_hash, finished, dead, turns, treasure, created_at
		 FROM recordings
		 WHERE ? = '' OR level_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var recs []replay.Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		recs = append(recs, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return recs, nil
}

// DeleteRecording removes a recording. Deleting a missing ID is not an error.
func (s *Store) DeleteRecording(id string) error {
	if _, err := s.db.Exec("DELETE FROM recordings WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecording(row scanner) (*replay.Recording, error) {
	var rec replay.Recording
	var steps string
	var hash int64
	var createdAt any

	if err := row.Scan(
		&rec.ID,
		&rec.LevelID,
		&rec.Seed,
		&steps,
		&hash,
		&rec.Finished,
		&rec.Dead,
		&rec.Turns,
		&rec.Treasure,
		&createdAt,
	); err != nil {
		return nil, err
	}

	decoded, err := replay.DecodeSteps(steps)
	if err != nil {
		return nil, err
	}
	rec.Steps = decoded
	rec.FinalHash = uint64(hash)
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

// SaveResult records the outcome of one attempt at a level.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	var recordingID sql.NullString
	if r.RecordingID != "" {
		recordingID = sql.NullString{String: r.RecordingID, Valid: true}
	}

	res, err := s.db.Exec(
		"INSERT INTO results (level_id, outcome, turns, treasure, recording_id) VALUES (?, ?, ?, ?, ?)",
		r.LevelID, r.Outcome, r.Turns, r.Treasure, recordingID,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestTurns returns the fewest turns needed to finish the level.
// Returns 0 if the level was never finished.
func (s *Store) BestTurns(levelID string) (int, error) {
	var turns sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(turns) FROM results WHERE level_id = ? AND outcome = 'finished'",
		levelID,
	).Scan(&turns)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best turns: %w", err)
	}

	if !turns.Valid {
		return 0, nil
	}
	return int(turns.Int64), nil
}

// LevelStats retrieves aggregated statistics for every level that has been
// played, keyed by level ID.
func (s *Store) LevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'finished' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = 'dead' THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN outcome = 'finished' THEN turns END), 0),
		        MAX(created_at)
		 FROM results
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.LevelID, &ls.Plays, &ls.Finishes, &ls.Deaths, &ls.BestTurns, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
