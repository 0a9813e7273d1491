// Package leaderboard records finished kitchen sessions in a small sqlite
// database and serves ranked results.
package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"freezerush/internal/protocol"
)

type Store struct {
	db *sql.DB
}

// Result is one finished session.
type Result struct {
	Session    string
	Difficulty string
	DurationMs int64
	Total      int
	Completed  int
	Expired    int
	Perfect    int
	MaxCombo   int
	Accuracy   float64
	RecordedAt time.Time
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("leaderboard: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	schema := `CREATE TABLE IF NOT EXISTS session_results (
		session TEXT PRIMARY KEY,
		difficulty TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		total INTEGER NOT NULL,
		completed INTEGER NOT NULL,
		expired INTEGER NOT NULL,
		perfect INTEGER NOT NULL,
		max_combo INTEGER NOT NULL,
		accuracy REAL NOT NULL,
		recorded_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_results_difficulty_total ON session_results(difficulty, total DESC);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record upserts one session result. Re-recording the same session (e.g. a
// crash-then-replay) overwrites the earlier row.
func (s *Store) Record(ctx context.Context, session, difficulty string, durationMs int64, stats protocol.StatsView) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO session_results
		(session, difficulty, duration_ms, total, completed, expired, perfect, max_combo, accuracy, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session) DO UPDATE SET
			difficulty=excluded.difficulty,
			duration_ms=excluded.duration_ms,
			total=excluded.total,
			completed=excluded.completed,
			expired=excluded.expired,
			perfect=excluded.perfect,
			max_combo=excluded.max_combo,
			accuracy=excluded.accuracy,
			recorded_at=excluded.recorded_at`,
		session, difficulty, durationMs,
		stats.Total, stats.Completed, stats.Expired, stats.Perfect, stats.MaxCombo, stats.Accuracy,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// Top returns the best sessions for a difficulty, highest score first.
func (s *Store) Top(ctx context.Context, difficulty string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `SELECT session, difficulty, duration_ms, total, completed,
		expired, perfect, max_combo, accuracy, recorded_at
		FROM session_results WHERE difficulty = ?
		ORDER BY total DESC, completed DESC, recorded_at ASC LIMIT ?`, difficulty, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var recorded string
		if err := rows.Scan(&r.Session, &r.Difficulty, &r.DurationMs, &r.Total, &r.Completed,
			&r.Expired, &r.Perfect, &r.MaxCombo, &r.Accuracy, &recorded); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, recorded); err == nil {
			r.RecordedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
