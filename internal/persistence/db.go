// Package persistence provides SQLite-based storage for finished game
// results. A running board is never persisted; only the outcome of a
// completed or abandoned session is recorded.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite connection for game result storage.
type Store struct {
	conn *sqlx.DB
}

// Result is one finished game.
type Result struct {
	ID         string    `db:"id" json:"id"`
	Seed       int64     `db:"seed" json:"seed"`
	Score      int       `db:"score" json:"score"`
	Placements int       `db:"placements" json:"placements"`
	Upgrades   int       `db:"upgrades" json:"upgrades"`
	FinishedAt time.Time `db:"finished_at" json:"finished_at"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		score INTEGER NOT NULL,
		placements INTEGER NOT NULL,
		upgrades INTEGER NOT NULL,
		finished_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_score ON results(score);
	CREATE INDEX IF NOT EXISTS idx_results_finished ON results(finished_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveResult records one finished game. Saving the same session ID twice
// replaces the earlier row.
func (s *Store) SaveResult(r Result) error {
	_, err := s.conn.Exec(`INSERT OR REPLACE INTO results
		(id, seed, score, placements, upgrades, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Seed, r.Score, r.Placements, r.Upgrades, r.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert result %s: %w", r.ID, err)
	}
	return nil
}

// RecentResults returns up to limit results, newest first.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	var out []Result
	err := s.conn.Select(&out,
		`SELECT id, seed, score, placements, upgrades, finished_at
		 FROM results ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return out, nil
}

// BestScore returns the highest recorded score, and false when no game has
// finished yet.
func (s *Store) BestScore() (int, bool, error) {
	var best int
	err := s.conn.Get(&best, `SELECT score FROM results ORDER BY score DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query best score: %w", err)
	}
	return best, true, nil
}
