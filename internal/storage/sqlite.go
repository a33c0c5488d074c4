// Package storage provides SQLite-based persistence for finished sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished playthrough.
type SessionRecord struct {
	ID              int64
	SessionID       uuid.UUID
	Outcome         string // "won" or "lost"
	Score           int
	BlocksDestroyed int
	BlocksTotal     int
	Duration        time.Duration
	Seed            uint64
	CreatedAt       time.Time
}

// SessionStats aggregates every stored session.
type SessionStats struct {
	Played     int
	Won        int
	Lost       int
	BestScore  int
	FastestWin time.Duration // zero when nothing was won
	LastPlayed time.Time
}

// WinRate returns the fraction of sessions won.
func (s SessionStats) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Played)
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			blocks_destroyed INTEGER NOT NULL DEFAULT 0,
			blocks_total INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_outcome ON sessions(outcome);
		CREATE INDEX IF NOT EXISTS idx_sessions_score ON sessions(score DESC);
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

// SaveSession records a finished session. A zero SessionID gets a fresh
// UUID. Returns the row ID.
func (s *Store) SaveSession(r SessionRecord) (int64, error) {
	if r.SessionID == uuid.Nil {
		r.SessionID = uuid.New()
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, outcome, score, blocks_destroyed, blocks_total, duration_ms, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID.String(),
		r.Outcome,
		r.Score,
		r.BlocksDestroyed,
		r.BlocksTotal,
		r.Duration.Milliseconds(),
		int64(r.Seed), //#nosec G115 -- stored bit-for-bit, read back as uint64
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sessionColumns = `id, session_id, outcome, score, blocks_destroyed, blocks_total, duration_ms, seed, created_at`

// RecentSessions returns the latest sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// TopSessions returns the highest scoring sessions; ties go to the faster one.
func (s *Store) TopSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions ORDER BY score DESC, duration_ms ASC, id ASC LIMIT ?`,
		limit,
	)
}

// SessionByID looks up one session. It returns nil, nil when none matches.
func (s *Store) SessionByID(id uuid.UUID) (*SessionRecord, error) {
	rows, err := s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`,
		id.String(),
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *Store) querySessions(query string, args ...any) ([]SessionRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var (
			r          SessionRecord
			sessionID  string
			durationMS int64
			seed       int64
			createdAt  any
		)
		if err := rows.Scan(&r.ID, &sessionID, &r.Outcome, &r.Score, &r.BlocksDestroyed,
			&r.BlocksTotal, &durationMS, &seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if r.SessionID, err = uuid.Parse(sessionID); err != nil {
			return nil, fmt.Errorf("storage: bad session id %q: %w", sessionID, err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Seed = uint64(seed) //#nosec G115 -- inverse of SaveSession
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Stats aggregates all stored sessions.
func (s *Store) Stats() (*SessionStats, error) {
	stats := &SessionStats{}
	var fastestMS int64

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'won' THEN duration_ms END), 0)
		 FROM sessions`,
	).Scan(&stats.Played, &stats.Won, &stats.Lost, &stats.BestScore, &fastestMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get session stats: %w", err)
	}
	stats.FastestWin = time.Duration(fastestMS) * time.Millisecond

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM sessions ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearSessions deletes the whole history.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
