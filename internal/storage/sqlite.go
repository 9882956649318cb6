// Package storage provides SQLite-based persistence for the high-score
// table and the history of finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Table limits.
const (
	TableSize     = 5
	MaxNameLength = 10
	NoName        = "NO NAME"
)

// ErrNameTooLong is returned when a high-score name exceeds MaxNameLength.
var ErrNameTooLong = errors.New("storage: name too long")

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one row of the high-score table.
type ScoreEntry struct {
	ID        int64
	Rank      int
	Name      string
	Score     int
	CreatedAt time.Time
}

// GameRecord is one finished game.
type GameRecord struct {
	ID        int64
	Score     int
	Level     int
	Duration  int // seconds
	CreatedAt time.Time
}

// Stats contains aggregated statistics over every finished game.
type Stats struct {
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestLevel  int
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

	// One connection serialises SSH sessions saving at the same time.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(score DESC, id ASC);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// NormalizeName trims a player name and substitutes NoName for an empty
// one. It fails with ErrNameTooLong past MaxNameLength characters.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return NoName, nil
	}
	if len([]rune(name)) > MaxNameLength {
		return "", fmt.Errorf("%w: %q has more than %d characters", ErrNameTooLong, name, MaxNameLength)
	}
	return name, nil
}

// Qualifies reports whether score earns a place in the table. A score must
// be positive and strictly beat the lowest entry of a full table.
func (s *Store) Qualifies(score int) (bool, error) {
	return qualifies(s.db, score)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func qualifies(q querier, score int) (bool, error) {
	if score <= 0 {
		return false, nil
	}
	var count int
	var lowest sql.NullInt64
	err := q.QueryRow(
		`SELECT COUNT(*), MIN(score) FROM (
			SELECT score FROM high_scores ORDER BY score DESC, id ASC LIMIT ?
		)`,
		TableSize,
	).Scan(&count, &lowest)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	if count < TableSize {
		return true, nil
	}
	return int64(score) > lowest.Int64, nil
}

// Save enters a score into the table and returns its rank, or 0 if it did
// not qualify. Entries pushed below the table size are removed.
// Equal scores rank below those already in the table.
func (s *Store) Save(name string, score int) (int, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return 0, err
	}
	if score <= 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	ok, err := qualifies(tx, score)
	if err != nil || !ok {
		return 0, err
	}

	result, err := tx.Exec("INSERT INTO high_scores (name, score) VALUES (?, ?)", name, score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM high_scores WHERE id NOT IN (
			SELECT id FROM high_scores ORDER BY score DESC, id ASC LIMIT ?
		)`,
		TableSize,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot trim table: %w", err)
	}

	var kept int
	if err := tx.QueryRow("SELECT COUNT(*) FROM high_scores WHERE id = ?", id).Scan(&kept); err != nil {
		return 0, fmt.Errorf("storage: cannot rank score: %w", err)
	}
	if kept == 0 {
		return 0, tx.Commit()
	}

	var rank int
	err = tx.QueryRow(
		`SELECT COUNT(*) FROM high_scores WHERE score > ? OR (score = ? AND id <= ?)`,
		score, score, id,
	).Scan(&rank)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot rank score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return rank, nil
}

// Top returns the high-score table, best first.
func (s *Store) Top() ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, name, score, created_at
		 FROM high_scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		TableSize,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Rank = len(entries) + 1
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score in the table.
// Returns 0 if the table is empty.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM high_scores").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Reset empties the high-score table. Game history is kept.
func (s *Store) Reset() error {
	if _, err := s.db.Exec("DELETE FROM high_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// RecordGame appends a finished game to the history.
// Returns the ID of the inserted record.
func (s *Store) RecordGame(score, level, durationSecs int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO games (score, level, duration_secs) VALUES (?, ?, ?)",
		score, level, durationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentGames returns the most recent games, newest first.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, score, level, duration_secs, created_at
		 FROM games
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var r GameRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Score, &r.Level, &r.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// Stats retrieves aggregated statistics over the game history.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(level), 0)
		 FROM games`,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.BestLevel)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM games ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
