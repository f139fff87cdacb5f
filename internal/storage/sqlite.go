// Package storage provides SQLite-based persistence for best scores and
// finished games. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
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

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished game.
type GameRecord struct {
	ID        int64
	SessionID string
	Variant   string
	Score     int
	Length    int
	Ticks     int64
	Won       bool
	CreatedAt time.Time
}

// VariantStats contains aggregated statistics for one variant.
type VariantStats struct {
	Variant    string
	GamesCount int
	BestScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

	// SQLite allows one writer; SSH sessions and the HTTP API share the store.
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
		CREATE TABLE IF NOT EXISTS best_scores (
			variant TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			variant TEXT NOT NULL,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_variant ON games(variant);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(variant, score DESC);
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

// BestScore returns the stored best score for a variant, 0 if none.
func (s *Store) BestScore(variant string) (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM best_scores WHERE variant = ?", variant).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// SaveBestScore stores score for a variant unless a higher one is already stored.
func (s *Store) SaveBestScore(variant string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (variant, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(variant) DO UPDATE
		 SET score = excluded.score, updated_at = excluded.updated_at
		 WHERE excluded.score > best_scores.score`,
		variant, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// RecordGame stores a finished game. A session ID is generated when empty.
// Returns the ID of the inserted record.
func (s *Store) RecordGame(rec GameRecord) (int64, error) {
	if rec.SessionID == "" {
		rec.SessionID = uuid.NewString()
	}

	result, err := s.db.Exec(
		"INSERT INTO games (session_id, variant, score, length, ticks, won) VALUES (?, ?, ?, ?, ?, ?)",
		rec.SessionID, rec.Variant, rec.Score, rec.Length, rec.Ticks, rec.Won,
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

// RecordSnapshot stores the final snapshot of a game.
func (s *Store) RecordSnapshot(sessionID string, snap snake.Snapshot) (int64, error) {
	return s.RecordGame(GameRecord{
		SessionID: sessionID,
		Variant:   snap.Variant,
		Score:     snap.Score,
		Length:    snap.Len(),
		Ticks:     int64(snap.Tick),
		Won:       snap.Status == snake.StatusWon,
	})
}

const gameColumns = "id, session_id, variant, score, length, ticks, won, created_at"

// TopGames retrieves the top N games for a variant, highest score first.
func (s *Store) TopGames(variant string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+gameColumns+`
		 FROM games
		 WHERE variant = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	return scanGames(rows)
}

// RecentGames retrieves the most recent games across all variants.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+gameColumns+`
		 FROM games
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent games: %w", err)
	}
	return scanGames(rows)
}

func scanGames(rows *sql.Rows) ([]GameRecord, error) {
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var r GameRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Variant, &r.Score, &r.Length, &r.Ticks, &r.Won, &createdAt); err != nil {
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

// Variants lists every variant that has a best score or a recorded game.
func (s *Store) Variants() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT variant FROM best_scores
		 UNION
		 SELECT variant FROM games
		 ORDER BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query variants: %w", err)
	}
	defer rows.Close()

	var variants []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return variants, nil
}

// ClearVariant deletes the best score and history of one variant.
func (s *Store) ClearVariant(variant string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM games WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM best_scores WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear best score: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a variant. BestScore is the
// larger of the stored best and the best recorded game.
func (s *Store) Stats(variant string) (*VariantStats, error) {
	stats := &VariantStats{Variant: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM games WHERE variant = ?`,
		variant,
	).Scan(&stats.GamesCount, &stats.BestScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	best, err := s.BestScore(variant)
	if err != nil {
		return nil, err
	}
	stats.BestScore = max(stats.BestScore, best)

	return stats, nil
}

// parseTime handles both time.Time and string datetime values.
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

// BestScoreKeeper binds a Store to one variant so it can serve as the
// game's best-score collaborator.
type BestScoreKeeper struct {
	Store   *Store
	Variant string
}

// LoadBestScore implements snake.BestScoreStore.
func (k BestScoreKeeper) LoadBestScore() (int, error) {
	return k.Store.BestScore(k.Variant)
}

// SaveBestScore implements snake.BestScoreStore.
func (k BestScoreKeeper) SaveBestScore(score int) error {
	return k.Store.SaveBestScore(k.Variant, score)
}

var _ snake.BestScoreStore = BestScoreKeeper{}
