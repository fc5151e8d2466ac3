// Package storage provides SQLite-based persistence for planning runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/robopath/internal/planner"
	"github.com/vovakirdan/robopath/internal/route"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord represents a single planning run.
type RunRecord struct {
	ID         int64
	Source     string // generator ID or map ID
	Seed       int64
	Width      int
	Height     int
	Obstacles  int
	Facing     string
	TieBreak   string
	Found      bool
	Cost       int
	PathLength int
	Expanded   int
	Attempts   int
	DurationMS int64
	Path       []route.Coord
	CreatedAt  time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			obstacles INTEGER NOT NULL,
			facing TEXT NOT NULL,
			tie_break TEXT NOT NULL,
			found INTEGER NOT NULL,
			cost INTEGER NOT NULL DEFAULT 0,
			path_length INTEGER NOT NULL DEFAULT 0,
			expanded INTEGER NOT NULL DEFAULT 0,
			attempts INTEGER NOT NULL DEFAULT 1,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			path TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a planning run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (source, seed, width, height, obstacles, facing, tie_break, found, cost, path_length, expanded, attempts, duration_ms, path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Source, r.Seed, r.Width, r.Height, r.Obstacles, r.Facing, r.TieBreak,
		r.Found, r.Cost, r.PathLength, r.Expanded, r.Attempts, r.DurationMS,
		EncodePath(r.Path),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, source, seed, width, height, obstacles, facing, tie_break,
		found, cost, path_length, expanded, attempts, duration_ms, path, created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var path string
	var createdAt any
	err := row.Scan(
		&r.ID, &r.Source, &r.Seed, &r.Width, &r.Height, &r.Obstacles,
		&r.Facing, &r.TieBreak, &r.Found, &r.Cost, &r.PathLength,
		&r.Expanded, &r.Attempts, &r.DurationMS, &path, &createdAt,
	)
	if err != nil {
		return r, err
	}

	r.Path, err = DecodePath(path)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RecentRuns retrieves the most recent runs, newest first. An empty source
// matches every run.
func (s *Store) RecentRuns(source string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR source = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		source, source, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its ID. Returns nil if no such run exists.
func (s *Store) RunByID(id int64) (*RunRecord, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE id = ?`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// ClearRuns deletes the runs of one source, or all runs if source is empty.
func (s *Store) ClearRuns(source string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR source = ?", source, source)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SourceStats contains aggregated statistics for a generator or map.
type SourceStats struct {
	Source    string
	Runs      int
	Found     int
	BestCost  int // lowest cost among successful runs
	AvgCost   float64
	AvgLength float64
	LastRun   time.Time
}

// SuccessRate returns the share of runs that found a route.
func (st SourceStats) SuccessRate() float64 {
	if st.Runs == 0 {
		return 0
	}
	return float64(st.Found) / float64(st.Runs)
}

// AllSourceStats retrieves statistics for every source that has runs.
func (s *Store) AllSourceStats() (map[string]*SourceStats, error) {
	rows, err := s.db.Query(
		`SELECT source, COUNT(*), COALESCE(SUM(found), 0),
		        COALESCE(MIN(CASE WHEN found THEN cost END), 0),
		        COALESCE(AVG(CASE WHEN found THEN cost END), 0),
		        COALESCE(AVG(CASE WHEN found THEN path_length END), 0),
		        MAX(created_at)
		 FROM runs
		 GROUP BY source`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get source stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SourceStats)
	for rows.Next() {
		var st SourceStats
		var lastRun any
		if err := rows.Scan(&st.Source, &st.Runs, &st.Found, &st.BestCost, &st.AvgCost, &st.AvgLength, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.Source] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// RecordRun implements planner.RunRecorder.
// This adapter allows the planner to persist outcomes without a direct storage dependency.
func (s *Store) RecordRun(o planner.Outcome) error {
	r := RunRecord{
		Source:     o.Source,
		Seed:       o.Seed,
		Facing:     o.Result.Facing.String(),
		TieBreak:   o.TieBreak.String(),
		Found:      o.Result.Found(),
		Cost:       o.Result.Cost,
		PathLength: len(o.Result.Path),
		Expanded:   o.Result.Expanded(),
		Attempts:   o.Attempts,
		DurationMS: o.Duration.Milliseconds(),
		Path:       o.Result.Path,
	}
	if o.Grid != nil {
		r.Width = o.Grid.Width()
		r.Height = o.Grid.Height()
		r.Obstacles = o.Grid.ObstacleCount()
	}
	_, err := s.SaveRun(r)
	return err
}

// Ensure Store implements RunRecorder
var _ planner.RunRecorder = (*Store)(nil)

// EncodePath renders a path as "x,y;x,y;...".
func EncodePath(path []route.Coord) string {
	var b strings.Builder
	for i, c := range path {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(c.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.Y))
	}
	return b.String()
}

// DecodePath parses the output of EncodePath.
func DecodePath(s string) ([]route.Coord, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	path := make([]route.Coord, 0, len(parts))
	for _, part := range parts {
		xs, ys, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("storage: malformed path step %q", part)
		}
		x, err := strconv.Atoi(xs)
		if err != nil {
			return nil, fmt.Errorf("storage: malformed path step %q: %w", part, err)
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return nil, fmt.Errorf("storage: malformed path step %q: %w", part, err)
		}
		path = append(path, route.C(x, y))
	}
	return path, nil
}

// parseTime handles both time.Time and string datetimes.
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
