// Package store provides a SQLite-backed record of generated artifacts.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // register sqlite driver
)

// timeLayout is fixed width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store tracks which artifacts were written, with their content hashes.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the store database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one generate invocation.
type Run struct {
	ID        string
	StartedAt time.Time
	Scenario  string
	OutputDir string
	Written   int
	Unchanged int
}

// Artifact is the last recorded write of one output file.
type Artifact struct {
	Path      string
	SHA256    string
	SizeBytes int64
	RunID     string
	WrittenAt time.Time
}

// NewRun returns a Run with a fresh ID, started now.
func NewRun(scenario, outputDir string) Run {
	return Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Scenario:  scenario,
		OutputDir: outputDir,
	}
}

// SaveRun inserts or updates a run.
func (s *Store) SaveRun(r Run) error {
	_, err := s.db.Exec(`INSERT INTO runs
		(run_id, started_at, scenario, output_dir, written, unchanged)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET written = excluded.written, unchanged = excluded.unchanged`,
		r.ID, r.StartedAt.UTC().Format(timeLayout), r.Scenario, r.OutputDir, r.Written, r.Unchanged,
	)
	return err
}

// ArtifactHash returns the recorded hash for path, or "" if it was never
// recorded.
func (s *Store) ArtifactHash(path string) (string, error) {
	var hash string
	err := s.db.QueryRow("SELECT sha256 FROM artifacts WHERE path = ?", path).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return hash, err
}

// RecordArtifact stores the hash of a file written during run runID.
func (s *Store) RecordArtifact(a Artifact) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO artifacts
		(path, sha256, size_bytes, run_id, written_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.Path, a.SHA256, a.SizeBytes, a.RunID, a.WrittenAt.UTC().Format(timeLayout),
	)
	return err
}

// ListRuns returns the most recent runs first, at most limit of them.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`SELECT run_id, started_at, scenario, output_dir, written, unchanged
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Scenario, &r.OutputDir, &r.Written, &r.Unchanged); err != nil {
			return nil, err
		}
		t, err := time.Parse(timeLayout, started)
		if err != nil {
			return nil, fmt.Errorf("run %s started_at: %w", r.ID, err)
		}
		r.StartedAt = t
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ArtifactsForRun returns the artifacts whose latest write happened in runID.
func (s *Store) ArtifactsForRun(runID string) ([]Artifact, error) {
	rows, err := s.db.Query(`SELECT path, sha256, size_bytes, run_id, written_at
		FROM artifacts WHERE run_id = ? ORDER BY path`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var artifacts []Artifact
	for rows.Next() {
		var a Artifact
		var writtenAt string
		if err := rows.Scan(&a.Path, &a.SHA256, &a.SizeBytes, &a.RunID, &writtenAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(timeLayout, writtenAt)
		if err != nil {
			return nil, fmt.Errorf("artifact %s written_at: %w", a.Path, err)
		}
		a.WrittenAt = t
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

// Path returns the default store location under cacheDir.
func Path(cacheDir string) string {
	return filepath.Join(cacheDir, "artifacts.db")
}
