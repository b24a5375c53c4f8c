// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package artifacts persists every intermediate and final product of a
// run. Artifacts live twice: in a SQLite database for querying across
// runs, and as plain text files under the run's output directory so a
// writer can open any stage result in an editor.
package artifacts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/wordsmith/pkg/types"
)

const dbFile = "wordsmith.db"

// Store manages the run archive.
type Store struct {
	db        *sql.DB
	outputDir string
}

// NewStore opens or creates the archive database at logsDir/wordsmith.db
// and remembers outputDir as the root for mirrored text files. It creates
// the schema if it does not exist.
func NewStore(outputDir, logsDir string) (*Store, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating logs directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	dbPath := filepath.Join(logsDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, outputDir: outputDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			text_type TEXT NOT NULL,
			status TEXT NOT NULL,
			briefing TEXT NOT NULL,
			metadata TEXT,
			created_at TEXT NOT NULL,
			completed_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			stage TEXT NOT NULL,
			iteration INTEGER NOT NULL,
			name TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL,
			UNIQUE(run_id, stage, iteration, name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_run ON artifacts(run_id)`,
		`CREATE TABLE IF NOT EXISTS events (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			stage TEXT NOT NULL,
			message TEXT NOT NULL,
			payload TEXT,
			created_at TEXT NOT NULL,
			UNIQUE(run_id, seq)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// CreateRun registers a new run for the given briefing and returns its
// ID. The normalized briefing is archived both in the database and as
// briefing.json in the run's output directory.
func (s *Store) CreateRun(ctx context.Context, b types.Briefing) (string, error) {
	runID := uuid.NewString()

	briefingJSON, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling briefing: %w", err)
	}

	if err := os.MkdirAll(s.RunDir(runID), 0o755); err != nil {
		return "", fmt.Errorf("creating run directory: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, title, text_type, status, briefing, created_at)
		 VALUES (?, ?, ?, 'running', ?, ?)`,
		runID, b.Title, b.TextType, string(briefingJSON), now(),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	if err := s.mirror(runID, "briefing.json", string(briefingJSON)+"\n"); err != nil {
		return "", err
	}
	return runID, nil
}

// CompleteRun records the final status and metadata of a run and writes
// metadata.json next to the text artifacts.
func (s *Store) CompleteRun(ctx context.Context, runID, status string, meta types.RunMetadata) error {
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, metadata = ?, completed_at = ? WHERE id = ?`,
		status, string(metaJSON), now(), runID,
	)
	if err != nil {
		return fmt.Errorf("completing run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("unknown run %s", runID)
	}

	return s.mirror(runID, "metadata.json", string(metaJSON)+"\n")
}

// SaveArtifact stores one stage product and mirrors it as a text file in
// the run's output directory. Saving the same (stage, iteration, name)
// again replaces the previous content.
func (s *Store) SaveArtifact(ctx context.Context, runID string, stage types.Stage, iteration int, name, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO artifacts (run_id, stage, iteration, name, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id, stage, iteration, name) DO UPDATE SET
			content=excluded.content, created_at=excluded.created_at`,
		runID, string(stage), iteration, name, content, now(),
	)
	if err != nil {
		return fmt.Errorf("saving artifact %s: %w", name, err)
	}
	return s.mirror(runID, name, content)
}

// Artifact returns the content of one stored artifact. The (stage,
// iteration, name) triple is the artifact's identity; the same name may
// exist under several stages within a run, current_text.txt in particular.
func (s *Store) Artifact(ctx context.Context, runID string, stage types.Stage, iteration int, name string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM artifacts WHERE run_id = ? AND stage = ? AND iteration = ? AND name = ?`,
		runID, string(stage), iteration, name,
	).Scan(&content)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("artifact %s not found for run %s stage %s iteration %d", name, runID, stage, iteration)
	}
	if err != nil {
		return "", fmt.Errorf("loading artifact %s: %w", name, err)
	}
	return content, nil
}

// LatestArtifact returns the most recently written artifact with the given
// name, regardless of stage. Insertion order decides, so for
// current_text.txt this is always the newest draft version.
func (s *Store) LatestArtifact(ctx context.Context, runID, name string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM artifacts WHERE run_id = ? AND name = ? ORDER BY rowid DESC LIMIT 1`,
		runID, name,
	).Scan(&content)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("artifact %s not found for run %s", name, runID)
	}
	if err != nil {
		return "", fmt.Errorf("loading artifact %s: %w", name, err)
	}
	return content, nil
}

// AppendEvent adds one entry to the run's audit trail. Sequence numbers
// are assigned by the caller and must be strictly increasing per run.
func (s *Store) AppendEvent(ctx context.Context, runID string, ev types.PipelineEvent) error {
	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (run_id, seq, stage, message, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, ev.Seq, string(ev.Stage), ev.Message, ev.Payload,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("appending event %d: %w", ev.Seq, err)
	}
	return nil
}

// Events returns the audit trail of a run in sequence order.
func (s *Store) Events(ctx context.Context, runID string) ([]types.PipelineEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, stage, message, payload, created_at FROM events
		 WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []types.PipelineEvent
	for rows.Next() {
		var ev types.PipelineEvent
		var stage, createdAt string
		if err := rows.Scan(&ev.Seq, &stage, &ev.Message, &ev.Payload, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		ev.Stage = types.Stage(stage)
		ev.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// RunDir returns the output directory holding a run's mirrored text
// files.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.outputDir, runID)
}

// mirror writes an artifact as a plain file in the run's directory.
func (s *Store) mirror(runID, name, content string) error {
	path := filepath.Join(s.RunDir(runID), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating run directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("mirroring artifact %s: %w", name, err)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
