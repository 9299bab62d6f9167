// Package store persists per-chunk translation progress in a local sqlite
// database so an interrupted run can resume without re-translating chunks
// that already completed.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Checkpoints is a chunk-level checkpoint database. Safe for use from a
// single run; the pipeline writes to it strictly sequentially.
type Checkpoints struct {
	db *sql.DB
}

// Open opens (creating if needed) the checkpoint database at path and
// applies the schema.
func Open(path string) (*Checkpoints, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint database: %w", err)
	}

	c := &Checkpoints{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate checkpoint database: %w", err)
	}
	return c, nil
}

func (c *Checkpoints) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		job_key TEXT NOT NULL UNIQUE,
		model TEXT NOT NULL,
		source_code TEXT NOT NULL,
		target_code TEXT NOT NULL,
		chunk_size INTEGER NOT NULL,
		chunk_overlap INTEGER NOT NULL,
		total_chunks INTEGER NOT NULL,
		status TEXT DEFAULT 'running',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS job_chunks (
		job_id TEXT NOT NULL,
		chunk_idx INTEGER NOT NULL,
		translated_text TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (job_id, chunk_idx),
		FOREIGN KEY (job_id) REFERENCES jobs(id)
	);`

	_, err := c.db.Exec(schema)
	return err
}

// JobMeta identifies a translation job for checkpointing purposes.
type JobMeta struct {
	Model        string
	SourceCode   string
	TargetCode   string
	ChunkSize    int
	ChunkOverlap int
	TotalChunks  int
}

// JobKey derives the deterministic identity of a job from the document
// and every setting that changes its chunking or output. Any difference
// produces a fresh job instead of a bogus resume.
func JobKey(text string, meta JobMeta) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%d\x00%d\x00", meta.Model, meta.SourceCode, meta.TargetCode, meta.ChunkSize, meta.ChunkOverlap)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// BeginJob finds or creates the job for key and returns its id together
// with the chunks already translated in an earlier run, keyed by index.
func (c *Checkpoints) BeginJob(ctx context.Context, key string, meta JobMeta) (string, map[int]string, error) {
	var id string
	err := c.db.QueryRowContext(ctx, `SELECT id FROM jobs WHERE job_key = ?`, key).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		id = uuid.New().String()
		_, err = c.db.ExecContext(ctx, `
			INSERT INTO jobs (id, job_key, model, source_code, target_code, chunk_size, chunk_overlap, total_chunks)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, key, meta.Model, meta.SourceCode, meta.TargetCode, meta.ChunkSize, meta.ChunkOverlap, meta.TotalChunks)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create job: %w", err)
		}
		return id, map[int]string{}, nil
	case err != nil:
		return "", nil, fmt.Errorf("failed to look up job: %w", err)
	}

	done, err := c.jobChunks(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return id, done, nil
}

func (c *Checkpoints) jobChunks(ctx context.Context, jobID string) (map[int]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT chunk_idx, translated_text FROM job_chunks WHERE job_id = ?`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chunks: %w", err)
	}
	defer rows.Close()

	done := map[int]string{}
	for rows.Next() {
		var idx int
		var text string
		if err := rows.Scan(&idx, &text); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		done[idx] = text
	}
	return done, rows.Err()
}

// SaveChunk records one translated chunk.
func (c *Checkpoints) SaveChunk(ctx context.Context, jobID string, idx int, text string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO job_chunks (job_id, chunk_idx, translated_text)
		VALUES (?, ?, ?)`, jobID, idx, text)
	if err != nil {
		return fmt.Errorf("failed to save chunk %d: %w", idx, err)
	}
	_, err = c.db.ExecContext(ctx, `UPDATE jobs SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, jobID)
	return err
}

// FinishJob marks the job complete.
func (c *Checkpoints) FinishJob(ctx context.Context, jobID string) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE jobs SET status = 'done', updated_at = CURRENT_TIMESTAMP WHERE id = ?`, jobID)
	return err
}

// Close closes the underlying database.
func (c *Checkpoints) Close() error {
	return c.db.Close()
}
