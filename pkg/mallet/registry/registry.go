// Package registry persists MALLET runs and their parsed results in
// SQLite, so trained models can be compared after the output
// directories are gone.
package registry

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/cognicore/mallet/pkg/mallet/internalerr"
	"github.com/cognicore/mallet/pkg/mallet/table"
)

// Registry is a SQLite-backed record of runs and parsed tables.
type Registry struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// Run is one recorded MALLET invocation.
type Run struct {
	ID         string
	Subcommand string
	Args       []string
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     string
}

// Open opens (creating if needed) a registry database with WAL mode
// enabled.
func Open(ctx context.Context, path string) (*Registry, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Registry{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close closes the database connection.
func (r *Registry) Close() error {
	return r.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	subcommand TEXT NOT NULL,
	args TEXT NOT NULL,
	output_dir TEXT,
	started_at TEXT NOT NULL,
	finished_at TEXT,
	status TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS topic_keys (
	run_id TEXT NOT NULL,
	topic INTEGER NOT NULL,
	rank INTEGER NOT NULL,
	keyword TEXT NOT NULL,
	UNIQUE(run_id, topic, rank),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS doc_topics (
	run_id TEXT NOT NULL,
	doc TEXT NOT NULL,
	topic INTEGER NOT NULL,
	share REAL NOT NULL,
	UNIQUE(run_id, doc, topic),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_doc_topics_run ON doc_topics(run_id, topic);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// RecordRun inserts a run row and returns its generated ULID.
func (r *Registry) RecordRun(ctx context.Context, subcommand string, args []string, outputDir string, started, finished time.Time, status string) (string, error) {
	id := ulid.MustNew(ulid.Timestamp(started), r.entropy).String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, subcommand, args, output_dir, started_at, finished_at, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, subcommand, strings.Join(args, " "), outputDir,
		started.UTC().Format(time.RFC3339), finished.UTC().Format(time.RFC3339), status)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// SaveTopicKeys persists a parsed Topic-Keys table for a run. Empty
// cells (short topics) are skipped.
func (r *Registry) SaveTopicKeys(ctx context.Context, runID string, keys *table.Strings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, cols := keys.Shape()
	for topic := 0; topic < rows; topic++ {
		for rank := 0; rank < cols; rank++ {
			kw := keys.At(topic, rank)
			if kw == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO topic_keys (run_id, topic, rank, keyword) VALUES (?, ?, ?, ?)`,
				runID, topic, rank+1, kw); err != nil {
				return fmt.Errorf("save topic keys: %w", err)
			}
		}
	}
	return tx.Commit()
}

// SaveDocTopics persists a parsed doc-topic matrix (topics as rows,
// documents as columns) for a run.
func (r *Registry) SaveDocTopics(ctx context.Context, runID string, m *table.Dense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	docs := m.ColLabels()
	topics, _ := m.Shape()
	for topic := 0; topic < topics; topic++ {
		for c, doc := range docs {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO doc_topics (run_id, doc, topic, share) VALUES (?, ?, ?, ?)`,
				runID, doc, topic, m.At(topic, c)); err != nil {
				return fmt.Errorf("save doc topics: %w", err)
			}
		}
	}
	return tx.Commit()
}

// ListRuns returns all recorded runs, newest first.
func (r *Registry) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, subcommand, args, output_dir, started_at, finished_at, status
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var args, started, finished string
		if err := rows.Scan(&run.ID, &run.Subcommand, &args, &run.OutputDir, &started, &finished, &run.Status); err != nil {
			return nil, err
		}
		run.Args = strings.Fields(args)
		run.StartedAt, _ = time.Parse(time.RFC3339, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// TopicKeywords returns a run's keywords for one topic in rank
// order.
func (r *Registry) TopicKeywords(ctx context.Context, runID string, topic int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT keyword FROM topic_keys WHERE run_id = ? AND topic = ? ORDER BY rank`,
		runID, topic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []string
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return nil, err
		}
		keywords = append(keywords, kw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: run %s topic %d", internalerr.ErrNotFound, runID, topic)
	}
	return keywords, nil
}

// DocShares returns a document's per-topic shares for a run, indexed
// by topic.
func (r *Registry) DocShares(ctx context.Context, runID, doc string) ([]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT topic, share FROM doc_topics WHERE run_id = ? AND doc = ? ORDER BY topic`,
		runID, doc)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []float64
	for rows.Next() {
		var topic int
		var share float64
		if err := rows.Scan(&topic, &share); err != nil {
			return nil, err
		}
		for len(shares) < topic {
			shares = append(shares, 0)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: run %s doc %s", internalerr.ErrNotFound, runID, doc)
	}
	return shares, nil
}
