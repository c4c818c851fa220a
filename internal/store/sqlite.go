package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Harshitk-cp/openmind/internal/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sweep_runs (
	id            TEXT PRIMARY KEY,
	kind          TEXT NOT NULL,
	request       TEXT NOT NULL,
	row_values    TEXT NOT NULL,
	column_values TEXT NOT NULL,
	row_count     INTEGER NOT NULL,
	column_count  INTEGER NOT NULL,
	cells         TEXT NOT NULL,
	duration_ms   INTEGER NOT NULL DEFAULT 0,
	created_at    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sweep_runs_created_at ON sweep_runs (created_at);
`

// SQLiteSweepStore keeps sweep history in a local SQLite file. created_at is
// stored as unix nanoseconds.
type SQLiteSweepStore struct {
	db *sql.DB
}

func OpenSQLiteSweepStore(path string) (*SQLiteSweepStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteSweepStore{db: db}, nil
}

func (s *SQLiteSweepStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteSweepStore) Create(ctx context.Context, run *domain.SweepRun) error {
	enc, err := encodeSweep(run)
	if err != nil {
		return err
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sweep_runs (id, kind, request, row_values, column_values, row_count, column_count, cells, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), string(run.Kind), string(enc.request), string(enc.rows), string(enc.columns),
		len(run.Rows), len(run.Columns), string(enc.cells), run.DurationMS, run.CreatedAt.UnixNano(),
	)
	return err
}

func (s *SQLiteSweepStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SweepRun, error) {
	run := &domain.SweepRun{ID: id}
	var kind, request, rows, columns, cells string
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT kind, request, row_values, column_values, cells, duration_ms, created_at
		 FROM sweep_runs WHERE id = ?`,
		id.String(),
	).Scan(&kind, &request, &rows, &columns, &cells, &run.DurationMS, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	run.Kind = domain.SweepKind(kind)
	run.CreatedAt = time.Unix(0, createdAt).UTC()

	enc := encodedSweep{
		request: []byte(request),
		rows:    []byte(rows),
		columns: []byte(columns),
		cells:   []byte(cells),
	}
	if err := enc.decode(run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *SQLiteSweepStore) List(ctx context.Context, limit int) ([]domain.SweepSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, row_count, column_count, duration_ms, created_at
		 FROM sweep_runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.SweepSummary
	for rows.Next() {
		var sum domain.SweepSummary
		var id, kind string
		var createdAt int64
		if err := rows.Scan(&id, &kind, &sum.RowCount, &sum.ColumnCount, &sum.DurationMS, &createdAt); err != nil {
			return nil, err
		}
		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse sweep id %q: %w", id, err)
		}
		sum.Kind = domain.SweepKind(kind)
		sum.CreatedAt = time.Unix(0, createdAt).UTC()
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func (s *SQLiteSweepStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sweep_runs WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
