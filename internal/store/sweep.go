package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Harshitk-cp/openmind/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SweepStore persists sweep runs in PostgreSQL. Axes, cells and the request
// are stored as JSONB.
type SweepStore struct {
	db *pgxpool.Pool
}

// NewSweepStore creates a new PostgreSQL sweep store.
func NewSweepStore(db *pgxpool.Pool) *SweepStore {
	return &SweepStore{db: db}
}

func (s *SweepStore) Create(ctx context.Context, run *domain.SweepRun) error {
	enc, err := encodeSweep(run)
	if err != nil {
		return err
	}
	return s.db.QueryRow(ctx,
		`INSERT INTO sweep_runs (kind, request, row_values, column_values, cells, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		string(run.Kind), enc.request, enc.rows, enc.columns, enc.cells, run.DurationMS,
	).Scan(&run.ID, &run.CreatedAt)
}

func (s *SweepStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SweepRun, error) {
	run := &domain.SweepRun{}
	var kind string
	var enc encodedSweep
	err := s.db.QueryRow(ctx,
		`SELECT id, kind, request, row_values, column_values, cells, duration_ms, created_at
		 FROM sweep_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &kind, &enc.request, &enc.rows, &enc.columns, &enc.cells, &run.DurationMS, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	run.Kind = domain.SweepKind(kind)
	if err := enc.decode(run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *SweepStore) List(ctx context.Context, limit int) ([]domain.SweepSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, kind, jsonb_array_length(row_values), jsonb_array_length(column_values), duration_ms, created_at
		 FROM sweep_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.SweepSummary
	for rows.Next() {
		var sum domain.SweepSummary
		var kind string
		if err := rows.Scan(&sum.ID, &kind, &sum.RowCount, &sum.ColumnCount, &sum.DurationMS, &sum.CreatedAt); err != nil {
			return nil, err
		}
		sum.Kind = domain.SweepKind(kind)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func (s *SweepStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM sweep_runs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type encodedSweep struct {
	request []byte
	rows    []byte
	columns []byte
	cells   []byte
}

func encodeSweep(run *domain.SweepRun) (encodedSweep, error) {
	var enc encodedSweep
	var err error
	if enc.request, err = json.Marshal(run.Request); err != nil {
		return enc, fmt.Errorf("encode sweep request: %w", err)
	}
	if enc.rows, err = json.Marshal(run.Rows); err != nil {
		return enc, fmt.Errorf("encode sweep rows: %w", err)
	}
	if enc.columns, err = json.Marshal(run.Columns); err != nil {
		return enc, fmt.Errorf("encode sweep columns: %w", err)
	}
	if enc.cells, err = json.Marshal(run.Cells); err != nil {
		return enc, fmt.Errorf("encode sweep cells: %w", err)
	}
	return enc, nil
}

func (enc encodedSweep) decode(run *domain.SweepRun) error {
	if err := json.Unmarshal(enc.request, &run.Request); err != nil {
		return fmt.Errorf("decode sweep request: %w", err)
	}
	if err := json.Unmarshal(enc.rows, &run.Rows); err != nil {
		return fmt.Errorf("decode sweep rows: %w", err)
	}
	if err := json.Unmarshal(enc.columns, &run.Columns); err != nil {
		return fmt.Errorf("decode sweep columns: %w", err)
	}
	if err := json.Unmarshal(enc.cells, &run.Cells); err != nil {
		return fmt.Errorf("decode sweep cells: %w", err)
	}
	return nil
}
