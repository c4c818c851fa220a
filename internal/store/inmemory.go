package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Harshitk-cp/openmind/internal/domain"
	"github.com/google/uuid"
)

// MemorySweepStore keeps sweep runs in process memory. Used when no database
// is configured.
type MemorySweepStore struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]domain.SweepRun
	now  func() time.Time
}

// NewMemorySweepStore creates an empty in-memory sweep store.
func NewMemorySweepStore() *MemorySweepStore {
	return &MemorySweepStore{
		runs: make(map[uuid.UUID]domain.SweepRun),
		now:  time.Now,
	}
}

// Create stores a copy of run, assigning its ID and CreatedAt when unset.
func (s *MemorySweepStore) Create(ctx context.Context, run *domain.SweepRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}
	s.runs[run.ID] = cloneSweepRun(*run)
	return nil
}

// GetByID returns a copy of the stored run.
func (s *MemorySweepStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SweepRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	run = cloneSweepRun(run)
	return &run, nil
}

func (s *MemorySweepStore) List(ctx context.Context, limit int) ([]domain.SweepSummary, error) {
	s.mu.RLock()
	summaries := make([]domain.SweepSummary, 0, len(s.runs))
	for _, run := range s.runs {
		summaries = append(summaries, run.Summary())
	}
	s.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	if limit >= 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (s *MemorySweepStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, run := range s.runs {
		if run.CreatedAt.Before(cutoff) {
			delete(s.runs, id)
			deleted++
		}
	}
	return deleted, nil
}

// cloneSweepRun copies every slice and pointer in run so stored runs never
// alias caller memory.
func cloneSweepRun(run domain.SweepRun) domain.SweepRun {
	run.Rows = cloneFloats(run.Rows)
	run.Columns = cloneFloats(run.Columns)
	run.Request.Rows = cloneFloats(run.Request.Rows)
	run.Request.Columns = cloneFloats(run.Request.Columns)
	run.Request.DegreeOpenMindedness = clonePtr(run.Request.DegreeOpenMindedness)
	run.Request.SourceEvaluativeCapacity = clonePtr(run.Request.SourceEvaluativeCapacity)
	run.Request.ContentEvaluativeCapacity = clonePtr(run.Request.ContentEvaluativeCapacity)
	run.Request.Precision = clonePtr(run.Request.Precision)

	if run.Cells != nil {
		cells := make([][]domain.SweepCell, len(run.Cells))
		for i, row := range run.Cells {
			if row == nil {
				continue
			}
			cells[i] = make([]domain.SweepCell, len(row))
			for j, cell := range row {
				cell.Value = clonePtr(cell.Value)
				cells[i][j] = cell
			}
		}
		run.Cells = cells
	}
	return run
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append([]float64(nil), v...)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
