package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Harshitk-cp/openmind/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func sampleRun(createdAt time.Time) *domain.SweepRun {
	degree := 4
	return &domain.SweepRun{
		Kind: domain.SweepTippingContent,
		Request: domain.SweepRequest{
			Kind:                 domain.SweepTippingContent,
			DegreeOpenMindedness: &degree,
		},
		Rows:    []float64{0.6, 0.7},
		Columns: []float64{0.6},
		Cells: [][]domain.SweepCell{
			{{Row: 0.6, Column: 0.6, Value: floatPtr(0.53)}},
			{{Row: 0.7, Column: 0.6, Error: "tipping point search diverged"}},
		},
		DurationMS: 3,
		CreatedAt:  createdAt,
	}
}

func exerciseSweepStore(t *testing.T, s domain.SweepStore) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	old := sampleRun(now.Add(-48 * time.Hour))
	recent := sampleRun(now)
	recent.Kind = domain.SweepBenefitSource

	require.NoError(t, s.Create(ctx, old))
	require.NoError(t, s.Create(ctx, recent))
	require.NotEqual(t, uuid.Nil, old.ID)
	require.NotEqual(t, old.ID, recent.ID)

	got, err := s.GetByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SweepTippingContent, got.Kind)
	assert.Equal(t, []float64{0.6, 0.7}, got.Rows)
	assert.Equal(t, []float64{0.6}, got.Columns)
	assert.True(t, old.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", got.CreatedAt, old.CreatedAt)
	require.NotNil(t, got.Request.DegreeOpenMindedness)
	assert.Equal(t, 4, *got.Request.DegreeOpenMindedness)
	require.Len(t, got.Cells, 2)
	require.NotNil(t, got.Cells[0][0].Value)
	assert.Equal(t, 0.53, *got.Cells[0][0].Value)
	assert.Nil(t, got.Cells[1][0].Value)
	assert.Equal(t, "tipping point search diverged", got.Cells[1][0].Error)

	list, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, recent.ID, list[0].ID)
	assert.Equal(t, domain.SweepBenefitSource, list[0].Kind)
	assert.Equal(t, 2, list[0].RowCount)
	assert.Equal(t, 1, list[0].ColumnCount)

	list, err = s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	deleted, err := s.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = s.GetByID(ctx, old.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.GetByID(ctx, recent.ID)
	assert.NoError(t, err)
}

func TestMemorySweepStore(t *testing.T) {
	exerciseSweepStore(t, NewMemorySweepStore())
}

func TestMemorySweepStore_AssignsCreatedAt(t *testing.T) {
	s := NewMemorySweepStore()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	run := &domain.SweepRun{Kind: domain.SweepAddedContent}
	require.NoError(t, s.Create(context.Background(), run))
	assert.Equal(t, fixed, run.CreatedAt)
}

func TestMemorySweepStore_CopiesRuns(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySweepStore()

	run := sampleRun(time.Time{})
	require.NoError(t, s.Create(ctx, run))

	run.Rows[0] = 0.99
	run.Columns[0] = 0.99
	run.Cells[0][0].Row = 0.99
	*run.Cells[0][0].Value = 0.99
	*run.Request.DegreeOpenMindedness = 9

	got, err := s.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.6, 0.7}, got.Rows)
	assert.Equal(t, []float64{0.6}, got.Columns)
	assert.Equal(t, 0.6, got.Cells[0][0].Row)
	assert.Equal(t, 0.53, *got.Cells[0][0].Value)
	assert.Equal(t, 4, *got.Request.DegreeOpenMindedness)

	got.Rows[1] = 0.01
	got.Cells[1] = nil
	*got.Cells[0][0].Value = 0.01

	again, err := s.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.6, 0.7}, again.Rows)
	require.Len(t, again.Cells[1], 1)
	assert.Equal(t, "tipping point search diverged", again.Cells[1][0].Error)
	assert.Equal(t, 0.53, *again.Cells[0][0].Value)
}

func TestSQLiteSweepStore(t *testing.T) {
	s, err := OpenSQLiteSweepStore(filepath.Join(t.TempDir(), "sweeps.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseSweepStore(t, s)
}

func TestSQLiteSweepStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweeps.db")

	s, err := OpenSQLiteSweepStore(path)
	require.NoError(t, err)
	run := sampleRun(time.Time{})
	require.NoError(t, s.Create(context.Background(), run))
	require.NoError(t, s.Close())

	s, err = OpenSQLiteSweepStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Kind, got.Kind)
	assert.False(t, got.CreatedAt.IsZero())
}
