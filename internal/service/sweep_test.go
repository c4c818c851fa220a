package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Harshitk-cp/openmind/internal/domain"
	"github.com/Harshitk-cp/openmind/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSweepService() (*SweepService, *store.MemorySweepStore) {
	st := store.NewMemorySweepStore()
	svc := NewSweepService(st, zap.NewNop())
	svc.SetWorkers(4)
	return svc, st
}

func cellValue(t *testing.T, run *domain.SweepRun, i, j int) float64 {
	t.Helper()
	c := run.Cells[i][j]
	require.NotNil(t, c.Value, "cell %d,%d failed: %s", i, j, c.Error)
	return *c.Value
}

func TestSweep_TippingContentDefaultGrid(t *testing.T) {
	svc, _ := newTestSweepService()

	run, err := svc.Compute(context.Background(), domain.SweepRequest{Kind: domain.SweepTippingContent})
	require.NoError(t, err)
	require.Len(t, run.Cells, 7)
	require.Len(t, run.Cells[0], 7)

	assert.Equal(t, 0.53, cellValue(t, run, 6, 0))
	assert.Equal(t, 0.36, cellValue(t, run, 0, 6))
	assert.Equal(t, 0.51, cellValue(t, run, 4, 2))

	assert.Equal(t, 0.6, run.Cells[6][0].Row)
	assert.Equal(t, 0.6, run.Cells[6][0].Column)
}

func TestSweep_BenefitSourceMarksHarm(t *testing.T) {
	svc, _ := newTestSweepService()

	run, err := svc.Compute(context.Background(), domain.SweepRequest{Kind: domain.SweepBenefitSource})
	require.NoError(t, err)

	tests := []struct {
		i, j    int
		want    float64
		harmful bool
	}{
		{6, 0, -0.03, true},
		{6, 6, 0.05, false},
		{0, 0, -0.14, true},
		{0, 6, 0.07, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cellValue(t, run, tt.i, tt.j), "cell %d,%d", tt.i, tt.j)
		assert.Equal(t, tt.harmful, run.Cells[tt.i][tt.j].Harmful, "cell %d,%d harmful", tt.i, tt.j)
	}
}

func TestSweep_TippingContentIsNeverHarmful(t *testing.T) {
	svc, _ := newTestSweepService()

	run, err := svc.Compute(context.Background(), domain.SweepRequest{Kind: domain.SweepTippingContent})
	require.NoError(t, err)
	for _, row := range run.Cells {
		for _, c := range row {
			assert.False(t, c.Harmful)
		}
	}
}

func TestSweep_CustomAxesAndPrecision(t *testing.T) {
	svc, _ := newTestSweepService()

	run, err := svc.Compute(context.Background(), domain.SweepRequest{
		Kind:                     domain.SweepBenefitContent,
		Rows:                     []float64{0.6},
		Columns:                  []float64{0.8},
		SourceEvaluativeCapacity: ptr(0.5),
		DegreeOpenMindedness:     ptr(4),
		Precision:                ptr(-1),
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.6}, run.Rows)
	assert.Equal(t, []float64{0.8}, run.Columns)
	assert.InDelta(t, 0.31136, cellValue(t, run, 0, 0), 1e-9)
}

func TestSweep_Advantage(t *testing.T) {
	svc, _ := newTestSweepService()

	run, err := svc.Compute(context.Background(), domain.SweepRequest{
		Kind:      domain.SweepBenefitContent,
		Rows:      []float64{0.6},
		Columns:   []float64{0.5},
		Advantage: 0.1,
		Precision: ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0115, cellValue(t, run, 0, 0))
	assert.False(t, run.Cells[0][0].Harmful)
}

func TestSweep_AccuracyCurve(t *testing.T) {
	svc, _ := newTestSweepService()

	run, err := svc.Compute(context.Background(), domain.SweepRequest{
		Kind:    domain.SweepAccuracyCurve,
		Rows:    []float64{0.6},
		Columns: []float64{2, 4},
	})
	require.NoError(t, err)
	assert.Equal(t, -0.05, cellValue(t, run, 0, 0))
	assert.Equal(t, -0.06, cellValue(t, run, 0, 1))
	assert.True(t, run.Cells[0][0].Harmful)
}

func TestSweep_AddedContentAndSourcePotential(t *testing.T) {
	svc, _ := newTestSweepService()

	added, err := svc.Compute(context.Background(), domain.SweepRequest{
		Kind:      domain.SweepAddedContent,
		Rows:      []float64{0.7},
		Columns:   []float64{0.6},
		Precision: ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0778, cellValue(t, added, 0, 0))

	pot, err := svc.Compute(context.Background(), domain.SweepRequest{Kind: domain.SweepSourcePotential})
	require.NoError(t, err)
	assert.Len(t, pot.Rows, 41)
	assert.Len(t, pot.Columns, 8)
}

func TestSweep_CellErrorsDoNotFailSweep(t *testing.T) {
	svc, _ := newTestSweepService()

	// Competences summing to one leave the source potential undefined.
	run, err := svc.Compute(context.Background(), domain.SweepRequest{
		Kind:    domain.SweepSourcePotential,
		Rows:    []float64{0.5, 0.6},
		Columns: []float64{0.5},
	})
	require.NoError(t, err)
	assert.Nil(t, run.Cells[0][0].Value)
	assert.NotEmpty(t, run.Cells[0][0].Error)
	assert.NotNil(t, run.Cells[1][0].Value)
	assert.Empty(t, run.Cells[1][0].Error)
}

func TestSweep_InvalidRequests(t *testing.T) {
	svc, _ := newTestSweepService()
	svc.SetMaxCells(10)

	tests := []struct {
		name string
		req  domain.SweepRequest
	}{
		{"unknown kind", domain.SweepRequest{Kind: "histogram"}},
		{"too many cells", domain.SweepRequest{Kind: domain.SweepBenefitSource}},
		{"fractional degree", domain.SweepRequest{Kind: domain.SweepAccuracyCurve, Rows: []float64{0.6}, Columns: []float64{2.5}}},
		{"negative degree", domain.SweepRequest{Kind: domain.SweepTippingContent, Rows: []float64{0.6}, Columns: []float64{0.6}, DegreeOpenMindedness: ptr(-1)}},
		{"non-finite axis", domain.SweepRequest{Kind: domain.SweepAddedContent, Rows: []float64{math.NaN()}, Columns: []float64{0.6}}},
		{"excessive precision", domain.SweepRequest{Kind: domain.SweepAddedContent, Rows: []float64{0.7}, Columns: []float64{0.6}, Precision: ptr(20)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compute(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSweep))
		})
	}
}

func TestSweep_CancelledContext(t *testing.T) {
	svc, _ := newTestSweepService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Compute(ctx, domain.SweepRequest{Kind: domain.SweepTippingContent})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSweep_RunStoresHistory(t *testing.T) {
	svc, _ := newTestSweepService()
	ctx := context.Background()

	run, err := svc.Run(ctx, domain.SweepRequest{Kind: domain.SweepAddedContent})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := svc.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Cells, got.Cells)

	list, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, run.ID, list[0].ID)
	assert.Equal(t, 6, list[0].RowCount)
}

func TestSweep_GetMissing(t *testing.T) {
	svc, _ := newTestSweepService()

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSweepNotFound)
}

func TestSweep_WithoutStore(t *testing.T) {
	svc := NewSweepService(nil, zap.NewNop())

	_, err := svc.Compute(context.Background(), domain.SweepRequest{Kind: domain.SweepAddedContent})
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), domain.SweepRequest{Kind: domain.SweepAddedContent})
	assert.ErrorIs(t, err, ErrNoSweepStore)
}

func TestPruner_RunOnce(t *testing.T) {
	st := store.NewMemorySweepStore()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	old := &domain.SweepRun{Kind: domain.SweepAddedContent, CreatedAt: now.Add(-48 * time.Hour)}
	fresh := &domain.SweepRun{Kind: domain.SweepAddedContent, CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, st.Create(ctx, old))
	require.NoError(t, st.Create(ctx, fresh))

	p := NewPrunerService(st, 24*time.Hour, zap.NewNop())
	p.now = func() time.Time { return now }

	deleted, err := p.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = st.GetByID(ctx, old.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.GetByID(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestPruner_StartStop(t *testing.T) {
	st := store.NewMemorySweepStore()
	require.NoError(t, st.Create(context.Background(), &domain.SweepRun{
		Kind:      domain.SweepAddedContent,
		CreatedAt: time.Now().Add(-time.Hour),
	}))

	p := NewPrunerService(st, time.Minute, zap.NewNop())
	p.SetInterval(5 * time.Millisecond)
	p.Start()

	require.Eventually(t, func() bool {
		list, _ := st.List(context.Background(), 10)
		return len(list) == 0
	}, time.Second, 5*time.Millisecond)
	p.Stop()
}
