package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/Harshitk-cp/openmind/internal/domain"
	"github.com/Harshitk-cp/openmind/internal/epistemic"
	"github.com/Harshitk-cp/openmind/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSweepPrecision = 2
	DefaultSweepMaxCells  = 10000
	DefaultSweepListLimit = 20
	MaxSweepListLimit     = 200
)

var (
	ErrInvalidSweep  = errors.New("invalid sweep request")
	ErrSweepNotFound = errors.New("sweep not found")
	ErrNoSweepStore  = errors.New("sweep history is not configured")
)

// SweepService evaluates parameter grids through the engine. Cells are
// independent and evaluated concurrently.
type SweepService struct {
	store  domain.SweepStore
	logger *zap.Logger

	workers  int
	maxCells int
}

// NewSweepService creates a sweep service. store may be nil, in which case
// only Compute is usable.
func NewSweepService(store domain.SweepStore, logger *zap.Logger) *SweepService {
	return &SweepService{
		store:    store,
		logger:   logger,
		workers:  runtime.GOMAXPROCS(0),
		maxCells: DefaultSweepMaxCells,
	}
}

// SetWorkers sets how many cells are evaluated concurrently.
func (s *SweepService) SetWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// SetMaxCells sets the largest grid a single sweep may request.
func (s *SweepService) SetMaxCells(n int) {
	if n > 0 {
		s.maxCells = n
	}
}

// Run computes the sweep and records it in the sweep history.
func (s *SweepService) Run(ctx context.Context, req domain.SweepRequest) (*domain.SweepRun, error) {
	if s.store == nil {
		return nil, ErrNoSweepStore
	}
	run, err := s.Compute(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("save sweep: %w", err)
	}

	s.logger.Info("sweep stored",
		zap.String("sweep_id", run.ID.String()),
		zap.String("kind", string(run.Kind)),
		zap.Int64("duration_ms", run.DurationMS))
	return run, nil
}

// Compute evaluates the sweep without storing it. Engine failures at single
// points are recorded on the cell; only invalid requests and cancellation
// fail the whole sweep.
func (s *SweepService) Compute(ctx context.Context, req domain.SweepRequest) (*domain.SweepRun, error) {
	plan, err := s.plan(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cells := make([][]domain.SweepCell, len(plan.rows))
	for i := range cells {
		cells[i] = make([]domain.SweepCell, len(plan.columns))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, row := range plan.rows {
		for j, col := range plan.columns {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				cells[i][j] = plan.cell(row, col)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed := 0
	for _, row := range cells {
		for _, c := range row {
			if c.Value == nil {
				failed++
			}
		}
	}

	run := &domain.SweepRun{
		Kind:       req.Kind,
		Request:    req,
		Rows:       plan.rows,
		Columns:    plan.columns,
		Cells:      cells,
		DurationMS: time.Since(start).Milliseconds(),
	}

	s.logger.Debug("sweep computed",
		zap.String("kind", string(req.Kind)),
		zap.Int("rows", len(plan.rows)),
		zap.Int("columns", len(plan.columns)),
		zap.Int("failed_cells", failed),
		zap.Int("workers", s.workers))
	return run, nil
}

// Get returns a recorded sweep run by ID.
func (s *SweepService) Get(ctx context.Context, id uuid.UUID) (*domain.SweepRun, error) {
	if s.store == nil {
		return nil, ErrNoSweepStore
	}
	run, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSweepNotFound
		}
		return nil, err
	}
	return run, nil
}

// List returns summaries of recorded sweeps, newest first.
func (s *SweepService) List(ctx context.Context, limit int) ([]domain.SweepSummary, error) {
	if s.store == nil {
		return nil, ErrNoSweepStore
	}
	if limit <= 0 {
		limit = DefaultSweepListLimit
	}
	if limit > MaxSweepListLimit {
		limit = MaxSweepListLimit
	}
	return s.store.List(ctx, limit)
}

type sweepPlan struct {
	spec      domain.SweepKindSpec
	rows      []float64
	columns   []float64
	precision int
	eval      func(row, col float64) (float64, error)
}

func (p *sweepPlan) cell(row, col float64) domain.SweepCell {
	c := domain.SweepCell{Row: row, Column: col}
	v, err := p.eval(row, col)
	if err != nil {
		c.Error = err.Error()
		return c
	}
	c.Harmful = p.spec.Benefit && v < 0
	v = roundTo(v, p.precision)
	c.Value = &v
	return c
}

func (s *SweepService) plan(req domain.SweepRequest) (*sweepPlan, error) {
	spec, ok := domain.GetSweepKindSpec(req.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidSweep, req.Kind)
	}

	p := &sweepPlan{
		spec:      spec,
		rows:      axisOrDefault(req.Rows, spec.DefaultRows),
		columns:   axisOrDefault(req.Columns, spec.DefaultColumns),
		precision: DefaultSweepPrecision,
	}
	if req.Precision != nil {
		p.precision = *req.Precision
	}
	if p.precision > 15 {
		return nil, fmt.Errorf("%w: precision %d exceeds 15 decimals", ErrInvalidSweep, p.precision)
	}
	if n := len(p.rows) * len(p.columns); n > s.maxCells {
		return nil, fmt.Errorf("%w: %d cells exceeds limit of %d", ErrInvalidSweep, n, s.maxCells)
	}
	for _, v := range append(append([]float64{}, p.rows...), p.columns...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: axis values must be finite", ErrInvalidSweep)
		}
	}
	if spec.IntegerColumns {
		for _, v := range p.columns {
			if v < 0 || v != math.Trunc(v) {
				return nil, fmt.Errorf("%w: %s must be non-negative integers, got %v", ErrInvalidSweep, spec.ColumnLabel, v)
			}
		}
	}

	degree := epistemic.DefaultTippingDegree
	if req.DegreeOpenMindedness != nil {
		degree = *req.DegreeOpenMindedness
	}
	if degree < 0 {
		return nil, fmt.Errorf("%w: degree_open_mindedness must be non-negative", ErrInvalidSweep)
	}
	source := epistemic.DefaultSourceEvaluativeCapacity
	if req.SourceEvaluativeCapacity != nil {
		source = *req.SourceEvaluativeCapacity
	}
	content := epistemic.DefaultContentEvaluativeCapacity
	if req.ContentEvaluativeCapacity != nil {
		content = *req.ContentEvaluativeCapacity
	}
	adv := req.Advantage

	benefit := func(degree int, assoc, opp, source, content float64) (float64, error) {
		return epistemic.BenefitOpenMind(epistemic.AgentParameters{
			DegreeOpenMindedness:      degree,
			CompetenceAssociate:       assoc,
			CompetenceOpposer:         opp,
			SourceEvaluativeCapacity:  source,
			ContentEvaluativeCapacity: content,
		}, epistemic.Derived)
	}

	switch req.Kind {
	case domain.SweepBenefitSource:
		p.eval = func(c, src float64) (float64, error) {
			return benefit(degree, c, c-adv, src, content)
		}
	case domain.SweepBenefitContent:
		p.eval = func(c, cnt float64) (float64, error) {
			return benefit(degree, c, c-adv, source, cnt)
		}
	case domain.SweepTippingContent:
		p.eval = func(c, src float64) (float64, error) {
			return epistemic.FindTippingContentCapacity(c, c-adv, src, degree)
		}
	case domain.SweepAddedContent:
		p.eval = epistemic.AddedContentValue
	case domain.SweepSourcePotential:
		p.eval = epistemic.TippingSourceCapacity
	case domain.SweepAccuracyCurve:
		p.eval = func(c, n float64) (float64, error) {
			return benefit(int(n), c, c-adv, source, content)
		}
	}
	return p, nil
}

func axisOrDefault(axis, def []float64) []float64 {
	if len(axis) > 0 {
		return append([]float64(nil), axis...)
	}
	return append([]float64(nil), def...)
}

func roundTo(v float64, decimals int) float64 {
	if decimals < 0 {
		return v
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
