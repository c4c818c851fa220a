package service

import (
	"context"
	"sync"
	"time"

	"github.com/Harshitk-cp/openmind/internal/domain"
	"go.uber.org/zap"
)

const defaultPrunerInterval = 1 * time.Hour

// PrunerService deletes sweep runs older than the retention window.
type PrunerService struct {
	store     domain.SweepStore
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time

	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewPrunerService creates a new pruner service.
func NewPrunerService(store domain.SweepStore, retention time.Duration, logger *zap.Logger) *PrunerService {
	return &PrunerService{
		store:     store,
		retention: retention,
		logger:    logger,
		now:       time.Now,
		interval:  defaultPrunerInterval,
		stopCh:    make(chan struct{}),
	}
}

// SetInterval sets how often the pruner runs.
func (s *PrunerService) SetInterval(d time.Duration) {
	s.interval = d
}

// Start runs the pruner on a periodic schedule in a background goroutine.
func (s *PrunerService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("sweep pruner started",
			zap.Duration("interval", s.interval),
			zap.Duration("retention", s.retention))

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				_, _ = s.RunOnce(ctx)
				cancel()
			case <-s.stopCh:
				s.logger.Info("sweep pruner stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the pruner.
func (s *PrunerService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// RunOnce deletes expired runs and returns how many were removed.
func (s *PrunerService) RunOnce(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.retention)
	deleted, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to prune sweep runs", zap.Error(err))
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("pruned sweep runs",
			zap.Time("cutoff", cutoff),
			zap.Int64("count", deleted))
	}
	return deleted, nil
}
