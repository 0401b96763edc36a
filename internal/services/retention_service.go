package services

import (
	"context"
	"sync"
	"time"

	"pico-watt/internal/store"
	"pico-watt/internal/types"

	"github.com/sirupsen/logrus"
)

const retentionBatchSize = 2000

// RetentionService deletes measurements older than the configured age
// cutoff. Sweeps run on a fixed interval and can additionally be nudged by
// the ingest path via Notify; a failed sweep is logged and never surfaced to
// the request that triggered it.
type RetentionService struct {
	store    *store.MeasurementStore
	cfg      types.RetentionConfig
	stopCh   chan struct{}
	notifyCh chan struct{}
	wg       sync.WaitGroup
}

// NewRetentionService creates a new retention sweep service.
func NewRetentionService(measurementStore *store.MeasurementStore, configManager types.ConfigManager) *RetentionService {
	return &RetentionService{
		store:    measurementStore,
		cfg:      configManager.GetRetentionConfig(),
		stopCh:   make(chan struct{}),
		notifyCh: make(chan struct{}, 1),
	}
}

// Start starts the background sweep loop.
func (s *RetentionService) Start() {
	s.wg.Add(1)
	go s.run()
	logrus.Debug("Retention service started")
}

// Stop stops the retention service gracefully.
func (s *RetentionService) Stop(ctx context.Context) {
	close(s.stopCh)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logrus.Info("RetentionService stopped gracefully.")
	case <-ctx.Done():
		logrus.Warn("RetentionService stop timed out.")
	}
}

// Notify requests an out-of-band sweep. It never blocks; a sweep already
// pending absorbs the request.
func (s *RetentionService) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

func (s *RetentionService) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(2 * time.Hour)
	defer ticker.Stop()

	// Initial sweep on startup
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.notifyCh:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes expired measurements in batches until a short batch.
func (s *RetentionService) Sweep(ctx context.Context) {
	if s.cfg.Days <= 0 {
		logrus.Debug("Retention is disabled (days <= 0)")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -s.cfg.Days)
	totalDeleted := int64(0)

	for {
		batchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		deleted, err := s.store.DeleteOlderThan(batchCtx, cutoff, retentionBatchSize)
		cancel()

		if err != nil {
			logrus.WithError(err).Error("Failed to sweep expired measurements")
			return
		}

		totalDeleted += deleted
		if deleted < int64(retentionBatchSize) {
			break
		}

		// Small delay between batches to reduce lock contention with ingestion
		time.Sleep(50 * time.Millisecond)
	}

	if totalDeleted > 0 {
		logrus.WithFields(logrus.Fields{
			"deleted_count":  totalDeleted,
			"cutoff_time":    cutoff.Format(time.RFC3339),
			"retention_days": s.cfg.Days,
		}).Info("Swept expired measurements")
	} else {
		logrus.Debug("No expired measurements to sweep")
	}
}
