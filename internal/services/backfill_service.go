package services

import (
	"context"
	"sync"
	"time"

	"pico-watt/internal/models"
	"pico-watt/internal/store"
	"pico-watt/internal/types"
	"pico-watt/internal/utils"

	"github.com/sirupsen/logrus"
)

// BackfillService synthesizes hourly measurements between the last stored
// sample and now, so demo and staging deployments have continuous coverage
// without a live feed. It is explicitly invoked (once, at startup) and can
// be disabled entirely via configuration; production ingestion never
// triggers it.
type BackfillService struct {
	store     *store.MeasurementStore
	cfg       types.BackfillConfig
	ingestCfg types.IngestConfig

	// mu serializes runs: the MAX(timestamp) read followed by many inserts
	// races against a concurrent run, but not against ordinary ingestion.
	mu sync.Mutex

	now       func() time.Time
	randWatts func(min, max float64) float64
}

// NewBackfillService creates a new backfill generator.
func NewBackfillService(measurementStore *store.MeasurementStore, configManager types.ConfigManager) *BackfillService {
	return &BackfillService{
		store:     measurementStore,
		cfg:       configManager.GetBackfillConfig(),
		ingestCfg: configManager.GetIngestConfig(),
		now:       time.Now,
		randWatts: utils.RandomFloatInRange,
	}
}

// Enabled reports whether synthetic backfill is configured to run.
func (s *BackfillService) Enabled() bool {
	return s.cfg.Enabled
}

// Run advances hourly coverage from the last stored timestamp to the top of
// the current hour and returns the number of rows inserted. Running it again
// without intervening data is a no-op, which it re-verifies under the lock.
func (s *BackfillService) Run(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, err := s.store.LatestTimestamp(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	end := now.Truncate(time.Hour)

	var start time.Time
	if last != nil {
		start = last.Truncate(time.Hour).Add(time.Hour)
	} else {
		start = now.AddDate(0, 0, -s.cfg.Days).Truncate(time.Hour)
	}

	if start.After(end) {
		logrus.Debug("Backfill already caught up, nothing to do")
		return 0, nil
	}

	inserted := 0
	for t := start; !t.After(end); t = t.Add(time.Hour) {
		watt := s.randWatts(s.cfg.MinWatts, s.cfg.MaxWatts)

		// Same noise floor as live ingestion: sub-threshold hours
		// contribute nothing and stay as gaps.
		if watt < s.ingestCfg.ThresholdWatts {
			continue
		}

		energy := EnergyKWh(watt, 3600)
		if err := s.store.Insert(ctx, &models.Measurement{
			PowerWatts: &watt,
			EnergyKWh:  &energy,
			Timestamp:  t,
		}); err != nil {
			return inserted, err
		}
		inserted++
	}

	logrus.WithFields(logrus.Fields{
		"inserted": inserted,
		"from":     start.Format(time.RFC3339),
		"to":       end.Format(time.RFC3339),
	}).Info("Backfill completed")

	return inserted, nil
}
