// Package services contains the sample normalization, backfill, series
// aggregation, and retention logic.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	app_errors "pico-watt/internal/errors"
	"pico-watt/internal/models"
	"pico-watt/internal/store"
	"pico-watt/internal/types"

	"github.com/sirupsen/logrus"
)

// Ingest outcome statuses as reported on the wire.
const (
	IngestStatusOK      = "ok"
	IngestStatusIgnored = "ignored"
)

// IngestResult describes the outcome of one normalized reading. Ignored is
// not a failure: the reading was valid but below the noise floor and was
// deliberately not persisted.
type IngestResult struct {
	Status      string
	Reason      string
	Measurement *models.Measurement
}

// IngestService validates and transforms one incoming raw reading into a
// stored measurement. The write path is a pure append and is safe under
// arbitrary concurrent invocation.
type IngestService struct {
	store *store.MeasurementStore
	cfg   types.IngestConfig
	now   func() time.Time
}

// NewIngestService creates a new ingest service.
func NewIngestService(measurementStore *store.MeasurementStore, configManager types.ConfigManager) *IngestService {
	return &IngestService{
		store: measurementStore,
		cfg:   configManager.GetIngestConfig(),
		now:   time.Now,
	}
}

// Ingest normalizes one raw watt value and persists it when it clears the
// noise floor. rawWatt is the decoded JSON value of the "watt" field; it may
// be a number, a numeric string, or absent (nil).
func (s *IngestService) Ingest(ctx context.Context, rawWatt any) (IngestResult, error) {
	watt, apiErr := ParseWatt(rawWatt)
	if apiErr != nil {
		return IngestResult{}, apiErr
	}

	if watt < s.cfg.ThresholdWatts {
		return IngestResult{
			Status: IngestStatusIgnored,
			Reason: fmt.Sprintf("watt < %g", s.cfg.ThresholdWatts),
		}, nil
	}

	measurement := &models.Measurement{
		PowerWatts: &watt,
		Timestamp:  s.now().UTC(),
	}
	if s.cfg.EnergyTracking {
		// Rectangular integration over the configured nominal interval.
		// The true delta to the previous sample is deliberately ignored:
		// consumers depend on the totals this produces, and irregular
		// delivery (retries, drops) is accepted as a known bias.
		energy := EnergyKWh(watt, float64(s.cfg.SampleIntervalSeconds))
		measurement.EnergyKWh = &energy
	}

	if err := s.store.Insert(ctx, measurement); err != nil {
		logrus.WithError(err).Error("Failed to persist measurement")
		return IngestResult{}, app_errors.ParseDBError(err)
	}

	return IngestResult{Status: IngestStatusOK, Measurement: measurement}, nil
}

// ParseWatt extracts a power reading from the decoded JSON value of the
// "watt" field. Absence and non-numeric values are invalid input.
func ParseWatt(rawWatt any) (float64, *app_errors.APIError) {
	switch v := rawWatt.(type) {
	case nil:
		return 0, app_errors.NewAPIError(app_errors.ErrValidation, "watt fehlt")
	case float64:
		return v, nil
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, app_errors.NewAPIError(app_errors.ErrValidation, "ungültiger watt-Wert")
		}
		return parsed, nil
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, app_errors.NewAPIError(app_errors.ErrValidation, "ungültiger watt-Wert")
		}
		return parsed, nil
	default:
		return 0, app_errors.NewAPIError(app_errors.ErrValidation, "ungültiger watt-Wert")
	}
}

// EnergyKWh converts an instantaneous power reading into the energy it
// represents over intervalSeconds of wall-clock time.
func EnergyKWh(watts, intervalSeconds float64) float64 {
	return watts * (intervalSeconds / 3600.0) / 1000.0
}
