// Package store provides access to the measurement table.
package store

import (
	"context"
	"errors"
	"time"

	"pico-watt/internal/models"

	"gorm.io/gorm"
)

// MeasurementStore wraps the measurement table with short-lived,
// context-scoped operations. Every write is a single-row append; there are
// no multi-statement transactions.
type MeasurementStore struct {
	db *gorm.DB
}

// NewMeasurementStore creates a store over the given database.
func NewMeasurementStore(db *gorm.DB) *MeasurementStore {
	return &MeasurementStore{db: db}
}

// DB exposes the underlying connection for migration at startup.
func (s *MeasurementStore) DB() *gorm.DB {
	return s.db
}

// Insert appends one measurement.
func (s *MeasurementStore) Insert(ctx context.Context, m *models.Measurement) error {
	return s.db.WithContext(ctx).Create(m).Error
}

// Latest returns the most recent measurement by timestamp, or nil when the
// store is empty.
func (s *MeasurementStore) Latest(ctx context.Context) (*models.Measurement, error) {
	var m models.Measurement
	err := s.db.WithContext(ctx).Order("timestamp DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// LatestTimestamp returns the most recent stored timestamp, or nil when the
// store is empty.
func (s *MeasurementStore) LatestTimestamp(ctx context.Context) (*time.Time, error) {
	m, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	ts := m.Timestamp
	return &ts, nil
}

// Since returns all measurements with timestamp >= start in ascending order.
// Density is arbitrary: duplicates, gaps, and irregular spacing are all valid.
func (s *MeasurementStore) Since(ctx context.Context, start time.Time) ([]models.Measurement, error) {
	var measurements []models.Measurement
	err := s.db.WithContext(ctx).
		Where("timestamp >= ?", start).
		Order("timestamp ASC").
		Find(&measurements).Error
	if err != nil {
		return nil, err
	}
	return measurements, nil
}

// DeleteOlderThan removes up to batchSize measurements older than cutoff and
// reports how many rows were deleted. Callers loop until a short batch.
func (s *MeasurementStore) DeleteOlderThan(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	var result *gorm.DB
	switch s.db.Dialector.Name() {
	case "postgres":
		// PostgreSQL does not support LIMIT in DELETE directly.
		result = s.db.WithContext(ctx).Exec(`
			WITH c AS (
				SELECT id
				FROM measurements
				WHERE timestamp < ?
				ORDER BY timestamp
				LIMIT ?
			)
			DELETE FROM measurements
			WHERE id IN (SELECT id FROM c)
		`, cutoff, batchSize)
	case "mysql":
		// MySQL supports ORDER BY + LIMIT in DELETE.
		result = s.db.WithContext(ctx).Exec(
			"DELETE FROM measurements WHERE timestamp < ? ORDER BY timestamp LIMIT ?",
			cutoff,
			batchSize,
		)
	case "sqlite":
		// Use rowid to apply LIMIT efficiently.
		result = s.db.WithContext(ctx).Exec(
			"DELETE FROM measurements WHERE rowid IN (SELECT rowid FROM measurements WHERE timestamp < ? LIMIT ?)",
			cutoff,
			batchSize,
		)
	default:
		result = s.db.WithContext(ctx).Where("timestamp < ?", cutoff).Limit(batchSize).Delete(&models.Measurement{})
	}
	return result.RowsAffected, result.Error
}

// Count returns the total number of stored measurements.
func (s *MeasurementStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Measurement{}).Count(&count).Error
	return count, err
}
