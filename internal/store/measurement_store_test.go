package store

import (
	"context"
	"testing"
	"time"

	"pico-watt/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore creates an in-memory SQLite database (pure Go, no CGO)
func setupTestStore(t *testing.T) *MeasurementStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Measurement{}))

	return NewMeasurementStore(db)
}

func insertSample(t *testing.T, s *MeasurementStore, watts, energy float64, ts time.Time) {
	t.Helper()
	require.NoError(t, s.Insert(context.Background(), &models.Measurement{
		PowerWatts: &watts,
		EnergyKWh:  &energy,
		Timestamp:  ts,
	}))
}

func TestLatestOnEmptyStore(t *testing.T) {
	s := setupTestStore(t)

	m, err := s.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, m)

	ts, err := s.LatestTimestamp(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ts)
}

func TestLatestReturnsMostRecent(t *testing.T) {
	s := setupTestStore(t)
	base := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	insertSample(t, s, 40, 0.04, base)
	insertSample(t, s, 60, 0.06, base.Add(2*time.Hour))
	insertSample(t, s, 50, 0.05, base.Add(time.Hour))

	m, err := s.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 60.0, *m.PowerWatts)
	assert.True(t, m.Timestamp.Equal(base.Add(2*time.Hour)))
}

func TestSinceReturnsAscendingWindow(t *testing.T) {
	s := setupTestStore(t)
	base := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	insertSample(t, s, 10, 0.01, base.Add(-time.Hour))
	insertSample(t, s, 30, 0.03, base.Add(time.Hour))
	insertSample(t, s, 20, 0.02, base)

	got, err := s.Since(context.Background(), base)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 20.0, *got[0].PowerWatts)
	assert.Equal(t, 30.0, *got[1].PowerWatts)
}

func TestSinceToleratesDuplicateTimestamps(t *testing.T) {
	s := setupTestStore(t)
	ts := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	insertSample(t, s, 20, 0.02, ts)
	insertSample(t, s, 30, 0.03, ts)

	got, err := s.Since(context.Background(), ts)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDeleteOlderThan(t *testing.T) {
	s := setupTestStore(t)
	cutoff := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	insertSample(t, s, 20, 0.02, cutoff.AddDate(0, 0, -2))
	insertSample(t, s, 30, 0.03, cutoff.AddDate(0, 0, -1))
	insertSample(t, s, 40, 0.04, cutoff.Add(time.Hour))

	deleted, err := s.DeleteOlderThan(context.Background(), cutoff, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteOlderThanHonorsBatchSize(t *testing.T) {
	s := setupTestStore(t)
	cutoff := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		insertSample(t, s, 20, 0.02, cutoff.Add(-time.Duration(i)*time.Hour))
	}

	deleted, err := s.DeleteOlderThan(context.Background(), cutoff, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
