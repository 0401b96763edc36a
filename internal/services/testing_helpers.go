package services

import (
	"testing"

	"pico-watt/internal/models"
	"pico-watt/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore creates a measurement store over an in-memory SQLite
// database (pure Go, no CGO).
func setupTestStore(t *testing.T) *store.MeasurementStore {
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

	return store.NewMeasurementStore(db)
}
