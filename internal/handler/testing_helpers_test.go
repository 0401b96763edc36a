package handler_test

import (
	"testing"

	"pico-watt/internal/config"
	"pico-watt/internal/handler"
	"pico-watt/internal/models"
	"pico-watt/internal/services"
	"pico-watt/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer wires a Server over an in-memory database, mirroring the
// production dependency graph without the container.
func setupTestServer(t *testing.T, mock *config.MockConfig) *handler.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Measurement{}))

	measurementStore := store.NewMeasurementStore(db)

	return handler.NewServer(handler.ServerParams{
		DB:               db,
		ConfigManager:    mock,
		IngestService:    services.NewIngestService(measurementStore, mock),
		SeriesService:    services.NewSeriesService(measurementStore, mock),
		RetentionService: services.NewRetentionService(measurementStore, mock),
	})
}
