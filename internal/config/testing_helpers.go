package config

import (
	"pico-watt/internal/types"
)

// MockConfig implements types.ConfigManager for testing
type MockConfig struct {
	DSN                   string
	ThresholdWatts        float64
	SampleIntervalSeconds int
	EnergyTracking        bool
	BackfillDays          int
	SeriesFill            string
	RetentionDays         int
}

// NewMockConfig returns a MockConfig with the mature production defaults.
func NewMockConfig() *MockConfig {
	return &MockConfig{
		DSN:                   ":memory:",
		ThresholdWatts:        10.0,
		SampleIntervalSeconds: 5,
		EnergyTracking:        true,
		BackfillDays:          365,
		SeriesFill:            "null",
		RetentionDays:         365,
	}
}

// GetEffectiveServerConfig returns mock server configuration
func (m *MockConfig) GetEffectiveServerConfig() types.ServerConfig {
	return types.ServerConfig{
		Port:                    3000,
		Host:                    "0.0.0.0",
		ReadTimeout:             60,
		WriteTimeout:            60,
		IdleTimeout:             120,
		GracefulShutdownTimeout: 10,
	}
}

// GetCORSConfig returns mock CORS configuration
func (m *MockConfig) GetCORSConfig() types.CORSConfig {
	return types.CORSConfig{
		Enabled:          false,
		AllowedOrigins:   []string{},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}
}

// GetLogConfig returns mock log configuration
func (m *MockConfig) GetLogConfig() types.LogConfig {
	return types.LogConfig{
		Level:      "info",
		Format:     "text",
		EnableFile: false,
		FilePath:   "./data/logs/pico-watt.log",
	}
}

// GetDatabaseConfig returns mock database configuration
func (m *MockConfig) GetDatabaseConfig() types.DatabaseConfig {
	return types.DatabaseConfig{
		DSN: m.DSN,
	}
}

// GetIngestConfig returns mock ingest configuration
func (m *MockConfig) GetIngestConfig() types.IngestConfig {
	return types.IngestConfig{
		ThresholdWatts:        m.ThresholdWatts,
		SampleIntervalSeconds: m.SampleIntervalSeconds,
		EnergyTracking:        m.EnergyTracking,
	}
}

// GetBackfillConfig returns mock backfill configuration
func (m *MockConfig) GetBackfillConfig() types.BackfillConfig {
	return types.BackfillConfig{
		Enabled:  true,
		Days:     m.BackfillDays,
		MinWatts: 5.0,
		MaxWatts: 100.0,
	}
}

// GetSeriesConfig returns mock series configuration
func (m *MockConfig) GetSeriesConfig() types.SeriesConfig {
	return types.SeriesConfig{
		Fill: m.SeriesFill,
	}
}

// GetRetentionConfig returns mock retention configuration
func (m *MockConfig) GetRetentionConfig() types.RetentionConfig {
	return types.RetentionConfig{
		Days: m.RetentionDays,
	}
}

// Validate always succeeds for the mock
func (m *MockConfig) Validate() error {
	return nil
}

// DisplayServerConfig is a no-op for the mock
func (m *MockConfig) DisplayServerConfig() {}
