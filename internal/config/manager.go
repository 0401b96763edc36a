// Package config provides environment-based configuration management.
package config

import (
	"fmt"

	"pico-watt/internal/types"
	"pico-watt/internal/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Manager implements types.ConfigManager. All values are read once from the
// environment at construction time.
type Manager struct {
	serverConfig    types.ServerConfig
	corsConfig      types.CORSConfig
	logConfig       types.LogConfig
	databaseConfig  types.DatabaseConfig
	ingestConfig    types.IngestConfig
	backfillConfig  types.BackfillConfig
	seriesConfig    types.SeriesConfig
	retentionConfig types.RetentionConfig
}

// NewManager creates a new configuration manager from the environment.
func NewManager() (types.ConfigManager, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables only")
	}

	manager := &Manager{
		serverConfig: types.ServerConfig{
			Host:                    utils.GetEnvOrDefault("HOST", "0.0.0.0"),
			Port:                    utils.ParseInteger(utils.GetEnvOrDefault("PORT", ""), 3000),
			ReadTimeout:             utils.ParseInteger(utils.GetEnvOrDefault("SERVER_READ_TIMEOUT", ""), 60),
			WriteTimeout:            utils.ParseInteger(utils.GetEnvOrDefault("SERVER_WRITE_TIMEOUT", ""), 60),
			IdleTimeout:             utils.ParseInteger(utils.GetEnvOrDefault("SERVER_IDLE_TIMEOUT", ""), 120),
			GracefulShutdownTimeout: utils.ParseInteger(utils.GetEnvOrDefault("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT", ""), 10),
		},
		corsConfig: types.CORSConfig{
			Enabled:          utils.ParseBoolean(utils.GetEnvOrDefault("ENABLE_CORS", ""), true),
			AllowedOrigins:   utils.ParseArray(utils.GetEnvOrDefault("ALLOWED_ORIGINS", ""), []string{"*"}),
			AllowedMethods:   utils.ParseArray(utils.GetEnvOrDefault("ALLOWED_METHODS", ""), []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders:   utils.ParseArray(utils.GetEnvOrDefault("ALLOWED_HEADERS", ""), []string{"*"}),
			AllowCredentials: utils.ParseBoolean(utils.GetEnvOrDefault("ALLOW_CREDENTIALS", ""), false),
		},
		logConfig: types.LogConfig{
			Level:      utils.GetEnvOrDefault("LOG_LEVEL", "info"),
			Format:     utils.GetEnvOrDefault("LOG_FORMAT", "text"),
			EnableFile: utils.ParseBoolean(utils.GetEnvOrDefault("LOG_ENABLE_FILE", ""), false),
			FilePath:   utils.GetEnvOrDefault("LOG_FILE_PATH", "./data/logs/pico-watt.log"),
		},
		databaseConfig: types.DatabaseConfig{
			DSN: utils.GetEnvOrDefault("DATABASE_DSN", "./data/pico-watt.db"),
		},
		ingestConfig: types.IngestConfig{
			ThresholdWatts:        utils.ParseFloat(utils.GetEnvOrDefault("INGEST_THRESHOLD_WATTS", ""), 10.0),
			SampleIntervalSeconds: utils.ParseInteger(utils.GetEnvOrDefault("SAMPLE_INTERVAL_SECONDS", ""), 5),
			EnergyTracking:        utils.ParseBoolean(utils.GetEnvOrDefault("ENERGY_TRACKING", ""), true),
		},
		backfillConfig: types.BackfillConfig{
			Enabled:  utils.ParseBoolean(utils.GetEnvOrDefault("BACKFILL_ENABLED", ""), true),
			Days:     utils.ParseInteger(utils.GetEnvOrDefault("BACKFILL_DAYS", ""), 365),
			MinWatts: utils.ParseFloat(utils.GetEnvOrDefault("BACKFILL_MIN_WATTS", ""), 5.0),
			MaxWatts: utils.ParseFloat(utils.GetEnvOrDefault("BACKFILL_MAX_WATTS", ""), 100.0),
		},
		seriesConfig: types.SeriesConfig{
			Fill: utils.GetEnvOrDefault("SERIES_FILL", "null"),
		},
		retentionConfig: types.RetentionConfig{
			Days: utils.ParseInteger(utils.GetEnvOrDefault("RETENTION_DAYS", ""), 365),
		},
	}

	if err := manager.Validate(); err != nil {
		return nil, err
	}

	return manager, nil
}

// Validate checks the configuration for invalid combinations.
func (m *Manager) Validate() error {
	if m.serverConfig.Port < 1 || m.serverConfig.Port > 65535 {
		return fmt.Errorf("invalid port: %d", m.serverConfig.Port)
	}
	if m.databaseConfig.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if m.ingestConfig.ThresholdWatts < 0 {
		return fmt.Errorf("invalid ingest threshold: %f", m.ingestConfig.ThresholdWatts)
	}
	if m.ingestConfig.SampleIntervalSeconds <= 0 {
		return fmt.Errorf("invalid sample interval: %d", m.ingestConfig.SampleIntervalSeconds)
	}
	if m.backfillConfig.Days <= 0 {
		return fmt.Errorf("invalid backfill horizon: %d days", m.backfillConfig.Days)
	}
	if m.backfillConfig.MinWatts > m.backfillConfig.MaxWatts {
		return fmt.Errorf("backfill watt range is inverted: min %f > max %f",
			m.backfillConfig.MinWatts, m.backfillConfig.MaxWatts)
	}
	if fill := m.seriesConfig.Fill; fill != "null" && fill != "zero" {
		return fmt.Errorf("invalid SERIES_FILL %q: must be \"null\" or \"zero\"", fill)
	}
	if m.retentionConfig.Days < 0 {
		return fmt.Errorf("invalid retention days: %d", m.retentionConfig.Days)
	}
	return nil
}

// GetEffectiveServerConfig returns the server configuration.
func (m *Manager) GetEffectiveServerConfig() types.ServerConfig {
	return m.serverConfig
}

// GetCORSConfig returns the CORS configuration.
func (m *Manager) GetCORSConfig() types.CORSConfig {
	return m.corsConfig
}

// GetLogConfig returns the logging configuration.
func (m *Manager) GetLogConfig() types.LogConfig {
	return m.logConfig
}

// GetDatabaseConfig returns the database configuration.
func (m *Manager) GetDatabaseConfig() types.DatabaseConfig {
	return m.databaseConfig
}

// GetIngestConfig returns the sample normalization configuration.
func (m *Manager) GetIngestConfig() types.IngestConfig {
	return m.ingestConfig
}

// GetBackfillConfig returns the backfill generator configuration.
func (m *Manager) GetBackfillConfig() types.BackfillConfig {
	return m.backfillConfig
}

// GetSeriesConfig returns the series query defaults.
func (m *Manager) GetSeriesConfig() types.SeriesConfig {
	return m.seriesConfig
}

// GetRetentionConfig returns the retention sweep configuration.
func (m *Manager) GetRetentionConfig() types.RetentionConfig {
	return m.retentionConfig
}

// DisplayServerConfig logs the effective configuration at startup.
func (m *Manager) DisplayServerConfig() {
	logrus.Info("")
	logrus.Info("======= Server Configuration =======")
	logrus.Infof("  Listen: %s:%d", m.serverConfig.Host, m.serverConfig.Port)
	logrus.Infof("  Database: %s", m.databaseConfig.DSN)
	logrus.Infof("  Ingest threshold: %.1f W, nominal interval: %ds, energy tracking: %v",
		m.ingestConfig.ThresholdWatts, m.ingestConfig.SampleIntervalSeconds, m.ingestConfig.EnergyTracking)
	logrus.Infof("  Backfill: enabled=%v horizon=%dd range=[%.0f, %.0f] W",
		m.backfillConfig.Enabled, m.backfillConfig.Days, m.backfillConfig.MinWatts, m.backfillConfig.MaxWatts)
	logrus.Infof("  Series fill policy: %s", m.seriesConfig.Fill)
	logrus.Infof("  Retention: %d days", m.retentionConfig.Days)
	logrus.Info("====================================")
	logrus.Info("")
}
