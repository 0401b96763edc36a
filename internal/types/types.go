package types

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetCORSConfig() CORSConfig
	GetLogConfig() LogConfig
	GetDatabaseConfig() DatabaseConfig
	GetEffectiveServerConfig() ServerConfig
	GetIngestConfig() IngestConfig
	GetBackfillConfig() BackfillConfig
	GetSeriesConfig() SeriesConfig
	GetRetentionConfig() RetentionConfig
	Validate() error
	DisplayServerConfig()
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port                    int    `json:"port"`
	Host                    string `json:"host"`
	ReadTimeout             int    `json:"read_timeout"`
	WriteTimeout            int    `json:"write_timeout"`
	IdleTimeout             int    `json:"idle_timeout"`
	GracefulShutdownTimeout int    `json:"graceful_shutdown_timeout"`
}

// CORSConfig represents CORS configuration
type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	EnableFile bool   `json:"enable_file"`
	FilePath   string `json:"file_path"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	DSN string `json:"dsn"`
}

// IngestConfig controls sample normalization on the ingest path.
type IngestConfig struct {
	// ThresholdWatts is the noise floor: readings below it are accepted by
	// the protocol but not persisted.
	ThresholdWatts float64 `json:"threshold_watts"`
	// SampleIntervalSeconds is the nominal wall-clock interval one sample
	// represents. Energy attribution always uses this constant, never the
	// observed delta to the previous sample.
	SampleIntervalSeconds int  `json:"sample_interval_seconds"`
	EnergyTracking        bool `json:"energy_tracking"`
}

// BackfillConfig controls the synthetic catch-up generator.
type BackfillConfig struct {
	Enabled  bool    `json:"enabled"`
	Days     int     `json:"days"`
	MinWatts float64 `json:"min_watts"`
	MaxWatts float64 `json:"max_watts"`
}

// SeriesConfig holds query-path defaults.
type SeriesConfig struct {
	// Fill is the default missing-bucket policy: "null" or "zero".
	Fill string `json:"fill"`
}

// RetentionConfig controls the age-based measurement sweep.
type RetentionConfig struct {
	// Days is the age cutoff; 0 disables the sweep.
	Days int `json:"days"`
}
