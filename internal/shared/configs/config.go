package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Analysis    AnalysisConfig    `mapstructure:"analysis"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json console"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// AnalysisConfig holds the thresholds and limits applied to every analyzed batch.
// Keys missing from the config file fall back to DefaultAnalysisConfig.
type AnalysisConfig struct {
	TopASNs              int   `mapstructure:"top_asns" validate:"min=1"`
	TopOriginIPs         int   `mapstructure:"top_origin_ips" validate:"min=1"`
	TopQueryParams       int   `mapstructure:"top_query_params" validate:"min=1"`
	TopUserAgents        int   `mapstructure:"top_user_agents" validate:"min=1"`
	MinRequestsThreshold int64 `mapstructure:"min_requests_threshold" validate:"min=1"`
	MaxSamplesPerSeries  int   `mapstructure:"max_samples_per_series" validate:"min=0"` // 0 keeps every sample
	MaxBatchBytes        int64 `mapstructure:"max_batch_bytes" validate:"min=1"`

	// AggregationPartitions > 1 spreads large batches over that many URL-keyed workers.
	// 0 (default) and 1 aggregate on the calling goroutine.
	AggregationPartitions int `mapstructure:"aggregation_partitions" validate:"min=0,max=64"`
}

// DefaultAnalysisConfig returns the analysis settings used when the config file omits them.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		TopASNs:              10,
		TopOriginIPs:         5,
		TopQueryParams:       10,
		TopUserAgents:        10,
		MinRequestsThreshold: 5,
		MaxSamplesPerSeries:  0,
		MaxBatchBytes:        32 << 20,

		AggregationPartitions: 0,
	}
}
