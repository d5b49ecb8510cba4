package configs

import (
	"fmt"
	"strings"

	"cdn-insights/internal/shared/validators"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CDN_INSIGHTS_ANALYSIS_TOP_ASNS=20.
const EnvPrefix = "CDN_INSIGHTS"

// LoadConfig reads configuration from file, applies environment overrides and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// setDefaults registers JSON logs and DefaultAnalysisConfig so that both are optional in the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.format", "json")

	d := DefaultAnalysisConfig()
	v.SetDefault("analysis.top_asns", d.TopASNs)
	v.SetDefault("analysis.top_origin_ips", d.TopOriginIPs)
	v.SetDefault("analysis.top_query_params", d.TopQueryParams)
	v.SetDefault("analysis.top_user_agents", d.TopUserAgents)
	v.SetDefault("analysis.min_requests_threshold", d.MinRequestsThreshold)
	v.SetDefault("analysis.max_samples_per_series", d.MaxSamplesPerSeries)
	v.SetDefault("analysis.max_batch_bytes", d.MaxBatchBytes)
	v.SetDefault("analysis.aggregation_partitions", d.AggregationPartitions)
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "server.port")
	if e.StructNamespace() != "" {
		// Extract nested field path (e.g., "Config.Server.Port" -> "server.port")
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix, convert to lowercase with dots
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
