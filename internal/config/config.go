package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds all configuration for the monitor server
type AppConfig struct {
	Server   ServerSettings   `yaml:"server"`
	Data     DataSettings     `yaml:"data"`
	Forecast ForecastSettings `yaml:"forecast"`
	Logging  LoggingConfig    `yaml:"logging"`
}

// ServerSettings contains HTTP server configuration
type ServerSettings struct {
	Port             int           `yaml:"port"`
	Host             string        `yaml:"host"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	AllowedOrigins   []string      `yaml:"allowed_origins"`
	DashboardPath    string        `yaml:"dashboard_path"`
	LivePushInterval time.Duration `yaml:"live_push_interval"`
}

// DataSettings contains reading-source settings
type DataSettings struct {
	// SourcePath is the optional delimited reading file. When it is missing
	// or malformed the pipeline generates a synthetic series instead.
	SourcePath    string        `yaml:"source_path"`
	FallbackHours int           `yaml:"fallback_hours"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
}

// ForecastSettings contains the optional model artifact location
type ForecastSettings struct {
	ArtifactPath string `yaml:"artifact_path"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// LoadAppConfig loads configuration from a YAML file
func LoadAppConfig(path string) (*AppConfig, error) {
	yamlData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var config AppConfig
	if err := yaml.Unmarshal(yamlData, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	config.ApplyDefaults()
	config.OverrideFromEnv()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &config, nil
}

// ApplyDefaults sets default values for any unset fields
func (ac *AppConfig) ApplyDefaults() {
	if ac.Server.Port == 0 {
		ac.Server.Port = 8080
	}
	if ac.Server.Host == "" {
		ac.Server.Host = "localhost"
	}
	if ac.Server.ReadTimeout == 0 {
		ac.Server.ReadTimeout = 60 * time.Second
	}
	if ac.Server.WriteTimeout == 0 {
		ac.Server.WriteTimeout = 10 * time.Second
	}
	if ac.Server.DashboardPath == "" {
		ac.Server.DashboardPath = "web/templates/dashboard.html"
	}
	if ac.Server.LivePushInterval == 0 {
		ac.Server.LivePushInterval = 10 * time.Second
	}
	if ac.Data.SourcePath == "" {
		ac.Data.SourcePath = "thermal_data.csv"
	}
	if ac.Data.FallbackHours == 0 {
		ac.Data.FallbackHours = 48
	}
	if ac.Data.CacheTTL == 0 {
		ac.Data.CacheTTL = 1 * time.Minute
	}
	if ac.Forecast.ArtifactPath == "" {
		ac.Forecast.ArtifactPath = "thermal_model.json"
	}
	if ac.Logging.Level == "" {
		ac.Logging.Level = "info"
	}
	if ac.Logging.Format == "" {
		ac.Logging.Format = "json"
	}
}

// OverrideFromEnv overrides config values from environment variables
func (ac *AppConfig) OverrideFromEnv() {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err == nil {
			ac.Server.Port = port
		}
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		ac.Server.Host = v
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		ac.Data.SourcePath = v
	}
	if v := os.Getenv("FORECAST_ARTIFACT"); v != "" {
		ac.Forecast.ArtifactPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		ac.Logging.Level = v
	}
}

// Validate checks if the configuration is valid
func (ac *AppConfig) Validate() error {
	if ac.Server.Port < 1 || ac.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if ac.Data.FallbackHours < 1 || ac.Data.FallbackHours > 168 {
		return fmt.Errorf("fallback hours must be between 1 and 168")
	}
	if ac.Server.LivePushInterval < time.Second {
		return fmt.Errorf("live push interval must be at least 1 second")
	}
	return nil
}

// String returns a string representation of the configuration
func (ac *AppConfig) String() string {
	return fmt.Sprintf("AppConfig{Server: %+v, Data: %+v, Forecast: %+v, Logging: %+v}",
		ac.Server,
		ac.Data,
		ac.Forecast,
		ac.Logging,
	)
}
