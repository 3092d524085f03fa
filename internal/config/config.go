package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Provider modes.
const (
	ModeLive      = "live"
	ModeSimulated = "simulated"
)

// Config holds the full application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Provider   ProviderConfig   `yaml:"provider" mapstructure:"provider"`
	Analysis   AnalysisConfig   `yaml:"analysis" mapstructure:"analysis"`
	Geocompute GeocomputeConfig `yaml:"geocompute" mapstructure:"geocompute"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port                int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins      []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	ShutdownTimeoutSecs int      `yaml:"shutdown_timeout_secs" mapstructure:"shutdown_timeout_secs"`
}

// ShutdownTimeout returns the graceful shutdown deadline.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSecs) * time.Second
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ProviderConfig selects where measurements come from.
type ProviderConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// AnalysisConfig holds request defaults.
type AnalysisConfig struct {
	DefaultBufferMeters int `yaml:"default_buffer_meters" mapstructure:"default_buffer_meters"`
	DefaultWindowDays   int `yaml:"default_window_days" mapstructure:"default_window_days"`
}

// GeocomputeConfig configures the remote geospatial compute service.
type GeocomputeConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Token       string  `yaml:"token" mapstructure:"token"`
	Project     string  `yaml:"project" mapstructure:"project"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	Concurrency int     `yaml:"concurrency" mapstructure:"concurrency"`
	MaxPixels   float64 `yaml:"max_pixels" mapstructure:"max_pixels"`
}

// Timeout returns the per-request timeout.
func (g GeocomputeConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SOIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5000"})
	v.SetDefault("server.shutdown_timeout_secs", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("provider.mode", ModeSimulated)
	v.SetDefault("analysis.default_buffer_meters", 50)
	v.SetDefault("analysis.default_window_days", 90)
	v.SetDefault("geocompute.base_url", "")
	v.SetDefault("geocompute.token", "")
	v.SetDefault("geocompute.project", "")
	v.SetDefault("geocompute.timeout_secs", 120)
	v.SetDefault("geocompute.rate_limit", 20)
	v.SetDefault("geocompute.concurrency", 4)
	v.SetDefault("geocompute.max_pixels", 1e9)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate reports every invalid setting in one error.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be > 0 and <= 65535")
	}
	if c.Analysis.DefaultBufferMeters <= 0 {
		errs = append(errs, "analysis.default_buffer_meters must be > 0")
	}
	if c.Analysis.DefaultWindowDays <= 0 {
		errs = append(errs, "analysis.default_window_days must be > 0")
	}

	switch c.Provider.Mode {
	case ModeSimulated:
	case ModeLive:
		if c.Geocompute.BaseURL == "" {
			errs = append(errs, "geocompute.base_url is required in live mode")
		}
		if c.Geocompute.Concurrency <= 0 {
			errs = append(errs, "geocompute.concurrency must be > 0")
		}
		if c.Geocompute.RateLimit <= 0 {
			errs = append(errs, "geocompute.rate_limit must be > 0")
		}
	default:
		errs = append(errs, fmt.Sprintf("provider.mode must be one of %s, got %q", strings.Join(modes, ", "), c.Provider.Mode))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

var modes = []string{ModeLive, ModeSimulated}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
