// Package config loads autocomplete settings from an optional YAML file
// with environment-variable overrides, and validates the result.
package config

import (
	"fmt"
	"os"
	"strconv"

	apperrors "github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// EngineConfig controls ranking and matching.
type EngineConfig struct {
	// TopK is the maximum number of results per query.
	TopK int `yaml:"topK"`
	// WeightExponent dampens item weight: score = relevance * weight^WeightExponent.
	WeightExponent float64 `yaml:"weightExponent"`
	// MaxEditDistance is the largest edit distance a fuzzy match accepts.
	MaxEditDistance int `yaml:"maxEditDistance"`
	// RequireAllFragments drops items not matched by every query fragment.
	RequireAllFragments bool `yaml:"requireAllFragments"`
	// Completion and Fuzzy are the flags used when a caller does not pass
	// its own.
	Completion bool `yaml:"completion"`
	Fuzzy      bool `yaml:"fuzzy"`
	// BatchConcurrency bounds how many queries of a batch run at once.
	BatchConcurrency int `yaml:"batchConcurrency"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls Prometheus collectors.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Load reads a YAML config file (if provided), applies environment-variable
// overrides and validates the result. Missing values keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration matching the classic behaviour: three
// results, linear weight, edit distance up to 3, lenient fragment matching.
func Default() *Config {
	return &Config{
		Engine: DefaultEngine(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "autocomplete",
		},
	}
}

func DefaultEngine() EngineConfig {
	return EngineConfig{
		TopK:             3,
		WeightExponent:   1.0,
		MaxEditDistance:  3,
		Completion:       true,
		Fuzzy:            false,
		BatchConcurrency: 4,
	}
}

func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return apperrors.Newf(apperrors.ErrInvalidConfig, "logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func (e EngineConfig) Validate() error {
	if e.TopK < 1 {
		return apperrors.Newf(apperrors.ErrInvalidConfig, "engine.topK must be at least 1, got %d", e.TopK)
	}
	if !(e.WeightExponent > 0) {
		return apperrors.Newf(apperrors.ErrInvalidConfig, "engine.weightExponent must be positive, got %v", e.WeightExponent)
	}
	if e.MaxEditDistance < 0 {
		return apperrors.Newf(apperrors.ErrInvalidConfig, "engine.maxEditDistance must not be negative, got %d", e.MaxEditDistance)
	}
	if e.BatchConcurrency < 1 {
		return apperrors.Newf(apperrors.ErrInvalidConfig, "engine.batchConcurrency must be at least 1, got %d", e.BatchConcurrency)
	}
	return nil
}

// applyEnvOverrides reads AC_* environment variables and overrides the
// corresponding config fields. Unparseable values are ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AC_ENGINE_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.TopK = n
		}
	}
	if v := os.Getenv("AC_ENGINE_WEIGHT_EXPONENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Engine.WeightExponent = f
		}
	}
	if v := os.Getenv("AC_ENGINE_MAX_EDIT_DISTANCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.MaxEditDistance = n
		}
	}
	if v := os.Getenv("AC_ENGINE_REQUIRE_ALL_FRAGMENTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Engine.RequireAllFragments = b
		}
	}
	if v := os.Getenv("AC_ENGINE_BATCH_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.BatchConcurrency = n
		}
	}
	if v := os.Getenv("AC_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("AC_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("AC_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
}
