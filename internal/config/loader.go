package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides
const EnvPrefix = "RACE_RANKER"

// DefaultPath is used when no config path is given
const DefaultPath = "config/config.yaml"

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	v := newViper()
	SetDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

// Default returns the configuration built from defaults alone
func Default() *Config {
	v := newViper()
	SetDefaults(v)
	cfg, err := unmarshal(v)
	if err != nil {
		// defaults are static and always decode
		panic(err)
	}
	return cfg
}

// SetDefaults registers the documented default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "race-ranker")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("engine.weights.primary", 1.0)
	v.SetDefault("engine.weights.secondary", 1.0)
	v.SetDefault("engine.weights.adjustment", 0.4)
	v.SetDefault("engine.normalization", "standard")
	v.SetDefault("engine.display.base", 50.0)
	v.SetDefault("engine.display.scale", 10.0)

	v.SetDefault("engine.competitiveness.enabled", true)
	v.SetDefault("engine.competitiveness.gap12_mid", 0.8)
	v.SetDefault("engine.competitiveness.gap15_mid", 3.0)
	v.SetDefault("engine.competitiveness.focus_threshold", 30.0)

	v.SetDefault("engine.gate.min_secondary_count", 3)
	v.SetDefault("engine.gate.min_primary_count", 6)
	v.SetDefault("engine.gate.min_valid_ratio", 0.6)
	v.SetDefault("engine.gate.flat_primary_range_max", 0.8)
	v.SetDefault("engine.gate.flat_primary_min_count", 6)
	v.SetDefault("engine.gate.flat_score_range_max", 0.2)
	v.SetDefault("engine.gate.flat_primary_enabled", true)
	v.SetDefault("engine.gate.low_signal_enabled", true)

	v.SetDefault("engine.estimator.plausible_min", 45.0)
	v.SetDefault("engine.estimator.plausible_max", 78.0)
	v.SetDefault("engine.estimator.tier_c_min", 55.0)
	v.SetDefault("engine.estimator.tier_c_max", 70.0)
	v.SetDefault("engine.estimator.neutral_default", 62.0)
	v.SetDefault("engine.estimator.tier_a_margin", 2.0)

	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.format", "json")

	v.SetDefault("adjustment.enabled", false)
	v.SetDefault("adjustment.cache_ttl_seconds", 600)

	v.SetDefault("racecard.low_information_keywords", []string{"新馬"})

	v.SetDefault("betting.enabled", false)
	v.SetDefault("betting.unit", 100)

	v.SetDefault("metrics.enabled", true)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
