// Package engine implements the composite ranking pipeline: missing-value
// estimation, admission gating, composite scoring, ranking and the
// field-competitiveness indicator. Every function here is pure; a Config
// is the only state and it is never mutated after construction.
package engine

import (
	"fmt"

	"github.com/yourusername/race-ranker/internal/config"
	"github.com/yourusername/race-ranker/internal/stats"
)

// Weights are the per-signal weights of the composite. Any sign is allowed.
type Weights struct {
	Primary    float64
	Secondary  float64
	Adjustment float64
}

// Display maps the combined z onto the published scale: base + scale*z
type Display struct {
	Base  float64
	Scale float64
}

// CompetitivenessConfig tunes the field-competitiveness indicator
type CompetitivenessConfig struct {
	Enabled        bool
	Gap12Mid       float64
	Gap15Mid       float64
	FocusThreshold float64
}

// GateConfig holds the admission thresholds
type GateConfig struct {
	MinSecondaryCount   int
	MinPrimaryCount     int
	MinValidRatio       float64
	FlatPrimaryRangeMax float64
	FlatPrimaryMinCount int
	FlatScoreRangeMax   float64
	FlatPrimaryEnabled  bool
	LowSignalEnabled    bool
}

// EstimatorConfig holds the ranges and defaults of the secondary estimator
type EstimatorConfig struct {
	PlausibleMin   float64
	PlausibleMax   float64
	TierCMin       float64
	TierCMax       float64
	NeutralDefault float64
	TierAMargin    float64
}

// Config is the immutable engine configuration injected per evaluation
type Config struct {
	Weights         Weights
	Normalization   stats.Method
	Display         Display
	Competitiveness CompetitivenessConfig
	Gate            GateConfig
	Estimator       EstimatorConfig
}

// DefaultConfig returns the documented defaults
func DefaultConfig() Config {
	return Config{
		Weights:       Weights{Primary: 1.0, Secondary: 1.0, Adjustment: 0.4},
		Normalization: stats.MethodStandard,
		Display:       Display{Base: 50.0, Scale: 10.0},
		Competitiveness: CompetitivenessConfig{
			Enabled:        true,
			Gap12Mid:       0.8,
			Gap15Mid:       3.0,
			FocusThreshold: 30,
		},
		Gate: GateConfig{
			MinSecondaryCount:   3,
			MinPrimaryCount:     6,
			MinValidRatio:       0.6,
			FlatPrimaryRangeMax: 0.8,
			FlatPrimaryMinCount: 6,
			FlatScoreRangeMax:   0.2,
			FlatPrimaryEnabled:  true,
			LowSignalEnabled:    true,
		},
		Estimator: EstimatorConfig{
			PlausibleMin:   45.0,
			PlausibleMax:   78.0,
			TierCMin:       55.0,
			TierCMax:       70.0,
			NeutralDefault: 62.0,
			TierAMargin:    2.0,
		},
	}
}

// FromConfig converts the application engine section into an engine Config
func FromConfig(cfg *config.EngineConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("engine config is required")
	}
	method, err := stats.ParseMethod(cfg.Normalization)
	if err != nil {
		return Config{}, err
	}

	ec := Config{
		Weights: Weights{
			Primary:    cfg.Weights.Primary,
			Secondary:  cfg.Weights.Secondary,
			Adjustment: cfg.Weights.Adjustment,
		},
		Normalization: method,
		Display: Display{
			Base:  cfg.Display.Base,
			Scale: cfg.Display.Scale,
		},
		Competitiveness: CompetitivenessConfig{
			Enabled:        cfg.Competitiveness.Enabled,
			Gap12Mid:       cfg.Competitiveness.Gap12Mid,
			Gap15Mid:       cfg.Competitiveness.Gap15Mid,
			FocusThreshold: cfg.Competitiveness.FocusThreshold,
		},
		Gate: GateConfig{
			MinSecondaryCount:   cfg.Gate.MinSecondaryCount,
			MinPrimaryCount:     cfg.Gate.MinPrimaryCount,
			MinValidRatio:       cfg.Gate.MinValidRatio,
			FlatPrimaryRangeMax: cfg.Gate.FlatPrimaryRangeMax,
			FlatPrimaryMinCount: cfg.Gate.FlatPrimaryMinCount,
			FlatScoreRangeMax:   cfg.Gate.FlatScoreRangeMax,
			FlatPrimaryEnabled:  cfg.Gate.FlatPrimaryEnabled,
			LowSignalEnabled:    cfg.Gate.LowSignalEnabled,
		},
		Estimator: EstimatorConfig{
			PlausibleMin:   cfg.Estimator.PlausibleMin,
			PlausibleMax:   cfg.Estimator.PlausibleMax,
			TierCMin:       cfg.Estimator.TierCMin,
			TierCMax:       cfg.Estimator.TierCMax,
			NeutralDefault: cfg.Estimator.NeutralDefault,
			TierAMargin:    cfg.Estimator.TierAMargin,
		},
	}

	return ec, ec.Validate()
}

// Validate checks internal consistency of the engine configuration
func (c Config) Validate() error {
	if c.Normalization != stats.MethodStandard && c.Normalization != stats.MethodRobust {
		return fmt.Errorf("unsupported normalization method %q", c.Normalization)
	}
	if c.Estimator.PlausibleMin > c.Estimator.PlausibleMax {
		return fmt.Errorf("estimator plausible range is inverted")
	}
	if c.Estimator.TierCMin > c.Estimator.TierCMax {
		return fmt.Errorf("estimator tier C range is inverted")
	}
	if c.Estimator.TierAMargin < 0 {
		return fmt.Errorf("estimator tier A margin cannot be negative")
	}
	if c.Gate.MinValidRatio < 0 || c.Gate.MinValidRatio > 1 {
		return fmt.Errorf("gate min valid ratio must be between 0 and 1")
	}
	if c.Gate.MinPrimaryCount < 0 || c.Gate.MinSecondaryCount < 0 || c.Gate.FlatPrimaryMinCount < 0 {
		return fmt.Errorf("gate counts cannot be negative")
	}
	if c.Gate.FlatPrimaryRangeMax < 0 || c.Gate.FlatScoreRangeMax < 0 {
		return fmt.Errorf("gate range thresholds cannot be negative")
	}
	return nil
}
