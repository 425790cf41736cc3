// Package config provides configuration management for the race ranker.
package config

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Engine     EngineConfig     `mapstructure:"engine" validate:"required"`
	Batch      BatchConfig      `mapstructure:"batch" validate:"required"`
	Adjustment AdjustmentConfig `mapstructure:"adjustment"`
	Racecard   RacecardConfig   `mapstructure:"racecard"`
	Betting    BettingConfig    `mapstructure:"betting"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// EngineConfig holds every tunable of the ranking pipeline
type EngineConfig struct {
	Weights         WeightsConfig         `mapstructure:"weights"`
	Normalization   string                `mapstructure:"normalization" validate:"required,normmethod"`
	Display         DisplayConfig         `mapstructure:"display"`
	Competitiveness CompetitivenessConfig `mapstructure:"competitiveness"`
	Gate            GateConfig            `mapstructure:"gate"`
	Estimator       EstimatorConfig       `mapstructure:"estimator"`
}

// WeightsConfig are the composite weights. Any sign is accepted and all
// zero is valid.
type WeightsConfig struct {
	Primary    float64 `mapstructure:"primary"`
	Secondary  float64 `mapstructure:"secondary"`
	Adjustment float64 `mapstructure:"adjustment"`
}

// DisplayConfig maps combined z onto the published scale
type DisplayConfig struct {
	Base  float64 `mapstructure:"base"`
	Scale float64 `mapstructure:"scale" validate:"gt=0"`
}

// CompetitivenessConfig tunes the field-competitiveness indicator
type CompetitivenessConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	Gap12Mid       float64 `mapstructure:"gap12_mid" validate:"gt=0"`
	Gap15Mid       float64 `mapstructure:"gap15_mid" validate:"gt=0"`
	FocusThreshold float64 `mapstructure:"focus_threshold" validate:"gte=0,lte=100"`
}

// GateConfig holds the admission thresholds
type GateConfig struct {
	MinSecondaryCount   int     `mapstructure:"min_secondary_count" validate:"gte=0"`
	MinPrimaryCount     int     `mapstructure:"min_primary_count" validate:"gte=0"`
	MinValidRatio       float64 `mapstructure:"min_valid_ratio" validate:"gte=0,lte=1"`
	FlatPrimaryRangeMax float64 `mapstructure:"flat_primary_range_max" validate:"gte=0"`
	FlatPrimaryMinCount int     `mapstructure:"flat_primary_min_count" validate:"gte=0"`
	FlatScoreRangeMax   float64 `mapstructure:"flat_score_range_max" validate:"gte=0"`
	FlatPrimaryEnabled  bool    `mapstructure:"flat_primary_enabled"`
	LowSignalEnabled    bool    `mapstructure:"low_signal_enabled"`
}

// EstimatorConfig holds the ranges and defaults of the secondary estimator
type EstimatorConfig struct {
	PlausibleMin   float64 `mapstructure:"plausible_min"`
	PlausibleMax   float64 `mapstructure:"plausible_max"`
	TierCMin       float64 `mapstructure:"tier_c_min"`
	TierCMax       float64 `mapstructure:"tier_c_max"`
	NeutralDefault float64 `mapstructure:"neutral_default"`
	TierAMargin    float64 `mapstructure:"tier_a_margin" validate:"gte=0"`
}

// BatchConfig controls the batch evaluator and report output
type BatchConfig struct {
	Workers int    `mapstructure:"workers" validate:"required,gt=0,lte=256"`
	Format  string `mapstructure:"format" validate:"required,format"`
}

// AdjustmentConfig controls the jockey adjustment tables
type AdjustmentConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	TablePath       string `mapstructure:"table_path" validate:"required_if=Enabled true"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// RacecardConfig controls race card decoding
type RacecardConfig struct {
	LowInformationKeywords []string `mapstructure:"low_information_keywords"`
}

// BettingConfig controls focus-race settlement
type BettingConfig struct {
	Enabled bool  `mapstructure:"enabled"`
	Unit    int64 `mapstructure:"unit" validate:"gt=0"`
}

// MetricsConfig represents metrics configuration
type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Textfile string `mapstructure:"textfile"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
