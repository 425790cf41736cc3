package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("normmethod", validateNormMethod)
	_ = v.RegisterValidation("format", validateFormat)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration is nil")
	}
	if err := cv.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateNormMethod accepts the normalization names understood by the
// stats package, including the z-score aliases.
func validateNormMethod(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case "standard", "z", "zscore", "robust":
		return true
	default:
		return false
	}
}

func validateFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "json", "yaml", "cbor":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	est := cfg.Engine.Estimator
	if est.PlausibleMin > est.PlausibleMax {
		return fmt.Errorf("estimator plausible_min (%.2f) cannot exceed plausible_max (%.2f)", est.PlausibleMin, est.PlausibleMax)
	}
	if est.TierCMin > est.TierCMax {
		return fmt.Errorf("estimator tier_c_min (%.2f) cannot exceed tier_c_max (%.2f)", est.TierCMin, est.TierCMax)
	}
	if est.TierCMin < est.PlausibleMin || est.TierCMax > est.PlausibleMax {
		return fmt.Errorf("estimator tier C range must lie inside the plausible range")
	}
	if est.NeutralDefault < est.PlausibleMin || est.NeutralDefault > est.PlausibleMax {
		return fmt.Errorf("estimator neutral_default must lie inside the plausible range")
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Textfile != "" && !strings.HasSuffix(cfg.Metrics.Textfile, ".prom") {
		return fmt.Errorf("metrics textfile must end in .prom for the textfile collector")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required", "required_if":
			fmt.Fprintf(&b, "- Field '%s' is required\n", field)
		case "gt", "gte", "lt", "lte":
			fmt.Fprintf(&b, "- Field '%s' validation failed: numeric constraint %s=%s violated, got '%v'\n", field, tag, fieldError.Param(), value)
		case "environment":
			fmt.Fprintf(&b, "- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			fmt.Fprintf(&b, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "normmethod":
			fmt.Fprintf(&b, "- Field '%s' must be one of: standard, robust\n", field)
		case "format":
			fmt.Fprintf(&b, "- Field '%s' must be one of: json, yaml, cbor\n", field)
		default:
			fmt.Fprintf(&b, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", b.String())
}
