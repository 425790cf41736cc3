// Package racecard decodes race card files into engine inputs.
package racecard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Card is one meeting: a date, a track and its races
type Card struct {
	Date  string `yaml:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Track string `yaml:"track" json:"track" validate:"required"`
	Races []Race `yaml:"races" json:"races" validate:"required,min=1,dive"`
}

// Race is one race on a card. LowInformation is derived from the race name
// when the card leaves it out.
type Race struct {
	Number         int       `yaml:"number" json:"number" validate:"gt=0"`
	Name           string    `yaml:"name" json:"name"`
	LowInformation *bool     `yaml:"low_information" json:"low_information"`
	Entrants       []Entrant `yaml:"entrants" json:"entrants"`
}

// Entrant is one runner as printed on the card. Every signal is optional.
type Entrant struct {
	Slot       int      `yaml:"slot" json:"slot"`
	Name       string   `yaml:"name" json:"name"`
	Jockey     string   `yaml:"jockey" json:"jockey"`
	Primary    *float64 `yaml:"primary" json:"primary"`
	Secondary  *float64 `yaml:"secondary" json:"secondary"`
	Adjustment *float64 `yaml:"adjustment" json:"adjustment"`
}

var validate = validator.New()

// LoadFile reads and validates a card from a YAML or JSON file
func LoadFile(path string) (*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read race card: %w", err)
	}
	card, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return card, nil
}

// Parse decodes and validates a card. A document starting with '{' is
// read as JSON, anything else as YAML.
func Parse(data []byte) (*Card, error) {
	var card Card
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &card); err != nil {
			return nil, fmt.Errorf("failed to parse race card: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("failed to parse race card: %w", err)
	}
	if err := validate.Struct(&card); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid race card: field '%s' failed '%s'", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid race card: %w", err)
	}
	return &card, nil
}
