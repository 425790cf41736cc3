// Package settlement prices trio boxes on focus races against official
// results and aggregates the profit and loss.
package settlement

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/race-ranker/internal/racecard"
)

// RaceResult is the official outcome of one race. TrioRefund is the trio
// payout per 100 units staked; zero means no refund was published.
type RaceResult struct {
	Number     int   `yaml:"number" json:"number" validate:"gt=0"`
	Finish     []int `yaml:"finish" json:"finish" validate:"omitempty,len=3,dive,gt=0"`
	TrioRefund int64 `yaml:"trio_refund" json:"trio_refund" validate:"gte=0"`
}

// Results holds the results of one meeting
type Results struct {
	Date  string       `yaml:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Track string       `yaml:"track" json:"track" validate:"required"`
	Races []RaceResult `yaml:"races" json:"races" validate:"dive"`
}

var validate = validator.New()

// LoadResults reads and validates a results file
func LoadResults(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	return ParseResults(data)
}

// ParseResults decodes and validates a results document
func ParseResults(data []byte) (*Results, error) {
	var res Results
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}
	if err := validate.Struct(&res); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid results: field '%s' failed '%s'", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid results: %w", err)
	}
	return &res, nil
}

// ByKey indexes the results by race key, matching the keys given to races
// on the race card of the same meeting.
func (r *Results) ByKey() map[string]RaceResult {
	out := make(map[string]RaceResult, len(r.Races))
	for _, race := range r.Races {
		out[racecard.RaceKey(r.Date, r.Track, race.Number).String()] = race
	}
	return out
}
