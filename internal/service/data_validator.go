package service

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/race-ranker/internal/models"
)

// Signal ranges outside which a card value is suspicious. Values are still
// passed to the engine; these only produce warnings.
const (
	maxSlot          = 18
	signalMin        = 0.0
	signalMax        = 150.0
	maxAbsAdjustment = 25.0
)

// DataValidator checks prepared races for suspicious card data
type DataValidator struct {
	logger *logrus.Entry
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	return &DataValidator{logger: logger.WithField("component", "validator")}
}

// ValidateRace returns warnings for one race and its entrants
func (v *DataValidator) ValidateRace(race models.RaceInput) []string {
	var warnings []string

	if race.Name == "" {
		warnings = append(warnings, "race name is empty")
	}
	if len(race.Entrants) == 0 {
		warnings = append(warnings, "race has no entrants")
	}
	for _, e := range race.Entrants {
		for _, w := range v.ValidateEntrant(e) {
			warnings = append(warnings, fmt.Sprintf("slot %d: %s", e.Slot, w))
		}
	}

	if len(warnings) > 0 {
		v.logger.WithFields(logrus.Fields{
			"race_key":  race.Key,
			"race_name": race.Name,
			"warnings":  warnings,
		}).Warn("Suspicious race card data")
	}
	return warnings
}

// ValidateEntrant returns warnings for one entrant
func (v *DataValidator) ValidateEntrant(e models.EntrantInput) []string {
	var warnings []string

	if e.Name == "" {
		warnings = append(warnings, "entrant name is empty")
	}
	if e.Slot > maxSlot {
		warnings = append(warnings, fmt.Sprintf("slot exceeds %d", maxSlot))
	}
	if w := checkSignal("primary", e.Primary); w != "" {
		warnings = append(warnings, w)
	}
	if w := checkSignal("secondary", e.Secondary); w != "" {
		warnings = append(warnings, w)
	}
	if math.IsNaN(e.Adjustment) || math.Abs(e.Adjustment) > maxAbsAdjustment {
		warnings = append(warnings, fmt.Sprintf("adjustment %v out of range (|x| <= %.0f)", e.Adjustment, maxAbsAdjustment))
	}

	return warnings
}

// ValidateRaceUniqueness checks that no two races share a key
func (v *DataValidator) ValidateRaceUniqueness(races []models.RaceInput) error {
	seen := make(map[string]string, len(races))
	for _, r := range races {
		if r.Key == "" {
			continue
		}
		if prev, ok := seen[r.Key]; ok {
			return fmt.Errorf("race key %s is shared by %q and %q", r.Key, prev, r.Name)
		}
		seen[r.Key] = r.Name
	}
	return nil
}

func checkSignal(name string, v *float64) string {
	if v == nil {
		return ""
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return fmt.Sprintf("%s is not finite", name)
	}
	if *v < signalMin || *v > signalMax {
		return fmt.Sprintf("%s %.1f out of range (%.0f-%.0f)", name, *v, signalMin, signalMax)
	}
	return ""
}
