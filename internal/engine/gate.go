package engine

import (
	"fmt"

	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/stats"
)

// MinEntrants is the smallest roster the gate admits; it matches the size
// of the published top-N.
const MinEntrants = TopN

// GateState is the admission state of a race
type GateState string

const (
	GatePending  GateState = "Pending"
	GateAdmitted GateState = "Admitted"
	GateExcluded GateState = "Excluded"
)

// GateResult is the outcome of one gate stage. Decision is meaningful only
// when State is GateExcluded.
type GateResult struct {
	State    GateState
	Decision models.Decision
}

func admitted() GateResult {
	return GateResult{State: GateAdmitted}
}

func excluded(reason models.ExclusionReason, format string, args ...any) GateResult {
	return GateResult{
		State:    GateExcluded,
		Decision: models.Excluded(reason, fmt.Sprintf(format, args...)),
	}
}

// Gate applies the admission rules in their fixed order
type Gate struct {
	cfg GateConfig
}

// NewGate creates a gate over the given thresholds
func NewGate(cfg GateConfig) Gate {
	return Gate{cfg: cfg}
}

// PreCheck runs the rules that only need raw signals: roster size, flat
// primary signal and low signal. The first failing rule wins.
func (g Gate) PreCheck(entrants []*models.Entrant, lowInformation bool) GateResult {
	n := len(entrants)
	if n < MinEntrants {
		return excluded(models.ReasonInsufficientEntrants, "entrants=%d < %d", n, MinEntrants)
	}

	var primaries []float64
	secondaryCount := 0
	for _, e := range entrants {
		if e.HasPrimary() {
			primaries = append(primaries, e.GetPrimary())
		}
		if e.HasSecondary() {
			secondaryCount++
		}
	}
	primaryCount := len(primaries)

	if g.cfg.FlatPrimaryEnabled && primaryCount >= g.cfg.FlatPrimaryMinCount && primaryCount > 0 {
		if spread := stats.Spread(primaries); spread <= g.cfg.FlatPrimaryRangeMax {
			return excluded(models.ReasonFlatPrimarySignal, "primary range=%.2f <= %.2f", spread, g.cfg.FlatPrimaryRangeMax)
		}
	}

	if g.cfg.LowSignalEnabled {
		if lowInformation && primaryCount < g.cfg.MinPrimaryCount {
			return excluded(models.ReasonLowSignal, "low-information race, primary too few (valid=%d/%d)", primaryCount, n)
		}
		if lowInformation && secondaryCount < g.cfg.MinSecondaryCount {
			return excluded(models.ReasonLowSignal, "low-information race, secondary too few (valid=%d)", secondaryCount)
		}
		ratio := float64(primaryCount) / float64(n)
		if ratio < g.cfg.MinValidRatio && primaryCount < g.cfg.MinPrimaryCount {
			return excluded(models.ReasonLowSignal, "primary missing too much (valid=%d/%d, ratio=%.2f)", primaryCount, n, ratio)
		}
	}

	return admitted()
}

// PostCheck rejects races whose composite scores are effectively tied
func (g Gate) PostCheck(entrants []*models.Entrant) GateResult {
	scores := make([]float64, 0, len(entrants))
	for _, e := range entrants {
		scores = append(scores, e.CompositeScore)
	}
	if len(scores) > 0 {
		if spread := stats.Spread(scores); spread <= g.cfg.FlatScoreRangeMax {
			return excluded(models.ReasonFlatCompositeScore, "score range=%.2f <= %.2f", spread, g.cfg.FlatScoreRangeMax)
		}
	}
	return admitted()
}
