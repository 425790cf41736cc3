package engine

import (
	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/stats"
)

// minRegressionPairs is the smallest paired set that tier A will fit.
const minRegressionPairs = 3

// Estimator imputes a missing secondary signal from an entrant's filled
// primary signal. It is fitted once per race and never changes afterwards.
type Estimator struct {
	tier  models.EstimationTier
	pairs int
	cfg   EstimatorConfig

	// tier A
	fit          models.LinearFit
	observedLow  float64
	observedHigh float64

	// tier B
	pairedPrimaryMed   float64
	pairedSecondaryMed float64

	// tier C
	primaryMin float64
	primaryMax float64
}

// FitEstimator selects the estimation tier for a race from the entrants
// that have both signals observed.
func FitEstimator(entrants []*models.Entrant, cfg EstimatorConfig) *Estimator {
	var xs, ys, primaries []float64
	for _, e := range entrants {
		if e.HasPrimary() {
			primaries = append(primaries, e.GetPrimary())
		}
		if e.HasPrimary() && e.HasSecondary() {
			xs = append(xs, e.GetPrimary())
			ys = append(ys, e.GetSecondary())
		}
	}

	est := &Estimator{pairs: len(xs), cfg: cfg}

	if len(xs) >= minRegressionPairs {
		if a, b, ok := stats.FitLine(xs, ys); ok {
			est.tier = models.TierA
			est.fit = models.LinearFit{A: a, B: b}
			est.observedLow, est.observedHigh = stats.Range(ys)
			return est
		}
	}

	if len(xs) >= 1 {
		est.tier = models.TierB
		est.pairedPrimaryMed = stats.UpperMedian(xs)
		est.pairedSecondaryMed = stats.UpperMedian(ys)
		return est
	}

	est.tier = models.TierC
	if len(primaries) > 0 {
		est.primaryMin, est.primaryMax = stats.Range(primaries)
	} else {
		est.primaryMin, est.primaryMax = 0, 1
	}
	return est
}

// Tier returns the tier selected for the race
func (e *Estimator) Tier() models.EstimationTier {
	return e.tier
}

// Estimate returns the secondary estimate for a filled primary value
func (e *Estimator) Estimate(primary float64) float64 {
	switch e.tier {
	case models.TierA:
		v := e.fit.A*primary + e.fit.B
		return stats.Clamp(v, e.observedLow-e.cfg.TierAMargin, e.observedHigh+e.cfg.TierAMargin)
	case models.TierB:
		v := primary + (e.pairedSecondaryMed - e.pairedPrimaryMed)
		return stats.Clamp(v, e.cfg.PlausibleMin, e.cfg.PlausibleMax)
	default:
		if e.primaryMax == e.primaryMin {
			return e.cfg.NeutralDefault
		}
		t := (primary - e.primaryMin) / (e.primaryMax - e.primaryMin)
		v := e.cfg.TierCMin + t*(e.cfg.TierCMax-e.cfg.TierCMin)
		return stats.Clamp(v, e.cfg.PlausibleMin, e.cfg.PlausibleMax)
	}
}

// Diagnostics describes the fitted estimator
func (e *Estimator) Diagnostics() models.EstimationDiagnostics {
	d := models.EstimationDiagnostics{Tier: e.tier, PairCount: e.pairs}
	if e.tier == models.TierA {
		fit := e.fit
		d.Fit = &fit
	}
	return d
}

// FillSignals completes every entrant's filled primary and secondary values.
// A missing primary takes the race median of observed primaries (0 when no
// entrant has one); a missing secondary is estimated from the filled primary.
// It returns the number of imputed secondary values.
func FillSignals(entrants []*models.Entrant, est *Estimator) int {
	var observed []float64
	for _, e := range entrants {
		if e.HasPrimary() {
			observed = append(observed, e.GetPrimary())
		}
	}
	fallback := 0.0
	if len(observed) > 0 {
		fallback = stats.Median(observed)
	}

	imputed := 0
	for _, e := range entrants {
		if e.HasPrimary() {
			e.PrimaryFilled = e.GetPrimary()
		} else {
			e.PrimaryFilled = fallback
		}

		if e.HasSecondary() {
			e.SecondaryFilled = e.GetSecondary()
		} else {
			e.SecondaryFilled = est.Estimate(e.PrimaryFilled)
			imputed++
		}
	}
	return imputed
}
