package engine

import (
	"math"

	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/stats"
)

// scoreDecimals is the precision composite scores are stored with. The
// rounded value is authoritative for sorting, gating and competitiveness.
const scoreDecimals = 2

// Scorer combines normalized signals into one display score per entrant
type Scorer struct {
	weights Weights
	method  stats.Method
	display Display
}

// NewScorer creates a scorer from engine settings
func NewScorer(cfg Config) Scorer {
	return Scorer{weights: cfg.Weights, method: cfg.Normalization, display: cfg.Display}
}

// WeightSum returns the divisor applied to the weighted z sum
func (s Scorer) WeightSum() float64 {
	sum := math.Abs(s.weights.Primary) + math.Abs(s.weights.Secondary) + math.Abs(s.weights.Adjustment)
	return math.Max(sum, 1.0)
}

// Score normalizes each filled signal across the race and stores z values
// and the rounded composite score on every entrant.
func (s Scorer) Score(entrants []*models.Entrant) models.NormalizationDiagnostics {
	n := len(entrants)
	primary := make([]float64, n)
	secondary := make([]float64, n)
	adjustment := make([]float64, n)
	for i, e := range entrants {
		primary[i] = e.PrimaryFilled
		secondary[i] = e.SecondaryFilled
		adjustment[i] = e.Adjustment
	}

	zp, pp := stats.Normalize(primary, s.method)
	zs, ps := stats.Normalize(secondary, s.method)
	za, pa := stats.Normalize(adjustment, s.method)

	wsum := s.WeightSum()
	for i, e := range entrants {
		e.Z = models.ZScores{Primary: zp[i], Secondary: zs[i], Adjustment: za[i]}
		combined := (s.weights.Primary*zp[i] + s.weights.Secondary*zs[i] + s.weights.Adjustment*za[i]) / wsum
		e.CompositeScore = stats.Round(s.display.Base+s.display.Scale*combined, scoreDecimals)
	}

	return models.NormalizationDiagnostics{
		Primary:    toParams(pp),
		Secondary:  toParams(ps),
		Adjustment: toParams(pa),
	}
}

func toParams(p stats.Params) models.NormalizationParams {
	return models.NormalizationParams{Method: string(p.Method), Center: p.Center, Scale: p.Scale}
}
