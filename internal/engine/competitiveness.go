package engine

import (
	"math"

	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/stats"
)

const (
	closenessWeight12 = 0.65
	closenessWeight15 = 0.35
	minGapMid         = 1e-9
)

// closeness maps a score gap to (0,1]: 1 for no gap, 0.5 at gap == mid
func closeness(gap, mid float64) float64 {
	gap = math.Max(0, gap)
	mid = math.Max(minGapMid, mid)
	return 1.0 / (1.0 + gap/mid)
}

// FieldCompetitiveness scores how tightly the top five composite scores are
// clustered. top must hold exactly TopN scores in descending order; any
// other length yields a zero, non-focus result and ok=false.
func FieldCompetitiveness(top []float64, cfg CompetitivenessConfig) (models.Competitiveness, bool) {
	result := models.Competitiveness{
		Gap12Mid:       cfg.Gap12Mid,
		Gap15Mid:       cfg.Gap15Mid,
		FocusThreshold: cfg.FocusThreshold,
	}
	if len(top) != TopN {
		return result, false
	}

	gap12 := math.Max(0, top[0]-top[1])
	gap15 := math.Max(0, top[0]-top[TopN-1])

	sc12 := closeness(gap12, cfg.Gap12Mid)
	sc15 := closeness(gap15, cfg.Gap15Mid)
	combined := stats.Clamp(closenessWeight12*sc12+closenessWeight15*sc15, 0, 1)

	result.Value = stats.Round(100*combined, 1)
	result.IsFocus = result.Value >= cfg.FocusThreshold
	result.Gap12 = stats.Round(gap12, 3)
	result.Gap15 = stats.Round(gap15, 3)
	result.Closeness12 = stats.Round(sc12, 4)
	result.Closeness15 = stats.Round(sc15, 4)
	return result, true
}
