package engine

import (
	"sort"

	"github.com/yourusername/race-ranker/internal/models"
)

// TopN is the number of entrants published per ranked race
const TopN = 5

// RankMarks are assigned to the top-N positions in order
var RankMarks = [TopN]string{"◎", "〇", "▲", "△", "☆"}

// less orders entrants by composite score, then secondary, then primary
// (all descending), then slot ascending. Slots are unique, so this is a
// total order.
func less(a, b *models.Entrant) bool {
	if a.CompositeScore != b.CompositeScore {
		return a.CompositeScore > b.CompositeScore
	}
	if a.SecondaryFilled != b.SecondaryFilled {
		return a.SecondaryFilled > b.SecondaryFilled
	}
	if a.PrimaryFilled != b.PrimaryFilled {
		return a.PrimaryFilled > b.PrimaryFilled
	}
	return a.Slot < b.Slot
}

// Rank returns the entrants sorted into rank order. The input slice is left
// untouched.
func Rank(entrants []*models.Entrant) []*models.Entrant {
	sorted := make([]*models.Entrant, len(entrants))
	copy(sorted, entrants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// Top builds the published rows for the first TopN ranked entrants
func Top(ranked []*models.Entrant) []models.RankedEntrant {
	n := TopN
	if len(ranked) < n {
		n = len(ranked)
	}
	top := make([]models.RankedEntrant, 0, n)
	for i, e := range ranked[:n] {
		top = append(top, models.RankedEntrant{
			RankMark:        RankMarks[i],
			Slot:            e.Slot,
			Name:            e.Name,
			CompositeScore:  e.CompositeScore,
			PrimaryFilled:   e.PrimaryFilled,
			SecondaryFilled: e.SecondaryFilled,
			Adjustment:      e.Adjustment,
			Z:               e.Z,
		})
	}
	return top
}
