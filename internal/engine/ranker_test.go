package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/race-ranker/internal/models"
)

func scored(slot int, score, secondary, primary float64) *models.Entrant {
	return &models.Entrant{
		Slot:            slot,
		CompositeScore:  score,
		SecondaryFilled: secondary,
		PrimaryFilled:   primary,
	}
}

func slots(entrants []*models.Entrant) []int {
	out := make([]int, len(entrants))
	for i, e := range entrants {
		out[i] = e.Slot
	}
	return out
}

func TestRankTieBreaks(t *testing.T) {
	entrants := []*models.Entrant{
		scored(7, 55.0, 60, 50),
		scored(3, 55.0, 60, 52),
		scored(5, 55.0, 62, 40),
		scored(2, 55.0, 60, 52),
		scored(9, 61.2, 50, 50),
	}

	ranked := Rank(entrants)
	assert.Equal(t, []int{9, 5, 2, 3, 7}, slots(ranked))
	// input order preserved
	assert.Equal(t, []int{7, 3, 5, 2, 9}, slots(entrants))
}

func TestRankIsDeterministic(t *testing.T) {
	a := []*models.Entrant{
		scored(1, 50, 55, 50),
		scored(2, 50, 55, 50),
		scored(3, 52, 55, 50),
	}
	b := []*models.Entrant{a[2], a[0], a[1]}

	assert.Equal(t, slots(Rank(a)), slots(Rank(b)))
	assert.Equal(t, []int{3, 1, 2}, slots(Rank(a)))
}

func TestTopAssignsMarks(t *testing.T) {
	entrants := []*models.Entrant{
		scored(1, 60, 0, 0),
		scored(2, 59, 0, 0),
		scored(3, 58, 0, 0),
		scored(4, 57, 0, 0),
		scored(5, 56, 0, 0),
		scored(6, 55, 0, 0),
	}
	entrants[0].Name = "アイウエオ"

	top := Top(Rank(entrants))
	require.Len(t, top, TopN)
	for i, r := range top {
		assert.Equal(t, RankMarks[i], r.RankMark)
		assert.Equal(t, i+1, r.Slot)
	}
	assert.Equal(t, "◎", top[0].RankMark)
	assert.Equal(t, "アイウエオ", top[0].Name)
	assert.Equal(t, "☆", top[4].RankMark)
}

func TestTopShortRoster(t *testing.T) {
	top := Top([]*models.Entrant{scored(1, 50, 0, 0), scored(2, 49, 0, 0)})
	require.Len(t, top, 2)
	assert.Equal(t, "〇", top[1].RankMark)
}
