package settlement

import (
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/racecard"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func key(number int) string {
	return racecard.RaceKey("2026-10-18", "佐賀", number).String()
}

func focusRace(number int, slots ...int) *models.RaceOutput {
	out := &models.RaceOutput{
		Key:             key(number),
		Name:            "race",
		Decision:        models.Ranked(),
		Competitiveness: &models.Competitiveness{Value: 77.6, IsFocus: true},
	}
	for i, s := range slots {
		out.TopN = append(out.TopN, models.RankedEntrant{RankMark: "x", Slot: s, CompositeScore: 60 - float64(i)})
	}
	return out
}

func TestTrioBox(t *testing.T) {
	box := NewTrioBox([]int{8, 5, 7, 2, 5, 1})
	assert.Equal(t, TrioBox{1, 2, 5, 7, 8}, box)
	assert.Equal(t, int64(10), box.Combinations())

	assert.True(t, box.Hits([]int{5, 7, 8}))
	assert.True(t, box.Hits([]int{8, 1, 2}))
	assert.False(t, box.Hits([]int{5, 7, 3}))
	assert.False(t, box.Hits([]int{5, 7}))

	assert.Equal(t, int64(0), NewTrioBox([]int{1, 2}).Combinations())
	assert.Equal(t, int64(1), NewTrioBox([]int{1, 2, 3}).Combinations())
}

func TestLoadResults(t *testing.T) {
	res, err := LoadResults("testdata/results.yaml")
	require.NoError(t, err)
	require.Len(t, res.Races, 3)

	byKey := res.ByKey()
	assert.Equal(t, int64(2350), byKey[key(5)].TrioRefund)
	assert.Equal(t, []int{1, 2, 3}, byKey[key(6)].Finish)
	assert.Empty(t, byKey[key(7)].Finish)
}

func TestParseResultsRejectsInvalid(t *testing.T) {
	_, err := ParseResults([]byte("date: \"2026-10-18\"\ntrack: 佐賀\nraces:\n  - number: 1\n    finish: [1, 2]\n"))
	assert.Error(t, err)

	_, err = ParseResults([]byte("track: 佐賀\n"))
	assert.Error(t, err)

	_, err = ParseResults([]byte("date: \"2026-10-18\"\ntrack: 佐賀\nraces:\n  - number: 1\n    trio_refund: -10\n"))
	assert.Error(t, err)
}

func TestSettle(t *testing.T) {
	res, err := LoadResults("testdata/results.yaml")
	require.NoError(t, err)

	excluded := &models.RaceOutput{Key: key(4), Decision: models.Excluded(models.ReasonLowSignal, "x")}
	quiet := focusRace(8, 1, 2, 3, 4, 5)
	quiet.Competitiveness.IsFocus = false

	outputs := []*models.RaceOutput{
		excluded,
		focusRace(5, 5, 7, 8, 1, 2), // hit
		focusRace(6, 4, 5, 6, 7, 8), // miss
		focusRace(7, 1, 2, 3, 4, 5), // no finish published
		quiet,
		nil,
	}

	report := NewSettler(100, true, testLogger(), true).Settle(outputs, res.ByKey())
	require.Len(t, report.Races, 5)

	assert.Equal(t, SkipNotRanked, report.Races[0].SkipReason)
	assert.False(t, report.Races[0].Invested)

	hit := report.Races[1]
	assert.True(t, hit.Invested)
	assert.True(t, hit.Hit)
	assert.True(t, decimal.NewFromInt(1000).Equal(hit.Invest))
	assert.True(t, decimal.NewFromInt(2350).Equal(hit.Payout))
	assert.True(t, decimal.NewFromInt(1350).Equal(hit.Profit))

	miss := report.Races[2]
	assert.False(t, miss.Hit)
	assert.True(t, decimal.Zero.Equal(miss.Payout))

	assert.True(t, report.Races[3].Invested)
	assert.False(t, report.Races[3].Hit)

	assert.Equal(t, SkipNotFocus, report.Races[4].SkipReason)
	assert.True(t, decimal.Zero.Equal(report.Races[4].Invest))

	sum := report.Summary
	assert.Equal(t, 3, sum.Races)
	assert.Equal(t, 1, sum.Hits)
	assert.True(t, decimal.NewFromInt(3000).Equal(sum.Invest))
	assert.True(t, decimal.NewFromInt(2350).Equal(sum.Payout))
	assert.True(t, decimal.NewFromInt(-650).Equal(sum.Profit))
	require.NotNil(t, sum.ROIPercent)
	assert.Equal(t, 78.3, *sum.ROIPercent)
	require.NotNil(t, sum.HitRatePercent)
	assert.Equal(t, 33.3, *sum.HitRatePercent)
}

func TestSettleUnitScalesMoney(t *testing.T) {
	res, err := LoadResults("testdata/results.yaml")
	require.NoError(t, err)

	report := NewSettler(200, true, testLogger(), false).Settle([]*models.RaceOutput{focusRace(6, 1, 2, 3, 9, 10)}, res.ByKey())
	rs := report.Races[0]
	assert.True(t, decimal.NewFromInt(2000).Equal(rs.Invest))
	assert.True(t, decimal.NewFromInt(37740).Equal(rs.Payout))
	assert.Equal(t, 1887.0, *report.Summary.ROIPercent)
	assert.Equal(t, 100.0, *report.Summary.HitRatePercent)
}

func TestSettleDisabled(t *testing.T) {
	report := NewSettler(100, false, testLogger(), false).Settle([]*models.RaceOutput{focusRace(5, 5, 7, 8, 1, 2)}, nil)

	assert.Equal(t, SkipDisabled, report.Races[0].SkipReason)
	assert.Equal(t, 0, report.Summary.Races)
	assert.Nil(t, report.Summary.ROIPercent)
	assert.Nil(t, report.Summary.HitRatePercent)
}

func TestNewSettlerDefaultUnit(t *testing.T) {
	s := NewSettler(0, true, testLogger(), false)
	assert.True(t, decimal.NewFromInt(DefaultUnit).Equal(s.unit))
}
