package settlement

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-ranker/internal/logger"
	"github.com/yourusername/race-ranker/internal/metrics"
	"github.com/yourusername/race-ranker/internal/models"
)

// DefaultUnit is the stake per trio ticket
const DefaultUnit = 100

var (
	refundBase = decimal.NewFromInt(100)
	hundred    = decimal.NewFromInt(100)
)

// Skip reasons for races that were not invested
const (
	SkipNotRanked = "not ranked"
	SkipNotFocus  = "not a focus race"
	SkipDisabled  = "betting disabled"
)

// RaceSettlement is the settlement of one evaluated race
type RaceSettlement struct {
	Key        string          `json:"key" yaml:"key"`
	Name       string          `json:"name" yaml:"name"`
	IsFocus    bool            `json:"is_focus" yaml:"is_focus"`
	Invested   bool            `json:"invested" yaml:"invested"`
	SkipReason string          `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
	Box        TrioBox         `json:"box,omitempty" yaml:"box,omitempty"`
	Finish     []int           `json:"finish,omitempty" yaml:"finish,omitempty"`
	Hit        bool            `json:"hit" yaml:"hit"`
	Invest     decimal.Decimal `json:"invest" yaml:"invest"`
	Payout     decimal.Decimal `json:"payout" yaml:"payout"`
	Profit     decimal.Decimal `json:"profit" yaml:"profit"`
}

// Summary aggregates every invested race. Rates are nil when undefined.
type Summary struct {
	Races          int             `json:"races" yaml:"races"`
	Hits           int             `json:"hits" yaml:"hits"`
	Invest         decimal.Decimal `json:"invest" yaml:"invest"`
	Payout         decimal.Decimal `json:"payout" yaml:"payout"`
	Profit         decimal.Decimal `json:"profit" yaml:"profit"`
	ROIPercent     *float64        `json:"roi_percent" yaml:"roi_percent"`
	HitRatePercent *float64        `json:"hit_rate_percent" yaml:"hit_rate_percent"`
}

// Report is the full settlement of a batch
type Report struct {
	Unit    decimal.Decimal  `json:"unit" yaml:"unit"`
	Races   []RaceSettlement `json:"races" yaml:"races"`
	Summary Summary          `json:"summary" yaml:"summary"`
}

// Settler prices focus-race trio boxes
type Settler struct {
	unit    decimal.Decimal
	enabled bool
	log     *logger.SettlementLogger
	metrics bool
}

// NewSettler creates a settler staking unit per ticket. A non-positive
// unit falls back to DefaultUnit.
func NewSettler(unit int64, enabled bool, log *logrus.Logger, recordMetrics bool) *Settler {
	if unit <= 0 {
		unit = DefaultUnit
	}
	if recordMetrics {
		metrics.InitRegistry()
	}
	return &Settler{
		unit:    decimal.NewFromInt(unit),
		enabled: enabled,
		log:     logger.NewSettlementLogger(log),
		metrics: recordMetrics,
	}
}

// Settle prices every focus race in outputs against results, which is
// keyed by race key. Non-focus races are reported but never invested.
func (s *Settler) Settle(outputs []*models.RaceOutput, results map[string]RaceResult) Report {
	report := Report{Unit: s.unit, Races: make([]RaceSettlement, 0, len(outputs))}

	for _, out := range outputs {
		if out == nil {
			continue
		}
		rs := s.settleRace(out, results)
		report.Races = append(report.Races, rs)
	}

	report.Summary = Summarize(report.Races)
	s.log.LogSummary(report.Summary.Races, report.Summary.Hits, report.Summary.Invest,
		report.Summary.Payout, report.Summary.Profit, report.Summary.ROIPercent, report.Summary.HitRatePercent)
	if s.metrics && report.Summary.ROIPercent != nil {
		metrics.UpdateSettlementROI(*report.Summary.ROIPercent)
	}
	return report
}

func (s *Settler) settleRace(out *models.RaceOutput, results map[string]RaceResult) RaceSettlement {
	rs := RaceSettlement{
		Key:     out.Key,
		Name:    out.Name,
		IsFocus: out.IsFocus(),
		Invest:  decimal.Zero,
		Payout:  decimal.Zero,
		Profit:  decimal.Zero,
	}

	switch {
	case !out.Decision.IsRanked():
		rs.SkipReason = SkipNotRanked
	case !rs.IsFocus:
		rs.SkipReason = SkipNotFocus
	case !s.enabled:
		rs.SkipReason = SkipDisabled
	}
	if result, ok := results[out.Key]; ok {
		rs.Finish = result.Finish
	}
	if rs.SkipReason != "" {
		s.log.LogRaceSkipped(out.Key, rs.SkipReason)
		return rs
	}

	rs.Invested = true
	rs.Box = NewTrioBox(out.TopSlots())
	rs.Invest = s.unit.Mul(decimal.NewFromInt(rs.Box.Combinations()))

	if result, ok := results[out.Key]; ok && rs.Box.Hits(result.Finish) {
		rs.Payout = decimal.NewFromInt(result.TrioRefund).Mul(s.unit).Div(refundBase)
	}
	rs.Hit = rs.Payout.IsPositive()
	rs.Profit = rs.Payout.Sub(rs.Invest)

	s.log.LogBoxSettled(out.Key, rs.Box, rs.Finish, rs.Hit, rs.Invest, rs.Payout)
	if s.metrics {
		invest, _ := rs.Invest.Float64()
		payout, _ := rs.Payout.Float64()
		metrics.RecordBoxSettled(invest, payout, rs.Hit)
	}
	return rs
}

// Summarize aggregates the invested races. ROI is payout over invest in
// percent.
func Summarize(races []RaceSettlement) Summary {
	sum := Summary{Invest: decimal.Zero, Payout: decimal.Zero}
	for _, rs := range races {
		if !rs.Invested {
			continue
		}
		sum.Races++
		if rs.Hit {
			sum.Hits++
		}
		sum.Invest = sum.Invest.Add(rs.Invest)
		sum.Payout = sum.Payout.Add(rs.Payout)
	}
	sum.Profit = sum.Payout.Sub(sum.Invest)

	if sum.Invest.IsPositive() {
		roi, _ := sum.Payout.Div(sum.Invest).Mul(hundred).Round(1).Float64()
		sum.ROIPercent = &roi
	}
	if sum.Races > 0 {
		rate, _ := decimal.NewFromInt(int64(sum.Hits)).Div(decimal.NewFromInt(int64(sum.Races))).Mul(hundred).Round(1).Float64()
		sum.HitRatePercent = &rate
	}
	return sum
}
