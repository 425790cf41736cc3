package logger

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SettlementLogger provides dedicated logging for focus-race settlement.
type SettlementLogger struct {
	*logrus.Entry
}

// NewSettlementLogger creates a new settlement logger.
func NewSettlementLogger(baseLogger *logrus.Logger) *SettlementLogger {
	return &SettlementLogger{
		Entry: baseLogger.WithField("component", "settlement"),
	}
}

// LogBoxSettled logs the outcome of one trio box.
func (sl *SettlementLogger) LogBoxSettled(raceKey string, box, finish []int, hit bool, invest, payout decimal.Decimal) {
	sl.WithFields(logrus.Fields{
		"race_key": raceKey,
		"box":      box,
		"finish":   finish,
		"hit":      hit,
		"invest":   invest.String(),
		"payout":   payout.String(),
	}).Info("Trio box settled")
}

// LogRaceSkipped logs a race that was not invested.
func (sl *SettlementLogger) LogRaceSkipped(raceKey, reason string) {
	sl.WithFields(logrus.Fields{
		"race_key": raceKey,
		"reason":   reason,
	}).Debug("Race not invested")
}

// LogSummary logs the profit and loss summary.
func (sl *SettlementLogger) LogSummary(races, hits int, invest, payout, profit decimal.Decimal, roiPercent, hitRatePercent *float64) {
	fields := logrus.Fields{
		"races":  races,
		"hits":   hits,
		"invest": invest.String(),
		"payout": payout.String(),
		"profit": profit.String(),
	}
	if roiPercent != nil {
		fields["roi_percent"] = *roiPercent
	}
	if hitRatePercent != nil {
		fields["hit_rate_percent"] = *hitRatePercent
	}
	sl.WithFields(fields).Info("Settlement summary")
}
