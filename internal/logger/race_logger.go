package logger

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/race-ranker/internal/models"
)

// RaceLogger provides dedicated logging for race evaluation.
type RaceLogger struct {
	*logrus.Entry
}

// NewRaceLogger creates a new race logger.
func NewRaceLogger(baseLogger *logrus.Logger) *RaceLogger {
	return &RaceLogger{
		Entry: baseLogger.WithField("component", "engine"),
	}
}

// LogEvaluation logs the outcome of one evaluated race.
func (rl *RaceLogger) LogEvaluation(raceKey string, out *models.RaceOutput, duration time.Duration) {
	fields := logrus.Fields{
		"race_key":    raceKey,
		"race_name":   out.Name,
		"decision":    out.Decision.Kind,
		"duration_ms": float64(duration.Microseconds()) / 1000.0,
	}
	if out.Estimation != nil {
		fields["estimation_tier"] = out.Estimation.Tier
		fields["estimation_pairs"] = out.Estimation.PairCount
		fields["imputed"] = out.Estimation.Imputed
	}

	if out.Decision.IsExcluded() {
		fields["reason"] = out.Decision.Reason
		fields["detail"] = out.Decision.Detail
		rl.WithFields(fields).Info("Race excluded")
		return
	}

	fields["top_slots"] = out.TopSlots()
	if out.Competitiveness != nil {
		fields["competitiveness"] = out.Competitiveness.Value
		fields["gap12"] = out.Competitiveness.Gap12
		fields["gap15"] = out.Competitiveness.Gap15
		fields["is_focus"] = out.Competitiveness.IsFocus
	}
	rl.WithFields(fields).Info("Race ranked")
}

// LogContractError logs a race rejected for malformed input.
func (rl *RaceLogger) LogContractError(raceKey, raceName string, err error) {
	rl.WithFields(logrus.Fields{
		"race_key":  raceKey,
		"race_name": raceName,
	}).WithError(err).Warn("Race rejected")
}

// LogBatchCompleted logs the totals of a batch run.
func (rl *RaceLogger) LogBatchCompleted(total, ranked, excluded, failed, focus int, duration time.Duration) {
	rl.WithFields(logrus.Fields{
		"races_total":    total,
		"races_ranked":   ranked,
		"races_excluded": excluded,
		"races_failed":   failed,
		"focus_races":    focus,
		"duration_ms":    float64(duration.Microseconds()) / 1000.0,
	}).Info("Batch evaluation completed")
}

// LogAdjustmentTable logs a jockey table lookup.
func (rl *RaceLogger) LogAdjustmentTable(path string, jockeys int, cacheHit bool) {
	rl.WithFields(logrus.Fields{
		"table_path": path,
		"jockeys":    jockeys,
		"cache_hit":  cacheHit,
	}).Debug("Jockey adjustment table resolved")
}
