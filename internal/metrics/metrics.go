// Package metrics provides the centralized Prometheus metrics registry for the race ranker.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "race_ranker"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RacesEvaluatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "races_evaluated_total",
		Help:      "Total number of races evaluated by decision and exclusion reason",
	}, []string{"decision", "reason"})
	EstimationTierTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "estimation_tier_total",
		Help:      "Total number of races served by each estimation tier",
	}, []string{"tier"})
	FocusRacesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "focus_races_total",
		Help:      "Total number of ranked races flagged as focus races",
	})
	RacesRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "races_rejected_total",
		Help:      "Total number of races rejected for malformed input",
	})
)

// Histogram metrics
var (
	CompetitivenessValue = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "competitiveness_value",
		Help:      "Field competitiveness of ranked races (0-100)",
		Buckets:   prometheus.LinearBuckets(10, 10, 9),
	})
	EvaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of a single race evaluation in seconds",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(RacesEvaluatedTotal)
		registry.MustRegister(EstimationTierTotal)
		registry.MustRegister(FocusRacesTotal)
		registry.MustRegister(RacesRejectedTotal)

		registry.MustRegister(CompetitivenessValue)
		registry.MustRegister(EvaluationDuration)

		registry.MustRegister(SettlementInvestTotal)
		registry.MustRegister(SettlementPayoutTotal)
		registry.MustRegister(SettlementHitsTotal)
		registry.MustRegister(SettlementROIPercent)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// WriteTextfile dumps the registry in text exposition format for the
// node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, GetRegistry()); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// RecordRaceEvaluated records one evaluated race.
func RecordRaceEvaluated(decision, reason string, durationSeconds float64) {
	RacesEvaluatedTotal.WithLabelValues(decision, reason).Inc()
	EvaluationDuration.Observe(durationSeconds)
}

// RecordEstimationTier records which estimation tier served a race.
func RecordEstimationTier(tier string) {
	EstimationTierTotal.WithLabelValues(tier).Inc()
}

// RecordCompetitiveness records the competitiveness of a ranked race.
func RecordCompetitiveness(value float64, isFocus bool) {
	CompetitivenessValue.Observe(value)
	if isFocus {
		FocusRacesTotal.Inc()
	}
}

// RecordRaceRejected records a race rejected for malformed input.
func RecordRaceRejected() {
	RacesRejectedTotal.Inc()
}
