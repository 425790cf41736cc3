// Package service runs batches of races through the ranking engine.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/race-ranker/internal/engine"
	"github.com/yourusername/race-ranker/internal/logger"
	"github.com/yourusername/race-ranker/internal/metrics"
	"github.com/yourusername/race-ranker/internal/models"
)

// DefaultWorkers is used when the evaluator is created with no worker count
const DefaultWorkers = 4

// RaceOutcome is the result of one race in a batch. Err is set for
// malformed input; Output is set otherwise.
type RaceOutcome struct {
	Index    int
	Key      string
	Name     string
	Output   *models.RaceOutput
	Err      error
	Duration time.Duration
}

// BatchSummary counts the outcomes of a batch
type BatchSummary struct {
	Total    int `json:"total" yaml:"total"`
	Ranked   int `json:"ranked" yaml:"ranked"`
	Excluded int `json:"excluded" yaml:"excluded"`
	Failed   int `json:"failed" yaml:"failed"`
	Focus    int `json:"focus" yaml:"focus"`
}

// Evaluator evaluates races in parallel with a fixed engine configuration
type Evaluator struct {
	engine  *engine.Engine
	workers int
	log     *logger.RaceLogger
	metrics bool
}

// NewEvaluator creates a new batch evaluator
func NewEvaluator(eng *engine.Engine, workers int, log *logrus.Logger, recordMetrics bool) *Evaluator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if recordMetrics {
		metrics.InitRegistry()
	}
	return &Evaluator{
		engine:  eng,
		workers: workers,
		log:     logger.NewRaceLogger(log),
		metrics: recordMetrics,
	}
}

// EvaluateAll evaluates every race and returns outcomes in input order.
// A malformed race is recorded on its outcome and does not stop the batch.
// Cancellation is checked before each race is started; the returned error is
// non-nil only when ctx was cancelled, and races that never ran then carry
// the cancellation as their Err.
func (e *Evaluator) EvaluateAll(ctx context.Context, races []models.RaceInput) ([]RaceOutcome, error) {
	start := time.Now()
	outcomes := make([]RaceOutcome, len(races))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range races {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.evaluate(i, races[i])
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		markSkipped(outcomes, races, err)
		return outcomes, fmt.Errorf("batch evaluation cancelled: %w", err)
	}

	summary := Summarize(outcomes)
	e.log.LogBatchCompleted(summary.Total, summary.Ranked, summary.Excluded, summary.Failed, summary.Focus, time.Since(start))
	return outcomes, nil
}

// markSkipped fills the outcomes of races that were never evaluated
func markSkipped(outcomes []RaceOutcome, races []models.RaceInput, cause error) {
	for i := range outcomes {
		if outcomes[i].Output != nil || outcomes[i].Err != nil {
			continue
		}
		outcomes[i] = RaceOutcome{
			Index: i,
			Key:   races[i].Key,
			Name:  races[i].Name,
			Err:   cause,
		}
	}
}

func (e *Evaluator) evaluate(index int, race models.RaceInput) RaceOutcome {
	started := time.Now()
	out, err := e.engine.Evaluate(race)
	outcome := RaceOutcome{
		Index:    index,
		Key:      race.Key,
		Name:     race.Name,
		Output:   out,
		Err:      err,
		Duration: time.Since(started),
	}

	if err != nil {
		e.log.LogContractError(race.Key, race.Name, err)
		if e.metrics {
			metrics.RecordRaceRejected()
		}
		return outcome
	}

	e.log.LogEvaluation(race.Key, out, outcome.Duration)
	if e.metrics {
		recordOutput(out, outcome.Duration)
	}
	return outcome
}

func recordOutput(out *models.RaceOutput, d time.Duration) {
	metrics.RecordRaceEvaluated(string(out.Decision.Kind), out.Decision.ReasonLabel(), d.Seconds())
	if out.Estimation != nil {
		metrics.RecordEstimationTier(string(out.Estimation.Tier))
	}
	if out.Competitiveness != nil {
		metrics.RecordCompetitiveness(out.Competitiveness.Value, out.Competitiveness.IsFocus)
	}
}

// Summarize counts ranked, excluded, failed and focus races
func Summarize(outcomes []RaceOutcome) BatchSummary {
	s := BatchSummary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Err != nil || o.Output == nil:
			s.Failed++
		case o.Output.Decision.IsExcluded():
			s.Excluded++
		default:
			s.Ranked++
			if o.Output.IsFocus() {
				s.Focus++
			}
		}
	}
	return s
}
