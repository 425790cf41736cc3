package engine

import (
	"fmt"

	"github.com/yourusername/race-ranker/internal/models"
)

// Engine evaluates races against one immutable configuration. It is safe
// for concurrent use.
type Engine struct {
	cfg    Config
	gate   Gate
	scorer Scorer
}

// New creates an engine after validating the configuration
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &Engine{
		cfg:    cfg,
		gate:   NewGate(cfg.Gate),
		scorer: NewScorer(cfg),
	}, nil
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// ValidateInput rejects malformed rosters: empty, non-positive or
// duplicate slots. These are contract violations, not exclusions.
func ValidateInput(in models.RaceInput) error {
	if len(in.Entrants) == 0 {
		return models.ErrEmptyRoster
	}
	seen := make(map[int]struct{}, len(in.Entrants))
	for _, e := range in.Entrants {
		if e.Slot <= 0 {
			return fmt.Errorf("%w: got %d", models.ErrInvalidSlot, e.Slot)
		}
		if _, dup := seen[e.Slot]; dup {
			return fmt.Errorf("%w: slot %d", models.ErrDuplicateSlot, e.Slot)
		}
		seen[e.Slot] = struct{}{}
	}
	return nil
}

// Evaluate runs one race through the pipeline:
// pre-gate, estimation, scoring, post-gate, ranking, competitiveness.
func (e *Engine) Evaluate(in models.RaceInput) (*models.RaceOutput, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	entrants := make([]*models.Entrant, 0, len(in.Entrants))
	for _, ei := range in.Entrants {
		entrants = append(entrants, models.NewEntrant(ei))
	}
	out := &models.RaceOutput{Key: in.Key, Name: in.Name}

	if res := e.gate.PreCheck(entrants, in.LowInformation); res.State == GateExcluded {
		out.Decision = res.Decision
		return out, nil
	}

	est := FitEstimator(entrants, e.cfg.Estimator)
	imputed := FillSignals(entrants, est)
	diag := est.Diagnostics()
	diag.Imputed = imputed
	out.Estimation = &diag

	norm := e.scorer.Score(entrants)
	out.Normalization = &norm

	if res := e.gate.PostCheck(entrants); res.State == GateExcluded {
		out.Decision = res.Decision
		return out, nil
	}

	ranked := Rank(entrants)
	out.TopN = Top(ranked)
	out.Decision = models.Ranked()

	if e.cfg.Competitiveness.Enabled {
		scores := make([]float64, 0, len(out.TopN))
		for _, r := range out.TopN {
			scores = append(scores, r.CompositeScore)
		}
		if comp, ok := FieldCompetitiveness(scores, e.cfg.Competitiveness); ok {
			out.Competitiveness = &comp
		}
	}

	return out, nil
}

// Evaluate runs a single race with the given configuration
func Evaluate(in models.RaceInput, cfg Config) (*models.RaceOutput, error) {
	eng, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return eng.Evaluate(in)
}
