package report

import (
	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/service"
)

// RaceReport is one race of an evaluation report. Error is set instead of
// Result when the race was rejected for malformed input.
type RaceReport struct {
	Key    string             `json:"key" yaml:"key"`
	Name   string             `json:"name" yaml:"name"`
	Error  string             `json:"error,omitempty" yaml:"error,omitempty"`
	Result *models.RaceOutput `json:"result,omitempty" yaml:"result,omitempty"`
}

// Evaluation is the report of one evaluated race card
type Evaluation struct {
	Date    string               `json:"date,omitempty" yaml:"date,omitempty"`
	Track   string               `json:"track,omitempty" yaml:"track,omitempty"`
	Summary service.BatchSummary `json:"summary" yaml:"summary"`
	Races   []RaceReport         `json:"races" yaml:"races"`
}

// NewEvaluation builds a report from batch outcomes, in outcome order
func NewEvaluation(date, track string, outcomes []service.RaceOutcome) Evaluation {
	ev := Evaluation{
		Date:    date,
		Track:   track,
		Summary: service.Summarize(outcomes),
		Races:   make([]RaceReport, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		rr := RaceReport{Key: o.Key, Name: o.Name, Result: o.Output}
		if o.Err != nil {
			rr.Error = o.Err.Error()
		}
		ev.Races = append(ev.Races, rr)
	}
	return ev
}

// Outputs returns the race outputs of the report, skipping rejected races
func (ev Evaluation) Outputs() []*models.RaceOutput {
	outs := make([]*models.RaceOutput, 0, len(ev.Races))
	for _, r := range ev.Races {
		if r.Result != nil {
			outs = append(outs, r.Result)
		}
	}
	return outs
}
