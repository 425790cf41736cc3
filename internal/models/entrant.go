package models

import "math"

// EntrantInput is one competitor as supplied by the upstream card adapter.
// Primary and Secondary are nil when the provider had no value.
type EntrantInput struct {
	Slot       int      `json:"slot" yaml:"slot"`
	Name       string   `json:"name" yaml:"name"`
	Primary    *float64 `json:"primary" yaml:"primary"`
	Secondary  *float64 `json:"secondary" yaml:"secondary"`
	Adjustment float64  `json:"adjustment" yaml:"adjustment"`
}

// ZScores holds the normalized value of each signal for an entrant
type ZScores struct {
	Primary    float64 `json:"primary" yaml:"primary"`
	Secondary  float64 `json:"secondary" yaml:"secondary"`
	Adjustment float64 `json:"adjustment" yaml:"adjustment"`
}

// Entrant is the working representation of a competitor inside one evaluation.
type Entrant struct {
	Slot            int
	Name            string
	Primary         *float64
	SecondaryRaw    *float64
	Adjustment      float64
	PrimaryFilled   float64
	SecondaryFilled float64
	Z               ZScores
	// CompositeScore is rounded to 2dp when computed and never re-derived.
	CompositeScore float64
}

// NewEntrant builds a working entrant from its input record. A non-finite
// adjustment is treated as 0.
func NewEntrant(in EntrantInput) *Entrant {
	adj := in.Adjustment
	if !isFinite(adj) {
		adj = 0
	}
	return &Entrant{
		Slot:         in.Slot,
		Name:         in.Name,
		Primary:      in.Primary,
		SecondaryRaw: in.Secondary,
		Adjustment:   adj,
	}
}

// HasPrimary reports whether the primary signal was observed. NaN and
// infinite values count as missing.
func (e *Entrant) HasPrimary() bool {
	return e.Primary != nil && isFinite(*e.Primary)
}

// HasSecondary reports whether the secondary signal was observed. NaN and
// infinite values count as missing.
func (e *Entrant) HasSecondary() bool {
	return e.SecondaryRaw != nil && isFinite(*e.SecondaryRaw)
}

// GetPrimary returns the observed primary signal or 0 if absent
func (e *Entrant) GetPrimary() float64 {
	if !e.HasPrimary() {
		return 0
	}
	return *e.Primary
}

// GetSecondary returns the observed secondary signal or 0 if absent
func (e *Entrant) GetSecondary() float64 {
	if !e.HasSecondary() {
		return 0
	}
	return *e.SecondaryRaw
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RankedEntrant is one row of a race's published top-N.
type RankedEntrant struct {
	RankMark        string  `json:"rank_mark" yaml:"rank_mark"`
	Slot            int     `json:"slot" yaml:"slot"`
	Name            string  `json:"name" yaml:"name"`
	CompositeScore  float64 `json:"composite_score" yaml:"composite_score"`
	PrimaryFilled   float64 `json:"primary_filled" yaml:"primary_filled"`
	SecondaryFilled float64 `json:"secondary_filled" yaml:"secondary_filled"`
	Adjustment      float64 `json:"adjustment" yaml:"adjustment"`
	Z               ZScores `json:"z" yaml:"z"`
}
