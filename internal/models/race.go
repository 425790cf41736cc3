package models

// RaceInput is one race as handed to the engine. LowInformation is the
// upstream classification of races that usually carry thin signal (debut
// races); the engine never inspects Name to decide it. Key is an opaque
// upstream identifier carried for logging and reports.
type RaceInput struct {
	Key            string         `json:"key,omitempty" yaml:"key,omitempty"`
	Name           string         `json:"name" yaml:"name"`
	LowInformation bool           `json:"low_information" yaml:"low_information"`
	Entrants       []EntrantInput `json:"entrants" yaml:"entrants"`
}

// EstimationTier identifies which imputation policy served a race
type EstimationTier string

const (
	TierA EstimationTier = "A"
	TierB EstimationTier = "B"
	TierC EstimationTier = "C"
)

// LinearFit holds the fitted line secondary = A*primary + B
type LinearFit struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
}

// EstimationDiagnostics describes how missing secondary values were filled
type EstimationDiagnostics struct {
	Tier      EstimationTier `json:"tier" yaml:"tier"`
	PairCount int            `json:"pair_count" yaml:"pair_count"`
	Fit       *LinearFit     `json:"fit" yaml:"fit"`
	Imputed   int            `json:"imputed" yaml:"imputed"`
}

// NormalizationParams records the center and scale applied to one signal
type NormalizationParams struct {
	Method string  `json:"method" yaml:"method"`
	Center float64 `json:"center" yaml:"center"`
	Scale  float64 `json:"scale" yaml:"scale"`
}

// NormalizationDiagnostics groups the parameters of every normalized signal
type NormalizationDiagnostics struct {
	Primary    NormalizationParams `json:"primary" yaml:"primary"`
	Secondary  NormalizationParams `json:"secondary" yaml:"secondary"`
	Adjustment NormalizationParams `json:"adjustment" yaml:"adjustment"`
}

// Competitiveness is the 0-100 closeness indicator for the top of a field
type Competitiveness struct {
	Value          float64 `json:"value" yaml:"value"`
	IsFocus        bool    `json:"is_focus" yaml:"is_focus"`
	Gap12          float64 `json:"gap12" yaml:"gap12"`
	Gap15          float64 `json:"gap15" yaml:"gap15"`
	Closeness12    float64 `json:"sc12" yaml:"sc12"`
	Closeness15    float64 `json:"sc15" yaml:"sc15"`
	Gap12Mid       float64 `json:"gap12_mid" yaml:"gap12_mid"`
	Gap15Mid       float64 `json:"gap15_mid" yaml:"gap15_mid"`
	FocusThreshold float64 `json:"focus_threshold" yaml:"focus_threshold"`
}

// RaceOutput is the engine's result for one race. TopN is set only for
// ranked races; diagnostics are nil when the pipeline stopped before the
// stage that produces them.
type RaceOutput struct {
	Key             string                    `json:"key,omitempty" yaml:"key,omitempty"`
	Name            string                    `json:"name" yaml:"name"`
	Decision        Decision                  `json:"decision" yaml:"decision"`
	TopN            []RankedEntrant           `json:"top_n,omitempty" yaml:"top_n,omitempty"`
	Competitiveness *Competitiveness          `json:"competitiveness" yaml:"competitiveness"`
	Estimation      *EstimationDiagnostics    `json:"estimation" yaml:"estimation"`
	Normalization   *NormalizationDiagnostics `json:"normalization,omitempty" yaml:"normalization,omitempty"`
}

// TopSlots returns the slots of the ranked entrants in rank order
func (o *RaceOutput) TopSlots() []int {
	slots := make([]int, 0, len(o.TopN))
	for _, e := range o.TopN {
		slots = append(slots, e.Slot)
	}
	return slots
}

// IsFocus checks if the race was ranked and flagged as a focus race
func (o *RaceOutput) IsFocus() bool {
	return o.Decision.IsRanked() && o.Competitiveness != nil && o.Competitiveness.IsFocus
}
