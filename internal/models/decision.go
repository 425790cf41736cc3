package models

// DecisionKind is the terminal state of a race evaluation
type DecisionKind string

const (
	DecisionExcluded DecisionKind = "Excluded"
	DecisionRanked   DecisionKind = "Ranked"
)

// ExclusionReason names the admission rule that rejected a race
type ExclusionReason string

const (
	ReasonInsufficientEntrants ExclusionReason = "InsufficientEntrants"
	ReasonFlatPrimarySignal    ExclusionReason = "FlatPrimarySignal"
	ReasonLowSignal            ExclusionReason = "LowSignal"
	ReasonFlatCompositeScore   ExclusionReason = "FlatCompositeScore"
)

// ExclusionReasons lists every reason in gate evaluation order.
var ExclusionReasons = []ExclusionReason{
	ReasonInsufficientEntrants,
	ReasonFlatPrimarySignal,
	ReasonLowSignal,
	ReasonFlatCompositeScore,
}

// Decision is the outcome of a race evaluation. Reason is set only when
// Kind is DecisionExcluded.
type Decision struct {
	Kind   DecisionKind    `json:"kind" yaml:"kind"`
	Reason ExclusionReason `json:"reason,omitempty" yaml:"reason,omitempty"`
	Detail string          `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Excluded builds an exclusion decision
func Excluded(reason ExclusionReason, detail string) Decision {
	return Decision{Kind: DecisionExcluded, Reason: reason, Detail: detail}
}

// Ranked builds the decision for a race that produced a top-N
func Ranked() Decision {
	return Decision{Kind: DecisionRanked}
}

// IsExcluded checks if the race was rejected by the admission gate
func (d Decision) IsExcluded() bool {
	return d.Kind == DecisionExcluded
}

// IsRanked checks if the race reached the ranked state
func (d Decision) IsRanked() bool {
	return d.Kind == DecisionRanked
}

// ReasonLabel returns the reason as a metric label, "none" for ranked races
func (d Decision) ReasonLabel() string {
	if d.Reason == "" {
		return "none"
	}
	return string(d.Reason)
}
