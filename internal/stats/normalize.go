// Package stats provides the per-race statistics used by the ranking engine:
// standardization of signal vectors and the small robust helpers behind it.
package stats

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// MinScale is the smallest scale accepted before falling back to 1.0.
const MinScale = 1e-9

// madConsistency rescales the median absolute deviation to a standard
// deviation under normality.
const madConsistency = 1.4826

// Method selects how a signal vector is centered and scaled
type Method string

const (
	MethodStandard Method = "standard"
	MethodRobust   Method = "robust"
)

// ParseMethod resolves a configured method name. "z" is accepted as an
// alias for standard.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "z", "zscore":
		return MethodStandard, nil
	case "robust":
		return MethodRobust, nil
	default:
		return "", fmt.Errorf("unknown normalization method %q", s)
	}
}

// Params records the center and scale a vector was normalized with
type Params struct {
	Method Method
	Center float64
	Scale  float64
}

// Normalize standardizes values with the given method. NaN and infinite
// elements are left out of the center/scale computation and map to 0.
// The output always has the same length as the input.
func Normalize(values []float64, method Method) ([]float64, Params) {
	xs := Finite(values)
	out := make([]float64, len(values))
	if len(xs) == 0 {
		return out, Params{Method: method, Center: 0, Scale: 1}
	}

	var center, scale float64
	switch method {
	case MethodRobust:
		center = Median(xs)
		scale = madConsistency * MAD(xs, center)
	default:
		method = MethodStandard
		center, scale = MeanStdDev(xs)
	}
	if scale <= MinScale {
		scale = 1.0
	}

	for i, v := range values {
		if !isFinite(v) {
			continue
		}
		out[i] = (v - center) / scale
	}
	return out, Params{Method: method, Center: center, Scale: scale}
}

// MeanStdDev returns the mean and the Bessel-corrected standard deviation.
// A single value has zero deviation.
func MeanStdDev(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	if len(xs) == 1 {
		return xs[0], 0
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if math.IsNaN(std) {
		return mean, 0
	}
	return mean, std
}

// Finite returns the finite elements of values in their original order
func Finite(values []float64) []float64 {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if isFinite(v) {
			xs = append(xs, v)
		}
	}
	return xs
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
