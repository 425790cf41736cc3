package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Median returns the middle value of xs, averaging the two central values
// for even lengths. xs is not modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := sortedCopy(xs)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// UpperMedian returns the element at index len/2 of the sorted values, the
// upper of the two central values for even lengths.
func UpperMedian(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return sortedCopy(xs)[len(xs)/2]
}

// MAD returns the median absolute deviation of xs around center
func MAD(xs []float64, center float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	dev := make([]float64, len(xs))
	for i, x := range xs {
		dev[i] = math.Abs(x - center)
	}
	return Median(dev)
}

// Range returns min and max of xs. Empty input yields (0, 0).
func Range(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	return floats.Min(xs), floats.Max(xs)
}

// Spread returns max(xs) - min(xs)
func Spread(xs []float64) float64 {
	lo, hi := Range(xs)
	return hi - lo
}

// FitLine fits ys = a*xs + b by ordinary least squares. ok is false when
// the inputs are too short or xs has no variance.
func FitLine(xs, ys []float64) (a, b float64, ok bool) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return 0, 0, false
	}
	mx := stat.Mean(xs, nil)
	denom := 0.0
	for _, x := range xs {
		denom += (x - mx) * (x - mx)
	}
	if denom == 0 {
		return 0, 0, false
	}
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope, intercept, true
}

// Clamp bounds x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Round rounds x half away from zero to prec decimal places
func Round(x float64, prec int) float64 {
	return scalar.Round(x, prec)
}

func sortedCopy(xs []float64) []float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return sorted
}
