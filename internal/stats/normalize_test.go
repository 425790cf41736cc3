package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func TestNormalizeStandardMeanZero(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"two values", []float64{1, 2}},
		{"ratings", []float64{52.1, 58.4, 61.0, 49.9, 55.5}},
		{"negative", []float64{-3, 0, 3, 10, -7, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, params := Normalize(tt.values, MethodStandard)
			require.Len(t, z, len(tt.values))
			assert.InDelta(t, 0.0, mean(z), 1e-12)
			assert.Equal(t, MethodStandard, params.Method)
			assert.Greater(t, params.Scale, 0.0)
		})
	}
}

func TestNormalizeStandardBessel(t *testing.T) {
	z, params := Normalize([]float64{2, 4, 6}, MethodStandard)

	assert.InDelta(t, 4.0, params.Center, 1e-12)
	assert.InDelta(t, 2.0, params.Scale, 1e-12)
	assert.InDeltaSlice(t, []float64{-1, 0, 1}, z, 1e-12)
}

func TestNormalizeRobustMedianZero(t *testing.T) {
	values := []float64{10, 12, 15, 40, 11}
	z, params := Normalize(values, MethodRobust)

	assert.InDelta(t, 12.0, params.Center, 1e-12)
	// deviations 2,0,3,28,1 -> MAD 2
	assert.InDelta(t, 1.4826*2, params.Scale, 1e-12)
	assert.InDelta(t, 0.0, Median(z), 1e-12)
}

func TestNormalizeRobustEvenLength(t *testing.T) {
	z, _ := Normalize([]float64{1, 2, 3, 4}, MethodRobust)
	assert.InDelta(t, 0.0, Median(z), 1e-12)
}

func TestNormalizeScaleFloor(t *testing.T) {
	for _, method := range []Method{MethodStandard, MethodRobust} {
		t.Run(string(method), func(t *testing.T) {
			z, params := Normalize([]float64{5, 5, 5}, method)
			assert.Equal(t, 1.0, params.Scale)
			assert.Equal(t, []float64{0, 0, 0}, z)
		})
	}
}

func TestNormalizeSingleValue(t *testing.T) {
	z, params := Normalize([]float64{7}, MethodStandard)
	assert.Equal(t, 1.0, params.Scale)
	assert.Equal(t, 7.0, params.Center)
	assert.Equal(t, []float64{0}, z)
}

func TestNormalizeNonNumeric(t *testing.T) {
	values := []float64{math.NaN(), 1, 3, math.Inf(1)}
	z, params := Normalize(values, MethodStandard)

	require.Len(t, z, 4)
	assert.Equal(t, 0.0, z[0])
	assert.Equal(t, 0.0, z[3])
	assert.InDelta(t, 2.0, params.Center, 1e-12)
	assert.InDelta(t, -z[1], z[2], 1e-12)
}

func TestNormalizeAllNonNumeric(t *testing.T) {
	z, params := Normalize([]float64{math.NaN(), math.NaN()}, MethodRobust)
	assert.Equal(t, []float64{0, 0}, z)
	assert.Equal(t, 0.0, params.Center)
	assert.Equal(t, 1.0, params.Scale)
}

func TestNormalizeEmpty(t *testing.T) {
	z, params := Normalize(nil, MethodStandard)
	assert.Empty(t, z)
	assert.Equal(t, 1.0, params.Scale)
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"standard", MethodStandard, false},
		{"z", MethodStandard, false},
		{" Robust ", MethodRobust, false},
		{"minmax", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
