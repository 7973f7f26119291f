package orientation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/street-orientation/internal/pkg/errors"
)

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

func TestBuildHistogram_SumsToOne(t *testing.T) {
	inputs := [][]float64{
		{0},
		{10, 20, 30, 40},
		{359.999, 0.001, 90, 180, 270, 45.5, 135.25},
		{1, 1, 1, 1, 1, 1, 1, 200},
	}

	for _, bearings := range inputs {
		for _, slices := range []int{1, 4, 8, 36, 37, 72} {
			h, err := BuildHistogram(bearings, slices)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, sum(h.Frequencies), 1e-9)
			assert.Len(t, h.Frequencies, slices)
			assert.Len(t, h.Counts, slices)
			assert.Equal(t, len(bearings), h.Total)
		}
	}
}

func TestBuildHistogram_WrapAround(t *testing.T) {
	h, err := BuildHistogram([]float64{359.5, 0.5}, 36)
	require.NoError(t, err)

	assert.Equal(t, 2, h.Counts[0])
	assert.Equal(t, 1.0, h.Frequencies[0])
}

func TestCountAndMerge_BinEdges(t *testing.T) {
	tests := []struct {
		name    string
		bearing float64
		slices  int
		bin     int
	}{
		{"exactly north", 0, 36, 0},
		{"just below half-bin edge", 4.999, 36, 0},
		{"on half-bin edge belongs to upper bin", 5, 36, 1},
		{"on full-bin center", 10, 36, 1},
		{"just below 15", 14.999, 36, 1},
		{"on 15", 15, 36, 2},
		{"east", 90, 36, 9},
		{"south", 180, 36, 18},
		{"west", 270, 36, 27},
		{"above last half-bin edge", 355, 36, 0},
		{"closed upper edge", 360, 36, 0},
		{"quadrants north", 44.9, 4, 0},
		{"quadrants east", 45, 4, 1},
		{"quadrants west", 314.99, 4, 3},
		{"quadrants back to north", 315, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts, err := CountAndMerge([]float64{tt.bearing}, tt.slices)
			require.NoError(t, err)
			require.Len(t, counts, tt.slices)
			assert.Equal(t, 1, counts[tt.bin], "counts: %v", counts)
		})
	}
}

func TestCountAndMerge_OrderInsensitive(t *testing.T) {
	a, err := CountAndMerge([]float64{12, 97, 181, 359, 3}, 36)
	require.NoError(t, err)
	b, err := CountAndMerge([]float64{3, 359, 181, 97, 12}, 36)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCountAndMerge_Errors(t *testing.T) {
	_, err := CountAndMerge(nil, 36)
	assert.True(t, errors.Is(err, apperrors.ErrEmptyBearings))

	_, err = CountAndMerge([]float64{10}, 0)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidSlices))

	_, err = CountAndMerge([]float64{10}, -3)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidSlices))

	for _, bad := range []float64{-0.1, 360.0001, math.NaN(), math.Inf(1)} {
		_, err = CountAndMerge([]float64{10, bad}, 36)
		assert.True(t, errors.Is(err, apperrors.ErrBearingOutOfRange), "value %v", bad)
	}
}

func TestBuildHistogram_EmptyRejected(t *testing.T) {
	h, err := BuildHistogram([]float64{}, 36)
	assert.Nil(t, h)
	assert.True(t, errors.Is(err, apperrors.ErrEmptyBearings))
}

func TestSummarize(t *testing.T) {
	grid := []float64{0, 90, 180, 270, 0, 90, 180, 270}
	h, err := BuildHistogram(grid, 36)
	require.NoError(t, err)

	s := Summarize(h)
	assert.Equal(t, 0.0, s.DominantBearing)
	assert.InDelta(t, math.Log(4), s.Entropy, 1e-9)
	assert.InDelta(t, 1.0, s.Order, 1e-9)

	uniform := make([]float64, 0, 36)
	for i := 0; i < 36; i++ {
		uniform = append(uniform, float64(i)*10)
	}
	h, err = BuildHistogram(uniform, 36)
	require.NoError(t, err)

	s = Summarize(h)
	assert.InDelta(t, math.Log(36), s.Entropy, 1e-9)
	assert.InDelta(t, 0.0, s.Order, 1e-9)

	assert.Equal(t, 0.0, Summarize(nil).Entropy)
}
