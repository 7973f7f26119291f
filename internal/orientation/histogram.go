package orientation

import (
	"fmt"
	"math"

	"github.com/street-orientation/internal/domain"
	apperrors "github.com/street-orientation/internal/pkg/errors"
)

// DefaultSlices - число секторов по умолчанию (по 10°)
const DefaultSlices = 36

// BuildHistogram строит нормированную круговую гистограмму азимутов
func BuildHistogram(bearings []float64, slices int) (*domain.Histogram, error) {
	counts, err := CountAndMerge(bearings, slices)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return nil, apperrors.ErrEmptyBearings
	}

	frequencies := make([]float64, len(counts))
	for i, c := range counts {
		frequencies[i] = float64(c) / float64(total)
	}

	return &domain.Histogram{
		Slices:      slices,
		Counts:      counts,
		Frequencies: frequencies,
		Total:       total,
	}, nil
}

// CountAndMerge считает азимуты в slices*2 полусекторах, переносит последний
// полусектор в начало (чтобы 359.99° и 0.01° попали в один сектор) и
// склеивает полусекторы попарно. Так границы секторов не совпадают с 0°, 90° и т.д.
func CountAndMerge(bearings []float64, slices int) ([]int, error) {
	if slices <= 0 {
		return nil, apperrors.ErrInvalidSlices
	}
	if len(bearings) == 0 {
		return nil, apperrors.ErrEmptyBearings
	}

	n := slices * 2
	half, err := countHalfBins(bearings, n)
	if err != nil {
		return nil, err
	}

	rotated := make([]int, 0, n)
	rotated = append(rotated, half[n-1])
	rotated = append(rotated, half[:n-1]...)

	merged := make([]int, slices)
	for i := range merged {
		merged[i] = rotated[2*i] + rotated[2*i+1]
	}
	return merged, nil
}

// countHalfBins раскладывает значения по n равным корзинам на [0, 360].
// Корзины полуоткрытые, последняя включает 360 (как numpy.histogram).
func countHalfBins(bearings []float64, n int) ([]int, error) {
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = float64(i) * 360 / float64(n)
	}

	counts := make([]int, n)
	for _, b := range bearings {
		if math.IsNaN(b) || b < 0 || b > 360 {
			return nil, apperrors.Wrap(apperrors.ErrBearingOutOfRange, fmt.Errorf("got %v", b))
		}

		idx := int(b * float64(n) / 360)
		if idx >= n {
			idx = n - 1
		}
		// поправка на погрешность деления относительно фактических границ
		for idx > 0 && b < edges[idx] {
			idx--
		}
		for idx < n-1 && b >= edges[idx+1] {
			idx++
		}
		counts[idx]++
	}
	return counts, nil
}
