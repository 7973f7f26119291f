package orientation

import (
	"math"

	"github.com/street-orientation/internal/domain"
)

// Энтропия идеальной решетки: все улицы в 4 секторах (N, E, S, W)
var gridEntropy = math.Log(4)

// Summarize считает доминирующий азимут, энтропию Шеннона (в натах)
// и упорядоченность ориентации: 0 - равномерно, 1 - идеальная решетка.
func Summarize(h *domain.Histogram) domain.OrientationSummary {
	if h == nil || h.Slices == 0 {
		return domain.OrientationSummary{}
	}

	dominant := 0
	for i, f := range h.Frequencies {
		if f > h.Frequencies[dominant] {
			dominant = i
		}
	}

	entropy := Entropy(h.Frequencies)

	return domain.OrientationSummary{
		DominantBearing: float64(dominant) * 360 / float64(h.Slices),
		Entropy:         entropy,
		Order:           orientationOrder(entropy, h.Slices),
	}
}

// Entropy - энтропия Шеннона распределения частот
func Entropy(frequencies []float64) float64 {
	var entropy float64
	for _, p := range frequencies {
		if p > 0 {
			entropy -= p * math.Log(p)
		}
	}
	return entropy
}

func orientationOrder(entropy float64, slices int) float64 {
	maxEntropy := math.Log(float64(slices))
	if maxEntropy <= gridEntropy {
		return 0
	}
	order := 1 - math.Pow((entropy-gridEntropy)/(maxEntropy-gridEntropy), 2)
	return math.Max(0, math.Min(1, order))
}
