package orientation

import (
	"math"

	"github.com/street-orientation/internal/domain"
)

// ExtractBearings собирает азимуты ребер сети.
// Во взвешенном режиме каждое ребро дает round(length) копий азимута,
// в невзвешенном - одну (ребра с азимутом 0.0 отбрасываются при ExcludeZero).
func ExtractBearings(network *domain.StreetNetwork, opts domain.BearingOptions) []float64 {
	if network == nil {
		return nil
	}

	if opts.Weighted {
		bearings := make([]float64, 0, len(network.Edges))
		for _, edge := range network.Edges {
			for i := 0; i < sampleCount(edge.Length); i++ {
				bearings = append(bearings, edge.Bearing)
			}
		}
		return bearings
	}

	bearings := make([]float64, 0, len(network.Edges))
	for _, edge := range network.Edges {
		if opts.ExcludeZero && edge.Bearing == 0.0 {
			continue
		}
		bearings = append(bearings, edge.Bearing)
	}
	return bearings
}

// sampleCount - число копий азимута для ребра длиной length метров
func sampleCount(length float64) int {
	if math.IsNaN(length) || length <= 0 {
		return 0
	}
	return int(math.Round(length))
}
