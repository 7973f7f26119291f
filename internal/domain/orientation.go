package domain

// BearingOptions управляет извлечением азимутов из сети
type BearingOptions struct {
	// Weighted - повторять азимут round(length) раз (по метру длины)
	Weighted bool
	// ExcludeZero - отбрасывать ребра с азимутом ровно 0.0 (невзвешенный режим)
	ExcludeZero bool
}

// Histogram - нормированное распределение азимутов по Slices секторам
type Histogram struct {
	Slices      int       `json:"slices"`
	Counts      []int     `json:"counts"`
	Frequencies []float64 `json:"frequencies"`
	Total       int       `json:"total"`
}

// Centers возвращает центры секторов в градусах (сектор 0 центрирован на севере)
func (h *Histogram) Centers() []float64 {
	centers := make([]float64, h.Slices)
	for i := range centers {
		centers[i] = float64(i) * 360 / float64(h.Slices)
	}
	return centers
}

// Max возвращает максимальную частоту
func (h *Histogram) Max() float64 {
	var max float64
	for _, f := range h.Frequencies {
		if f > max {
			max = f
		}
	}
	return max
}

// OrientationSummary - сводные показатели ориентации сети
type OrientationSummary struct {
	DominantBearing float64 `json:"dominant_bearing"`
	Entropy         float64 `json:"entropy"`
	Order           float64 `json:"order"`
}

// PlaceOrientation - результат обработки одного места
type PlaceOrientation struct {
	Place    string         `json:"place"`
	Network  *StreetNetwork `json:"-"`
	Bearings []float64      `json:"-"`
}

// PolarPanel - одна полярная диаграмма. Histogram == nil - место без данных (пустая рамка).
type PolarPanel struct {
	Title     string
	Histogram *Histogram
	Summary   *OrientationSummary
}
