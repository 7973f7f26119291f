package repository

import (
	"context"
	"image"

	"github.com/street-orientation/internal/domain"
)

// ChartRenderer рисует диаграммы и карты
type ChartRenderer interface {
	Polar(panel domain.PolarPanel) image.Image
	Grid(panels []domain.PolarPanel, suptitle string) image.Image
	StreetMap(network *domain.StreetNetwork) image.Image
}

// ImageCompositor накладывает диаграмму на карту. Best-effort: ошибка не возвращается,
// итог описывает PostProcessResult.
type ImageCompositor interface {
	Compose(ctx context.Context, polarPath, mapPath, goalPath string) domain.PostProcessResult
}
