package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/street-orientation/internal/domain"
	"github.com/street-orientation/internal/domain/repository"
	"github.com/street-orientation/internal/orientation"
	apperrors "github.com/street-orientation/internal/pkg/errors"
	"go.uber.org/zap"
)

const listImageName = "street_orientation"

// SingleImage - итог режима single для одного места
type SingleImage struct {
	Place     string
	PolarPath string
	MapPath   string
	Composite domain.PostProcessResult
}

type RenderUseCase struct {
	collector  OrientationCollector
	renderer   repository.ChartRenderer
	images     repository.ImageRepository
	compositor repository.ImageCompositor
	logger     *zap.Logger
	slices     int
	imagesDir  string
	suptitle   string
}

func NewRenderUseCase(
	collector OrientationCollector,
	renderer repository.ChartRenderer,
	images repository.ImageRepository,
	compositor repository.ImageCompositor,
	logger *zap.Logger,
	slices int,
	imagesDir string,
	suptitle string,
) *RenderUseCase {
	return &RenderUseCase{
		collector:  collector,
		renderer:   renderer,
		images:     images,
		compositor: compositor,
		logger:     logger,
		slices:     slices,
		imagesDir:  imagesDir,
		suptitle:   suptitle,
	}
}

// RenderList рисует все места на одной сетке. Нужно минимум два места;
// проверка выполняется до любых сетевых запросов.
func (uc *RenderUseCase) RenderList(ctx context.Context, places []domain.Place) (string, error) {
	if len(places) < 2 {
		return "", apperrors.Wrap(apperrors.ErrTooFewPlaces, fmt.Errorf("got %d place(s)", len(places)))
	}

	collected := uc.collector.Collect(ctx, places)

	panels := make([]domain.PolarPanel, 0, len(places))
	for _, place := range places {
		panel := domain.PolarPanel{Title: place.Name}
		if po, ok := collected[place.Name]; ok {
			if h, summary, err := uc.histogram(po); err == nil {
				panel.Histogram = h
				panel.Summary = summary
			} else {
				uc.logger.Warn("Failed to build polar plot", zap.String("place", place.Name), zap.Error(err))
			}
		}
		panels = append(panels, panel)
	}

	img := uc.renderer.Grid(panels, uc.suptitle)
	path, err := uc.images.SavePNG(filepath.Join(uc.imagesDir, listImageName), img)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrRenderFailed, err)
	}
	return path, nil
}

// RenderSingle рисует для каждого места диаграмму и карту, затем пытается их склеить.
// Места без данных и ошибки отрисовки пропускаются.
func (uc *RenderUseCase) RenderSingle(ctx context.Context, places []domain.Place) []SingleImage {
	collected := uc.collector.Collect(ctx, places)

	var out []SingleImage
	for _, place := range places {
		po, ok := collected[place.Name]
		if !ok {
			continue
		}

		image, err := uc.renderSingle(ctx, place, po)
		if err != nil {
			uc.logger.Warn("Failed to build polar plot", zap.String("place", place.Name), zap.Error(err))
			continue
		}

		uc.logger.Info("Place rendered",
			zap.String("place", place.Name),
			zap.String("composite", string(image.Composite.Status)),
			zap.String("reason", image.Composite.Reason))
		out = append(out, *image)
	}
	return out
}

func (uc *RenderUseCase) renderSingle(ctx context.Context, place domain.Place, po *domain.PlaceOrientation) (*SingleImage, error) {
	h, summary, err := uc.histogram(po)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(uc.imagesDir, fileSafe(place.Name))

	polarPath, err := uc.images.SavePNG(base+"_polar", uc.renderer.Polar(domain.PolarPanel{
		Title:     place.Name,
		Histogram: h,
		Summary:   summary,
	}))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRenderFailed, err)
	}

	mapPath, err := uc.images.SavePNG(base+"_map", uc.renderer.StreetMap(po.Network))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRenderFailed, err)
	}

	result := SingleImage{Place: place.Name, PolarPath: polarPath, MapPath: mapPath}

	goalPath, err := uc.images.NextPath(base, "png")
	if err != nil {
		result.Composite = domain.Skipped(err.Error())
		return &result, nil
	}
	result.Composite = uc.compositor.Compose(ctx, polarPath, mapPath, goalPath)
	return &result, nil
}

func (uc *RenderUseCase) histogram(po *domain.PlaceOrientation) (*domain.Histogram, *domain.OrientationSummary, error) {
	h, err := orientation.BuildHistogram(po.Bearings, uc.slices)
	if err != nil {
		return nil, nil, err
	}

	summary := orientation.Summarize(h)
	uc.logger.Info("Orientation computed",
		zap.String("place", po.Place),
		zap.Int("bearings", h.Total),
		zap.Float64("dominant_bearing", summary.DominantBearing),
		zap.Float64("entropy", summary.Entropy),
		zap.Float64("order", summary.Order))

	return h, &summary, nil
}

// fileSafe заменяет разделители пути в имени места
func fileSafe(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name)
}
