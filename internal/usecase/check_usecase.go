package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/street-orientation/internal/domain"
	"github.com/street-orientation/internal/domain/repository"
	apperrors "github.com/street-orientation/internal/pkg/errors"
	"go.uber.org/zap"
)

// CheckUseCase проверяет, что каждое место геокодируется в регион, а не в точку
type CheckUseCase struct {
	geocoder repository.GeocodingRepository
	logger   *zap.Logger
}

func NewCheckUseCase(geocoder repository.GeocodingRepository, logger *zap.Logger) *CheckUseCase {
	return &CheckUseCase{
		geocoder: geocoder,
		logger:   logger,
	}
}

// CheckPlaces выполняет по одному запросу на место, без повторов.
// Проблемные места логируются, проверка продолжается.
func (uc *CheckUseCase) CheckPlaces(ctx context.Context, places []domain.Place) []domain.CheckReport {
	reports := make([]domain.CheckReport, 0, len(places))
	for _, place := range places {
		if ctx.Err() != nil {
			break
		}

		report := uc.CheckPlace(ctx, place)
		if !report.OK() {
			uc.logger.Warn("Place is not a region",
				zap.String("place", place.Name),
				zap.String("status", string(report.Status)),
				zap.String("geometry_type", report.GeometryType),
				zap.String("detail", report.Detail))
		}
		reports = append(reports, report)
	}
	return reports
}

// CheckPlace классифицирует ответ геокодера для одного места (первое совпадение)
func (uc *CheckUseCase) CheckPlace(ctx context.Context, place domain.Place) domain.CheckReport {
	report := domain.CheckReport{Place: place.Name}

	results, err := uc.geocoder.Search(ctx, place.Query)
	if err != nil {
		var upstream *apperrors.UpstreamError
		if errors.As(err, &upstream) {
			report.Status = domain.CheckStatusNonSuccessStatus
			report.Detail = fmt.Sprintf("status %d: %s", upstream.StatusCode, upstream.Body)
			return report
		}
		report.Status = domain.CheckStatusRequestFailed
		report.Detail = err.Error()
		return report
	}

	if len(results) != 1 {
		report.Status = domain.CheckStatusWrongResultCount
		report.Detail = fmt.Sprintf("expected 1 result, got %d", len(results))
		return report
	}

	report.Status, report.GeometryType = ClassifyGeometry(results[0])
	if report.Status == domain.CheckStatusMissingGeometry {
		report.Detail = "response has no geojson"
	}
	return report
}

// ClassifyGeometry проверяет geojson результата: нет геометрии, не полигон или ok
func ClassifyGeometry(result domain.GeocodeResult) (domain.CheckStatus, string) {
	if !result.HasGeometry() {
		return domain.CheckStatusMissingGeometry, ""
	}

	geometryType := result.GeometryType()
	if !domain.IsRegionGeometry(geometryType) {
		return domain.CheckStatusDisallowedGeometry, geometryType
	}
	return domain.CheckStatusOK, geometryType
}
