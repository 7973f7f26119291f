package places

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/afero"
	"github.com/street-orientation/internal/domain"
	"github.com/street-orientation/internal/domain/repository"
	pkgerrors "github.com/street-orientation/internal/pkg/errors"
	"github.com/street-orientation/internal/pkg/validator"
	"go.uber.org/zap"
)

type placesRepository struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewPlacesRepository создает загрузчик файла мест
func NewPlacesRepository(fs afero.Fs, logger *zap.Logger) repository.PlacesRepository {
	return &placesRepository{fs: fs, logger: logger}
}

// Load читает JSON-объект "имя -> запрос" и возвращает места, отсортированные по имени.
// Ошибка чтения или разбора файла - ErrInvalidPlacesFile. Место с пустым запросом
// пропускается с предупреждением, остальные обрабатываются.
func (r *placesRepository) Load(path string) ([]domain.Place, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrInvalidPlacesFile, fmt.Errorf("failed to read %s: %w", path, err))
	}

	var raw map[string]domain.PlaceQuery
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrInvalidPlacesFile, fmt.Errorf("failed to parse %s: %w", path, err))
	}
	if raw == nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrInvalidPlacesFile, fmt.Errorf("%s is not a JSON object", path))
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]domain.Place, 0, len(names))
	for _, name := range names {
		place := domain.Place{Name: name, Query: raw[name]}
		if err := validator.Validate(place); err != nil {
			r.logger.Warn("Skipping invalid place",
				zap.String("place", name),
				zap.Error(pkgerrors.Wrap(pkgerrors.ErrInvalidPlace, err)))
			continue
		}
		result = append(result, place)
	}

	return result, nil
}
