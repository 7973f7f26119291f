package repository

import "github.com/street-orientation/internal/domain"

// PlacesRepository загружает список мест
type PlacesRepository interface {
	Load(path string) ([]domain.Place, error)
}
