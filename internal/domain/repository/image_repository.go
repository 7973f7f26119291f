package repository

import "image"

// ImageRepository хранит отрисованные изображения
type ImageRepository interface {
	// NextPath возвращает первый свободный путь: base.ext, base-1.ext, base-2.ext ...
	NextPath(base, ext string) (string, error)

	// SavePNG сохраняет изображение под следующим свободным именем base*.png
	SavePNG(base string, img image.Image) (string, error)

	// Remove удаляет файл
	Remove(path string) error
}
