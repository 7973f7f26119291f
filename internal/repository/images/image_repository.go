package images

import (
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/street-orientation/internal/domain/repository"
	"go.uber.org/zap"
)

type imageRepository struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewImageRepository создает хранилище изображений поверх afero.Fs
func NewImageRepository(fs afero.Fs, logger *zap.Logger) repository.ImageRepository {
	return &imageRepository{fs: fs, logger: logger}
}

// NextPath возвращает base.ext, а если он занят - base-1.ext, base-2.ext ...
func (r *imageRepository) NextPath(base, ext string) (string, error) {
	path := fmt.Sprintf("%s.%s", base, ext)
	for counter := 1; ; counter++ {
		exists, err := afero.Exists(r.fs, path)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", path, err)
		}
		if !exists {
			return path, nil
		}
		path = fmt.Sprintf("%s-%d.%s", base, counter, ext)
	}
}

// SavePNG создает каталог, выбирает свободное имя и записывает PNG
func (r *imageRepository) SavePNG(base string, img image.Image) (string, error) {
	if err := r.fs.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	path, err := r.NextPath(base, "png")
	if err != nil {
		return "", err
	}

	f, err := r.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	r.logger.Info("Image saved", zap.String("path", path))
	return path, nil
}

func (r *imageRepository) Remove(path string) error {
	if err := r.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
