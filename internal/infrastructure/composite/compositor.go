package composite

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/street-orientation/internal/config"
	"github.com/street-orientation/internal/domain"
	"github.com/street-orientation/internal/domain/repository"
	"go.uber.org/zap"
)

type compositor struct {
	enabled bool
	binary  string
	images  repository.ImageRepository
	logger  *zap.Logger
}

// NewCompositor создает обертку над ImageMagick composite.
// Исходные изображения удаляются через images.
func NewCompositor(cfg *config.CompositeConfig, images repository.ImageRepository, logger *zap.Logger) repository.ImageCompositor {
	return &compositor{
		enabled: cfg.Enabled,
		binary:  cfg.Binary,
		images:  images,
		logger:  logger,
	}
}

// Args - аргументы composite: диаграмма в правом нижнем углу карты
func Args(polarPath, mapPath, goalPath string) []string {
	return []string{polarPath, mapPath, "-gravity", "SouthEast", "-blend", "100", goalPath}
}

// Compose запускает composite без shell. После успеха исходные файлы удаляются,
// при неудаче остаются на месте.
func (c *compositor) Compose(ctx context.Context, polarPath, mapPath, goalPath string) domain.PostProcessResult {
	if !c.enabled {
		return domain.Skipped("compositing disabled")
	}

	binary, err := exec.LookPath(c.binary)
	if err != nil {
		c.logger.Info("Composite binary not found, skipping", zap.String("binary", c.binary))
		return domain.Skipped(fmt.Sprintf("%s not found", c.binary))
	}

	cmd := exec.CommandContext(ctx, binary, Args(polarPath, mapPath, goalPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		c.logger.Warn("Composite failed",
			zap.String("goal", goalPath),
			zap.String("output", string(out)),
			zap.Error(err))
		return domain.Skipped(fmt.Sprintf("composite failed: %v", err))
	}

	for _, path := range []string{polarPath, mapPath} {
		if err := c.images.Remove(path); err != nil {
			c.logger.Warn("Failed to remove composite input", zap.String("path", path), zap.Error(err))
		}
	}

	c.logger.Info("Composite image created", zap.String("path", goalPath))
	return domain.Succeeded(goalPath)
}
