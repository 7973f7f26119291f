package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/street-orientation/internal/config"
	"github.com/street-orientation/internal/domain"
	"github.com/street-orientation/internal/domain/repository"
	"github.com/street-orientation/internal/infrastructure/composite"
	"github.com/street-orientation/internal/infrastructure/nominatim"
	"github.com/street-orientation/internal/infrastructure/render"
	"github.com/street-orientation/internal/repository/cache"
	"github.com/street-orientation/internal/repository/images"
	"github.com/street-orientation/internal/repository/pbf"
	"github.com/street-orientation/internal/repository/postgresosm"
	"github.com/street-orientation/internal/usecase"
	"go.uber.org/zap"
)

// Services - use case'ы одного запуска вместе с открытыми соединениями
type Services struct {
	Check  *usecase.CheckUseCase
	Render *usecase.RenderUseCase

	closers []func() error
}

// Close закрывает соединения в обратном порядке
func (s *Services) Close(logger *zap.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Error("Failed to close resource", zap.Error(err))
		}
	}
}

// ServiceFactory собирает зависимости для режима. Подменяется в тестах.
type ServiceFactory func(cfg *config.Config, fs afero.Fs, logger *zap.Logger, mode string) (*Services, error)

// BuildServices собирает production-зависимости. Для check нужен только геокодер,
// поэтому база, кеш и рендер открываются лишь для list и single.
func BuildServices(cfg *config.Config, fs afero.Fs, logger *zap.Logger, mode string) (*Services, error) {
	geocoder := nominatim.NewClient(&cfg.Nominatim, logger)

	svc := &Services{}
	if mode == ModeCheck {
		svc.Check = usecase.NewCheckUseCase(geocoder, logger)
		return svc, nil
	}

	// 1. Cache
	cacheRepo, closeCache, err := cache.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	svc.closers = append(svc.closers, closeCache)

	// 2. Street network provider
	networks, err := openNetworkRepository(cfg, fs, logger, svc)
	if err != nil {
		svc.Close(logger)
		return nil, err
	}

	// 3. Renderer
	renderCfg, err := render.NewConfig(&cfg.Render)
	if err != nil {
		svc.Close(logger)
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	renderer, err := render.New(renderCfg, logger)
	if err != nil {
		svc.Close(logger)
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	// 4. Use cases
	collector := usecase.NewOrientationUseCase(
		geocoder,
		networks,
		cacheRepo,
		logger,
		cfg.Network.Provider,
		domain.BearingOptions{
			Weighted:    cfg.Orientation.Weighted,
			ExcludeZero: cfg.Orientation.ExcludeZero,
		},
		cfg.Cache.TTL,
	)
	imageRepo := images.NewImageRepository(fs, logger)
	svc.Render = usecase.NewRenderUseCase(
		collector,
		renderer,
		imageRepo,
		composite.NewCompositor(&cfg.Composite, imageRepo, logger),
		logger,
		cfg.Orientation.Slices,
		cfg.Output.ImagesDir,
		cfg.Render.Suptitle,
	)

	logger.Debug("Services initialized",
		zap.String("provider", cfg.Network.Provider),
		zap.String("cache", cfg.Cache.Driver))

	return svc, nil
}

func openNetworkRepository(cfg *config.Config, fs afero.Fs, logger *zap.Logger, svc *Services) (repository.NetworkRepository, error) {
	switch cfg.Network.Provider {
	case "pbf":
		return pbf.NewNetworkRepository(fs, cfg.PBF.File, cfg.Network.Clip, logger), nil
	default:
		osmDB, err := postgresosm.New(&cfg.OSMDB, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to OSM PostgreSQL: %w", err)
		}
		svc.closers = append(svc.closers, osmDB.Close)
		return postgresosm.NewNetworkRepository(osmDB, cfg.Network.Clip), nil
	}
}
