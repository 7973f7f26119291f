package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/street-orientation/internal/config"
	"github.com/street-orientation/internal/domain"
	"github.com/street-orientation/internal/pkg/logger"
	"github.com/street-orientation/internal/repository/places"
	"go.uber.org/zap"
)

const (
	ModeCheck  = "check"
	ModeList   = "list"
	ModeSingle = "single"
)

// ExitFailure - код завершения при фатальной ошибке
const ExitFailure = -1

const usageText = `Usage: orientation [flags] MODE FILE
Generates radial histogram plots from the direction of a region's streets.

The MODE argument must be "check", "list" or "single".

  check data/cities.json   Checks that all places in data/cities.json are
                           regions, not points.
  list data/cities.json    Generates one file in images/ containing charts
                           for all places in data/cities.json
  single data/cities.json  Generates files in images/ for every place in
                           data/cities.json

Flags:
`

// App - точка входа CLI без глобального состояния
type App struct {
	stdout   io.Writer
	stderr   io.Writer
	fs       afero.Fs
	services ServiceFactory
}

type Option func(*App)

// WithFs подменяет файловую систему (входной файл и изображения)
func WithFs(fs afero.Fs) Option {
	return func(a *App) { a.fs = fs }
}

// WithServiceFactory подменяет сборку зависимостей
func WithServiceFactory(f ServiceFactory) Option {
	return func(a *App) { a.services = f }
}

func New(stdout, stderr io.Writer, opts ...Option) *App {
	a := &App{
		stdout:   stdout,
		stderr:   stderr,
		fs:       afero.NewOsFs(),
		services: BuildServices,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run разбирает аргументы (без имени программы) и выполняет режим.
// Возвращает код завершения процесса.
func (a *App) Run(ctx context.Context, args []string) int {
	flags := pflag.NewFlagSet("orientation", pflag.ContinueOnError)
	flags.SetOutput(a.stderr)
	config.RegisterFlags(flags)
	flags.Usage = func() { a.usage(flags) }

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return ExitFailure
	}

	positional := flags.Args()
	if len(positional) != 2 {
		a.usage(flags)
		return ExitFailure
	}
	mode, file := positional[0], positional[1]
	switch mode {
	case ModeCheck, ModeList, ModeSingle:
	default:
		fmt.Fprintf(a.stderr, "Unknown mode %q.\n\n", mode)
		a.usage(flags)
		return ExitFailure
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(a.stderr, "Failed to load config: %v\n", err)
		return ExitFailure
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(a.stderr, "Failed to initialize logger: %v\n", err)
		return ExitFailure
	}
	defer log.Sync()

	log = log.With(zap.String("run_id", uuid.NewString()), zap.String("mode", mode))

	list, err := places.NewPlacesRepository(a.fs, log).Load(file)
	if err != nil {
		fmt.Fprintf(a.stderr, "Tried and failed to open file at %s. "+
			"Please pass a json file with city data to this program.\n", file)
		log.Error("Failed to load places", zap.String("file", file), zap.Error(err))
		return ExitFailure
	}
	log.Info("Places loaded", zap.String("file", file), zap.Int("count", len(list)))

	if mode == ModeList && len(list) < 2 {
		fmt.Fprintln(a.stderr, `Please use the "list" mode only if you have two or more cities to display!`)
		return ExitFailure
	}

	svc, err := a.services(cfg, a.fs, log, mode)
	if err != nil {
		fmt.Fprintf(a.stderr, "Failed to initialize: %v\n", err)
		log.Error("Failed to initialize services", zap.Error(err))
		return ExitFailure
	}
	defer svc.Close(log)

	switch mode {
	case ModeCheck:
		a.check(ctx, svc, list)
	case ModeList:
		a.list(ctx, svc, log, list)
	case ModeSingle:
		a.single(ctx, svc, list)
	}
	return 0
}

func (a *App) usage(flags *pflag.FlagSet) {
	fmt.Fprint(a.stderr, usageText)
	fmt.Fprint(a.stderr, flags.FlagUsages())
}

func (a *App) check(ctx context.Context, svc *Services, list []domain.Place) {
	for _, report := range svc.Check.CheckPlaces(ctx, list) {
		fmt.Fprintln(a.stdout, formatReport(report))
	}
}

// Ошибки генерации не меняют код завершения
func (a *App) list(ctx context.Context, svc *Services, log *zap.Logger, list []domain.Place) {
	path, err := svc.Render.RenderList(ctx, list)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error during list generation: %v.\n", err)
		log.Error("List generation failed", zap.Error(err))
		return
	}
	fmt.Fprintln(a.stdout, path)
}

func (a *App) single(ctx context.Context, svc *Services, list []domain.Place) {
	for _, img := range svc.Render.RenderSingle(ctx, list) {
		if img.Composite.Status == domain.PostProcessSuccess {
			fmt.Fprintln(a.stdout, img.Composite.Path)
			continue
		}
		fmt.Fprintln(a.stdout, img.PolarPath)
		fmt.Fprintln(a.stdout, img.MapPath)
	}
}

func formatReport(r domain.CheckReport) string {
	switch r.Status {
	case domain.CheckStatusOK:
		return fmt.Sprintf("%s: ok (%s)", r.Place, r.GeometryType)
	case domain.CheckStatusDisallowedGeometry:
		return fmt.Sprintf("Response for %s is of type %s!", r.Place, r.GeometryType)
	default:
		return fmt.Sprintf("%s: %s: %s", r.Place, r.Status, r.Detail)
	}
}
