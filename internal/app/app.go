package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/libroom/internal/availability"
	"github.com/five82/libroom/internal/command"
	"github.com/five82/libroom/internal/config"
	"github.com/five82/libroom/internal/logging"
	"github.com/five82/libroom/internal/state"
	"github.com/five82/libroom/internal/ui"
)

// Options configure the libroom application.
type Options struct {
	ConfigPath string // empty uses ~/.config/libroom/config.toml
	PollEvery  int    // seconds between host pings; zero uses default
}

// Services are the long-lived components shared by the TUI and the one-shot
// query command.
type Services struct {
	Config  config.Config
	Logger  *zap.Logger
	Invoker *command.Limited
	Querier *availability.Querier
	Store   *state.Store
}

// Setup loads the config and builds every component. Callers must Close the
// result.
func Setup(opts Options) (*Services, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.Nop()
	if cfg.Log.File != "" {
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("init logging: %w", err)
		}
	}

	inner, err := NewInvoker(cfg.Embedded, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init embedded command: %w", err)
	}
	limited := command.NewLimited(inner, cfg.Embedded.RatePerMinute)

	querier := &availability.Querier{Command: limited, Logger: logger}
	store := state.NewStore(querier, cfg.Settings())

	return &Services{
		Config:  cfg,
		Logger:  logger,
		Invoker: limited,
		Querier: querier,
		Store:   store,
	}, nil
}

// Close flushes the logger.
func (s *Services) Close() {
	_ = s.Logger.Sync()
}

// NewInvoker builds the transport named by cfg.Transport.
func NewInvoker(cfg config.Embedded, logger *zap.Logger) (command.Invoker, error) {
	switch cfg.Transport {
	case config.TransportExec:
		if cfg.Command == "" {
			return nil, command.ErrNoCommand
		}
		return command.NewExec(cfg.Command, cfg.Args, cfg.Timeout, logger), nil
	case config.TransportHTTP, "":
		return command.NewClient(cfg.APIBind, cfg.Timeout, logger)
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// Run boots the libroom TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	svc, err := Setup(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	cfg := svc.Config
	svc.Logger.Info("libroom starting",
		zap.String("transport", cfg.Embedded.Transport),
		zap.String("data_source", cfg.DataSource.String()),
		zap.Int("attendance", cfg.Attendance),
		zap.Duration("poll_interval", interval),
	)

	StartPoller(ctx, svc.Store, svc.Invoker, interval, svc.Logger)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Store:     svc.Store,
		Crawler:   cfg.Crawler,
		PastDays:  cfg.PastDays,
		DaysAhead: cfg.DaysAhead,
		LogPath:   cfg.Log.File,
		ThemeName: cfg.Theme,
		Logger:    svc.Logger,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		svc.Logger.Error("ui exited", zap.Error(err))
		return err
	}
	svc.Logger.Info("libroom stopped")
	return nil
}
