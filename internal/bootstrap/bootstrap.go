package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/dmorenov/ragchat/internal/config"
	"github.com/dmorenov/ragchat/internal/core/domain"
	"github.com/dmorenov/ragchat/internal/core/usecase"
	"github.com/dmorenov/ragchat/internal/infrastructure/availability"
	"github.com/dmorenov/ragchat/internal/infrastructure/backend/fallback"
	"github.com/dmorenov/ragchat/internal/infrastructure/backend/remote"
	"github.com/dmorenov/ragchat/internal/infrastructure/backend/synthetic"
	"github.com/dmorenov/ragchat/internal/infrastructure/watch"
	"github.com/dmorenov/ragchat/internal/observability/logging"
	"github.com/dmorenov/ragchat/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.ClientMetrics

	Docs *usecase.DocumentService
	Chat *usecase.ChatSession

	// Watcher is nil unless watch mode is configured.
	Watcher *watch.Watcher

	prober  *availability.Prober
	closeFn func()
}

func New(cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger("ragchat", cfg.LogLevel, cfg.LogFile)
	slog.SetDefault(logger)

	m := metrics.NewClientMetrics("ragchat")

	remoteClient := remote.New(cfg.BackendURL)
	prober := availability.New(remoteClient, cfg.ProbeTimeout())
	source := fallback.New(prober, remoteClient, synthetic.New(cfg.SyntheticDelay()), m)

	docs := usecase.NewDocumentService(source)
	chat := usecase.NewChatSession(source)

	app := &App{
		Config:  cfg,
		Metrics: m,
		Docs:    docs,
		Chat:    chat,
		prober:  prober,
	}

	if cfg.WatchDir != "" {
		watcher, err := watch.New(docs, cfg.Extensions())
		if err != nil {
			return nil, fmt.Errorf("init watcher: %w", err)
		}
		app.Watcher = watcher
		app.closeFn = func() {
			_ = watcher.Close()
		}
	}

	return app, nil
}

// AvailabilityState reports the cached verdict without probing.
func (a *App) AvailabilityState() domain.Availability {
	return a.prober.State()
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
