// Package server initializes and runs the watchlist application server. It
// selects the storage backend, runs schema migrations, wires the services and
// starts the HTTP endpoint with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/reelist/reelist/internal/logging"
	"github.com/reelist/reelist/internal/server/config"
	"github.com/reelist/reelist/internal/server/omdb"
	"github.com/reelist/reelist/internal/server/repositories/repomanager"
	"github.com/reelist/reelist/internal/server/rest"
	"github.com/reelist/reelist/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repoManager repomanager.RepositoryManager
	restServer  *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	rm, err := newRepositoryManager(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(rm.Users(), cfg)
	ws := services.NewWatchedService(rm.Watched())
	finder := omdb.NewClient(cfg.OMDbAPIKey)

	srv := rest.NewServer(cfg, logger, us, ws, finder)

	return &App{config: cfg, logger: logger, repoManager: rm, restServer: srv}, nil
}

func newRepositoryManager(ctx context.Context, cfg *config.Config) (repomanager.RepositoryManager, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return repomanager.NewMemoryRepositoryManager(), nil
	case config.BackendPostgres:
		return repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	case config.BackendDynamo:
		return repomanager.NewDynamoRepositoryManager(ctx, repomanager.DynamoConfig{
			Region:       cfg.DynamoRegion,
			Endpoint:     cfg.DynamoEndpoint,
			AccessKey:    cfg.DynamoAccessKey,
			SecretKey:    cfg.DynamoSecretKey,
			UsersTable:   cfg.UsersTable,
			WatchedTable: cfg.WatchedTable,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startRESTServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.restServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...",
		"address", app.config.Address, "backend", app.config.StorageBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startRESTServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repoManager.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
}
