// Package server assembles the catalog service: storage, file archive,
// HTTP API and graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/doccatalog/internal/logging"
	"github.com/dmitrijs2005/doccatalog/internal/server/blob"
	"github.com/dmitrijs2005/doccatalog/internal/server/catalog"
	"github.com/dmitrijs2005/doccatalog/internal/server/config"
	"github.com/dmitrijs2005/doccatalog/internal/server/httpapi"
	"github.com/dmitrijs2005/doccatalog/internal/server/repositories/repomanager"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *httpapi.Server
}

// openBlobStore is a seam for tests.
var openBlobStore = func(ctx context.Context, c *config.Config) (blob.Store, error) {
	if !c.S3Enabled() {
		return blob.NewMemoryStore(), nil
	}
	return blob.NewS3Store(ctx, c)
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := repomanager.Open(ctx, c)
	if err != nil {
		return nil, err
	}

	blobs, err := openBlobStore(ctx, c)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	svc := catalog.NewService(repos, blobs, logger.With("module", "catalog"))
	router := httpapi.NewRouter(svc, logger, httpapi.Options{
		MaxUploadSize:  c.MaxUploadSize,
		RequestTimeout: c.RequestTimeout,
		CORSOrigins:    c.CORSOrigins,
	})

	logger.Info(ctx, "storage ready", "storage", c.Storage, "s3", c.S3Enabled())

	return &App{
		config: c,
		logger: logger,
		repos:  repos,
		server: httpapi.NewServer(c.ListenAddr, router, logger, c.ShutdownTimeout),
	}, nil
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

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the storage.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	runErr := app.server.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "server stopped", "error", runErr)
	}

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "failed to close storage", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
