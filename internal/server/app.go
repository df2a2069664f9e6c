// Package server wires the reel proxy: configuration, provider client,
// generator, optional archive and the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/personadesk/internal/logging"
	"github.com/dmitrijs2005/personadesk/internal/server/archive"
	"github.com/dmitrijs2005/personadesk/internal/server/config"
	"github.com/dmitrijs2005/personadesk/internal/server/httpapi"
	"github.com/dmitrijs2005/personadesk/internal/server/reels"
	"github.com/dmitrijs2005/personadesk/internal/server/veo"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler *httpapi.Handler
	server  *http.Server
}

// NewApp validates c and builds the proxy. A missing API key is an error.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	client := veo.NewClient(c.ProviderEndpoint, c.APIKey, c.Model, logger)
	gen := reels.NewGenerator(client, c.PollInterval, c.PollMaxAttempts, logger)

	var arch archive.Archiver
	if c.ArchiveEnabled() {
		s3a, err := archive.NewS3Archiver(ctx, archive.Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("archive init error: %w", err)
		}
		arch = s3a
	}

	h := httpapi.NewHandler(gen, arch, logger)

	return &App{
		config:  c,
		logger:  logger,
		handler: h,
		server:  &http.Server{Addr: c.Addr(), Handler: httpapi.NewRouter(h)},
	}, nil
}

// NewDefaultLogger is the JSON logger the proxy writes to stdout.
func NewDefaultLogger() logging.Logger {
	return logging.NewJSON(os.Stdout, slog.LevelInfo)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully and waits for pending archive uploads.
func (app *App) Serve(ctx context.Context, l net.Listener) error {
	errCh := make(chan error, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	app.logger.Info(ctx, "reel proxy listening", "addr", l.Addr().String())

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.ShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}
	wg.Wait()
	app.handler.Wait()

	app.logger.Info(ctx, "reel proxy stopped")
	return serveErr
}

// Run listens on the configured port and serves until SIGINT, SIGTERM or
// SIGQUIT.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	l, err := net.Listen("tcp", app.config.Addr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	return app.Serve(ctx, l)
}
