// Package server owns the process lifecycle: boot the backing services,
// serve HTTP, and shut everything down in order on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/themirzaalibaig/server-ecommerce/config"
	"github.com/themirzaalibaig/server-ecommerce/internal/kernel"
	"github.com/themirzaalibaig/server-ecommerce/pkg/cache"
	"github.com/themirzaalibaig/server-ecommerce/pkg/database"
	"github.com/themirzaalibaig/server-ecommerce/pkg/logger"
	"github.com/themirzaalibaig/server-ecommerce/pkg/storage"
)

// Boot initialises config, logging, Mongo, Redis and storage.
// Redis is optional: a failed connect only disables caching.
// It returns a cleanup func that releases everything in reverse order.
func Boot(ctx context.Context) (func(), error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("server: load config: %w", err)
	}

	if err := database.Connect(ctx); err != nil {
		return nil, err
	}
	if err := database.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	closeLogs, err := logger.Configure()
	if err != nil {
		return nil, fmt.Errorf("server: configure logger: %w", err)
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}

	if err := storage.Connect(); err != nil {
		return nil, err
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cache.Close(); err != nil {
			logger.Warn("redis close", "error", err)
		}
		closeLogs()
		if err := database.Disconnect(shutdownCtx); err != nil {
			logger.Warn("mongo disconnect", "error", err)
		}
	}
	return cleanup, nil
}

// Run boots the application and serves HTTP until the context is cancelled
// or a termination signal arrives.
func Run(ctx context.Context) error {
	cleanup, err := Boot(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           kernel.Build().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("shutting down", "reason", "context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
