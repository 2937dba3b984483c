package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

const (
	serverShutdownTimeout   = 10 * time.Second
	serverReadHeaderTimeout = 5 * time.Second
)

// startHTTPServer runs the HTTP server until the context is canceled or a
// termination signal arrives, then drains in-flight requests before
// returning. Resource cleanup happens here so the listener never outlives
// the database pool.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: serverReadHeaderTimeout,
	}

	// SIGINT and SIGTERM both trigger the same graceful drain.
	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		listenErr <- server.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		// ListenAndServe never returns nil, so anything arriving before a
		// shutdown request is a bind or accept failure.
		app.cleanup()
		return fmt.Errorf("server failed: %w", err)
	case <-signalCtx.Done():
		app.logger.Info("Shutdown requested, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	if err := <-listenErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error("Listener reported error during shutdown", "error", err)
	}

	app.cleanup()

	if shutdownErr != nil {
		app.logger.Error("Server shutdown failed", "error", shutdownErr)
		return fmt.Errorf("server shutdown failed: %w", shutdownErr)
	}

	app.logger.Info("Server shutdown completed")
	return nil
}
