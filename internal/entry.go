// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/mcpserver"
	"github.com/starford/folio/internal/source"
	"github.com/starford/folio/internal/sse"
	"github.com/starford/folio/internal/watch"
	"github.com/starford/folio/internal/web"
)

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config
	logger := app.logger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("source_endpoint", cfg.Source.Endpoint),
		slog.String("source_file", cfg.Source.File),
		slog.Bool("live_reload", cfg.LiveReloadEnabled()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	src, err := newSource(cfg.Source)
	if err != nil {
		return fmt.Errorf("init source: %w", err)
	}

	client := contact.NewClient(cfg.Contact.Endpoint, nil)

	var broker *sse.Broker
	webOpts := web.Options{
		Source:  src,
		Contact: contact.NewForm(client, cfg.Contact.Mailto, logger),
		Logger:  logger,
	}
	if cfg.LiveReloadEnabled() {
		broker = sse.NewBroker(time.Second)
		defer broker.Close()
		webOpts.Events = broker
	}

	pages, err := web.NewHandler(webOpts)
	if err != nil {
		return fmt.Errorf("init pages: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", api.NewRouter(api.NewHandler(src, client, logger), cfg.CORS.AllowedOrigins))
	r.Mount("/", web.NewRouter(pages))

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	if broker != nil {
		g.Go(func() error {
			return watch.File(gCtx, cfg.Source.File, logger, broker.ProjectsChanged)
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if broker != nil {
			// Open event streams would otherwise hold Shutdown until the timeout.
			broker.Close()
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return context.Canceled
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the portfolio as MCP tools over stdin/stdout.
func RunMCP(_ context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	logger := app.logger()

	src, err := newSource(app.config.Source)
	if err != nil {
		return fmt.Errorf("init source: %w", err)
	}

	logger.Info("MCP server starting", slog.String("version", app.version))
	return mcpserver.New(src, app.version, logger).ServeStdio()
}

func (a *application) logger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOut, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// newSource selects the project source named by cfg.
func newSource(cfg SourceConfig) (source.Source, error) {
	if cfg.File != "" {
		return source.NewFile(cfg.File), nil
	}
	return source.NewHTTP(cfg.Endpoint, cfg.Type, nil)
}
