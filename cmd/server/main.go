package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/fantasy-keepers/internal/api"
	"github.com/mcoot/fantasy-keepers/internal/config"
	"github.com/mcoot/fantasy-keepers/internal/factory"
	"github.com/mcoot/fantasy-keepers/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	settings, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		slog.Int("season", settings.Season),
		slog.String("storage", settings.StorageType),
		slog.String("roster_dir", settings.RosterDir),
	)

	// Create application factory
	app, err := factory.New(factory.FromSettings(settings, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Close()

	// A missing or broken roster is reported per request; warn early so it is noticed
	if _, err := app.RosterService.Current(context.Background()); err != nil {
		logger.Warn("roster not loadable at startup", slog.String("error", err.Error()))
	}

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		KeepersController: app.KeepersController,
		Season:            settings.Season,
		CORSOrigins:       settings.CORSOrigins,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:            logger,
		KeepersController: app.KeepersController,
		Season:            settings.Season,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = settings.Port
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
