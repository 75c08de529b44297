package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/persona-api/internal/config"
	"github.com/deppfellow/persona-api/internal/database"
	"github.com/deppfellow/persona-api/internal/handler"
	"github.com/deppfellow/persona-api/internal/logger"
	"github.com/deppfellow/persona-api/internal/repository"
	"github.com/deppfellow/persona-api/internal/router"
	"github.com/deppfellow/persona-api/internal/server"
	"github.com/deppfellow/persona-api/internal/service"
)

const (
	migrationTimeout = 60 * time.Second
	shutdownTimeout  = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, loggerService)
	stop()

	// Flush New Relic before exiting, including after a failed startup.
	loggerService.Shutdown()
	if err != nil {
		os.Exit(1)
	}
}

// run starts the service and blocks until ctx is cancelled or the HTTP
// server stops. Startup failures are logged and returned.
func run(ctx context.Context, cfg *config.Config, loggerService *logger.LoggerService) error {
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	migrateCtx, cancel := context.WithTimeout(ctx, migrationTimeout)
	err := database.Migrate(migrateCtx, &log, cfg)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("failed to migrate database")
		return fmt.Errorf("migrate database: %w", err)
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return fmt.Errorf("initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		_ = srv.Shutdown(context.Background())
		return fmt.Errorf("create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)
	srv.SetupHTTPServer(r)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	var runErr error
	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			runErr = fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
	return runErr
}
