package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"github.com/msto63/scaliger/foundation/calendar"
	"github.com/msto63/scaliger/internal/scaliger/server"
	"github.com/msto63/scaliger/internal/scaliger/service"
	"github.com/msto63/scaliger/pkg/core/config"
	"github.com/msto63/scaliger/pkg/core/logging"
	"github.com/msto63/scaliger/pkg/core/version"
)

func main() {
	configPath := flag.String("config", "", "config file (default: $SCALIGER_CONFIG or ./configs/scaliger.toml)")
	flag.Parse()

	bootLogger := logging.New("scaliger")

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		bootLogger.ErrorWithErr("Failed to load configuration", err)
		os.Exit(1)
	}

	logger := logging.NewWithConfig(logging.LoggerConfig{
		ServiceName: cfg.General.Name,
		Level:       cfg.General.LogLevel,
		Format:      cfg.General.LogFormat,
	})
	logger.Info("Starting calendar service",
		"version", version.String("scaliger"),
		"environment", cfg.General.Environment,
		"reform", cfg.Calendar.Reform.String(),
	)

	// Create service
	svc, err := service.FromConfig(cfg, calendar.SystemClock{}, logger)
	if err != nil {
		logger.ErrorWithErr("Failed to create service", err)
		os.Exit(1)
	}
	defer svc.Close()

	// Create server
	srv, err := server.New(cfg.Server, svc, logger)
	if err != nil {
		logger.ErrorWithErr("Failed to create server", err)
		os.Exit(1)
	}

	// Start server
	if err := srv.StartAsync(); err != nil {
		logger.ErrorWithErr("Failed to start server", err)
		os.Exit(1)
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("Shutdown signal received, stopping server...", "signal", sig.String())

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()
	srv.Stop(ctx)

	logger.Info("Calendar service stopped")
}

// loadConfig reads path, or falls back to the environment and then to the
// built-in defaults when no file exists
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	cfg, err := config.LoadFromEnv()
	if mdwerror.HasCode(err, mdwerror.CodeNotFound) && os.Getenv(config.EnvConfigPath) == "" {
		return config.DefaultConfig(), nil
	}
	return cfg, err
}
