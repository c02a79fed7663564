// Command mediamatch runs the MediaMatch application instance and its local JSON API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/amaumene/mediamatch/internal/config"
	"github.com/amaumene/mediamatch/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Fatalf("[App] failed to load configuration: %v", err)
	}

	log := logger.NewWithConfig(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if !logger.ValidLevel(cfg.Logging.Level) {
		log.Warnf("[App] unknown log level '%s', defaulting to info", cfg.Logging.Level)
	}

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Fatalf("[App] failed to initialize: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Errorf("[App] server error: %v", err)
		os.Exit(1)
	}
	log.Infof("[App] stopped")
}
