package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amaumene/mediamatch/internal/config"
	"github.com/amaumene/mediamatch/internal/constants"
	"github.com/amaumene/mediamatch/internal/handlers"
	"github.com/amaumene/mediamatch/internal/middleware"
	"github.com/amaumene/mediamatch/internal/services"
	"github.com/amaumene/mediamatch/pkg/logger"
)

// App is one MediaMatch instance: its configuration, services and HTTP server.
type App struct {
	config    *config.Config
	logger    logger.Logger
	container *services.Container
	server    *http.Server
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	container, err := services.NewContainer(cfg, log)
	if err != nil {
		return nil, err
	}
	log.Infof("[App] %s storage initialized", cfg.Storage.Driver)

	app := &App{
		config:    cfg,
		logger:    log,
		container: container,
	}
	app.server = &http.Server{
		Addr:    cfg.Addr(),
		Handler: app.router(),
	}
	return app, nil
}

func (a *App) router() *gin.Engine {
	gin.SetMode(a.config.Server.Mode)

	r := gin.New()
	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.Logger(a.logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Gzip())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.New(a.container, a.config).RegisterRoutes(r)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.container.Start(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("[App] %s %s listening on %s", constants.AppName, constants.AppVersion, a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		a.container.Close()
		return err
	case <-ctx.Done():
	}

	a.logger.Infof("[App] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	shutdownErr := a.server.Shutdown(shutdownCtx)
	if err := a.container.Close(); err != nil {
		a.logger.Errorf("[App] failed to close storage: %v", err)
	}
	return shutdownErr
}
