package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/mediamatch/internal/config"
	"github.com/amaumene/mediamatch/internal/constants"
	"github.com/amaumene/mediamatch/pkg/logger"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.Storage.Driver = constants.StorageDriverMemory
	require.NoError(t, cfg.Validate())

	app, err := NewApp(cfg, logger.Nop())
	require.NoError(t, err)
	return app
}

func TestRouterServesHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)
	defer app.container.Close()
	router := app.router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), constants.AppName)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/catalog", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	app := newTestApp(t)

	// bind to an ephemeral port
	ln := httptest.NewUnstartedServer(nil).Listener
	addr := ln.Addr().String()
	ln.Close()
	app.server.Addr = addr

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get((&url.URL{Scheme: "http", Host: addr, Path: "/health"}).String())
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(constants.ShutdownTimeout + time.Second):
		t.Fatal("app did not stop")
	}
}

func TestAddr(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, constants.DefaultHost+":"+strconv.Itoa(constants.DefaultPort), cfg.Addr())
}
