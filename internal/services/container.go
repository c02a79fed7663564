// Package services wires the metadata client, the two state containers and
// their supporting infrastructure.
package services

import (
	"context"
	"fmt"

	"github.com/amaumene/mediamatch/internal/account"
	"github.com/amaumene/mediamatch/internal/cache"
	"github.com/amaumene/mediamatch/internal/catalog"
	"github.com/amaumene/mediamatch/internal/config"
	"github.com/amaumene/mediamatch/internal/database"
	"github.com/amaumene/mediamatch/internal/models"
	"github.com/amaumene/mediamatch/pkg/logger"
)

// Container holds one application instance: exactly one Catalog and one Account.
type Container struct {
	TMDB    *TMDB
	Catalog *catalog.Catalog
	Account *account.Account
	Cache   *cache.LRU[int, models.MovieItem]
	Store   database.BlobStore
	Cleanup *CleanupService
	Logger  logger.Logger
}

// NewContainer opens storage and builds every service from cfg.
func NewContainer(cfg *config.Config, log logger.Logger) (*Container, error) {
	store, err := database.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return NewContainerWithStore(cfg, store, log)
}

// NewContainerWithStore builds the services over an already open store.
func NewContainerWithStore(cfg *config.Config, store database.BlobStore, log logger.Logger) (*Container, error) {
	if log == nil {
		log = logger.Nop()
	}
	detailCache := cache.New[int, models.MovieItem](cfg.Cache.Size, cfg.Cache.TTL)
	tmdb := NewTMDB(cfg.TMDB, detailCache, log)

	acct, err := account.New(store, log)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize account state: %w", err)
	}

	cleanup := NewCleanupService(detailCache, log)
	cleanup.SetInterval(cfg.Cache.CleanupInterval)

	return &Container{
		TMDB:    tmdb,
		Catalog: catalog.New(tmdb, log),
		Account: acct,
		Cache:   detailCache,
		Store:   store,
		Cleanup: cleanup,
		Logger:  log,
	}, nil
}

// Start launches background work.
func (c *Container) Start(ctx context.Context) error {
	return c.Cleanup.Start(ctx)
}

// Close stops background work and closes storage.
func (c *Container) Close() error {
	c.Cleanup.Stop()
	return c.Store.Close()
}
