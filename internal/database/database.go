// Package database persists the account directory and the signed-in user's
// state as named JSON documents in a key/value blob store.
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amaumene/mediamatch/internal/config"
	"github.com/amaumene/mediamatch/internal/constants"
)

// BlobStore is a flat key/value store of opaque documents.
// Get returns nil, nil for a key that was never written.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Open returns the store selected by cfg.Driver.
func Open(cfg config.StorageConfig) (BlobStore, error) {
	switch cfg.Driver {
	case constants.StorageDriverMemory:
		return NewMemory(), nil
	case constants.StorageDriverBadger:
		return NewBadger(cfg.Path, false)
	case constants.StorageDriverBolt, "":
		return NewBolt(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}
