package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/mediamatch/internal/constants"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultPort, cfg.Server.Port)
	assert.Equal(t, constants.StorageDriverBolt, cfg.Storage.Driver)
	assert.Equal(t, constants.DefaultTMDBBaseURL, cfg.TMDB.BaseURL)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "127.0.0.1:5000", cfg.Addr())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8081
tmdb:
  api_key: from-file
  rate_limit: 7
storage:
  driver: memory
cache:
  ttl: 30m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("TMDB_API_KEY", "from-env")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
	assert.Equal(t, 7, cfg.TMDB.RateLimit)
	assert.Equal(t, constants.StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Default()
	cfg.TMDB.RateLimit = 0
	cfg.Cache.Size = -1
	require.NoError(t, cfg.Validate())
	assert.Equal(t, constants.TMDBRateLimit, cfg.TMDB.RateLimit)
	assert.Equal(t, constants.DefaultCacheSize, cfg.Cache.Size)
}
