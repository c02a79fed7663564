// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/amaumene/mediamatch/internal/constants"
)

const (
	// Default configuration file name
	defaultConfigFile = "config.yaml"
	// Environment variable overriding the configuration file path
	configFileEnvVar = "CONFIG_FILE"
)

// Config holds the application configuration.
// Values are layered: defaults, then an optional YAML file, then environment variables.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	TMDB    TMDBConfig    `koanf:"tmdb"`
	Storage StorageConfig `koanf:"storage"`
	Cache   CacheConfig   `koanf:"cache"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig configures the local HTTP adapter.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	Mode string `koanf:"mode"` // gin mode: debug, release, test
}

// TMDBConfig configures the metadata API client.
type TMDBConfig struct {
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	RateLimit    int           `koanf:"rate_limit"`
	RateBurst    int           `koanf:"rate_burst"`
}

// StorageConfig selects the blob store standing in for browser local storage.
type StorageConfig struct {
	Driver string `koanf:"driver"` // bolt, badger or memory
	Path   string `koanf:"path"`
}

// CacheConfig configures the movie detail cache.
type CacheConfig struct {
	Size            int           `koanf:"size"`
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// LoggingConfig configures pkg/logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: constants.DefaultHost,
			Port: constants.DefaultPort,
			Mode: "release",
		},
		TMDB: TMDBConfig{
			BaseURL:      constants.DefaultTMDBBaseURL,
			ImageBaseURL: constants.DefaultTMDBImageBaseURL,
			Timeout:      constants.TMDBRequestTimeout,
			RateLimit:    constants.TMDBRateLimit,
			RateBurst:    constants.TMDBRateBurst,
		},
		Storage: StorageConfig{
			Driver: constants.StorageDriverBolt,
			Path:   constants.DefaultDatabasePath,
		},
		Cache: CacheConfig{
			Size:            constants.DefaultCacheSize,
			TTL:             time.Duration(constants.DefaultCacheTTL) * time.Hour,
			CleanupInterval: constants.DefaultCleanupInterval,
		},
		Logging: LoggingConfig{
			Level:  constants.DefaultLogLevel,
			Format: "json",
		},
	}
}

// Load reads configuration from the default file location and the environment.
// A missing configuration file is not an error.
func Load() (*Config, error) {
	return LoadFrom(getEnvOrDefault(configFileEnvVar, defaultConfigFile))
}

// LoadFrom reads configuration using path as the optional YAML file.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables are skipped.
func envTransformFunc(key string) string {
	mappings := map[string]string{
		"host":                   "server.host",
		"port":                   "server.port",
		"gin_mode":               "server.mode",
		"tmdb_api_key":           "tmdb.api_key",
		"tmdb_base_url":          "tmdb.base_url",
		"tmdb_image_base_url":    "tmdb.image_base_url",
		"tmdb_timeout":           "tmdb.timeout",
		"tmdb_rate_limit":        "tmdb.rate_limit",
		"tmdb_rate_burst":        "tmdb.rate_burst",
		"storage_driver":         "storage.driver",
		"database_path":          "storage.path",
		"cache_size":             "cache.size",
		"cache_ttl":              "cache.ttl",
		"cache_cleanup_interval": "cache.cleanup_interval",
		"log_level":              "logging.level",
		"log_format":             "logging.format",
	}
	return mappings[strings.ToLower(key)]
}

// Validate checks if the configuration is valid.
// Sets default values for missing optional fields.
func (c *Config) Validate() error {
	// TMDB_API_KEY is optional at startup; catalog calls fail with a network error until it is set

	switch c.Storage.Driver {
	case constants.StorageDriverBolt, constants.StorageDriverBadger:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for driver %q", c.Storage.Driver)
		}
	case constants.StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = constants.DefaultTMDBBaseURL
	}
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = constants.DefaultTMDBImageBaseURL
	}
	if c.TMDB.RateLimit <= 0 {
		c.TMDB.RateLimit = constants.TMDBRateLimit
	}
	if c.TMDB.RateBurst <= 0 {
		c.TMDB.RateBurst = constants.TMDBRateBurst
	}
	if c.TMDB.Timeout <= 0 {
		c.TMDB.Timeout = constants.TMDBRequestTimeout
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = constants.DefaultCacheSize
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = time.Duration(constants.DefaultCacheTTL) * time.Hour
	}
	if c.Cache.CleanupInterval <= 0 {
		c.Cache.CleanupInterval = constants.DefaultCleanupInterval
	}

	return nil
}

// Addr returns the listen address for the HTTP adapter.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
