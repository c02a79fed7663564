// Package constants defines timeout values and circuit breaker settings used throughout the application.
package constants

import "time"

// Timeout constants for various operations
const (
	// Timeout for a single TMDB HTTP request
	TMDBRequestTimeout = 10 * time.Second

	// Graceful shutdown budget for the HTTP server
	ShutdownTimeout = 10 * time.Second

	// Default interval for the cache janitor
	DefaultCleanupInterval = 1 * time.Hour
)

// Circuit breaker settings for the TMDB client
const (
	BreakerMaxRequests  = 3
	BreakerInterval     = time.Minute
	BreakerTimeout      = 30 * time.Second
	BreakerMinRequests  = 10
	BreakerFailureRatio = 0.6
)
