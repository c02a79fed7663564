package services

import (
	"context"
	"sync"
	"time"

	"github.com/amaumene/mediamatch/internal/constants"
	"github.com/amaumene/mediamatch/internal/metrics"
	"github.com/amaumene/mediamatch/pkg/logger"
)

// Expirer is a cache that can sweep its expired entries.
type Expirer interface {
	CleanExpired() int
}

// CleanupService periodically evicts expired entries from the detail cache.
type CleanupService struct {
	cache    Expirer
	logger   logger.Logger
	interval time.Duration
	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	done     chan struct{}
}

func NewCleanupService(cache Expirer, log logger.Logger) *CleanupService {
	if log == nil {
		log = logger.Nop()
	}
	return &CleanupService{
		cache:    cache,
		logger:   log,
		interval: constants.DefaultCleanupInterval,
	}
}

// SetInterval sets how often cleanup runs. It takes effect on the next Start.
func (c *CleanupService) SetInterval(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if duration > 0 {
		c.interval = duration
	}
}

// Start begins the cleanup loop. Calling Start on a running service is a no-op.
func (c *CleanupService) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = true
	c.stopChan = make(chan struct{})
	c.done = make(chan struct{})
	interval := c.interval
	stop, done := c.stopChan, c.done
	c.mu.Unlock()

	c.logger.Infof("[Cleanup] starting cache janitor with interval: %v", interval)
	go c.cleanupLoop(ctx, interval, stop, done)
	return nil
}

// Stop halts the loop and waits for it to exit.
func (c *CleanupService) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stopChan)
	done := c.done
	c.mu.Unlock()

	<-done
	c.logger.Infof("[Cleanup] cache janitor stopped")
}

func (c *CleanupService) cleanupLoop(ctx context.Context, interval time.Duration, stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			if c.running && c.stopChan == stop {
				c.running = false
				close(stop)
			}
			c.mu.Unlock()
			return
		case <-stop:
			return
		case <-ticker.C:
			c.CleanupNow()
		}
	}
}

// CleanupNow performs an immediate sweep and returns the number of entries removed.
func (c *CleanupService) CleanupNow() int {
	removed := c.cache.CleanExpired()
	if removed > 0 {
		metrics.CacheEvictions.Add(float64(removed))
		c.logger.Debugf("[Cleanup] removed %d expired cache entries", removed)
	}
	return removed
}
