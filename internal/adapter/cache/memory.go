package cache

import (
	"context"
	"sync"
	"time"

	"crypto-price-service/internal/metrics"
	"crypto-price-service/pkg/logger"
)

const (
	DefaultTTL           = 100 * time.Second
	DefaultSweepInterval = 120 * time.Second
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache holds decimal-as-string prices until their TTL passes. Expired
// entries are never returned; RunSweeper reclaims them in the background.
type MemoryCache struct {
	cacheMap map[string]entry
	mutex    sync.RWMutex
	cacheTTL time.Duration
	now      func() time.Time
	log      *logger.Logger
	metrics  *metrics.Metrics
}

func NewMemoryCache(cacheTTL time.Duration, log *logger.Logger, m *metrics.Metrics) *MemoryCache {
	if cacheTTL <= 0 {
		cacheTTL = DefaultTTL
	}
	return &MemoryCache{
		cacheMap: make(map[string]entry),
		cacheTTL: cacheTTL,
		now:      time.Now,
		log:      log,
		metrics:  m,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, found := c.cacheMap[key]
	if found {
		if !c.now().Before(e.expiresAt) {
			c.log.Debug("Cache entry expired", "key", key)
			c.metrics.CacheMissesTotal.Inc()
			return "", false
		}
		c.log.Debug("Cache hit", "key", key)
		c.metrics.CacheHitsTotal.Inc()
		return e.value, true
	}

	c.log.Debug("Cache miss", "key", key)
	c.metrics.CacheMissesTotal.Inc()
	return "", false
}

func (c *MemoryCache) Set(ctx context.Context, key, value string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cacheMap[key] = entry{
		value:     value,
		expiresAt: c.now().Add(c.cacheTTL),
	}
	c.log.Debug("Cache set", "key", key, "ttl", c.cacheTTL)

	return nil
}

func (c *MemoryCache) ClearExpired(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	expiredKeys := make([]string, 0)

	for key, e := range c.cacheMap {
		if !now.Before(e.expiresAt) {
			expiredKeys = append(expiredKeys, key)
		}
	}

	for _, key := range expiredKeys {
		delete(c.cacheMap, key)
		c.log.Debug("Removed expired cache entry", "key", key)
	}

	c.metrics.CacheEvictionsTotal.Add(float64(len(expiredKeys)))
	c.log.Debug("Cleared expired cache entries", "count", len(expiredKeys))
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.cacheMap)
}

// RunSweeper clears expired entries every interval until ctx is done.
func (c *MemoryCache) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.ClearExpired(ctx); err != nil {
				c.log.Error("Failed to clear expired cache entries", "error", err)
			}
		case <-ctx.Done():
			c.log.Info("Stopping cache sweeper")
			return
		}
	}
}
