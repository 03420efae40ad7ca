// Package listcache memoizes upstream tool lists per (tab, sort) pair for the
// lifetime of the process.
package listcache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"aidex/internal/domain"
	"aidex/internal/infra/telemetry"
)

// Fetcher loads one tab's list from the upstream API.
type Fetcher interface {
	FetchToolList(ctx context.Context, tab string, sort domain.SortType) ([]domain.Tool, error)
}

type Options struct {
	Logger  *zap.Logger
	Metrics domain.Metrics
}

// Cache stores fetched lists keyed by domain.CacheKey. Entries never expire;
// the first successful write for a key wins.
type Cache struct {
	fetcher Fetcher
	logger  *zap.Logger
	metrics domain.Metrics

	mu      sync.RWMutex
	entries map[domain.CacheKey][]domain.Tool
	epoch   uint64
	group   singleflight.Group
}

func New(fetcher Fetcher, opts Options) *Cache {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = &telemetry.NoopMetrics{}
	}
	return &Cache{
		fetcher: fetcher,
		logger:  logger.Named("listcache"),
		metrics: metrics,
		entries: make(map[domain.CacheKey][]domain.Tool),
	}
}

// GetOrFetch returns the list for (tab, sort), fetching it on a miss.
// Concurrent misses for the same key share one upstream request, which keeps
// running when the caller that started it goes away. A failed fetch stores
// nothing.
func (c *Cache) GetOrFetch(ctx context.Context, tab string, sort domain.SortType) ([]domain.Tool, error) {
	key := domain.CacheKey{Tab: tab, Sort: sort}
	if tools, ok := c.Get(key); ok {
		c.metrics.ObserveCacheLookup(tab, domain.CacheHit)
		c.logger.Debug("list cache hit", telemetry.EventField(telemetry.EventCacheHit), telemetry.CacheKeyField(key))
		return tools, nil
	}
	c.metrics.ObserveCacheLookup(tab, domain.CacheMiss)
	c.logger.Debug("list cache miss", telemetry.EventField(telemetry.EventCacheMiss), telemetry.CacheKeyField(key))

	// The shared fetch outlives any single caller; each caller still gives up
	// on its own ctx below.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.String(), func() (any, error) {
		tools, epoch, ok := c.lookupEpoch(key)
		if ok {
			return tools, nil
		}
		return c.fetch(fetchCtx, key, epoch)
	})

	select {
	case <-ctx.Done():
		return nil, domain.E(domain.CodeCanceled, "list cache", "", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return domain.CloneTools(res.Val.([]domain.Tool)), nil
	}
}

func (c *Cache) fetch(ctx context.Context, key domain.CacheKey, epoch uint64) ([]domain.Tool, error) {
	start := time.Now()
	tools, err := c.fetcher.FetchToolList(ctx, key.Tab, key.Sort)
	elapsed := time.Since(start)
	c.metrics.ObserveFetch(key.Tab, elapsed, err)
	if err != nil {
		c.logger.Warn("list fetch failed",
			telemetry.EventField(telemetry.EventFetchFailure),
			telemetry.CacheKeyField(key),
			telemetry.DurationField(elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	stored := c.store(key, tools, epoch)
	c.logger.Info("list fetched",
		telemetry.EventField(telemetry.EventFetchSuccess),
		telemetry.CacheKeyField(key),
		telemetry.CountField(len(stored)),
		telemetry.DurationField(elapsed),
	)
	return stored, nil
}

// store writes tools under key unless an entry already exists, and returns
// whichever list ends up cached. A fetch that started before the last
// Invalidate or Reset returns its result without writing it.
func (c *Cache) store(key domain.CacheKey, tools []domain.Tool, epoch uint64) []domain.Tool {
	copied := domain.CloneTools(tools)
	if copied == nil {
		copied = []domain.Tool{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	if epoch != c.epoch {
		c.logger.Debug("dropping list fetched before invalidation",
			telemetry.EventField(telemetry.EventStaleResult),
			telemetry.CacheKeyField(key),
		)
		return copied
	}
	c.entries[key] = copied
	return copied
}

func (c *Cache) lookup(key domain.CacheKey) ([]domain.Tool, bool) {
	tools, _, ok := c.lookupEpoch(key)
	return tools, ok
}

func (c *Cache) lookupEpoch(key domain.CacheKey) ([]domain.Tool, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tools, ok := c.entries[key]
	return tools, c.epoch, ok
}

// Get returns a copy of the cached list for key without fetching.
func (c *Cache) Get(key domain.CacheKey) ([]domain.Tool, bool) {
	tools, ok := c.lookup(key)
	if !ok {
		return nil, false
	}
	return domain.CloneTools(tools), true
}

// FindTool scans every cached list for a tool with the given ID.
func (c *Cache) FindTool(id string) (domain.Tool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, tools := range c.entries {
		for _, tool := range tools {
			if tool.ID == id {
				return tool, true
			}
		}
	}
	return domain.Tool{}, false
}

// Keys lists the cached keys.
func (c *Cache) Keys() []domain.CacheKey {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]domain.CacheKey, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// Invalidate drops one entry so the next lookup refetches it.
func (c *Cache) Invalidate(key domain.CacheKey) {
	c.mu.Lock()
	delete(c.entries, key)
	c.epoch++
	c.mu.Unlock()
	c.group.Forget(key.String())
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key.String())
	}
	c.entries = make(map[domain.CacheKey][]domain.Tool)
	c.epoch++
	c.mu.Unlock()
	for _, key := range keys {
		c.group.Forget(key)
	}
}
