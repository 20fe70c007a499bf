package processing

import (
	"context"
	"sync"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/config"

	"github.com/rs/zerolog/log"
)

// CachedKZClient wraps the CS2KZ client with TTL caching of the map catalog
// and of per-course and per-player record sets
type CachedKZClient struct {
	maps    MapsFetcher
	records RecordSetsFetcher
	config  config.CacheConfig
	tracker *APICallTracker
	mutex   sync.RWMutex

	// Cache entries
	catalog    *cachedMaps
	recordSets map[app.RecordScope]*cachedRecords
	playerSets map[app.PlayerScope]*cachedRecords
}

type cachedMaps struct {
	data      *app.MapResponse
	timestamp time.Time
}

type cachedRecords struct {
	data      []app.Record
	timestamp time.Time
}

// NewCachedKZClient creates a caching wrapper around the maps and records fetchers
func NewCachedKZClient(maps MapsFetcher, records RecordSetsFetcher, tracker *APICallTracker, cfg config.CacheConfig) *CachedKZClient {
	return &CachedKZClient{
		maps:       maps,
		records:    records,
		config:     cfg,
		tracker:    tracker,
		recordSets: make(map[app.RecordScope]*cachedRecords),
		playerSets: make(map[app.PlayerScope]*cachedRecords),
	}
}

// GetMaps returns the cached catalog or fetches fresh data
func (c *CachedKZClient) GetMaps(ctx context.Context) (*app.MapResponse, error) {
	c.mutex.RLock()
	cached := c.catalog
	c.mutex.RUnlock()

	if cached != nil && time.Since(cached.timestamp) < c.config.MapsTTL {
		log.Debug().
			Dur("cache_age", time.Since(cached.timestamp)).
			Msg("Using cached map catalog (API call saved)")
		c.tracker.RecordCacheHit()
		return cached.data, nil
	}

	log.Debug().Msg("Fetching fresh map catalog from API")
	data, err := c.maps.GetMaps(ctx)
	if err != nil {
		return nil, err
	}

	c.tracker.RecordCall("GetMaps")

	c.mutex.Lock()
	c.catalog = &cachedMaps{
		data:      data,
		timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return data, nil
}

// GetRecordsForScope returns the cached record set of a scope or fetches it
func (c *CachedKZClient) GetRecordsForScope(ctx context.Context, scope app.RecordScope) ([]app.Record, error) {
	c.mutex.RLock()
	cached := c.recordSets[scope]
	c.mutex.RUnlock()

	if cached != nil && time.Since(cached.timestamp) < c.config.RecordsTTL {
		log.Debug().
			Str("map", scope.Map).
			Str("course", scope.Course).
			Dur("cache_age", time.Since(cached.timestamp)).
			Msg("Using cached records (API call saved)")
		c.tracker.RecordCacheHit()
		return cached.data, nil
	}

	log.Debug().
		Str("map", scope.Map).
		Str("course", scope.Course).
		Msg("Fetching fresh records from API")
	data, err := c.records.GetRecordsForScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	c.tracker.RecordCall("GetRecordsForScope")

	c.mutex.Lock()
	c.recordSets[scope] = &cachedRecords{
		data:      data,
		timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return data, nil
}

// GetRecordsForPlayer returns the cached top records of a player or fetches them
func (c *CachedKZClient) GetRecordsForPlayer(ctx context.Context, scope app.PlayerScope) ([]app.Record, error) {
	c.mutex.RLock()
	cached := c.playerSets[scope]
	c.mutex.RUnlock()

	if cached != nil && time.Since(cached.timestamp) < c.config.RecordsTTL {
		log.Debug().
			Str("player", scope.Player).
			Dur("cache_age", time.Since(cached.timestamp)).
			Msg("Using cached player records (API call saved)")
		c.tracker.RecordCacheHit()
		return cached.data, nil
	}

	data, err := c.records.GetRecordsForPlayer(ctx, scope)
	if err != nil {
		return nil, err
	}

	c.tracker.RecordCall("GetRecordsForPlayer")

	c.mutex.Lock()
	c.playerSets[scope] = &cachedRecords{
		data:      data,
		timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return data, nil
}

// PruneExpired drops every entry older than its TTL and returns how many
// were removed. Record sets are keyed per scope, so without pruning every
// course ever reported stays in memory.
func (c *CachedKZClient) PruneExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	if c.catalog != nil && time.Since(c.catalog.timestamp) >= c.config.MapsTTL {
		c.catalog = nil
		removed++
	}
	removed += pruneRecordSets(c.recordSets, c.config.RecordsTTL)
	removed += pruneRecordSets(c.playerSets, c.config.RecordsTTL)

	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("Pruned expired cache entries")
	}
	return removed
}

// BeginCycle starts a new tracker session and prunes expired entries
func (c *CachedKZClient) BeginCycle() {
	c.tracker.ResetSession()
	c.PruneExpired()
}

// LogCycleSummary logs the cache state and the tracker session of the cycle
// that just ran
func (c *CachedKZClient) LogCycleSummary(reports int) {
	stats := c.GetCacheStats()
	log.Info().
		Int("cache_valid", stats.ValidEntries).
		Int("cache_expired", stats.ExpiredEntries).
		Int64("predicted_next_cycle", c.tracker.PredictCallsForNextCycle(reports)).
		Msg("API cache status")

	c.tracker.LogSessionSummary()
}

// GetCacheStats returns the number of valid and expired cache entries
func (c *CachedKZClient) GetCacheStats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var validEntries, expiredEntries int

	if c.catalog != nil {
		if time.Since(c.catalog.timestamp) < c.config.MapsTTL {
			validEntries++
		} else {
			expiredEntries++
		}
	}

	for _, counts := range [][2]int{
		tallyRecordSets(c.recordSets, c.config.RecordsTTL),
		tallyRecordSets(c.playerSets, c.config.RecordsTTL),
	} {
		validEntries += counts[0]
		expiredEntries += counts[1]
	}

	return CacheStats{
		ValidEntries:   validEntries,
		ExpiredEntries: expiredEntries,
		TotalEntries:   validEntries + expiredEntries,
	}
}

// CacheStats represents cache statistics
type CacheStats struct {
	ValidEntries   int
	ExpiredEntries int
	TotalEntries   int
}

// tallyRecordSets returns the number of fresh and expired record sets
func tallyRecordSets[K comparable](sets map[K]*cachedRecords, ttl time.Duration) [2]int {
	var counts [2]int
	for _, cached := range sets {
		if time.Since(cached.timestamp) < ttl {
			counts[0]++
		} else {
			counts[1]++
		}
	}
	return counts
}

func pruneRecordSets[K comparable](sets map[K]*cachedRecords, ttl time.Duration) int {
	removed := 0
	for key, cached := range sets {
		if time.Since(cached.timestamp) >= ttl {
			delete(sets, key)
			removed++
		}
	}
	return removed
}
