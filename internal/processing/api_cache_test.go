package processing

import (
	"context"
	"errors"
	"testing"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/config"
	"cs2kz_stats/internal/processing/mocks"
)

func newTestCachedClient(cfg config.CacheConfig) (*CachedKZClient, *mocks.MockKZClient, *APICallTracker) {
	mockClient := mocks.NewMockKZClient()
	tracker := NewAPICallTracker()
	return NewCachedKZClient(mockClient, mockClient, tracker, cfg), mockClient, tracker
}

func TestCachedKZClient_GetMaps(t *testing.T) {
	cachedClient, mockClient, tracker := newTestCachedClient(config.DefaultTuningConfig.Cache)
	mockClient.SetMapsResponse(testCatalog(), nil)
	ctx := context.Background()

	// First call should hit the API
	result1, err := cachedClient.GetMaps(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result1.Values) != 3 {
		t.Errorf("Expected 3 maps, got %d", len(result1.Values))
	}

	// Second call should use cache
	result2, err := cachedClient.GetMaps(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result1 != result2 {
		t.Error("Expected cached response to be returned")
	}

	if mockClient.MapsCallCount() != 1 {
		t.Errorf("Expected 1 upstream call, got %d", mockClient.MapsCallCount())
	}

	stats := tracker.GetSessionStats()
	if stats.CallsByEndpoint["GetMaps"] != 1 || stats.CacheHits != 1 {
		t.Errorf("Expected 1 tracked call and 1 cache hit, got %+v", stats)
	}
}

func TestCachedKZClient_GetMaps_CacheExpiry(t *testing.T) {
	cfg := config.DefaultTuningConfig.Cache
	cfg.MapsTTL = 10 * time.Millisecond
	cachedClient, mockClient, _ := newTestCachedClient(cfg)
	mockClient.SetMapsResponse(testCatalog(), nil)
	ctx := context.Background()

	if _, err := cachedClient.GetMaps(ctx); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Wait for cache to expire
	time.Sleep(15 * time.Millisecond)

	if _, err := cachedClient.GetMaps(ctx); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if mockClient.MapsCallCount() != 2 {
		t.Errorf("Expected second API call due to cache expiry, got %d calls", mockClient.MapsCallCount())
	}
}

func TestCachedKZClient_ErrorsAreNotCached(t *testing.T) {
	cachedClient, mockClient, tracker := newTestCachedClient(config.DefaultTuningConfig.Cache)
	mockClient.SetMapsResponse(nil, errors.New("upstream unavailable"))
	ctx := context.Background()

	if _, err := cachedClient.GetMaps(ctx); err == nil {
		t.Fatal("Expected error, got nil")
	}

	mockClient.SetMapsResponse(testCatalog(), nil)
	result, err := cachedClient.GetMaps(ctx)
	if err != nil {
		t.Fatalf("Expected no error after recovery, got %v", err)
	}
	if len(result.Values) != 3 {
		t.Errorf("Expected fresh catalog, got %d maps", len(result.Values))
	}

	if got := tracker.GetSessionStats().CallsByEndpoint["GetMaps"]; got != 1 {
		t.Errorf("Expected only the successful call to be tracked, got %d", got)
	}
}

func TestCachedKZClient_GetRecordsForScope(t *testing.T) {
	cachedClient, mockClient, _ := newTestCachedClient(config.DefaultTuningConfig.Cache)
	mockClient.RecordsResponse[grottoScope] = grottoRecords()
	ctx := context.Background()

	proScope := grottoScope
	overallScope := grottoScope
	overallScope.LeaderboardType = app.LeaderboardOverall

	if _, err := cachedClient.GetRecordsForScope(ctx, proScope); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	records, err := cachedClient.GetRecordsForScope(ctx, proScope)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 cached records, got %d", len(records))
	}

	// A different leaderboard type is a different cache key
	if _, err := cachedClient.GetRecordsForScope(ctx, overallScope); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if mockClient.GetRecordsForScopeCalls != 2 {
		t.Errorf("Expected 2 upstream record fetches, got %d", mockClient.GetRecordsForScopeCalls)
	}
}

func TestCachedKZClient_PruneExpired(t *testing.T) {
	cfg := config.DefaultTuningConfig.Cache
	cfg.RecordsTTL = time.Millisecond
	cachedClient, mockClient, _ := newTestCachedClient(cfg)
	mockClient.SetMapsResponse(testCatalog(), nil)
	mockClient.RecordsResponse[grottoScope] = grottoRecords()
	ctx := context.Background()

	// Populate cache
	_, _ = cachedClient.GetMaps(ctx)
	_, _ = cachedClient.GetRecordsForScope(ctx, grottoScope)
	time.Sleep(5 * time.Millisecond)

	if removed := cachedClient.PruneExpired(); removed != 1 {
		t.Errorf("Expected 1 expired record set to be pruned, got %d", removed)
	}
	if stats := cachedClient.GetCacheStats(); stats.TotalEntries != 1 || stats.ValidEntries != 1 {
		t.Errorf("Expected only the catalog to remain, got %+v", stats)
	}

	// Catalog is still fresh, records are fetched again
	_, _ = cachedClient.GetMaps(ctx)
	_, _ = cachedClient.GetRecordsForScope(ctx, grottoScope)

	if mockClient.MapsCallCount() != 1 {
		t.Errorf("Expected the fresh catalog to be served from cache, got %d calls", mockClient.MapsCallCount())
	}
	if mockClient.GetRecordsForScopeCalls != 2 {
		t.Errorf("Expected records call after pruning, got %d calls", mockClient.GetRecordsForScopeCalls)
	}
}

func TestCachedKZClient_BeginCycle(t *testing.T) {
	cachedClient, mockClient, tracker := newTestCachedClient(config.DefaultTuningConfig.Cache)
	mockClient.SetMapsResponse(testCatalog(), nil)
	ctx := context.Background()

	_, _ = cachedClient.GetMaps(ctx)
	cachedClient.LogCycleSummary(0)
	if got := tracker.GetSessionStats().SessionCalls; got != 1 {
		t.Fatalf("Expected 1 session call, got %d", got)
	}

	cachedClient.BeginCycle()

	stats := tracker.GetSessionStats()
	if stats.SessionCalls != 0 {
		t.Errorf("Expected session calls to restart each cycle, got %d", stats.SessionCalls)
	}
	if stats.TotalCalls != 1 {
		t.Errorf("Expected total calls to survive the cycle reset, got %d", stats.TotalCalls)
	}
	if cachedClient.GetCacheStats().ValidEntries != 1 {
		t.Error("Expected fresh entries to survive the cycle reset")
	}
}

func TestCachedKZClient_GetCacheStats_Expired(t *testing.T) {
	cfg := config.DefaultTuningConfig.Cache
	cfg.RecordsTTL = time.Millisecond
	cachedClient, mockClient, _ := newTestCachedClient(cfg)
	mockClient.SetMapsResponse(testCatalog(), nil)
	ctx := context.Background()

	_, _ = cachedClient.GetMaps(ctx)
	_, _ = cachedClient.GetRecordsForScope(ctx, grottoScope)
	time.Sleep(5 * time.Millisecond)

	stats := cachedClient.GetCacheStats()
	if stats.ValidEntries != 1 || stats.ExpiredEntries != 1 {
		t.Errorf("Expected 1 valid and 1 expired entry, got %+v", stats)
	}
}

func TestCachedKZClient_GetRecordsForPlayer(t *testing.T) {
	cachedClient, mockClient, tracker := newTestCachedClient(config.DefaultTuningConfig.Cache)
	mockClient.PlayerRecordsResponse[gnomeScope] = grottoRecords()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		records, err := cachedClient.GetRecordsForPlayer(ctx, gnomeScope)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(records) != 3 {
			t.Errorf("Expected 3 records, got %d", len(records))
		}
	}

	if mockClient.GetRecordsForPlayerCalls != 1 {
		t.Errorf("Expected 1 upstream player fetch, got %d", mockClient.GetRecordsForPlayerCalls)
	}
	if stats := tracker.GetSessionStats(); stats.CallsByEndpoint["GetRecordsForPlayer"] != 1 || stats.CacheHits != 1 {
		t.Errorf("Expected 1 tracked call and 1 cache hit, got %+v", stats)
	}
	if cachedClient.GetCacheStats().ValidEntries != 1 {
		t.Error("Expected the player set to count as a cache entry")
	}
}
