package config

import (
	"fmt"
	"time"
)

// Catalog view and API timing constants
const (
	// Free-text search is only applied after this much quiet time
	SearchDebounce = 300 * time.Millisecond

	// Default page size of the catalog view
	DefaultPageLimit = 30

	// API request configuration
	APIRequestTimeout = 30 * time.Second
	MapsRequestLimit  = 1000
	RecordsPageLimit  = 1000

	// Cache configuration
	MapsCacheTTL    = 10 * time.Minute
	RecordsCacheTTL = 2 * time.Minute
)

// PipelineConfig defines timing behavior of the course catalog view
type PipelineConfig struct {
	SearchDebounce time.Duration
	PageLimit      int
}

// APIConfig defines how the API client talks to the backend
type APIConfig struct {
	Timeout          time.Duration
	MapsLimit        int
	RecordsPageLimit int
}

// CacheConfig defines how long fetched data stays fresh
type CacheConfig struct {
	MapsTTL    time.Duration
	RecordsTTL time.Duration
}

// TuningConfig contains all tunable defaults
type TuningConfig struct {
	Pipeline PipelineConfig
	API      APIConfig
	Cache    CacheConfig
}

// DefaultTuningConfig provides sensible defaults
var DefaultTuningConfig = TuningConfig{
	Pipeline: PipelineConfig{
		SearchDebounce: SearchDebounce,
		PageLimit:      DefaultPageLimit,
	},
	API: APIConfig{
		Timeout:          APIRequestTimeout,
		MapsLimit:        MapsRequestLimit,
		RecordsPageLimit: RecordsPageLimit,
	},
	Cache: CacheConfig{
		MapsTTL:    MapsCacheTTL,
		RecordsTTL: RecordsCacheTTL,
	},
}

// Validate checks that the tuning values are usable
func (c TuningConfig) Validate() error {
	if c.Pipeline.SearchDebounce < 0 {
		return fmt.Errorf("search debounce must not be negative, got %v", c.Pipeline.SearchDebounce)
	}
	if c.Pipeline.PageLimit <= 0 {
		return fmt.Errorf("page limit must be positive, got %d", c.Pipeline.PageLimit)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive, got %v", c.API.Timeout)
	}
	if c.API.MapsLimit <= 0 || c.API.RecordsPageLimit <= 0 {
		return fmt.Errorf("API limits must be positive, got maps=%d records=%d", c.API.MapsLimit, c.API.RecordsPageLimit)
	}
	if c.Cache.MapsTTL < 0 || c.Cache.RecordsTTL < 0 {
		return fmt.Errorf("cache TTLs must not be negative")
	}
	return nil
}
