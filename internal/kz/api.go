package kz

import (
	"context"

	"cs2kz_stats/internal/app"
)

// KZAPI defines the interface for interacting with the CS2KZ API
// This separates infrastructure concerns from business logic
type KZAPI interface {
	// Core API endpoints
	GetMaps(ctx context.Context) (*app.MapResponse, error)
	GetRecords(ctx context.Context, query app.RecordQuery) (*app.RecordResponse, error)

	// API call tracking
	GetAPICallCount() int64
	IncrementAPICall()
	ResetAPICallCount()
}
