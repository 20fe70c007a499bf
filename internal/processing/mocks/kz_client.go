package mocks

import (
	"context"
	"sync"

	"cs2kz_stats/internal/app"
)

// MockKZClient is a test double for the CS2KZ maps and records fetchers.
// It is safe for concurrent use.
type MockKZClient struct {
	mu sync.Mutex

	// Responses to return
	MapsResponse          *app.MapResponse
	RecordsResponse       map[app.RecordScope][]app.Record
	PlayerRecordsResponse map[app.PlayerScope][]app.Record

	// Errors to return
	MapsError    error
	RecordsError error

	// GetMapsFunc overrides MapsResponse/MapsError when set
	GetMapsFunc func(ctx context.Context) (*app.MapResponse, error)

	// Call tracking
	GetMapsCalls            int
	GetRecordsForScopeCalls  int
	GetRecordsForPlayerCalls int
	RecordScopes             []app.RecordScope
	PlayerScopes             []app.PlayerScope
	Calls                    []string
}

// NewMockKZClient creates a new mock CS2KZ client
func NewMockKZClient() *MockKZClient {
	return &MockKZClient{
		RecordsResponse:       make(map[app.RecordScope][]app.Record),
		PlayerRecordsResponse: make(map[app.PlayerScope][]app.Record),
	}
}

func (m *MockKZClient) GetMaps(ctx context.Context) (*app.MapResponse, error) {
	m.mu.Lock()
	m.GetMapsCalls++
	m.Calls = append(m.Calls, "GetMaps")
	fn := m.GetMapsFunc
	resp, err := m.MapsResponse, m.MapsError
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return resp, err
}

func (m *MockKZClient) GetRecordsForScope(ctx context.Context, scope app.RecordScope) ([]app.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetRecordsForScopeCalls++
	m.RecordScopes = append(m.RecordScopes, scope)
	m.Calls = append(m.Calls, "GetRecordsForScope")

	if m.RecordsError != nil {
		return nil, m.RecordsError
	}
	return m.RecordsResponse[scope], nil
}

func (m *MockKZClient) GetRecordsForPlayer(ctx context.Context, scope app.PlayerScope) ([]app.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetRecordsForPlayerCalls++
	m.PlayerScopes = append(m.PlayerScopes, scope)
	m.Calls = append(m.Calls, "GetRecordsForPlayer")

	if m.RecordsError != nil {
		return nil, m.RecordsError
	}
	return m.PlayerRecordsResponse[scope], nil
}

// SetMapsResponse replaces the catalog returned by GetMaps
func (m *MockKZClient) SetMapsResponse(resp *app.MapResponse, err error) {
	m.mu.Lock()
	m.MapsResponse = resp
	m.MapsError = err
	m.mu.Unlock()
}

// MapsCallCount returns how many times GetMaps was called
func (m *MockKZClient) MapsCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GetMapsCalls
}

// CallLog returns a copy of the method calls in the order they happened
func (m *MockKZClient) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}

// Reset clears all call tracking and responses
func (m *MockKZClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MapsResponse = nil
	m.RecordsResponse = make(map[app.RecordScope][]app.Record)
	m.PlayerRecordsResponse = make(map[app.PlayerScope][]app.Record)
	m.MapsError = nil
	m.RecordsError = nil
	m.GetMapsFunc = nil

	m.GetMapsCalls = 0
	m.GetRecordsForScopeCalls = 0
	m.GetRecordsForPlayerCalls = 0
	m.RecordScopes = nil
	m.PlayerScopes = nil
	m.Calls = nil
}
