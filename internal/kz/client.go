package kz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/config"

	"github.com/rs/zerolog/log"
)

type Client struct {
	baseURL      string
	mapsLimit    int
	client       *http.Client
	apiCallCount int64
	apiCallMutex sync.Mutex
}

func NewClient(baseURL string, cfg config.APIConfig) *Client {
	return &Client{
		baseURL:   baseURL,
		mapsLimit: cfg.MapsLimit,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// makeAPIRequest creates and executes an HTTP GET request to the API
func (c *Client) makeAPIRequest(ctx context.Context, requestURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("url", requestURL).
			Msg("API request failed")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	c.IncrementAPICall()
	return resp, nil
}

// handleAPIResponse processes the HTTP response and returns the body bytes
func (c *Client) handleAPIResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// getJSON fetches an endpoint and decodes its JSON body into out
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	u := c.baseURL + endpoint
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}

	resp, err := c.makeAPIRequest(ctx, u)
	if err != nil {
		return err
	}

	body, err := c.handleAPIResponse(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// GetMaps fetches the whole map catalog in one request
func (c *Client) GetMaps(ctx context.Context) (*app.MapResponse, error) {
	params := url.Values{}
	if c.mapsLimit > 0 {
		params.Set("limit", strconv.Itoa(c.mapsLimit))
	}

	log.Debug().Int("limit", c.mapsLimit).Msg("Fetching maps")

	var mapResponse app.MapResponse
	if err := c.getJSON(ctx, "/maps", params, &mapResponse); err != nil {
		return nil, err
	}

	log.Debug().
		Int("maps", len(mapResponse.Values)).
		Int("total", mapResponse.Total).
		Msg("Successfully fetched maps")

	return &mapResponse, nil
}

// GetRecords fetches one page of records
func (c *Client) GetRecords(ctx context.Context, query app.RecordQuery) (*app.RecordResponse, error) {
	params := EncodeRecordQuery(query)

	log.Debug().
		Str("query", params.Encode()).
		Msg("Fetching records")

	var recordResponse app.RecordResponse
	if err := c.getJSON(ctx, "/records", params, &recordResponse); err != nil {
		return nil, err
	}

	log.Debug().
		Int("records", len(recordResponse.Values)).
		Int("total", recordResponse.Total).
		Msg("Successfully fetched records")

	return &recordResponse, nil
}

// EncodeRecordQuery turns a record query into URL parameters, leaving out
// empty and zero values. The pro leaderboard is requested as
// has_teleports=false; the overall leaderboard sends no teleport filter.
func EncodeRecordQuery(query app.RecordQuery) url.Values {
	params := url.Values{}
	setIf := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}

	setIf("map", query.Map)
	setIf("course", query.Course)
	setIf("mode", string(query.Mode))
	setIf("player", query.Player)
	setIf("server", query.Server)
	setIf("sort_by", query.SortBy)
	setIf("sort_order", query.SortOrder)

	if query.LeaderboardType == app.LeaderboardPro {
		params.Set("has_teleports", "false")
	}
	if query.Top {
		params.Set("top", "true")
	}
	if query.MaxRank > 0 {
		params.Set("max_rank", strconv.Itoa(query.MaxRank))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		params.Set("offset", strconv.Itoa(query.Offset))
	}

	return params
}
