package kz

import (
	"context"
	"fmt"

	"cs2kz_stats/internal/app"

	"github.com/rs/zerolog/log"
)

// PaginationDecision contains the result of analyzing a page of records
type PaginationDecision struct {
	ShouldStop bool
	Reason     string
	NextOffset int
}

// ShouldStopPagination determines if offset pagination should stop
// Pure function: Makes pagination decision based on page results
func ShouldStopPagination(recordsInPage, pageSize, fetchedSoFar, total int) PaginationDecision {
	if recordsInPage == 0 {
		return PaginationDecision{ShouldStop: true, Reason: "no_more_records", NextOffset: fetchedSoFar}
	}

	// Got less than full page - indicates end of available data
	if recordsInPage < pageSize {
		return PaginationDecision{ShouldStop: true, Reason: "partial_page", NextOffset: fetchedSoFar}
	}

	if total > 0 && fetchedSoFar >= total {
		return PaginationDecision{ShouldStop: true, Reason: "reached_total", NextOffset: fetchedSoFar}
	}

	return PaginationDecision{ShouldStop: false, Reason: "continue", NextOffset: fetchedSoFar}
}

// RecordsFetcher collects complete record sets by walking the paginated
// /records endpoint
type RecordsFetcher struct {
	api      KZAPI
	pageSize int
}

// NewRecordsFetcher creates a new records fetcher with the given API client
func NewRecordsFetcher(api KZAPI, pageSize int) *RecordsFetcher {
	return &RecordsFetcher{
		api:      api,
		pageSize: pageSize,
	}
}

// GetRecordsForScope fetches every top record of one course in one mode and
// leaderboard type
func (f *RecordsFetcher) GetRecordsForScope(ctx context.Context, scope app.RecordScope) ([]app.Record, error) {
	if scope.Map == "" || scope.Course == "" {
		return nil, fmt.Errorf("record scope needs a map and a course, got %q/%q", scope.Map, scope.Course)
	}

	records, err := f.fetchAllPages(ctx, app.RecordQuery{
		Map:             scope.Map,
		Course:          scope.Course,
		Mode:            scope.Mode,
		LeaderboardType: scope.LeaderboardType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records for %s/%s: %w", scope.Map, scope.Course, err)
	}

	log.Info().
		Str("map", scope.Map).
		Str("course", scope.Course).
		Str("mode", string(scope.Mode)).
		Str("leaderboard", string(scope.LeaderboardType)).
		Int("records", len(records)).
		Msg("Completed fetching records for course")

	return records, nil
}

// GetRecordsForPlayer fetches a player's top record on every course they
// completed in one mode and leaderboard type
func (f *RecordsFetcher) GetRecordsForPlayer(ctx context.Context, scope app.PlayerScope) ([]app.Record, error) {
	if scope.Player == "" {
		return nil, fmt.Errorf("player scope needs a player")
	}

	records, err := f.fetchAllPages(ctx, app.RecordQuery{
		Player:          scope.Player,
		Mode:            scope.Mode,
		LeaderboardType: scope.LeaderboardType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records of player %s: %w", scope.Player, err)
	}

	log.Info().
		Str("player", scope.Player).
		Str("mode", string(scope.Mode)).
		Str("leaderboard", string(scope.LeaderboardType)).
		Int("records", len(records)).
		Msg("Completed fetching records for player")

	return records, nil
}

// fetchAllPages walks /records with top=true until ShouldStopPagination says
// the set is complete
func (f *RecordsFetcher) fetchAllPages(ctx context.Context, query app.RecordQuery) ([]app.Record, error) {
	query.Top = true
	query.Limit = f.pageSize

	var records []app.Record
	for {
		query.Offset = len(records)

		resp, err := f.api.GetRecords(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("page at offset %d: %w", query.Offset, err)
		}
		if resp == nil {
			return nil, fmt.Errorf("empty response at offset %d", query.Offset)
		}

		records = append(records, resp.Values...)

		decision := ShouldStopPagination(len(resp.Values), f.pageSize, len(records), resp.Total)
		log.Debug().
			Int("records_in_page", len(resp.Values)).
			Int("records_so_far", len(records)).
			Str("reason", decision.Reason).
			Msg("Fetched records page")

		if decision.ShouldStop {
			return records, nil
		}
	}
}
