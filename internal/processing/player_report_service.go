package processing

import (
	"context"
	"fmt"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/summary"

	"github.com/rs/zerolog/log"
)

// PlayerReportService turns a player's top records into a PlayerReport
type PlayerReportService struct {
	records PlayerRecordsFetcher
	now     func() time.Time
}

// NewPlayerReportService creates a new player report service
func NewPlayerReportService(records PlayerRecordsFetcher) *PlayerReportService {
	return &PlayerReportService{
		records: records,
		now:     time.Now,
	}
}

// BuildReport fetches the player's records and compares them with the course
// catalog of the same mode and leaderboard type
func (s *PlayerReportService) BuildReport(ctx context.Context, scope app.PlayerScope, catalog []app.CourseInfo) (*summary.PlayerReport, error) {
	records, err := s.records.GetRecordsForPlayer(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records for player %s: %w", scope.Player, err)
	}

	report := summary.BuildPlayerReport(scope, records, catalog, s.now())

	log.Debug().
		Str("player", report.Name).
		Int("records", report.Records).
		Int("completed", report.CompletionsByTier.Total()).
		Int("available", report.AvailableByTier.Total()).
		Msg("Generated player report")

	return &report, nil
}
