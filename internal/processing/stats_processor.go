package processing

import (
	"context"
	"fmt"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/stats"
	"cs2kz_stats/internal/domain/summary"

	"github.com/rs/zerolog/log"
)

// CycleResult is what one processing cycle produced
type CycleResult struct {
	Query        app.CourseQuery
	Courses      []app.CourseInfo
	Total        int
	Availability  stats.TierHistogram
	Reports       []summary.CourseReport
	PlayerReports []summary.PlayerReport
}

// StatsProcessor runs the catalog query and the requested course and player
// reports once per cycle and exports them when a spreadsheet is configured
type StatsProcessor struct {
	pipeline      *CourseQueryPipeline
	reportService CourseReportServiceInterface
	playerService PlayerReportServiceInterface
	reportWriter  ReportWriterInterface
	config        *app.Config
}

// NewStatsProcessor creates a StatsProcessor. reportWriter may be nil when
// export is disabled.
func NewStatsProcessor(
	pipeline *CourseQueryPipeline,
	reportService CourseReportServiceInterface,
	playerService PlayerReportServiceInterface,
	reportWriter ReportWriterInterface,
	config *app.Config,
) *StatsProcessor {
	return &StatsProcessor{
		pipeline:      pipeline,
		reportService: reportService,
		playerService: playerService,
		reportWriter:  reportWriter,
		config:        config,
	}
}

// NewStatsProcessorWithClient wires a processor around a CS2KZ client
func NewStatsProcessorWithClient(client KZClientInterface, reportWriter ReportWriterInterface, config *app.Config) *StatsProcessor {
	return NewStatsProcessor(
		NewCourseQueryPipeline(client, config.Tuning.Pipeline),
		NewCourseReportService(client),
		NewPlayerReportService(client),
		reportWriter,
		config,
	)
}

// RunCycle reloads the catalog for the query, builds a report for every
// course scope and every player, and exports the results. Player reports use
// the query's mode and leaderboard type. A failed report is logged and
// skipped.
func (sp *StatsProcessor) RunCycle(ctx context.Context, query app.CourseQuery, scopes []app.RecordScope, players []string) (*CycleResult, error) {
	log.Info().
		Str("mode", string(query.Mode)).
		Str("leaderboard", string(query.LeaderboardType)).
		Int("course_reports", len(scopes)).
		Int("player_reports", len(players)).
		Msg("Running stats cycle")

	sp.pipeline.Reload(ctx, query)
	allCourses := sp.pipeline.AllCourses()

	result := &CycleResult{
		Query:        sp.pipeline.Query(),
		Courses:      sp.pipeline.Courses(),
		Total:        sp.pipeline.Total(),
		Availability: stats.CountCoursesByTier(allCourses),
	}

	for _, scope := range scopes {
		report, err := sp.reportService.BuildReport(ctx, scope)
		if err != nil {
			log.Error().
				Err(err).
				Str("map", scope.Map).
				Str("course", scope.Course).
				Msg("Failed to build course report")
			continue
		}
		result.Reports = append(result.Reports, *report)
	}

	for _, player := range players {
		scope := app.PlayerScope{
			Player:          player,
			Mode:            result.Query.Mode,
			LeaderboardType: result.Query.LeaderboardType,
		}
		report, err := sp.playerService.BuildReport(ctx, scope, allCourses)
		if err != nil {
			log.Error().
				Err(err).
				Str("player", player).
				Msg("Failed to build player report")
			continue
		}
		result.PlayerReports = append(result.PlayerReports, *report)
	}

	if err := sp.export(ctx, result); err != nil {
		return result, err
	}

	log.Info().
		Int("courses_matched", result.Total).
		Int("page_size", len(result.Courses)).
		Int("reports", len(result.Reports)).
		Int("player_reports", len(result.PlayerReports)).
		Msg("Stats cycle completed")

	return result, nil
}

func (sp *StatsProcessor) export(ctx context.Context, result *CycleResult) error {
	if sp.reportWriter == nil || !sp.config.ExportEnabled() {
		log.Debug().Msg("Spreadsheet export disabled")
		return nil
	}

	if err := sp.reportWriter.WriteCatalog(ctx, sp.config.SpreadsheetID, sp.pipeline.AllCourses(), result.Query); err != nil {
		return fmt.Errorf("failed to export course catalog: %w", err)
	}

	for _, report := range result.Reports {
		if err := sp.reportWriter.WriteCourseReport(ctx, sp.config.SpreadsheetID, report); err != nil {
			return fmt.Errorf("failed to export report %s: %w", report.Title(), err)
		}
	}

	for _, report := range result.PlayerReports {
		if err := sp.reportWriter.WritePlayerReport(ctx, sp.config.SpreadsheetID, report); err != nil {
			return fmt.Errorf("failed to export player report %s: %w", report.Title(), err)
		}
	}

	log.Info().
		Str("spreadsheet_id", sp.config.SpreadsheetID).
		Int("reports", len(result.Reports)).
		Int("player_reports", len(result.PlayerReports)).
		Msg("Exported stats to spreadsheet")

	return nil
}
