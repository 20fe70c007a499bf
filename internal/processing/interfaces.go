package processing

import (
	"context"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/summary"
)

// MapsFetcher fetches the map catalog the course pipeline projects from
type MapsFetcher interface {
	GetMaps(ctx context.Context) (*app.MapResponse, error)
}

// RecordsFetcher fetches the complete record set of one course scope
type RecordsFetcher interface {
	GetRecordsForScope(ctx context.Context, scope app.RecordScope) ([]app.Record, error)
}

// PlayerRecordsFetcher fetches a player's top records across all courses
type PlayerRecordsFetcher interface {
	GetRecordsForPlayer(ctx context.Context, scope app.PlayerScope) ([]app.Record, error)
}

// RecordSetsFetcher fetches both kinds of record sets
type RecordSetsFetcher interface {
	RecordsFetcher
	PlayerRecordsFetcher
}

// KZClientInterface is the upstream surface used by the stats processor
type KZClientInterface interface {
	MapsFetcher
	RecordSetsFetcher
}

// ReportWriterInterface defines the spreadsheet export methods used by StatsProcessor
type ReportWriterInterface interface {
	WriteCatalog(ctx context.Context, spreadsheetID string, courses []app.CourseInfo, query app.CourseQuery) error
	WriteCourseReport(ctx context.Context, spreadsheetID string, report summary.CourseReport) error
	WritePlayerReport(ctx context.Context, spreadsheetID string, report summary.PlayerReport) error
}

// CourseReportServiceInterface defines the interface for course report generation
type CourseReportServiceInterface interface {
	BuildReport(ctx context.Context, scope app.RecordScope) (*summary.CourseReport, error)
}

// PlayerReportServiceInterface defines the interface for player report generation
type PlayerReportServiceInterface interface {
	BuildReport(ctx context.Context, scope app.PlayerScope, catalog []app.CourseInfo) (*summary.PlayerReport, error)
}
