package processing

import (
	"context"
	"fmt"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/summary"

	"github.com/rs/zerolog/log"
)

// CourseReportService turns a course's record set into a CourseReport
type CourseReportService struct {
	records RecordsFetcher
	now     func() time.Time
}

// NewCourseReportService creates a new course report service
func NewCourseReportService(records RecordsFetcher) *CourseReportService {
	return &CourseReportService{
		records: records,
		now:     time.Now,
	}
}

// BuildReport fetches the records of a scope and aggregates them
func (s *CourseReportService) BuildReport(ctx context.Context, scope app.RecordScope) (*summary.CourseReport, error) {
	records, err := s.records.GetRecordsForScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records for %s/%s: %w", scope.Map, scope.Course, err)
	}

	report := summary.BuildCourseReport(scope, records, s.now())

	logEvent := log.Debug().
		Str("map", scope.Map).
		Str("course", scope.Course).
		Str("facet", report.Facet.String()).
		Int("records", report.Records).
		Int("wrs", report.Distribution.WRs).
		Int("history_length", len(report.History))
	if wr, ok := report.CurrentWR(); ok {
		logEvent = logEvent.Float64("wr_time", wr.Time)
	}
	logEvent.Msg("Generated course report")

	return &report, nil
}
