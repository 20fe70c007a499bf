package processing

import (
	"cs2kz_stats/internal/kz"
	"cs2kz_stats/internal/sheets"
)

// Compile-time interface compliance checks
// These will cause compilation errors if the types don't implement the interfaces

var (
	_ MapsFetcher                  = (*kz.Client)(nil)
	_ RecordSetsFetcher            = (*kz.RecordsFetcher)(nil)
	_ KZClientInterface            = (*CachedKZClient)(nil)
	_ ReportWriterInterface        = (*sheets.ReportWriter)(nil)
	_ CourseReportServiceInterface = (*CourseReportService)(nil)
	_ PlayerReportServiceInterface = (*PlayerReportService)(nil)
)
