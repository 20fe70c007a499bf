package sheets

import (
	"context"
	"fmt"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/catalog"
	"cs2kz_stats/internal/domain/stats"
	"cs2kz_stats/internal/domain/summary"
	"cs2kz_stats/internal/domain/tier"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
)

// maxTabNameLength is the Google Sheets limit for tab titles
const maxTabNameLength = 100

// ReportWriter exports the course catalog and course reports to tabs of a
// spreadsheet
type ReportWriter struct {
	api SheetsAPI
}

// NewReportWriter creates a new report writer with the given API client
func NewReportWriter(api SheetsAPI) *ReportWriter {
	return &ReportWriter{
		api: api,
	}
}

// CatalogTabName names the catalog tab of a mode and leaderboard type
func CatalogTabName(mode app.Mode, leaderboard app.LeaderboardType) string {
	return tabName(fmt.Sprintf("catalog %s %s", mode, leaderboard))
}

// PlayerTabName names the report tab of a player scope
func PlayerTabName(scope app.PlayerScope) string {
	return tabName(fmt.Sprintf("player %s %s %s", scope.Player, scope.Mode, scope.LeaderboardType))
}

// CourseTabName names the report tab of a course scope
func CourseTabName(scope app.RecordScope) string {
	return tabName(fmt.Sprintf("%s %s %s %s", scope.Map, scope.Course, scope.Mode, scope.LeaderboardType))
}

func tabName(s string) string {
	name := slug.Make(s)
	if len(name) > maxTabNameLength {
		name = name[:maxTabNameLength]
	}
	return name
}

// sheetRange builds an A1 range on a quoted tab name
func sheetRange(sheetName, cells string) string {
	return fmt.Sprintf("'%s'!%s", sheetName, cells)
}

// EnsureSheet creates a tab when it does not exist yet
func (w *ReportWriter) EnsureSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	exists, err := w.api.SheetExists(ctx, spreadsheetID, sheetName)
	if err != nil {
		return fmt.Errorf("failed to check if sheet %s exists: %w", sheetName, err)
	}
	if exists {
		return nil
	}

	log.Info().
		Str("sheet_name", sheetName).
		Msg("Creating sheet")

	if err := w.api.CreateSheet(ctx, spreadsheetID, sheetName); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
	}
	return nil
}

// WriteCatalog replaces the catalog tab with tier availability counts and
// the course list sorted by map name
func (w *ReportWriter) WriteCatalog(ctx context.Context, spreadsheetID string, courses []app.CourseInfo, query app.CourseQuery) error {
	sheetName := CatalogTabName(query.Mode, query.LeaderboardType)

	if err := w.EnsureSheet(ctx, spreadsheetID, sheetName); err != nil {
		return err
	}

	rows := BuildCatalogRows(courses, query)
	if err := w.replaceSheet(ctx, spreadsheetID, sheetName, rows); err != nil {
		return err
	}

	log.Info().
		Str("sheet_name", sheetName).
		Int("courses", len(courses)).
		Msg("Wrote course catalog")

	return nil
}

// WriteCourseReport replaces a course's report tab. The write is skipped when
// the tab already holds a report with the same fingerprint.
func (w *ReportWriter) WriteCourseReport(ctx context.Context, spreadsheetID string, report summary.CourseReport) error {
	sheetName := CourseTabName(report.Scope)

	if err := w.EnsureSheet(ctx, spreadsheetID, sheetName); err != nil {
		return err
	}

	existing, err := w.api.ReadSheet(ctx, spreadsheetID, sheetRange(sheetName, "A1:B7"))
	if err != nil {
		return fmt.Errorf("failed to read existing report from %s: %w", sheetName, err)
	}

	if ReportUnchanged(existing, report) {
		log.Debug().
			Str("sheet_name", sheetName).
			Int("records", report.Records).
			Msg("Course report unchanged, skipping export")
		return nil
	}

	rows := BuildCourseReportRows(report)
	if err := w.replaceSheet(ctx, spreadsheetID, sheetName, rows); err != nil {
		return err
	}

	log.Info().
		Str("sheet_name", sheetName).
		Int("records", report.Records).
		Int("history_length", len(report.History)).
		Msg("Wrote course report")

	return nil
}

func (w *ReportWriter) replaceSheet(ctx context.Context, spreadsheetID, sheetName string, rows [][]interface{}) error {
	if err := w.api.EnsureSheetCapacity(ctx, spreadsheetID, sheetName, len(rows), reportColumns); err != nil {
		return fmt.Errorf("failed to ensure capacity of %s: %w", sheetName, err)
	}

	if err := w.api.ClearRange(ctx, spreadsheetID, sheetRange(sheetName, "A:F")); err != nil {
		return fmt.Errorf("failed to clear %s: %w", sheetName, err)
	}

	if err := w.api.UpdateRange(ctx, spreadsheetID, sheetRange(sheetName, "A1"), rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", sheetName, err)
	}
	return nil
}

// reportColumns is the widest row any tab layout writes
const reportColumns = 6

// ReportUnchanged compares the header block of an exported report (A1:B7)
// with a fresh report. The fingerprint in B7 covers the distribution and the
// WR history, so rank or points recalculations are caught even when the
// record count and WR stay the same.
func ReportUnchanged(existing [][]interface{}, report summary.CourseReport) bool {
	if CellAt(existing, 2, 1).IsEmpty() || CellAt(existing, 2, 1).Int() != report.Records {
		return false
	}
	return CellAt(existing, 6, 1).String() == report.Fingerprint()
}

// WritePlayerReport replaces a player's report tab
func (w *ReportWriter) WritePlayerReport(ctx context.Context, spreadsheetID string, report summary.PlayerReport) error {
	sheetName := PlayerTabName(report.Scope)

	if err := w.EnsureSheet(ctx, spreadsheetID, sheetName); err != nil {
		return err
	}

	if err := w.replaceSheet(ctx, spreadsheetID, sheetName, BuildPlayerReportRows(report)); err != nil {
		return err
	}

	log.Info().
		Str("sheet_name", sheetName).
		Int("records", report.Records).
		Msg("Wrote player report")

	return nil
}

// BuildCatalogRows lays out the catalog tab
func BuildCatalogRows(courses []app.CourseInfo, query app.CourseQuery) [][]interface{} {
	availability := stats.CountCoursesByTier(courses)

	rows := [][]interface{}{
		{"Course Catalog"},
		{"Mode", string(query.Mode)},
		{"Leaderboard", string(query.LeaderboardType)},
		{"Courses", len(courses)},
		{},
		{"Tier", "Courses"},
	}
	rows = append(rows, histogramRows(availability)...)
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Map", "Course", "Tier", "State", "Created On"},
	)

	for _, course := range catalog.SortCourses(courses, app.SortAscending, app.SortByMap) {
		rows = append(rows, []interface{}{
			course.Map,
			course.Name,
			tier.DisplayName(course.Tier),
			course.State,
			formatDate(course.CreatedOn),
		})
	}

	return rows
}

// BuildCourseReportRows lays out a course report tab. The first seven rows are
// the header block read back by ReportUnchanged.
func BuildCourseReportRows(report summary.CourseReport) [][]interface{} {
	var wrTime interface{} = ""
	if wr, ok := report.CurrentWR(); ok {
		wrTime = wr.Time
	}

	rows := [][]interface{}{
		{"Course Report"},
		{"Course", report.Title()},
		{"Records", report.Records},
		{"Current WR", wrTime},
		{"Facet", report.Facet.String()},
		{"Generated", report.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Fingerprint", report.Fingerprint()},
		{},
		{"Distribution"},
		{"WRs", report.Distribution.WRs},
		{"Top 20", report.Distribution.Top20},
		{"Top 50", report.Distribution.Top50},
		{"Top 100", report.Distribution.Top100},
		{},
		{"Points", "Runs"},
	}

	rows = append(rows, pointsRows(report.Distribution)...)

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"WR History"},
		[]interface{}{"Submitted", "Player", "Time", "Improved", "Teleports", "Server"},
	)
	for _, entry := range report.History {
		rows = append(rows, []interface{}{
			entry.SubmittedAt.UTC().Format(time.RFC3339),
			entry.Player.Name,
			entry.Time,
			entry.TimeImproved,
			entry.Teleports,
			entry.Server.Name,
		})
	}

	return rows
}

// BuildPlayerReportRows lays out a player report tab: distribution, then
// completed and available courses per tier
func BuildPlayerReportRows(report summary.PlayerReport) [][]interface{} {
	rows := [][]interface{}{
		{"Player Report"},
		{"Player", report.Title()},
		{"Records", report.Records},
		{"Facet", report.Facet.String()},
		{"Generated", report.GeneratedAt.UTC().Format(time.RFC3339)},
		{},
		{"Distribution"},
		{"WRs", report.Distribution.WRs},
		{"Top 20", report.Distribution.Top20},
		{"Top 50", report.Distribution.Top50},
		{"Top 100", report.Distribution.Top100},
		{},
		{"Points", "Runs"},
	}
	rows = append(rows, pointsRows(report.Distribution)...)

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Tier", "Completed", "Available", "Percent"},
	)
	for i, t := range tier.CompletableTiers() {
		rows = append(rows, []interface{}{
			tier.DisplayName(t),
			report.CompletionsByTier[i],
			report.AvailableByTier[i],
			report.CompletionPercent(i),
		})
	}

	return rows
}

func pointsRows(dist stats.Distribution) [][]interface{} {
	rows := make([][]interface{}, 0, len(dist.PointsDist))
	for i, count := range dist.PointsDist {
		rows = append(rows, []interface{}{
			fmt.Sprintf("%d-%d", i*1000, (i+1)*1000),
			count,
		})
	}
	return rows
}

func histogramRows(h stats.TierHistogram) [][]interface{} {
	tiers := tier.CompletableTiers()
	rows := make([][]interface{}, 0, len(tiers))
	for i, t := range tiers {
		rows = append(rows, []interface{}{tier.DisplayName(t), h[i]})
	}
	return rows
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
