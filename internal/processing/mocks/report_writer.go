package mocks

import (
	"context"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/summary"
)

// MockReportWriter is a test double for sheets.ReportWriter
type MockReportWriter struct {
	// Errors to return
	WriteCatalogError      error
	WriteCourseReportError error
	WritePlayerReportError error

	// Call tracking
	WriteCatalogCalled      bool
	CatalogSpreadsheetID    string
	CatalogCourses          []app.CourseInfo
	CatalogQuery            app.CourseQuery
	WrittenReports          []summary.CourseReport
	WriteCourseReportCalled bool
	WrittenPlayerReports    []summary.PlayerReport
}

// NewMockReportWriter creates a new mock report writer
func NewMockReportWriter() *MockReportWriter {
	return &MockReportWriter{}
}

func (m *MockReportWriter) WriteCatalog(ctx context.Context, spreadsheetID string, courses []app.CourseInfo, query app.CourseQuery) error {
	m.WriteCatalogCalled = true
	m.CatalogSpreadsheetID = spreadsheetID
	m.CatalogCourses = courses
	m.CatalogQuery = query
	return m.WriteCatalogError
}

func (m *MockReportWriter) WriteCourseReport(ctx context.Context, spreadsheetID string, report summary.CourseReport) error {
	m.WriteCourseReportCalled = true
	if m.WriteCourseReportError != nil {
		return m.WriteCourseReportError
	}
	m.WrittenReports = append(m.WrittenReports, report)
	return nil
}

func (m *MockReportWriter) WritePlayerReport(ctx context.Context, spreadsheetID string, report summary.PlayerReport) error {
	if m.WritePlayerReportError != nil {
		return m.WritePlayerReportError
	}
	m.WrittenPlayerReports = append(m.WrittenPlayerReports, report)
	return nil
}

// Reset clears all call tracking and errors
func (m *MockReportWriter) Reset() {
	m.WriteCatalogError = nil
	m.WriteCourseReportError = nil
	m.WritePlayerReportError = nil

	m.WriteCatalogCalled = false
	m.CatalogSpreadsheetID = ""
	m.CatalogCourses = nil
	m.CatalogQuery = app.CourseQuery{}
	m.WrittenReports = nil
	m.WriteCourseReportCalled = false
	m.WrittenPlayerReports = nil
}
