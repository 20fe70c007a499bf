package processing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/processing/mocks"
)

var grottoScope = app.RecordScope{
	Map:             "kz_grotto",
	Course:          "main",
	Mode:            app.ModeClassic,
	LeaderboardType: app.LeaderboardPro,
}

func intPtr(i int) *int { return &i }
func floatPtr(f float64) *float64 { return &f }

func grottoRecords() []app.Record {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []app.Record{
		{ID: 10, Time: 61.0, ProRank: intPtr(2), ProPoints: floatPtr(9400), SubmittedAt: base},
		{ID: 11, Time: 59.5, ProRank: intPtr(1), ProPoints: floatPtr(10000), SubmittedAt: base.Add(time.Hour)},
		{ID: 12, Time: 75.0, ProRank: intPtr(30), ProPoints: floatPtr(4200), SubmittedAt: base.Add(2 * time.Hour)},
	}
}

func TestCourseReportService_BuildReport(t *testing.T) {
	mockClient := mocks.NewMockKZClient()
	mockClient.RecordsResponse[grottoScope] = grottoRecords()

	generated := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	service := NewCourseReportService(mockClient)
	service.now = func() time.Time { return generated }

	report, err := service.BuildReport(context.Background(), grottoScope)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.Scope != grottoScope {
		t.Errorf("Expected scope %+v, got %+v", grottoScope, report.Scope)
	}
	if report.Facet.String() != "pro" {
		t.Errorf("Expected pro facet, got %s", report.Facet)
	}
	if report.Distribution.WRs != 1 || report.Distribution.Top20 != 2 || report.Distribution.Top50 != 3 {
		t.Errorf("Unexpected distribution %+v", report.Distribution)
	}
	if len(report.History) != 2 || report.History[1].ID != 11 {
		t.Errorf("Unexpected history %+v", report.History)
	}
	if !report.GeneratedAt.Equal(generated) {
		t.Errorf("Expected generated time %v, got %v", generated, report.GeneratedAt)
	}

	if len(mockClient.RecordScopes) != 1 || mockClient.RecordScopes[0] != grottoScope {
		t.Errorf("Expected one records fetch for %+v, got %+v", grottoScope, mockClient.RecordScopes)
	}
}

func TestCourseReportService_FetchError(t *testing.T) {
	mockClient := mocks.NewMockKZClient()
	mockClient.RecordsError = errors.New("timeout")

	service := NewCourseReportService(mockClient)

	report, err := service.BuildReport(context.Background(), grottoScope)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if report != nil {
		t.Error("Expected nil report on error")
	}
	if !errors.Is(err, mockClient.RecordsError) {
		t.Errorf("Expected wrapped upstream error, got %v", err)
	}
	if !strings.Contains(err.Error(), "kz_grotto/main") {
		t.Errorf("Expected error to name the course, got %v", err)
	}
}

func TestCourseReportService_NoRecords(t *testing.T) {
	service := NewCourseReportService(mocks.NewMockKZClient())

	report, err := service.BuildReport(context.Background(), grottoScope)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if report.Records != 0 || len(report.History) != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
	if _, ok := report.CurrentWR(); ok {
		t.Error("Expected no current WR")
	}
}
