package processing

import (
	"testing"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/config"
	"cs2kz_stats/internal/domain/tier"
)

func year(y int) time.Time {
	return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
}

// testCourse builds a course with a classic filter using the given tiers and
// a vanilla filter rated death for both leaderboards
func testCourse(name string, nub, pro tier.Tier) app.Course {
	return app.Course{
		Name: name,
		Filters: map[app.Mode]app.CourseFilter{
			app.ModeClassic: {NubTier: nub, ProTier: pro, State: "ranked"},
			app.ModeVanilla: {NubTier: tier.Death, ProTier: tier.Death, State: "unranked"},
		},
	}
}

// testCatalog has one course per map and no "a" in any map name
func testCatalog() *app.MapResponse {
	return &app.MapResponse{
		Values: []app.Map{
			{Name: "kz_lego", ApprovedAt: year(2020), Courses: []app.Course{testCourse("Alpha", tier.Easy, tier.Medium)}},
			{Name: "kz_rock", ApprovedAt: year(2021), Courses: []app.Course{testCourse("Beta", tier.Hard, tier.VeryHard)}},
			{Name: "kz_lion", ApprovedAt: year(2022), Courses: []app.Course{testCourse("gamma", tier.Easy, tier.Advanced)}},
		},
		Total: 3,
	}
}

func testPipelineConfig(debounce time.Duration) config.PipelineConfig {
	return config.PipelineConfig{
		SearchDebounce: debounce,
		PageLimit:      config.DefaultPageLimit,
	}
}

func newTestConfig(spreadsheetID string) *app.Config {
	return &app.Config{
		APIBaseURL:      app.DefaultAPIURL,
		SpreadsheetID:   spreadsheetID,
		Mode:            app.ModeClassic,
		LeaderboardType: app.LeaderboardOverall,
		UpdateInterval:  5 * time.Minute,
		Tuning:          config.DefaultTuningConfig,
	}
}

func courseNames(courses []app.CourseInfo) []string {
	names := make([]string, len(courses))
	for i, c := range courses {
		names[i] = c.Name
	}
	return names
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}
