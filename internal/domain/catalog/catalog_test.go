package catalog

import (
	"testing"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/tier"
)

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

func year(y int) time.Time {
	return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
}

// threeCourses is a catalog whose map names contain no "a"
func threeCourses() []app.CourseInfo {
	return []app.CourseInfo{
		{Map: "kz_lego", Name: "Alpha", Tier: tier.Easy, CreatedOn: year(2020)},
		{Map: "kz_rock", Name: "Beta", Tier: tier.Hard, CreatedOn: year(2021)},
		{Map: "kz_lion", Name: "gamma", Tier: tier.Easy, CreatedOn: year(2022)},
	}
}

func TestApplyQuery_SearchIsCaseInsensitive(t *testing.T) {
	query := app.CourseQuery{
		Name:      "a",
		SortBy:    app.SortByCreatedOn,
		SortOrder: app.SortAscending,
		Offset:    0,
		Limit:     10,
	}

	result := ApplyQuery(threeCourses(), query)

	// "Beta" contains a lower-case "a" as well
	expected := []string{"Alpha", "Beta", "gamma"}
	if got := courseNames(result.Courses); !equalNames(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	query.Name = "AL"
	result = ApplyQuery(threeCourses(), query)
	if got := courseNames(result.Courses); !equalNames(got, []string{"Alpha"}) {
		t.Errorf("Expected [Alpha] for upper-case search, got %v", got)
	}
}

func TestSearch(t *testing.T) {
	courses := threeCourses()

	testCases := []struct {
		name     string
		search   string
		expected []string
	}{
		{"empty passes through", "", []string{"Alpha", "Beta", "gamma"}},
		{"course name", "gam", []string{"gamma"}},
		{"map name", "rock", []string{"Beta"}},
		{"map prefix matches all", "kz_", []string{"Alpha", "Beta", "gamma"}},
		{"no match", "zzz", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := courseNames(Search(courses, tc.search))
			if !equalNames(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestMatchTier(t *testing.T) {
	courses := threeCourses()

	if got := courseNames(MatchTier(courses, "")); len(got) != 3 {
		t.Errorf("Expected no tier filter to keep all, got %v", got)
	}
	if got := courseNames(MatchTier(courses, tier.Easy)); !equalNames(got, []string{"Alpha", "gamma"}) {
		t.Errorf("Expected easy courses, got %v", got)
	}
	if got := MatchTier(courses, tier.Death); len(got) != 0 {
		t.Errorf("Expected no death courses, got %v", courseNames(got))
	}
}

func TestSortCourses(t *testing.T) {
	courses := []app.CourseInfo{
		{Map: "kz_zeta", Name: "z", Tier: tier.Medium, CreatedOn: year(2021)},
		{Map: "kz_Alpha", Name: "a", Tier: tier.Death, CreatedOn: year(2023)},
		{Map: "kz_beta", Name: "b", Tier: tier.VeryEasy, CreatedOn: year(2019)},
	}

	testCases := []struct {
		name     string
		by       app.SortBy
		order    app.SortOrder
		expected []string
	}{
		{"map ascending uses collation", app.SortByMap, app.SortAscending, []string{"a", "b", "z"}},
		{"map descending", app.SortByMap, app.SortDescending, []string{"z", "b", "a"}},
		{"tier by difficulty", app.SortByTier, app.SortAscending, []string{"b", "z", "a"}},
		{"tier descending", app.SortByTier, app.SortDescending, []string{"a", "z", "b"}},
		{"created on", app.SortByCreatedOn, app.SortAscending, []string{"b", "z", "a"}},
		{"no key keeps order", "", app.SortAscending, []string{"z", "a", "b"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := courseNames(SortCourses(courses, tc.order, tc.by))
			if !equalNames(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}

	if courses[0].Name != "z" {
		t.Error("Input slice was reordered")
	}
}

func TestSortCourses_StableAndIncomparable(t *testing.T) {
	courses := []app.CourseInfo{
		{Map: "kz_same", Name: "first", Tier: tier.Hard},
		{Map: "kz_same", Name: "second", Tier: "mystery"},
		{Map: "kz_same", Name: "third", Tier: tier.Hard},
	}

	byMap := courseNames(SortCourses(courses, app.SortDescending, app.SortByMap))
	if !equalNames(byMap, []string{"first", "second", "third"}) {
		t.Errorf("Expected equal maps to keep order, got %v", byMap)
	}

	byTier := courseNames(SortCourses(courses, app.SortAscending, app.SortByTier))
	if !equalNames(byTier, []string{"first", "third", "second"}) {
		t.Errorf("Expected unknown tier after known tiers, got %v", byTier)
	}
}

func TestSortCourses_UnknownTierBetweenKnownTiers(t *testing.T) {
	courses := []app.CourseInfo{
		{Map: "kz_h", Name: "hard", Tier: tier.Hard},
		{Map: "kz_m", Name: "mystery", Tier: "mystery"},
		{Map: "kz_e", Name: "easy", Tier: tier.Easy},
		{Map: "kz_x", Name: "other", Tier: "other"},
		{Map: "kz_i", Name: "impossible", Tier: tier.Impossible},
	}

	testCases := []struct {
		name     string
		order    app.SortOrder
		expected []string
	}{
		{"ascending", app.SortAscending, []string{"easy", "hard", "impossible", "mystery", "other"}},
		{"descending", app.SortDescending, []string{"mystery", "other", "impossible", "hard", "easy"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := courseNames(SortCourses(courses, tc.order, app.SortByTier))
			if !equalNames(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	courses := []app.CourseInfo{{Name: "0"}, {Name: "1"}, {Name: "2"}, {Name: "3"}, {Name: "4"}}

	testCases := []struct {
		name     string
		offset   int
		limit    int
		expected []string
	}{
		{"first page", 0, 2, []string{"0", "1"}},
		{"second page is offset+limit", 2, 2, []string{"2", "3"}},
		{"last partial page", 4, 2, []string{"4"}},
		{"offset past end", 10, 2, []string{}},
		{"zero limit", 0, 0, []string{}},
		{"negative offset clamps", -3, 2, []string{"0", "1"}},
		{"limit larger than catalog", 1, 100, []string{"1", "2", "3", "4"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := courseNames(Paginate(courses, tc.offset, tc.limit))
			if !equalNames(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestApplyQuery_PipelineOrder(t *testing.T) {
	courses := []app.CourseInfo{
		{Map: "kz_a", Name: "main", Tier: tier.Easy, CreatedOn: year(2020)},
		{Map: "kz_b", Name: "main", Tier: tier.Hard, CreatedOn: year(2021)},
		{Map: "kz_c", Name: "main", Tier: tier.Easy, CreatedOn: year(2022)},
		{Map: "kz_d", Name: "bonus", Tier: tier.Easy, CreatedOn: year(2023)},
	}

	query := app.CourseQuery{
		Name:      "main",
		Tier:      tier.Easy,
		SortBy:    app.SortByCreatedOn,
		SortOrder: app.SortDescending,
		Offset:    1,
		Limit:     1,
	}

	result := ApplyQuery(courses, query)

	if result.Matched != 2 {
		t.Errorf("Expected 2 matches before pagination, got %d", result.Matched)
	}
	if len(result.Courses) != 1 || result.Courses[0].Map != "kz_a" {
		t.Errorf("Expected second page to hold kz_a, got %+v", result.Courses)
	}
}

func TestBuildCatalog(t *testing.T) {
	approved := year(2024)
	maps := []app.Map{
		{
			Name:       "kz_grotto",
			ApprovedAt: approved,
			Courses: []app.Course{
				{
					Name:    "main",
					Mappers: []app.Player{{ID: "1", Name: "mapper"}},
					Filters: map[app.Mode]app.CourseFilter{
						app.ModeClassic: {NubTier: tier.Medium, ProTier: tier.Hard, State: "ranked"},
						app.ModeVanilla: {NubTier: tier.Extreme, ProTier: tier.Death, State: "unranked"},
					},
				},
				{
					Name: "vanilla only",
					Filters: map[app.Mode]app.CourseFilter{
						app.ModeVanilla: {NubTier: tier.Easy, ProTier: tier.Easy},
					},
				},
			},
		},
	}

	overall := BuildCatalog(maps, app.ModeClassic, app.LeaderboardOverall)
	if len(overall) != 1 {
		t.Fatalf("Expected courses without a classic filter to be skipped, got %d", len(overall))
	}
	entry := overall[0]
	if entry.Tier != tier.Medium || entry.State != "ranked" {
		t.Errorf("Expected nub tier medium/ranked, got %s/%s", entry.Tier, entry.State)
	}
	if entry.Map != "kz_grotto" || entry.Name != "main" || !entry.CreatedOn.Equal(approved) {
		t.Errorf("Unexpected projection: %+v", entry)
	}
	if len(entry.Mappers) != 1 {
		t.Errorf("Expected mappers carried over, got %v", entry.Mappers)
	}

	pro := BuildCatalog(maps, app.ModeClassic, app.LeaderboardPro)
	if pro[0].Tier != tier.Hard {
		t.Errorf("Expected pro tier hard, got %s", pro[0].Tier)
	}

	vanilla := BuildCatalog(maps, app.ModeVanilla, app.LeaderboardPro)
	if len(vanilla) != 2 || vanilla[0].Tier != tier.Death {
		t.Errorf("Unexpected vanilla projection: %+v", vanilla)
	}

	// IDs are stable across fetches and scopes
	if overall[0].ID != pro[0].ID || overall[0].ID != CourseID("kz_grotto", "main") {
		t.Error("Expected identical IDs for the same map/course")
	}
	if vanilla[0].ID == vanilla[1].ID {
		t.Error("Expected distinct IDs for distinct courses")
	}
}

func TestBuildCatalog_Empty(t *testing.T) {
	if got := BuildCatalog(nil, app.ModeClassic, app.LeaderboardOverall); len(got) != 0 {
		t.Errorf("Expected empty catalog, got %d entries", len(got))
	}
}
