package catalog

import "cs2kz_stats/internal/app"

// Paginate returns the page [offset, offset+limit) of courses, clamped to the
// slice bounds. A non-positive limit yields an empty page.
// Pure function: Returns a subslice of the input
func Paginate(courses []app.CourseInfo, offset, limit int) []app.CourseInfo {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= len(courses) {
		return []app.CourseInfo{}
	}

	end := offset + limit
	if end > len(courses) {
		end = len(courses)
	}
	return courses[offset:end]
}

// Result is a page of the catalog together with the number of entries that
// matched before pagination
type Result struct {
	Courses []app.CourseInfo
	Matched int
}

// ApplyQuery runs search, tier filter, sort and pagination, in that order.
//
// Pure function: No I/O, deterministic output from input
func ApplyQuery(courses []app.CourseInfo, query app.CourseQuery) Result {
	searched := Search(courses, query.Name)
	tiered := MatchTier(searched, query.Tier)
	sorted := SortCourses(tiered, query.SortOrder, query.SortBy)

	return Result{
		Courses: Paginate(sorted, query.Offset, query.Limit),
		Matched: len(sorted),
	}
}
