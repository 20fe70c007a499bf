package catalog

import (
	"strings"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/tier"
)

// Search keeps courses whose course name or map name contains the search text,
// ignoring case. An empty search text keeps everything.
// Pure function: No I/O, returns new slice without modifying input
func Search(courses []app.CourseInfo, name string) []app.CourseInfo {
	if name == "" {
		return courses
	}

	needle := strings.ToLower(name)
	var matched []app.CourseInfo
	for _, course := range courses {
		if MatchesName(course, needle) {
			matched = append(matched, course)
		}
	}
	return matched
}

// MatchesName checks a lower-cased needle against the course and map name
func MatchesName(course app.CourseInfo, needle string) bool {
	return strings.Contains(strings.ToLower(course.Name), needle) ||
		strings.Contains(strings.ToLower(course.Map), needle)
}

// MatchTier keeps courses of exactly the given tier. An empty tier keeps everything.
func MatchTier(courses []app.CourseInfo, t tier.Tier) []app.CourseInfo {
	if t == "" {
		return courses
	}

	var matched []app.CourseInfo
	for _, course := range courses {
		if course.Tier == t {
			matched = append(matched, course)
		}
	}
	return matched
}
