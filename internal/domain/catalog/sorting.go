package catalog

import (
	"sort"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/tier"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortCourses returns a new slice sorted by the given key and order.
// Map names are ordered with a locale-aware collator, tiers by difficulty and
// creation dates chronologically. Unknown tiers sort after every known tier,
// and equal entries keep their relative order.
// Pure function: Does not modify input slice, returns new sorted slice
func SortCourses(courses []app.CourseInfo, order app.SortOrder, by app.SortBy) []app.CourseInfo {
	sorted := make([]app.CourseInfo, len(courses))
	copy(sorted, courses)

	if by == "" {
		return sorted
	}

	direction := 1
	if order == app.SortDescending {
		direction = -1
	}

	// Collators keep internal buffers, so each sort gets its own
	collator := collate.New(language.English)

	sort.SliceStable(sorted, func(i, j int) bool {
		return compareCourses(collator, sorted[i], sorted[j], by)*direction < 0
	})

	return sorted
}

func compareCourses(collator *collate.Collator, a, b app.CourseInfo, by app.SortBy) int {
	switch by {
	case app.SortByMap:
		return collator.CompareString(a.Map, b.Map)
	case app.SortByTier:
		return compareTiers(a.Tier, b.Tier)
	case app.SortByCreatedOn:
		return a.CreatedOn.Compare(b.CreatedOn)
	default:
		return 0
	}
}

func compareTiers(a, b tier.Tier) int {
	return tierSortKey(a) - tierSortKey(b)
}

// tierSortKey places unknown tiers after impossible, all sharing one position
func tierSortKey(t tier.Tier) int {
	if ord, ok := tier.Ordinal(t); ok {
		return ord
	}
	return len(tier.Tiers()) + 1
}
