package stats

import (
	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/tier"
)

// TierHistogram counts items per completable tier, positionally aligned with
// tier.CompletableTiers()
type TierHistogram [tier.CompletableCount]int

// Total returns the sum of all tier counts
func (h TierHistogram) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// CountCompletionsByTier counts records by the tier of their course.
// Unfeasible, impossible and unknown tiers are not counted.
func CountCompletionsByTier(records []app.Record) TierHistogram {
	var h TierHistogram
	for _, record := range records {
		h.add(record.Course.Tier)
	}
	return h
}

// CountCoursesByTier counts catalog entries by their tier
func CountCoursesByTier(courses []app.CourseInfo) TierHistogram {
	var h TierHistogram
	for _, course := range courses {
		h.add(course.Tier)
	}
	return h
}

func (h *TierHistogram) add(t tier.Tier) {
	if !tier.IsCompletable(t) {
		return
	}
	ordinal, _ := tier.Ordinal(t)
	h[ordinal-1]++
}
