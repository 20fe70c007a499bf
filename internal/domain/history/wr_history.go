package history

import (
	"sort"

	"cs2kz_stats/internal/app"
)

// Entry is a step of a record progression together with the time it took
// off the previous step
type Entry struct {
	app.Record
	TimeImproved float64
}

// SortChronologically returns a new slice with records sorted by submission
// time, oldest first. Records submitted at the same instant keep their order.
// Pure function: Does not modify input slice, returns new sorted slice
func SortChronologically(records []app.Record) []app.Record {
	sorted := make([]app.Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SubmittedAt.Before(sorted[j].SubmittedAt)
	})

	return sorted
}

// ReconstructWRHistory returns the runs that tied or beat the best time seen
// so far, oldest first. Ties are kept so shared records show up as separate
// steps. The resulting times never increase.
func ReconstructWRHistory(records []app.Record) []app.Record {
	sorted := SortChronologically(records)

	history := make([]app.Record, 0, len(sorted))
	for _, record := range sorted {
		if len(history) == 0 || record.Time <= history[len(history)-1].Time {
			history = append(history, record)
		}
	}

	return history
}

// AnnotateImprovements attaches to each step of a chronological history the
// seconds it took off the step before it. The first step and ties get zero.
func AnnotateImprovements(history []app.Record) []Entry {
	entries := make([]Entry, len(history))
	for i, record := range history {
		entries[i] = Entry{Record: record}
		if i > 0 {
			if delta := history[i-1].Time - record.Time; delta > 0 {
				entries[i].TimeImproved = delta
			}
		}
	}
	return entries
}
