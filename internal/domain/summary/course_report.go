package summary

import (
	"fmt"
	"strings"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/history"
	"cs2kz_stats/internal/domain/stats"

	"github.com/google/uuid"
)

var reportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://api.cs2kz.org/reports"))

// CourseReport bundles every aggregate computed from one course's record set
type CourseReport struct {
	Scope        app.RecordScope
	Facet        stats.Facet
	Records      int
	Distribution stats.Distribution
	History      []history.Entry
	GeneratedAt  time.Time
}

// Title returns a human-readable label such as "kz_grotto / main (classic, pro)"
func (r CourseReport) Title() string {
	return fmt.Sprintf("%s / %s (%s, %s)", r.Scope.Map, r.Scope.Course, r.Scope.Mode, r.Scope.LeaderboardType)
}

// CurrentWR returns the last entry of the world-record progression
func (r CourseReport) CurrentWR() (history.Entry, bool) {
	if len(r.History) == 0 {
		return history.Entry{}, false
	}
	return r.History[len(r.History)-1], true
}

// Fingerprint identifies the computed content of the report. Two reports with
// the same fingerprint show the same counts, distribution and WR history;
// GeneratedAt does not take part.
func (r CourseReport) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%+v|", r.Facet, r.Records, r.Distribution)
	for _, entry := range r.History {
		fmt.Fprintf(&b, "%d:%g;", entry.ID, entry.Time)
	}
	return uuid.NewSHA1(reportNamespace, []byte(b.String())).String()
}

// BuildCourseReport runs the distribution and WR history aggregators over one
// course's record set.
//
// Pure function: No I/O, generatedAt is supplied by the caller
func BuildCourseReport(scope app.RecordScope, records []app.Record, generatedAt time.Time) CourseReport {
	facet := stats.DetectFacet(records)

	return CourseReport{
		Scope:        scope,
		Facet:        facet,
		Records:      len(records),
		Distribution: stats.CalculateDistributionForFacet(records, facet),
		History:      history.AnnotateImprovements(history.ReconstructWRHistory(records)),
		GeneratedAt:  generatedAt,
	}
}
