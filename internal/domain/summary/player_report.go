package summary

import (
	"fmt"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/stats"
)

// PlayerReport summarizes a player's top records across all courses of one
// mode and leaderboard type
type PlayerReport struct {
	Scope        app.PlayerScope
	Name         string
	Facet        stats.Facet
	Records      int
	Distribution stats.Distribution
	// CompletionsByTier counts the player's completed courses per tier,
	// AvailableByTier the catalog's courses per tier
	CompletionsByTier stats.TierHistogram
	AvailableByTier   stats.TierHistogram
	GeneratedAt       time.Time
}

// Title returns a label such as "gnome (classic, overall)"
func (r PlayerReport) Title() string {
	return fmt.Sprintf("%s (%s, %s)", r.Name, r.Scope.Mode, r.Scope.LeaderboardType)
}

// CompletionPercent returns the share of available courses completed in the
// tier at index i of tier.CompletableTiers(). Tiers without courses report 0.
func (r PlayerReport) CompletionPercent(i int) float64 {
	if r.AvailableByTier[i] == 0 {
		return 0
	}
	return float64(r.CompletionsByTier[i]) * 100 / float64(r.AvailableByTier[i])
}

// BuildPlayerReport aggregates a player's top records against the course
// catalog of the same mode and leaderboard type. The player's display name is
// taken from the records when they carry one.
//
// Pure function: No I/O, generatedAt is supplied by the caller
func BuildPlayerReport(scope app.PlayerScope, records []app.Record, catalog []app.CourseInfo, generatedAt time.Time) PlayerReport {
	facet := stats.DetectFacet(records)

	name := scope.Player
	for _, record := range records {
		if record.Player.Name != "" {
			name = record.Player.Name
			break
		}
	}

	return PlayerReport{
		Scope:             scope,
		Name:              name,
		Facet:             facet,
		Records:           len(records),
		Distribution:      stats.CalculateDistributionForFacet(records, facet),
		CompletionsByTier: stats.CountCompletionsByTier(records),
		AvailableByTier:   stats.CountCoursesByTier(catalog),
		GeneratedAt:       generatedAt,
	}
}
