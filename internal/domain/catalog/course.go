package catalog

import (
	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/tier"

	"github.com/google/uuid"
)

// courseNamespace scopes the name-based course IDs
var courseNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://api.cs2kz.org/courses"))

// CourseID derives a stable identifier for a catalog entry from its map and
// course name, so repeated fetches produce the same IDs
func CourseID(mapName, courseName string) string {
	return uuid.NewSHA1(courseNamespace, []byte(mapName+"/"+courseName)).String()
}

// TierForScope picks the tier of a course filter for a leaderboard type:
// pro rankings use pro_tier, everything else nub_tier
func TierForScope(filter app.CourseFilter, leaderboard app.LeaderboardType) tier.Tier {
	if leaderboard == app.LeaderboardPro {
		return filter.ProTier
	}
	return filter.NubTier
}

// BuildCatalog flattens maps into one catalog entry per course, taking the
// tier and state of the given mode and leaderboard type. Courses that have no
// filter for the mode are skipped.
//
// Pure function: No I/O, deterministic output from input
func BuildCatalog(maps []app.Map, mode app.Mode, leaderboard app.LeaderboardType) []app.CourseInfo {
	var courses []app.CourseInfo

	for _, m := range maps {
		for _, course := range m.Courses {
			filter, ok := course.Filters[mode]
			if !ok {
				continue
			}

			courses = append(courses, app.CourseInfo{
				ID:        CourseID(m.Name, course.Name),
				Map:       m.Name,
				Name:      course.Name,
				Tier:      TierForScope(filter, leaderboard),
				State:     filter.State,
				Mappers:   course.Mappers,
				CreatedOn: m.ApprovedAt,
			})
		}
	}

	return courses
}
