package catalog

import "cs2kz_stats/internal/app"

// QueryChange classifies how a course query changed between two snapshots.
// Values are ordered by priority: when several fields change at once the
// highest one decides how the catalog view reacts.
type QueryChange int

const (
	// ChangeNone means both snapshots are equal
	ChangeNone QueryChange = iota
	// ChangeView covers tier filter, sorting and pagination
	ChangeView
	// ChangeName means the free-text search changed
	ChangeName
	// ChangeScope means mode or leaderboard type changed; tiers must be re-projected
	ChangeScope
)

func (c QueryChange) String() string {
	switch c {
	case ChangeNone:
		return "none"
	case ChangeView:
		return "view"
	case ChangeName:
		return "name"
	case ChangeScope:
		return "scope"
	default:
		return "unknown"
	}
}

// ChangedFields lists the names of the query fields that differ
func ChangedFields(prev, next app.CourseQuery) []string {
	var fields []string
	if prev.Mode != next.Mode {
		fields = append(fields, "mode")
	}
	if prev.LeaderboardType != next.LeaderboardType {
		fields = append(fields, "leaderboard_type")
	}
	if prev.Name != next.Name {
		fields = append(fields, "name")
	}
	if prev.Tier != next.Tier {
		fields = append(fields, "tier")
	}
	if prev.SortBy != next.SortBy {
		fields = append(fields, "sort_by")
	}
	if prev.SortOrder != next.SortOrder {
		fields = append(fields, "sort_order")
	}
	if prev.Offset != next.Offset {
		fields = append(fields, "offset")
	}
	if prev.Limit != next.Limit {
		fields = append(fields, "limit")
	}
	return fields
}

// ClassifyQueryChange picks the highest-priority change between two snapshots:
// scope fields, then the search text, then everything else
func ClassifyQueryChange(prev, next app.CourseQuery) QueryChange {
	switch {
	case prev == next:
		return ChangeNone
	case prev.Mode != next.Mode || prev.LeaderboardType != next.LeaderboardType:
		return ChangeScope
	case prev.Name != next.Name:
		return ChangeName
	default:
		return ChangeView
	}
}
