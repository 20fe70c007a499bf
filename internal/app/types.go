package app

import (
	"time"

	"cs2kz_stats/internal/config"
	"cs2kz_stats/internal/domain/tier"
)

// Mode is a CS2KZ gameplay mode
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeVanilla Mode = "vanilla"
)

// LeaderboardType selects the teleport scope of a ranking
type LeaderboardType string

const (
	// LeaderboardOverall ranks runs with or without teleports (nub ranking)
	LeaderboardOverall LeaderboardType = "overall"
	// LeaderboardPro ranks zero-teleport runs only
	LeaderboardPro LeaderboardType = "pro"
)

// Valid reports whether the leaderboard type is one the API understands
func (l LeaderboardType) Valid() bool {
	return l == LeaderboardOverall || l == LeaderboardPro
}

// Player represents a player reference from the API
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CourseFilter holds the per-mode ranking facets of a course
type CourseFilter struct {
	ID      int       `json:"id"`
	NubTier tier.Tier `json:"nub_tier"`
	ProTier tier.Tier `json:"pro_tier"`
	State   string    `json:"state"`
	Notes   string    `json:"notes"`
}

// Course represents a course of a map as returned by /maps
type Course struct {
	ID          int                   `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Mappers     []Player              `json:"mappers"`
	Filters     map[Mode]CourseFilter `json:"filters"`
}

// Map represents a map as returned by /maps
type Map struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	State       string    `json:"state"`
	Mappers     []Player  `json:"mappers"`
	Courses     []Course  `json:"courses"`
	ApprovedAt  time.Time `json:"approved_at"`
	WorkshopID  int64     `json:"workshop_id"`
	Description string    `json:"description"`
}

// MapResponse represents the response from /maps
type MapResponse struct {
	Values []Map `json:"values"`
	Total  int   `json:"total"`
}

// RecordCourse is the course reference embedded in a record
type RecordCourse struct {
	ID   int       `json:"id"`
	Name string    `json:"name"`
	Tier tier.Tier `json:"tier"`
}

// RecordMap is the map reference embedded in a record
type RecordMap struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RecordServer is the server reference embedded in a record
type RecordServer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Record represents a single completion run.
// Rank and points are nil when the run is not ranked in that facet.
type Record struct {
	ID          int64        `json:"id"`
	Player      Player       `json:"player"`
	Server      RecordServer `json:"server"`
	Map         RecordMap    `json:"map"`
	Course      RecordCourse `json:"course"`
	Mode        Mode         `json:"mode"`
	Styles      []string     `json:"styles"`
	Teleports   int          `json:"teleports"`
	Time        float64      `json:"time"`
	NubRank     *int         `json:"nub_rank"`
	NubPoints   *float64     `json:"nub_points"`
	ProRank     *int         `json:"pro_rank"`
	ProPoints   *float64     `json:"pro_points"`
	SubmittedAt time.Time    `json:"submitted_at"`
}

// RecordResponse represents the response from /records
type RecordResponse struct {
	Values []Record `json:"values"`
	Total  int      `json:"total"`
}

// RecordScope identifies the record set of one course in one mode and facet
type RecordScope struct {
	Map             string
	Course          string
	Mode            Mode
	LeaderboardType LeaderboardType
}

// PlayerScope identifies the top records of one player in one mode and facet.
// Player is a SteamID or a player name, as the API accepts either.
type PlayerScope struct {
	Player          string
	Mode            Mode
	LeaderboardType LeaderboardType
}

// RecordQuery holds the /records request parameters.
// Zero values are left out of the request.
type RecordQuery struct {
	Map             string
	Course          string
	Mode            Mode
	LeaderboardType LeaderboardType
	Top             bool
	MaxRank         int
	Player          string
	Server          string
	SortBy          string
	SortOrder       string
	Limit           int
	Offset          int
}

// CourseInfo is the flat catalog entry projected from a map's course
type CourseInfo struct {
	ID        string
	Map       string
	Name      string
	Tier      tier.Tier
	State     string
	Mappers   []Player
	CreatedOn time.Time
}

// SortBy is the catalog sort key
type SortBy string

const (
	SortByMap       SortBy = "map"
	SortByTier      SortBy = "tier"
	SortByCreatedOn SortBy = "created_on"
)

// SortOrder is the catalog sort direction
type SortOrder string

const (
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// CourseQuery is the filter/sort/paginate spec applied to the course catalog.
// Tier is empty when no tier filter is set.
type CourseQuery struct {
	Name            string
	Mode            Mode
	LeaderboardType LeaderboardType
	Tier            tier.Tier
	SortBy          SortBy
	SortOrder       SortOrder
	Limit           int
	Offset          int
}

// DefaultCourseQuery returns the query a fresh catalog view starts with
func DefaultCourseQuery() CourseQuery {
	return CourseQuery{
		Name:            "",
		Mode:            ModeClassic,
		LeaderboardType: LeaderboardOverall,
		SortBy:          SortByMap,
		SortOrder:       SortAscending,
		Limit:           config.DefaultPageLimit,
		Offset:          0,
	}
}
