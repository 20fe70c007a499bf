package tier

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tier is a course difficulty level as named by the API
type Tier string

const (
	VeryEasy   Tier = "very-easy"
	Easy       Tier = "easy"
	Medium     Tier = "medium"
	Advanced   Tier = "advanced"
	Hard       Tier = "hard"
	VeryHard   Tier = "very-hard"
	Extreme    Tier = "extreme"
	Death      Tier = "death"
	Unfeasible Tier = "unfeasible"
	Impossible Tier = "impossible"
)

// CompletableCount is the number of tiers a course can be completed in
const CompletableCount = 8

type tierInfo struct {
	ordinal int
	color   string
}

var table = map[Tier]tierInfo{
	VeryEasy:   {1, "#02e319"},
	Easy:       {2, "#4CAF50"},
	Medium:     {3, "#8BC34A"},
	Advanced:   {4, "#d8e302"},
	Hard:       {5, "#FFC107"},
	VeryHard:   {6, "#e34202"},
	Extreme:    {7, "#e31c02"},
	Death:      {8, "#e302dc"},
	Unfeasible: {9, "#a002e3"},
	Impossible: {10, "#d1d1d1"},
}

var ordered = []Tier{VeryEasy, Easy, Medium, Advanced, Hard, VeryHard, Extreme, Death, Unfeasible, Impossible}

var titleCaser = cases.Title(language.English)

// Ordinal returns the 1-based difficulty rank of a tier.
// Unknown tier names report false rather than an error.
func Ordinal(t Tier) (int, bool) {
	info, ok := table[t]
	return info.ordinal, ok
}

// Color returns the display color of a tier as a hex string
func Color(t Tier) (string, bool) {
	info, ok := table[t]
	return info.color, ok
}

// Tiers returns all ten tiers, easiest first
func Tiers() []Tier {
	out := make([]Tier, len(ordered))
	copy(out, ordered)
	return out
}

// CompletableTiers returns the eight tiers very-easy..death, in order.
// Histograms are aligned positionally with this sequence.
func CompletableTiers() []Tier {
	out := make([]Tier, CompletableCount)
	copy(out, ordered[:CompletableCount])
	return out
}

// IsCompletable reports whether t is one of the eight completable tiers
func IsCompletable(t Tier) bool {
	n, ok := Ordinal(t)
	return ok && n <= CompletableCount
}

// DisplayName turns "very-hard" into "Very Hard"
func DisplayName(t Tier) string {
	return titleCaser.String(strings.ReplaceAll(string(t), "-", " "))
}
