package stats

import "cs2kz_stats/internal/app"

// Facet selects which ranking columns of a record are meaningful
type Facet int

const (
	// FacetPro uses pro_rank/pro_points
	FacetPro Facet = iota
	// FacetOverall uses nub_rank/nub_points
	FacetOverall
)

// String returns the leaderboard name of the facet
func (f Facet) String() string {
	if f == FacetOverall {
		return string(app.LeaderboardOverall)
	}
	return string(app.LeaderboardPro)
}

// PointsBuckets is the number of 1000-point buckets in a points histogram
const PointsBuckets = 10

const pointsBucketWidth = 1000.0

// Distribution holds rank and points statistics of a course's completions
type Distribution struct {
	WRs        int
	Top20      int
	Top50      int
	Top100     int
	PointsDist [PointsBuckets]int
}

// DetectFacet picks the overall facet if any run used teleports, pro otherwise.
// Record sets from the API are not split by teleport scope, so the facet has
// to be inferred from the runs themselves.
func DetectFacet(records []app.Record) Facet {
	for _, record := range records {
		if record.Teleports > 0 {
			return FacetOverall
		}
	}
	return FacetPro
}

// CalculateDistribution computes rank and points statistics for a record set
// scoped to one course and mode, inferring the facet from the records.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func CalculateDistribution(records []app.Record) Distribution {
	return CalculateDistributionForFacet(records, DetectFacet(records))
}

// CalculateDistributionForFacet computes the statistics using the given facet.
// In the overall facet runs without a nub rank are ignored entirely. Nil ranks
// count towards no rank bucket and nil points towards no points bucket; other
// values are not validated.
func CalculateDistributionForFacet(records []app.Record, facet Facet) Distribution {
	var dist Distribution

	for _, record := range records {
		rank, points := facetValues(record, facet)
		if facet == FacetOverall && rank == nil {
			continue
		}

		if rank != nil {
			dist = countRank(dist, *rank)
		}
		if points != nil {
			if bucket, ok := PointsBucket(*points); ok {
				dist.PointsDist[bucket]++
			}
		}
	}

	return dist
}

// PointsBucket returns the histogram bucket of a points value. Bucket i holds
// i*1000 < points <= (i+1)*1000, so 0 and anything above 10000 have no bucket.
func PointsBucket(points float64) (int, bool) {
	for i := 0; i < PointsBuckets; i++ {
		lower := float64(i) * pointsBucketWidth
		upper := lower + pointsBucketWidth
		if points > lower && points <= upper {
			return i, true
		}
	}
	return 0, false
}

func facetValues(record app.Record, facet Facet) (*int, *float64) {
	if facet == FacetOverall {
		return record.NubRank, record.NubPoints
	}
	return record.ProRank, record.ProPoints
}

func countRank(dist Distribution, rank int) Distribution {
	if rank == 1 {
		dist.WRs++
	}
	if rank <= 20 {
		dist.Top20++
	}
	if rank <= 50 {
		dist.Top50++
	}
	if rank <= 100 {
		dist.Top100++
	}
	return dist
}
