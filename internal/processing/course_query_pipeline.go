package processing

import (
	"context"
	"errors"
	"sync"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/config"
	"cs2kz_stats/internal/domain/catalog"

	"github.com/rs/zerolog/log"
)

var errEmptyMapResponse = errors.New("empty map response")

// PipelineStats counts what the course pipeline has done since creation
type PipelineStats struct {
	Refetches  int
	Recomputes int
	Discarded  int
}

// CourseQueryPipeline keeps the in-memory course catalog and the visible page
// derived from it in sync with the current query. Scope changes refetch the
// catalog, search text changes are debounced, and every other change
// recomputes the page immediately.
type CourseQueryPipeline struct {
	fetcher  MapsFetcher
	debounce time.Duration

	mu          sync.Mutex
	query       app.CourseQuery
	allCourses  []app.CourseInfo
	courses     []app.CourseInfo
	total       int
	loading     bool
	timer       *time.Timer
	debounceGen uint64
	cancelFetch context.CancelFunc
	generation  uint64
	stats       PipelineStats
}

// NewCourseQueryPipeline creates a pipeline starting from the default query
func NewCourseQueryPipeline(fetcher MapsFetcher, cfg config.PipelineConfig) *CourseQueryPipeline {
	query := app.DefaultCourseQuery()
	if cfg.PageLimit > 0 {
		query.Limit = cfg.PageLimit
	}

	return &CourseQueryPipeline{
		fetcher:    fetcher,
		debounce:   cfg.SearchDebounce,
		query:      query,
		allCourses: []app.CourseInfo{},
		courses:    []app.CourseInfo{},
	}
}

// Refetch reloads the catalog for the current query's mode and leaderboard
// type. A refetch started while another is in flight cancels the older one
// and the older result is discarded. Fetch errors are logged and leave an
// empty catalog behind.
func (p *CourseQueryPipeline) Refetch(ctx context.Context) {
	p.mu.Lock()
	if p.cancelFetch != nil {
		p.cancelFetch()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancelFetch = cancel
	p.generation++
	generation := p.generation
	query := p.query
	p.loading = true
	p.mu.Unlock()

	defer cancel()

	resp, err := p.fetcher.GetMaps(fetchCtx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if generation != p.generation {
		p.stats.Discarded++
		log.Debug().
			Uint64("generation", generation).
			Uint64("current_generation", p.generation).
			Msg("Discarding superseded catalog fetch")
		return
	}

	p.loading = false
	p.cancelFetch = nil
	p.stats.Refetches++

	if err == nil && resp == nil {
		err = errEmptyMapResponse
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("mode", string(query.Mode)).
			Str("leaderboard", string(query.LeaderboardType)).
			Msg("Failed to fetch course catalog")
		p.allCourses = []app.CourseInfo{}
		p.courses = []app.CourseInfo{}
		p.total = 0
		return
	}

	courses := catalog.BuildCatalog(resp.Values, query.Mode, query.LeaderboardType)
	if courses == nil {
		courses = []app.CourseInfo{}
	}

	p.allCourses = courses
	p.courses = courses
	p.total = len(courses)

	log.Info().
		Int("maps", len(resp.Values)).
		Int("courses", len(courses)).
		Str("mode", string(query.Mode)).
		Str("leaderboard", string(query.LeaderboardType)).
		Msg("Loaded course catalog")
}

// SetQuery replaces the current query and reacts to the highest-priority
// field that changed
func (p *CourseQueryPipeline) SetQuery(ctx context.Context, next app.CourseQuery) {
	p.mu.Lock()
	prev := p.query
	p.query = next
	change := catalog.ClassifyQueryChange(prev, next)

	log.Debug().
		Str("change", change.String()).
		Strs("fields", catalog.ChangedFields(prev, next)).
		Msg("Course query updated")

	switch change {
	case catalog.ChangeNone:
		p.mu.Unlock()

	case catalog.ChangeScope:
		p.stopDebounceLocked()
		p.mu.Unlock()

		p.Refetch(ctx)

		p.mu.Lock()
		p.recomputeLocked()
		p.mu.Unlock()

	case catalog.ChangeName:
		p.stopDebounceLocked()
		gen := p.debounceGen
		p.timer = time.AfterFunc(p.debounce, func() { p.debouncedRecompute(gen) })
		p.mu.Unlock()

	default:
		p.recomputeLocked()
		p.mu.Unlock()
	}
}

// Reload installs a query, refetches the catalog and recomputes the page at
// once. Pending debounced recomputes are dropped.
func (p *CourseQueryPipeline) Reload(ctx context.Context, query app.CourseQuery) {
	p.mu.Lock()
	p.stopDebounceLocked()
	p.query = query
	p.mu.Unlock()

	p.Refetch(ctx)

	p.mu.Lock()
	p.recomputeLocked()
	p.mu.Unlock()
}

// debouncedRecompute runs when a search timer fires. A callback whose timer
// was stopped or replaced while it waited for the lock does nothing.
func (p *CourseQueryPipeline) debouncedRecompute(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.debounceGen {
		return
	}
	p.timer = nil
	p.recomputeLocked()
}

func (p *CourseQueryPipeline) stopDebounceLocked() {
	p.debounceGen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// recomputeLocked derives the visible page from the full catalog. The page is
// left untouched while the catalog is empty.
func (p *CourseQueryPipeline) recomputeLocked() {
	if len(p.allCourses) == 0 {
		return
	}

	result := catalog.ApplyQuery(p.allCourses, p.query)
	p.courses = result.Courses
	p.total = result.Matched
	p.stats.Recomputes++

	log.Debug().
		Str("name", p.query.Name).
		Str("tier", string(p.query.Tier)).
		Int("matched", result.Matched).
		Int("page_size", len(result.Courses)).
		Msg("Recomputed course page")
}

// Close stops any pending debounce and cancels an in-flight refetch
func (p *CourseQueryPipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopDebounceLocked()
	if p.cancelFetch != nil {
		p.cancelFetch()
		p.cancelFetch = nil
	}
}

// Courses returns a copy of the visible page
func (p *CourseQueryPipeline) Courses() []app.CourseInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]app.CourseInfo{}, p.courses...)
}

// AllCourses returns a copy of the unfiltered catalog
func (p *CourseQueryPipeline) AllCourses() []app.CourseInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]app.CourseInfo{}, p.allCourses...)
}

// Total returns the number of courses matching the query before pagination
func (p *CourseQueryPipeline) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Loading reports whether a catalog fetch is in flight
func (p *CourseQueryPipeline) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Query returns the current query
func (p *CourseQueryPipeline) Query() app.CourseQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// Stats returns the pipeline counters
func (p *CourseQueryPipeline) Stats() PipelineStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
