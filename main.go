package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cs2kz_stats/internal/app"
	"cs2kz_stats/internal/domain/tier"
	"cs2kz_stats/internal/kz"
	"cs2kz_stats/internal/processing"
	"cs2kz_stats/internal/report"
	"cs2kz_stats/internal/sheets"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	interval := flag.Duration("interval", 5*time.Minute, "Interval between refreshes (e.g., 5m, 10m)")
	runOnce := flag.Bool("once", false, "Run once and exit (don't start scheduler)")
	name := flag.String("name", "", "Only list courses whose map or course name contains this text")
	tierFilter := flag.String("tier", "", "Only list courses of this tier (e.g., hard, very-hard)")
	sortBy := flag.String("sort", string(app.SortByMap), "Sort key: map, tier or created_on")
	sortOrder := flag.String("order", string(app.SortAscending), "Sort order: ascending or descending")
	offset := flag.Int("offset", 0, "Number of matching courses to skip")
	limit := flag.Int("limit", 0, "Page size (defaults to the configured page limit)")
	mapName := flag.String("map", "", "Map to build a course report for")
	courseName := flag.String("course", "", "Course to build a report for (requires -map)")
	playerList := flag.String("player", "", "Comma-separated SteamIDs or names to build player reports for")
	flag.Parse()

	log.Info().
		Dur("interval", *interval).
		Bool("run_once", *runOnce).
		Msg("Starting CS2KZ stats application")

	// Load configuration
	config, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := config.Tuning.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid tuning configuration")
	}

	// Set the update interval from command line flag
	config.UpdateInterval = *interval

	query, err := buildQuery(config, *name, *tierFilter, *sortBy, *sortOrder, *offset, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid catalog query")
	}
	scopes, err := buildScopes(config, *mapName, *courseName)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid course report selection")
	}

	players := splitPlayers(*playerList)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize clients
	kzClient := kz.NewClient(config.APIBaseURL, config.Tuning.API)
	cachedClient := processing.NewCachedKZClient(
		kzClient,
		kz.NewRecordsFetcher(kzClient, config.Tuning.API.RecordsPageLimit),
		processing.NewAPICallTracker(),
		config.Tuning.Cache,
	)

	var reportWriter processing.ReportWriterInterface
	if config.ExportEnabled() {
		sheetsClient, err := sheets.NewClient(ctx, config.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create sheets client")
		}
		reportWriter = sheets.NewReportWriter(sheetsClient)
	} else {
		log.Info().Msg("SPREADSHEET_ID not set; spreadsheet export disabled")
	}

	statsProcessor := processing.NewStatsProcessorWithClient(cachedClient, reportWriter, config)
	renderer := report.NewRenderer()

	// Define the main processing function
	processCycle := func() {
		log.Debug().Msg("Starting stats processing cycle")

		// Reset API call counters at the start of each cycle
		kzClient.ResetAPICallCount()
		cachedClient.BeginCycle()

		result, err := statsProcessor.RunCycle(ctx, query, scopes, players)
		if err != nil {
			log.Error().Err(err).Msg("Failed to run stats cycle")
		}
		if result != nil {
			fmt.Println(renderer.RenderCatalogPage(result.Courses, result.Query, result.Total))
			fmt.Println(renderer.RenderAvailability("Courses by tier", result.Availability))
			for _, courseReport := range result.Reports {
				fmt.Println(renderer.RenderCourseReport(courseReport))
			}
			for _, playerReport := range result.PlayerReports {
				fmt.Println(renderer.RenderPlayerReport(playerReport))
			}
		}

		log.Info().
			Int64("api_calls", kzClient.GetAPICallCount()).
			Msg("Completed stats processing cycle")
		cachedClient.LogCycleSummary(len(scopes) + len(players))
	}

	// Run initial processing
	log.Info().Msg("Running initial stats processing")
	processCycle()

	// Exit if run-once flag is set
	if *runOnce {
		log.Info().Msg("Run-once mode: exiting after initial processing")
		return
	}

	// Start scheduled processing
	log.Info().
		Dur("interval", *interval).
		Msg("Starting scheduled stats processing")

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Shutting down")
			return
		case <-ticker.C:
			processCycle()
		}
	}
}

// buildQuery turns the command line flags into a catalog query
func buildQuery(config *app.Config, name, tierFilter, sortBy, sortOrder string, offset, limit int) (app.CourseQuery, error) {
	query := app.DefaultCourseQuery()
	query.Name = name
	query.Mode = config.Mode
	query.LeaderboardType = config.LeaderboardType
	query.Offset = offset
	query.Limit = config.Tuning.Pipeline.PageLimit
	if limit > 0 {
		query.Limit = limit
	}
	if offset < 0 {
		return query, fmt.Errorf("offset must not be negative, got %d", offset)
	}

	if tierFilter != "" {
		t := tier.Tier(strings.ToLower(tierFilter))
		if _, ok := tier.Ordinal(t); !ok {
			return query, fmt.Errorf("unknown tier %q", tierFilter)
		}
		query.Tier = t
	}

	switch s := app.SortBy(sortBy); s {
	case app.SortByMap, app.SortByTier, app.SortByCreatedOn:
		query.SortBy = s
	default:
		return query, fmt.Errorf("unknown sort key %q", sortBy)
	}

	switch o := app.SortOrder(sortOrder); o {
	case app.SortAscending, app.SortDescending:
		query.SortOrder = o
	default:
		return query, fmt.Errorf("unknown sort order %q", sortOrder)
	}

	return query, nil
}

// buildScopes returns the course report scopes selected on the command line
func buildScopes(config *app.Config, mapName, courseName string) ([]app.RecordScope, error) {
	if mapName == "" && courseName == "" {
		return nil, nil
	}
	if mapName == "" || courseName == "" {
		return nil, fmt.Errorf("-map and -course must be given together")
	}

	return []app.RecordScope{{
		Map:             mapName,
		Course:          courseName,
		Mode:            config.Mode,
		LeaderboardType: config.LeaderboardType,
	}}, nil
}

// splitPlayers parses the -player flag, dropping empty entries
func splitPlayers(list string) []string {
	var players []string
	for _, player := range strings.Split(list, ",") {
		if player = strings.TrimSpace(player); player != "" {
			players = append(players, player)
		}
	}
	return players
}
