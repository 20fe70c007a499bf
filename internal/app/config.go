package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"cs2kz_stats/internal/config"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultAPIURL is the public CS2KZ API
const DefaultAPIURL = "https://api.cs2kz.org"

// Config holds application configuration
type Config struct {
	APIBaseURL      string
	SpreadsheetID   string
	CredentialsFile string
	Mode            Mode
	LeaderboardType LeaderboardType
	UpdateInterval  time.Duration
	Tuning          config.TuningConfig
}

// ExportEnabled reports whether results should be written to a spreadsheet
func (c *Config) ExportEnabled() bool {
	return c.SpreadsheetID != ""
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	level, known := parseLogLevel(levelStr)
	zerolog.SetGlobalLevel(level)
	if !known {
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// parseLogLevel maps a LOGLEVEL value to a zerolog level.
// An empty value picks a default based on ENV; unknown values fall back to info.
func parseLogLevel(levelStr string) (zerolog.Level, bool) {
	switch levelStr {
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "fatal":
		return zerolog.FatalLevel, true
	case "panic":
		return zerolog.PanicLevel, true
	case "disabled":
		return zerolog.Disabled, true
	case "":
		if os.Getenv("ENV") == "production" {
			return zerolog.WarnLevel, true
		}
		return zerolog.InfoLevel, true
	default:
		return zerolog.InfoLevel, false
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	apiURL := strings.TrimRight(os.Getenv("KZ_API_URL"), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	credentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = "credentials.json"
	}

	mode := Mode(strings.ToLower(os.Getenv("KZ_MODE")))
	switch mode {
	case "":
		mode = ModeClassic
	case ModeClassic, ModeVanilla:
	default:
		return nil, fmt.Errorf("KZ_MODE must be %q or %q, got %q", ModeClassic, ModeVanilla, mode)
	}

	leaderboard := LeaderboardType(strings.ToLower(os.Getenv("KZ_LEADERBOARD")))
	if leaderboard == "" {
		leaderboard = LeaderboardOverall
	}
	if !leaderboard.Valid() {
		return nil, fmt.Errorf("KZ_LEADERBOARD must be %q or %q, got %q", LeaderboardOverall, LeaderboardPro, leaderboard)
	}

	return &Config{
		APIBaseURL:      apiURL,
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CredentialsFile: credentialsFile,
		Mode:            mode,
		LeaderboardType: leaderboard,
		Tuning:          config.DefaultTuningConfig,
	}, nil
}
