package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"jobmatch/internal/adapters/out/notify"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/jobs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	Settings      services.Settings
	SweepSchedule string
	NotifyChannel string
	LogLevel      string
	LogFormat     string
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Variables already set in the environment win over the file. Blank values
// fall back to defaults; malformed ones are reported together.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	defaults := services.DefaultSettings()
	p := &envParser{}

	cfg := Config{
		HTTPPort:   getEnv("HTTP_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "jobmatch"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),
		Settings: services.Settings{
			Weights: services.ScoreWeights{
				Rating:      p.float("MATCH_WEIGHT_RATING", defaults.Weights.Rating),
				Distance:    p.float("MATCH_WEIGHT_DISTANCE", defaults.Weights.Distance),
				Acceptance:  p.float("MATCH_WEIGHT_ACCEPTANCE", defaults.Weights.Acceptance),
				Punctuality: p.float("MATCH_WEIGHT_PUNCTUALITY", defaults.Weights.Punctuality),
			},
			OfferWindow:          p.duration("OFFER_WINDOW", defaults.OfferWindow),
			CheckInRadiusMeters:  p.float("CHECKIN_RADIUS_METERS", defaults.CheckInRadiusMeters),
			NoResponsePenalty:    p.float("NO_RESPONSE_PENALTY", defaults.NoResponsePenalty),
			RequireWindowOverlap: p.bool("REQUIRE_WINDOW_OVERLAP", defaults.RequireWindowOverlap),
		},
		SweepSchedule: getEnv("SWEEP_SCHEDULE", jobs.DefaultSweepSchedule),
		NotifyChannel: getEnv("NOTIFY_CHANNEL", notify.DefaultChannel),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}

	if err := errors.Join(p.err, cfg.Settings.Validate()); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DSN is accepted by both the gorm postgres driver and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envParser collects parse failures so every bad key is reported at once.
type envParser struct {
	err error
}

func (p *envParser) fail(key, value string, err error) {
	p.err = errors.Join(p.err, fmt.Errorf("%s=%q: %w", key, value, err))
}

func (p *envParser) float(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return value
}

func (p *envParser) duration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return value
}

func (p *envParser) bool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return value
}
