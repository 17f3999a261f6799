package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/historical-temps/internal/history/providers"
)

// Geocoder backends.
const (
	GeocoderZippopotam = "zippopotam"
	GeocoderGoogle     = "google"
)

type AppConfig struct {
	ArchiveURL      string `validate:"required,url"`
	ArchiveTimezone string `validate:"required"`

	// Geocoder selects the postal code resolver backend.
	Geocoder        string `validate:"oneof=zippopotam google"`
	GeocoderURL     string `validate:"required,url"`
	GeocoderCountry string `validate:"required,len=2"`
	GoogleAPIKey    string `validate:"required_if=Geocoder google"`

	// Outbound HTTP settings shared by the archive and the resolvers.
	HTTPTimeout    time.Duration `validate:"gt=0"`
	HTTPMaxRetries int           `validate:"gte=0"`

	LogLevel string `validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads configuration from the environment (and .env, when present) with
// sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
	cfg := &AppConfig{}

	cfg.ArchiveURL = getenvDefault("ARCHIVE_URL", providers.DefaultArchiveURL)
	cfg.ArchiveTimezone = getenvDefault("ARCHIVE_TIMEZONE", providers.DefaultArchiveTimezone)

	cfg.Geocoder = strings.ToLower(getenvDefault("GEOCODER", GeocoderZippopotam))
	cfg.GeocoderURL = getenvDefault("GEOCODER_URL", providers.DefaultZippopotamURL)
	cfg.GeocoderCountry = strings.ToLower(getenvDefault("GEOCODER_COUNTRY", "us"))
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout
	cfg.HTTPMaxRetries = getenvInt("HTTP_MAX_RETRIES", 3)

	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "warn"))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Backoff returns the retry policy for outbound requests.
func (c *AppConfig) Backoff() providers.BackoffConfig {
	b := providers.DefaultBackoff
	b.MaxRetries = c.HTTPMaxRetries
	return b
}

// SlogLevel maps LogLevel onto slog levels.
func (c *AppConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
