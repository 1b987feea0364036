package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourceMemory = "memory"
	SourceMongo  = "mongo"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env             string
	HTTPAddr        string
	LogLevel        string
	BookingSource   string
	MongoURI        string
	MongoDB         string
	MongoCollection string
	MongoTimeout    time.Duration
	FixturesPath    string
	WindowSize      int
	VisibleCap      int
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		BookingSource:   strings.ToLower(getEnv("BOOKING_SOURCE", SourceMemory)),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         getEnv("MONGO_DB", "rentals"),
		MongoCollection: getEnv("MONGO_COLLECTION", "bookings"),
		FixturesPath:    getEnv("BOOKINGS_FIXTURES", "fixtures/bookings.json"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.MongoTimeout, err = parseDurationEnv("MONGO_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WindowSize, err = parseIntEnv("CALENDAR_WINDOW_SIZE", 1); err != nil {
		return Config{}, err
	}
	if cfg.VisibleCap, err = parseIntEnv("CALENDAR_VISIBLE_CAP", 3); err != nil {
		return Config{}, err
	}

	if cfg.WindowSize < 1 || cfg.WindowSize > 3 {
		return Config{}, fmt.Errorf("CALENDAR_WINDOW_SIZE must be between 1 and 3, got %d", cfg.WindowSize)
	}
	if cfg.VisibleCap < 0 {
		return Config{}, fmt.Errorf("CALENDAR_VISIBLE_CAP must not be negative, got %d", cfg.VisibleCap)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.BookingSource {
	case SourceMemory:
	case SourceMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when BOOKING_SOURCE=mongo")
		}
	default:
		return Config{}, fmt.Errorf("invalid BOOKING_SOURCE %q", cfg.BookingSource)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
