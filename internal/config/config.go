package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	WebAddr  string
	LogLevel string

	MaxConcurrent int
	MaxUploadMB   int

	SegmentMaxSide     int
	SegmentTolerance   float64
	PlaceholderQuality int
	// MaxPixels caps the declared width×height of cutout uploads.
	MaxPixels int
}

// Load reads a .env file when present, then the process environment.
// Out of range values are clamped rather than rejected.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv is Load without the .env file.
func FromEnv() Config {
	cfg := Config{
		WebAddr:            getEnv("WEB_ADDR", ":8080"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		MaxConcurrent:      getEnvInt("MAX_CONCURRENT", 4),
		MaxUploadMB:        getEnvInt("MAX_UPLOAD_MB", 25),
		SegmentMaxSide:     getEnvInt("SEGMENT_MAX_SIDE", 500),
		SegmentTolerance:   getEnvFloat("SEGMENT_TOLERANCE", 55),
		PlaceholderQuality: getEnvInt("PLACEHOLDER_QUALITY", 88),
		MaxPixels:          getEnvInt("MAX_PIXELS", 40_000_000),
	}

	cfg.MaxConcurrent = max(1, cfg.MaxConcurrent)
	cfg.MaxUploadMB = max(1, cfg.MaxUploadMB)
	cfg.SegmentMaxSide = max(16, cfg.SegmentMaxSide)
	cfg.SegmentTolerance = max(0, min(441, cfg.SegmentTolerance))
	cfg.PlaceholderQuality = max(1, min(100, cfg.PlaceholderQuality))
	cfg.MaxPixels = max(1, cfg.MaxPixels)
	return cfg
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Level maps LogLevel to a slog level; unknown names mean info.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
