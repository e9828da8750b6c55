package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	SourcesPath string
	CachePath   string
	LookupPath  string
	OutputPath  string
	XLSXPath    string

	DBPath       string
	StoreEnabled bool

	WikiBaseURL     string
	WikiIndexPage   string
	FetchTimeoutMs  int
	FetchRatePerSec float64
	UserAgent       string

	LogLevel string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		SourcesPath: getEnv("SOURCES_PATH", "osrs-urls.txt"),
		CachePath:   getEnv("CACHE_PATH", "osrs-items-cleaned.json"),
		LookupPath:  getEnv("LOOKUP_PATH", "items-search.json"),
		OutputPath:  getEnv("OUTPUT_PATH", "osrs-items.json"),
		XLSXPath:    getEnv("XLSX_PATH", "osrs-items.xlsx"),

		DBPath:       getEnv("DB_PATH", "spawns.db"),
		StoreEnabled: getEnvBool("STORE_ENABLED", false),

		WikiBaseURL:     getEnv("WIKI_BASE_URL", "https://oldschool.runescape.wiki"),
		WikiIndexPage:   getEnv("WIKI_INDEX_PAGE", "Item_spawn"),
		FetchTimeoutMs:  getEnvInt("FETCH_TIMEOUT_MS", 0),
		FetchRatePerSec: getEnvFloat("FETCH_RATE_PER_SEC", 0),
		UserAgent:       getEnv("USER_AGENT", "spawnscraper/1.0"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.FetchTimeoutMs < 0 {
		return Config{}, fmt.Errorf("FETCH_TIMEOUT_MS must not be negative: %d", cfg.FetchTimeoutMs)
	}
	if cfg.FetchRatePerSec < 0 {
		return Config{}, fmt.Errorf("FETCH_RATE_PER_SEC must not be negative: %g", cfg.FetchRatePerSec)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto slog levels; unknown values fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
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
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
