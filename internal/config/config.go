package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Default dataset: OR-Library airland1 (10 aircraft).
const (
	DefaultDatasetURL  = "https://www.orlib.bham.ac.uk/files/alp_10_1.txt"
	DefaultDatasetFile = "alp_10_1.txt"
)

// Config is the runtime configuration shared by the binaries.
type Config struct {
	Port           string
	DatabaseURL    string
	DatasetSource  string
	DatasetURL     string
	DatasetFile    string
	DatasetLayout  string
	DatasetName    string
	RedisAddr      string
	ResultCacheTTL time.Duration
}

// Load reads the configuration from the environment. Callers load .env
// beforehand if they want it applied.
func Load() (Config, error) {
	cfg := Config{
		Port:          Get("PORT", "8080"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		DatasetSource: strings.ToLower(Get("DATASET_SOURCE", "remote")),
		DatasetURL:    Get("DATASET_URL", DefaultDatasetURL),
		DatasetFile:   Get("DATASET_FILE", DefaultDatasetFile),
		DatasetLayout: strings.ToLower(Get("DATASET_LAYOUT", "orlib")),
		DatasetName:   Get("DATASET_NAME", "alp_10_1"),
		RedisAddr:     Get("REDIS_ADDR", ""),
	}

	ttl, err := time.ParseDuration(Get("RESULT_CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("config: RESULT_CACHE_TTL: %w", err)
	}
	cfg.ResultCacheTTL = ttl

	switch cfg.DatasetSource {
	case "remote", "file", "postgres":
	default:
		return Config{}, fmt.Errorf("config: DATASET_SOURCE must be remote, file or postgres, got %q", cfg.DatasetSource)
	}

	if cfg.DatasetSource == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, errors.New("config: DATASET_SOURCE=postgres requires DATABASE_URL")
	}

	return cfg, nil
}
