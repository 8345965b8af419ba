// Package config provides configuration for the recommendation service.
// Settings are loaded from the environment (optionally via a .env file) and
// validated before the service starts.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Scorer kinds selectable via SCORER_KIND.
const (
	ScorerLocal  = "local"  // in-process Jaccard scoring
	ScorerRemote = "remote" // sentence-embedding inference service
)

// Catalog backends selectable via CATALOG_BACKEND.
const (
	CatalogMemory   = "memory"
	CatalogPostgres = "postgres"
)

// Settings contains all configuration options for the recommendation service.
type Settings struct {
	ServerPort     string `json:"server_port"`
	CatalogBackend string `json:"catalog_backend"` // "memory" or "postgres"
	DatabaseURL    string `json:"database_url"`    // required for the postgres backend
	RedisURL       string `json:"redis_url"`       // optional offer-catalog cache
	DataDir        string `json:"data_dir"`        // snapshot directory for the memory backend

	CatalogCacheTTL time.Duration `json:"catalog_cache_ttl"`
	RefreshInterval time.Duration `json:"refresh_interval"` // periodic catalog refresh

	ScorerKind string `json:"scorer_kind"` // "local" or "remote"

	// Remote-inference settings. The acceptance threshold defaults to 1.0 to
	// match the shipped behavior; typical embedding similarities live in
	// [-1, 1], so this default is suspected to be miscalibrated and is kept
	// configurable rather than silently rescaled.
	InferenceURL       string        `json:"inference_url"`
	InferenceToken     string        `json:"-"`
	InferenceThreshold float64       `json:"inference_threshold"`
	InferenceTimeout   time.Duration `json:"inference_timeout"`
	MaxInFlight        int           `json:"max_in_flight"` // cap on concurrent inference requests
	RequestsPerSecond  float64       `json:"requests_per_second"`

	LogLevel string `json:"log_level"`
}

// Load reads settings from the environment. A .env file is honored when
// present so local development matches deployed configuration.
func Load() *Settings {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	settings := &Settings{
		ServerPort:         os.Getenv("SERVER_PORT"),
		CatalogBackend:     os.Getenv("CATALOG_BACKEND"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		DataDir:            os.Getenv("DATA_DIR"),
		ScorerKind:         os.Getenv("SCORER_KIND"),
		InferenceURL:       os.Getenv("INFERENCE_URL"),
		InferenceToken:     os.Getenv("INFERENCE_TOKEN"),
		InferenceThreshold: envFloat("INFERENCE_THRESHOLD", 0),
		CatalogCacheTTL:    envDuration("CATALOG_CACHE_TTL", 0),
		RefreshInterval:    envDuration("REFRESH_INTERVAL", 0),
		InferenceTimeout:   envDuration("INFERENCE_TIMEOUT", 0),
		MaxInFlight:        envInt("MAX_IN_FLIGHT", 0),
		RequestsPerSecond:  envFloat("REQUESTS_PER_SECOND", 0),
		LogLevel:           os.Getenv("LOG_LEVEL"),
	}

	settings.ApplyDefaults()
	return settings
}

// ApplyDefaults applies default values to unset settings.
func (s *Settings) ApplyDefaults() {
	if s.ServerPort == "" {
		s.ServerPort = "8080"
	}
	if s.CatalogBackend == "" {
		s.CatalogBackend = CatalogMemory
	}
	if s.DataDir == "" {
		s.DataDir = "./catalog_data"
	}
	if s.ScorerKind == "" {
		s.ScorerKind = ScorerLocal
	}
	if s.CatalogCacheTTL == 0 {
		s.CatalogCacheTTL = 5 * time.Minute
	}
	if s.RefreshInterval == 0 {
		s.RefreshInterval = 15 * time.Minute
	}
	if s.InferenceThreshold == 0 {
		// Shipped default, pending product clarification.
		s.InferenceThreshold = 1.0
	}
	if s.InferenceTimeout == 0 {
		s.InferenceTimeout = 10 * time.Second
	}
	if s.MaxInFlight == 0 {
		s.MaxInFlight = 8
	}
	if s.RequestsPerSecond == 0 {
		s.RequestsPerSecond = 10
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
}

// Validate checks the settings for inconsistencies and returns a list of
// human-readable problems. An empty list means the settings are usable.
func (s *Settings) Validate() []string {
	var problems []string

	switch s.CatalogBackend {
	case CatalogMemory:
	case CatalogPostgres:
		if s.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when CATALOG_BACKEND is 'postgres'")
		}
	default:
		problems = append(problems, "CATALOG_BACKEND must be 'memory' or 'postgres', got '"+s.CatalogBackend+"'")
	}

	switch s.ScorerKind {
	case ScorerLocal:
	case ScorerRemote:
		if s.InferenceURL == "" {
			problems = append(problems, "INFERENCE_URL is required when SCORER_KIND is 'remote'")
		}
	default:
		problems = append(problems, "SCORER_KIND must be 'local' or 'remote', got '"+s.ScorerKind+"'")
	}

	if s.MaxInFlight < 1 {
		problems = append(problems, "MAX_IN_FLIGHT must be at least 1")
	}
	if s.RequestsPerSecond <= 0 {
		problems = append(problems, "REQUESTS_PER_SECOND must be positive")
	}
	if s.InferenceThreshold < 0 {
		problems = append(problems, "INFERENCE_THRESHOLD must not be negative")
	}

	return problems
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default", key, raw)
		return fallback
	}
	return val
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default", key, raw)
		return fallback
	}
	return val
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default", key, raw)
		return fallback
	}
	return val
}
