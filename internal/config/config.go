package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Supported values of Config.StoreBackend.
const (
	BackendMongo    = "mongo"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr              string
	StoreBackend      string
	MongoURI          string
	MongoDatabase     string
	SurveyCollection  string
	CounterCollection string
	SQLitePath        string
	PostgresURL       string
	Timeout           time.Duration
	RequestTimeout    time.Duration
	ServerLog         *log.Logger
	AllowedOrigins    []string
}

// fileConfig mirrors the optional TOML file named by SURVEY_CONFIG_FILE.
type fileConfig struct {
	Server struct {
		Addr           string   `toml:"addr"`
		RequestTimeout string   `toml:"request_timeout"`
		AllowedOrigins []string `toml:"allowed_origins"`
	} `toml:"server"`
	Store struct {
		Backend string `toml:"backend"`
	} `toml:"store"`
	Mongo struct {
		URI               string `toml:"uri"`
		Database          string `toml:"database"`
		SurveyCollection  string `toml:"survey_collection"`
		CounterCollection string `toml:"counter_collection"`
		ConnectTimeout    string `toml:"connect_timeout"`
	} `toml:"mongo"`
	SQLite struct {
		Path string `toml:"path"`
	} `toml:"sqlite"`
	Postgres struct {
		URL string `toml:"url"`
	} `toml:"postgres"`
}

var defaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// Load reads the optional TOML file and environment variables and returns a fully populated Config.
// Environment variables take precedence over the file.
func Load() (Config, error) {
	var file fileConfig
	if path := strings.TrimSpace(os.Getenv("SURVEY_CONFIG_FILE")); path != "" {
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	timeout, err := durationOrDefault("MONGO_CONNECT_TIMEOUT", file.Mongo.ConnectTimeout, 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	requestTimeout, err := durationOrDefault("REQUEST_TIMEOUT", file.Server.RequestTimeout, 5*time.Second)
	if err != nil {
		return Config{}, err
	}

	origins := defaultAllowedOrigins
	if len(file.Server.AllowedOrigins) > 0 {
		origins = file.Server.AllowedOrigins
	}

	cfg := Config{
		Addr:              envOrDefault("HTTP_ADDR", firstNonEmpty(file.Server.Addr, ":8080")),
		StoreBackend:      strings.ToLower(envOrDefault("STORE_BACKEND", firstNonEmpty(file.Store.Backend, BackendMongo))),
		MongoURI:          envOrDefault("MONGO_URI", firstNonEmpty(file.Mongo.URI, "mongodb://mongo:27017")),
		MongoDatabase:     envOrDefault("MONGO_DB", firstNonEmpty(file.Mongo.Database, "student-survey")),
		SurveyCollection:  envOrDefault("SURVEY_COLLECTION", firstNonEmpty(file.Mongo.SurveyCollection, "surveys")),
		CounterCollection: envOrDefault("COUNTER_COLLECTION", firstNonEmpty(file.Mongo.CounterCollection, "counters")),
		SQLitePath:        envOrDefault("SQLITE_PATH", firstNonEmpty(file.SQLite.Path, "./data/survey.db")),
		PostgresURL:       envOrDefault("POSTGRES_URL", file.Postgres.URL),
		Timeout:           timeout,
		RequestTimeout:    requestTimeout,
		ServerLog:         log.New(os.Stdout, "[student-survey-api] ", log.LstdFlags|log.Lshortfile),
		AllowedOrigins:    parseList("API_ALLOWED_ORIGINS", origins),
	}

	switch cfg.StoreBackend {
	case BackendMongo, BackendSQLite, BackendMemory:
	case BackendPostgres:
		if cfg.PostgresURL == "" {
			return Config{}, fmt.Errorf("POSTGRES_URL must be configured for the postgres backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown store backend: %q (supported: mongo, sqlite, postgres, memory)", cfg.StoreBackend)
	}

	cfg.ServerLog.Printf("loaded config: addr=%q backend=%q origins=%q", cfg.Addr, cfg.StoreBackend, cfg.AllowedOrigins)

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func durationOrDefault(key, fileValue string, fallback time.Duration) (time.Duration, error) {
	raw := envOrDefault(key, fileValue)
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return parsed, nil
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
