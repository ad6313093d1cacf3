package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

const devJWTSecret = "cosmic-watch-dev-secret-change-in-production"

type Config struct {
	Port        string
	Env         string
	JWTSecret   string
	JWTExpiry   time.Duration
	StoreDriver string
	DataFile    string
	DatabaseDSN string
	CORSOrigins []string
	LogLevel    slog.Level
	LogFormat   string

	Neo NeoConfig
}

// NeoConfig configures the near-Earth object feed client.
type NeoConfig struct {
	BaseURL  string
	APIKey   string
	Source   string // "live" or "fixture"
	CacheTTL time.Duration
	Timeout  time.Duration
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "3001"),
		Env:         getEnv("ENV", "development"),
		JWTSecret:   getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:   getDuration("JWT_EXPIRY", 7*24*time.Hour),
		StoreDriver: getEnv("STORE_DRIVER", "json"),
		DataFile:    getEnv("DATA_FILE", "data.json"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/cosmicwatch?parseTime=true"),
		CORSOrigins: splitList(getEnv("CORS_ORIGIN", "*")),
		LogLevel:    parseLevel(getEnv("LOG_LEVEL", "info")),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Neo:         LoadNeo(),
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

// LoadNeo reads only the feed settings. The CLI uses it without the server config.
func LoadNeo() NeoConfig {
	return NeoConfig{
		BaseURL:  strings.TrimRight(getEnv("NEO_BASE_URL", "https://api.nasa.gov/neo/rest/v1"), "/"),
		APIKey:   getEnv("NEO_API_KEY", "DEMO_KEY"),
		Source:   getEnv("NEO_SOURCE", "live"),
		CacheTTL: getDuration("NEO_CACHE_TTL", 5*time.Minute),
		Timeout:  getDuration("NEO_TIMEOUT", 15*time.Second),
	}
}

// NewLogger builds the process logger from the configured level and format.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimRight(strings.TrimSpace(p), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
