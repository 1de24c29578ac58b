// Package config loads application configuration from environment variables.
// All variables use the EDUPATH_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Path     PathConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// DatasetConfig holds course-dataset settings.
type DatasetConfig struct {
	Path        string
	CareersPath string // optional YAML career-track overrides
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL runs the
// progress store in memory.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis connection settings. An empty URL disables roadmap
// memoization.
type CacheConfig struct {
	URL        string
	RoadmapTTL int // seconds
}

// PathConfig holds path-builder tuning.
type PathConfig struct {
	MaxDepth int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with EDUPATH_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("EDUPATH_SERVER_PORT", 8080),
			Host: envStr("EDUPATH_SERVER_HOST", "0.0.0.0"),
		},
		Dataset: DatasetConfig{
			Path:        envStr("EDUPATH_DATASET_PATH", "./data/courses.csv"),
			CareersPath: envStr("EDUPATH_CAREERS_PATH", ""),
		},
		Database: DatabaseConfig{
			URL:      envStr("EDUPATH_DATABASE_URL", ""),
			MaxConns: envInt("EDUPATH_DATABASE_MAX_CONNS", 25),
			MinConns: envInt("EDUPATH_DATABASE_MIN_CONNS", 5),
		},
		Cache: CacheConfig{
			URL:        envStr("EDUPATH_CACHE_URL", ""),
			RoadmapTTL: envInt("EDUPATH_CACHE_ROADMAP_TTL", 300),
		},
		Path: PathConfig{
			MaxDepth: envInt("EDUPATH_PATH_MAX_DEPTH", 20),
		},
		Log: LogConfig{
			Level:  envStr("EDUPATH_LOG_LEVEL", "info"),
			Format: envStr("EDUPATH_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that required configuration is present and sane.
func (c *Config) Validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("EDUPATH_DATASET_PATH is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("EDUPATH_SERVER_PORT must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Path.MaxDepth <= 0 {
		return fmt.Errorf("EDUPATH_PATH_MAX_DEPTH must be positive, got %d", c.Path.MaxDepth)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("EDUPATH_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
