package config_test

import (
	"testing"

	"github.com/edupath-ai/edupath/internal/platform/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Dataset.Path != "./data/courses.csv" {
		t.Errorf("Dataset.Path = %q", cfg.Dataset.Path)
	}
	if cfg.Path.MaxDepth != 20 {
		t.Errorf("Path.MaxDepth = %d, want 20", cfg.Path.MaxDepth)
	}
	if cfg.Database.URL != "" {
		t.Errorf("Database.URL = %q, want empty (memory store)", cfg.Database.URL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EDUPATH_SERVER_PORT", "9090")
	t.Setenv("EDUPATH_DATASET_PATH", "/data/courses.xlsx")
	t.Setenv("EDUPATH_PATH_MAX_DEPTH", "10")
	t.Setenv("EDUPATH_LOG_FORMAT", "text")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Dataset.Path != "/data/courses.xlsx" {
		t.Errorf("Dataset.Path = %q", cfg.Dataset.Path)
	}
	if cfg.Path.MaxDepth != 10 {
		t.Errorf("Path.MaxDepth = %d, want 10", cfg.Path.MaxDepth)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("EDUPATH_SERVER_PORT", "not-a-number")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want fallback 8080", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults are valid", func(*config.Config) {}, false},
		{"missing dataset", func(c *config.Config) { c.Dataset.Path = "" }, true},
		{"bad port", func(c *config.Config) { c.Server.Port = -1 }, true},
		{"bad max depth", func(c *config.Config) { c.Path.MaxDepth = 0 }, true},
		{"bad log format", func(c *config.Config) { c.Log.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
