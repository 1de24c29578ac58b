package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edupath-ai/edupath/internal/api"
	"github.com/edupath-ai/edupath/internal/catalog"
	"github.com/edupath-ai/edupath/internal/chat"
	"github.com/edupath-ai/edupath/internal/path"
	"github.com/edupath-ai/edupath/internal/platform/cache"
	"github.com/edupath-ai/edupath/internal/platform/config"
	"github.com/edupath-ai/edupath/internal/platform/database"
	"github.com/edupath-ai/edupath/internal/progress"
	"github.com/edupath-ai/edupath/internal/recommend"
	"github.com/edupath-ai/edupath/internal/stats"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// The catalog is immutable after load; everything downstream shares it.
	cat, err := catalog.Load(cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("loading course dataset: %w", err)
	}

	builder := path.NewBuilder(path.BuilderConfig{
		Catalog:  cat,
		MaxDepth: cfg.Path.MaxDepth,
	})
	engine := recommend.NewEngine(cat)

	tracks, err := recommend.LoadCareerTracks(cfg.Dataset.CareersPath)
	if err != nil {
		return fmt.Errorf("loading career tracks: %w", err)
	}
	careers := recommend.NewCareers(engine, tracks)

	assistant := chat.NewAssistant(chat.AssistantConfig{
		Catalog:     cat,
		Recommender: engine,
		Careers:     careers,
		Builder:     builder,
	})

	// Progress store: PostgreSQL when configured, in-memory otherwise.
	var store progress.Store
	var events progress.EventLogger
	var healthChecks []func(context.Context) error

	if cfg.Database.URL != "" {
		db, err := database.New(ctx, database.Config{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()
		healthChecks = append(healthChecks, db.HealthCheck)

		store, err = progress.NewPostgresStore(ctx, db.Pool)
		if err != nil {
			return fmt.Errorf("initializing progress store: %w", err)
		}
		events, err = progress.NewPostgresEventLogger(ctx, db.Pool)
		if err != nil {
			return fmt.Errorf("initializing event logger: %w", err)
		}
		slog.Info("progress store ready", "backend", "postgres")
	} else {
		store = progress.NewMemoryStore()
		events = progress.NopEventLogger{}
		slog.Info("progress store ready", "backend", "memory")
	}

	var roadmapCache *cache.Cache
	if cfg.Cache.URL != "" {
		roadmapCache, err = cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			return fmt.Errorf("connecting to cache: %w", err)
		}
		defer roadmapCache.Close()
		healthChecks = append(healthChecks, roadmapCache.HealthCheck)
		slog.Info("roadmap cache ready", "ttl_seconds", cfg.Cache.RoadmapTTL)
	}

	server := api.NewServer(api.ServerConfig{
		Catalog:     cat,
		Builder:     builder,
		Recommender: engine,
		Careers:     careers,
		Assistant:   assistant,
		Stats:       stats.Compute(cat),
		Progress:    store,
		Events:      events,
		Cache:       roadmapCache,
		RoadmapTTL:  cfg.Cache.RoadmapTTL,
		Ready:       readiness(healthChecks),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// readiness combines backend health checks into the /readyz probe.
func readiness(checks []func(context.Context) error) func() error {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
