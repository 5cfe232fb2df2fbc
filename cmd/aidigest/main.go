// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the AI digest API server. It loads
// configuration, connects to services, starts the generation scheduler,
// and runs the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aidigest/internal/ai"
	"aidigest/internal/cache"
	"aidigest/internal/config"
	"aidigest/internal/database"
	"aidigest/internal/generator"
	"aidigest/internal/handlers"
	"aidigest/internal/imaging"
	"aidigest/internal/middleware"
	"aidigest/internal/models"
	"aidigest/internal/router"
	"aidigest/internal/scheduler"
	"aidigest/internal/store"
)

// scheduleStore is the full schedule persistence surface, satisfied by both
// the PostgreSQL-backed store and the JSON file store.
type scheduleStore interface {
	Get(ctx context.Context) (models.ScheduleConfig, error)
	Save(ctx context.Context, cfg models.ScheduleConfig) error
	UpdateLastExecuted(ctx context.Context, t time.Time) error
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL and run pending migrations.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Valkey is optional: without it the API serves uncached.
	var respCache handlers.ResponseCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, response caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		respCache = cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)
	}

	// Data stores.
	blogStore := store.NewBlogStore(db)
	agentStore := store.NewAgentStore(db)
	subscriberStore := store.NewSubscriberStore(db)
	pageStore := store.NewPageStore(db)
	logStore := store.NewGenerationLogStore(db)

	// The schedule normally lives in PostgreSQL; SCHEDULE_FILE switches it
	// to a standalone JSON file.
	var schedStore scheduleStore = store.NewScheduleStore(db)
	if cfg.ScheduleFile != "" {
		schedStore = store.NewFileScheduleStore(cfg.ScheduleFile)
		slog.Info("schedule persisted to file", "path", cfg.ScheduleFile)
	}

	// Content providers. Providers without API keys are skipped.
	active := cfg.ActiveProvider
	if active == "" {
		active = "perplexity"
	}
	aiRegistry := ai.NewRegistry(active, map[string]ai.ProviderConfig{
		"perplexity":  {APIKey: cfg.PerplexityAPIKey, Model: cfg.PerplexityModel},
		"huggingface": {APIKey: cfg.HuggingFaceKey, Model: cfg.HuggingFaceModel},
	})
	slog.Info("content providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Generation pipeline.
	images := imaging.New(cfg.ImageBaseURL)
	orch := generator.New(aiRegistry, images, blogStore, generator.WithLogStore(logStore))

	// Background scheduler. Cancelling the context stops future ticks; a
	// run already in flight finishes.
	schedCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	driver := scheduler.NewDriver(schedStore, orch,
		scheduler.WithInterval(cfg.ScheduleInterval),
		// Scheduled inserts must drop cached listings just like admin
		// inserts do, or new articles stay invisible until the TTL expires.
		scheduler.WithNotifier(func(r scheduler.RunResult) {
			if respCache != nil && len(r.Blogs) > 0 {
				respCache.InvalidateBlogs(context.Background())
			}
		}),
	)
	go driver.Run(schedCtx)

	// Handler groups and routing.
	publicHandlers := handlers.NewPublic(blogStore, agentStore, subscriberStore, pageStore, respCache)
	adminHandlers := handlers.NewAdmin(handlers.AdminDeps{
		Schedule:  schedStore,
		Generator: orch,
		Blogs:     blogStore,
		Logs:      logStore,
		Providers: aiRegistry,
		Agents:    agentStore,
		Pages:     pageStore,
		Cache:     respCache,
	})
	adminAuth := middleware.NewAdminAuth(cfg.AdminAPIKey)

	r := router.New(publicHandlers, adminHandlers, adminAuth)

	// WriteTimeout must accommodate generation endpoints that wait on LLM
	// responses, up to a full five-category batch.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, stop the scheduler,
	// then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
