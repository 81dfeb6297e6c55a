// Package main provides the shipment engine API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/cache"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/catalog"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/classify"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/config"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/embedding"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/observability"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/planner"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "shipment-api",
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("embedding_provider", cfg.Embedding.Provider).
		Str("cache", cfg.Cache.Driver).
		Msg("Starting Shipment Engine API")

	engine, pl, err := buildServices(logger, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Service initialization failed")
	}

	router := NewRouter(logger, engine, pl, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}

// buildServices wires the embedding provider, catalog, decision cache,
// classification engine and planner from config. The catalog is embedded
// once here; every request afterwards only reads it.
func buildServices(logger *observability.Logger, cfg *config.Config) (*classify.Engine, *planner.Planner, error) {
	var embedder embedding.Embedder
	if cfg.Embedding.Provider == "mock" {
		embedder = embedding.NewMockClient(cfg.Embedding.Dimension)
	} else {
		client, err := embedding.NewClient(embedding.Config{
			APIKey:    cfg.Embedding.APIKey,
			Model:     cfg.Embedding.Model,
			BaseURL:   cfg.Embedding.BaseURL,
			Dimension: cfg.Embedding.Dimension,
			Timeout:   cfg.Embedding.Timeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create embedding client: %w", err)
		}
		embedder = client
	}

	entries := catalog.DefaultEntries()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.LoadEntries(cfg.Catalog.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load catalog: %w", err)
		}
		entries = loaded
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Embedding.Timeout)
	defer cancel()

	cat, err := catalog.New(ctx, embedder, entries)
	if err != nil {
		return nil, nil, fmt.Errorf("build catalog: %w", err)
	}
	logger.Info().Int("entries", cat.Size()).Str("model", embedder.Model()).Msg("Reference catalog embedded")

	var decisionCache cache.Client
	if cfg.Classification.CacheDecisions {
		switch cfg.Cache.Driver {
		case "redis":
			decisionCache, err = cache.NewRedisClient(cache.RedisConfig{
				Addr:     cfg.Cache.Redis.Addr,
				Password: cfg.Cache.Redis.Password,
				DB:       cfg.Cache.Redis.DB,
				PoolSize: cfg.Cache.Redis.PoolSize,
			})
			if err != nil {
				return nil, nil, fmt.Errorf("connect decision cache: %w", err)
			}
		default:
			decisionCache = cache.NewMemoryClient(cfg.Cache.MaxEntries)
		}
	}

	engine := classify.NewEngine(logger, embedder, cat, classify.EngineConfig{
		ReviewThreshold: cfg.Classification.ReviewThreshold,
		Cache:           decisionCache,
		CacheTTL:        cfg.Cache.TTL,
	})

	return engine, planner.New(logger, engine), nil
}
