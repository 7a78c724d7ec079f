package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vectorgate/internal/config"
	"github.com/kailas-cloud/vectorgate/internal/embedding"
	embcache "github.com/kailas-cloud/vectorgate/internal/embedding/cache"
	cachevalkey "github.com/kailas-cloud/vectorgate/internal/embedding/cache/valkey"
	openaiemb "github.com/kailas-cloud/vectorgate/internal/embedding/openai"
	"github.com/kailas-cloud/vectorgate/internal/gateway"
	logpkg "github.com/kailas-cloud/vectorgate/internal/logger"
	"github.com/kailas-cloud/vectorgate/internal/metrics"
	"github.com/kailas-cloud/vectorgate/internal/provider"
	"github.com/kailas-cloud/vectorgate/internal/provider/qdrant"
	chiTransport "github.com/kailas-cloud/vectorgate/internal/transport/chi"
	"github.com/kailas-cloud/vectorgate/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting vectorgate gateway",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("providers", providerNames(cfg)),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterProviderMetrics()

	embedder, cacheStore := buildEmbedder(cfg, logger)
	if cacheStore != nil {
		defer cacheStore.Close()
	}

	registry := provider.NewRegistry(qdrant.New(embedder, logger))
	settings := make(map[string]gateway.Settings, len(cfg.Providers))
	for name, p := range cfg.Providers {
		settings[name] = gateway.Settings{
			APIKey:          p.APIKey,
			APIBase:         p.APIBase,
			EmbeddingModel:  p.EmbeddingModel,
			EmbeddingConfig: p.EmbeddingConfig,
		}
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	gw := gateway.New(registry, settings, httpClient, logger)

	server := chiTransport.NewServer(gw, qdrant.ProviderName)

	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.RequestLoggerMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Handle("/metrics", promhttp.Handler())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the embedding chain: OpenAI-compatible -> Cached.
func buildEmbedder(cfg config.Config, logger *zap.Logger) (embedding.Embedder, *cachevalkey.Store) {
	var embedder embedding.Embedder = openaiemb.NewEmbedder(&openaiemb.Config{
		APIKey:   cfg.Embedding.APIKey,
		BaseURL:  cfg.Embedding.BaseURL,
		Provider: cfg.Embedding.Provider,
		Logger:   logger,
	})

	if len(cfg.Cache.Addrs) == 0 {
		return embedder, nil
	}

	store, err := cachevalkey.NewStore(cachevalkey.Config{
		Addrs:    cfg.Cache.Addrs,
		Username: cfg.Cache.Username,
		Password: cfg.Cache.Password,
		TTL:      time.Duration(cfg.Cache.TTLHours) * time.Hour,
	})
	if err != nil {
		logger.Fatal("Failed to create embedding cache store", zap.Error(err))
	}
	logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))

	return embcache.New(embedder, store, metrics.EmbeddingCacheTotal, logger), store
}

func providerNames(cfg config.Config) []string {
	names := make([]string, 0, len(cfg.Providers))
	for name := range cfg.Providers {
		names = append(names, name)
	}
	return names
}
