package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"comfora/core-go/internal/catalog"
	"comfora/core-go/internal/db"
	"comfora/core-go/internal/httpapi"
	"comfora/core-go/internal/metrics"
	"comfora/core-go/internal/quotecache"
)

func main() {
	_ = godotenv.Load()

	addr := envOr("HTTP_ADDR", ":8081")
	logLevel := envOr("LOG_LEVEL", "info")
	databaseURL := envOr("DATABASE_URL", "")
	catalogFile := envOr("CATALOG_FILE", "")
	refreshInterval := envDurationOr("CATALOG_REFRESH_INTERVAL", 30*time.Second)
	quoteTTL := envDurationOr("QUOTE_CACHE_TTL", 5*time.Minute)

	logger := httpapi.NewLogger("core-go", logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	snap := catalog.Defaults()
	if catalogFile != "" {
		s, err := catalog.LoadFile(catalogFile)
		if err != nil {
			logger.Fatal().Err(err).Str("path", catalogFile).Msg("failed to load catalog file")
		}
		snap = s
	}
	store := catalog.NewStore(snap)

	var pool *db.Pool
	if databaseURL != "" {
		p, err := db.Open(ctx, databaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer p.Close()
		pool = p

		if dbSnap, err := pool.Queries().BuildSnapshot(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to load catalog from database; keeping current snapshot")
		} else {
			store.Replace(dbSnap)
		}

		refresher := catalog.NewRefresher(logger, pool.Queries(), store, catalog.RefresherOptions{
			PollInterval: refreshInterval,
		}, m)
		go refresher.Run(ctx)
	}

	cache := quotecache.New(quotecache.NewClientFromEnv(ctx), quoteTTL)

	h := httpapi.NewHandler(logger, pool, store, cache, m)
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Str("catalog_version", store.Current().Version).Msg("core-go listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("shutdown complete")
}

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
