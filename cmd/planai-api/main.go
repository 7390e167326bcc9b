// README: Entry point; loads config, wires the planning service, starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"planai/internal/ai"
	"planai/internal/config"
	httptransport "planai/internal/http"
	"planai/internal/infra"
	"planai/internal/maps"
	"planai/internal/modules/genlog"
	"planai/internal/modules/itinerary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("planai api stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	provider, err := ai.NewProvider(ctx, ai.Settings{
		Name:        cfg.AI.Provider,
		APIKey:      cfg.AI.APIKey(),
		Model:       cfg.AI.Model,
		BaseURL:     cfg.AI.BaseURL,
		Temperature: cfg.AI.Temperature,
	})
	if err != nil {
		return err
	}
	defer provider.Close()

	opts := itinerary.Options{
		Provider: cfg.AI.Provider,
		Strict:   cfg.AI.Strict,
		Logger:   logger,
	}

	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer dbPool.Close()
		opts.Recorder = genlog.NewService(genlog.NewStore(dbPool))
		logger.Info("generation log enabled")
	}

	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		opts.Cache = itinerary.NewRedisCache(redisClient, cfg.Cache.TTL)
		logger.Info("itinerary cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	if cfg.Maps.APIKey != "" {
		geocoder, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			return err
		}
		opts.Geocoder = geocoder
		logger.Info("accommodation geocoding enabled")
	}

	gen := ai.WithRetry(provider, cfg.AI.Provider, cfg.AI.MaxRetries, logger)
	planSvc := itinerary.NewService(gen, opts)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:           planSvc,
		GenerationTimeout: cfg.AI.Timeout,
		CORSOrigins:       cfg.CORS.Origins,
		CORSPatterns:      cfg.CORS.Patterns,
		Logger:            logger,
	})

	logger.Info("planai api starting",
		zap.String("provider", cfg.AI.Provider),
		zap.Bool("strict", cfg.AI.Strict),
		zap.Int("max_retries", cfg.AI.MaxRetries),
	)
	return httptransport.NewServer(cfg.HTTP.Addr, router, cfg.AI.Timeout, logger).Run(ctx)
}
