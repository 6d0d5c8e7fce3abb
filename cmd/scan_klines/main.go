// Command scan_klines fetches recent klines for the configured symbol,
// batch-computes prediction lines from each kline's low/high interval,
// and stores the results in the SQLite level store.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"boshenLines/config"
	"boshenLines/internal/adapters/binanceclient"
	"boshenLines/internal/adapters/logger"
	"boshenLines/internal/adapters/sqlite"
	"boshenLines/internal/domain"
	"boshenLines/internal/ports"
	"boshenLines/internal/prediction"
	"boshenLines/internal/prediction/batch"
	"boshenLines/internal/prediction/cache"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	calc, err := prediction.New(prediction.Config{Strategy: cfg.Strategy})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to create calculator")
		os.Exit(1)
	}
	lineCache, err := cache.New(cache.Config{
		Capacity:         cfg.CacheCapacity,
		QuantizeDecimals: cfg.QuantizeDecimals,
		Compute:          calc.CalculateInterval,
		Logger:           appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to create cache")
		os.Exit(1)
	}
	orchestrator, err := batch.New(batch.Config{
		Workers: cfg.BatchWorkers,
		Cache:   lineCache,
		Logger:  appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to create batch orchestrator")
		os.Exit(1)
	}

	var marketData ports.MarketData
	marketData, err = binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize Binance client")
		os.Exit(1)
	}

	var store ports.LevelRepository
	store, err = sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to open level store")
		os.Exit(1)
	}
	defer store.Close()

	klines, err := marketData.GetKlines(ctx, cfg.Symbol, cfg.Timeframe, cfg.KlineLimit)
	if err != nil {
		appLogger.Error(ctx, err, "Failed to fetch klines")
		os.Exit(1)
	}
	appLogger.Info(ctx, "Fetched klines",
		map[string]interface{}{"symbol": cfg.Symbol, "timeframe": cfg.Timeframe, "count": len(klines)})

	intervals := make([]domain.Interval, len(klines))
	for i, k := range klines {
		intervals[i] = k.Interval()
	}

	results := orchestrator.CalculateBatch(ctx, intervals)

	var stored, failed int
	for i, res := range results {
		if res.Err != nil {
			// Flat klines (high == low) and the like: skip, keep going.
			failed++
			if !errors.Is(res.Err, domain.ErrInvalidRange) {
				appLogger.Warn(ctx, "interval not computed",
					map[string]interface{}{"index": i, "error": res.Err.Error()})
			}
			continue
		}
		if _, err := store.SaveLevels(ctx, cfg.Symbol, intervals[i], res.Lines); err != nil {
			appLogger.Error(ctx, err, "Failed to store levels", map[string]interface{}{"index": i})
			failed++
			continue
		}
		stored++
	}

	stats := lineCache.Stats()
	appLogger.Info(ctx, "Scan complete", map[string]interface{}{
		"stored":      stored,
		"failed":      failed,
		"cacheSize":   stats.Size,
		"cacheHits":   stats.HitCount,
		"cacheMisses": stats.MissCount,
	})

	if price, err := marketData.GetTickerPrice(ctx, cfg.Symbol); err == nil && len(results) > 0 {
		last := results[len(results)-1]
		if last.Err == nil {
			nearby := prediction.FindNearby(last.Lines, price, cfg.NearbyTolerance)
			for _, line := range nearby {
				appLogger.Info(ctx, "price near prediction line", map[string]interface{}{
					"line": line.Name, "linePrice": line.Price, "currentPrice": price,
				})
			}
		}
	}
}
