package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"boshenLines/internal/adapters/logger"
	"boshenLines/internal/prediction"
)

// Config holds all application configuration.
type Config struct {
	// Engine
	Strategy         prediction.StrategyKind
	CacheCapacity    int     // Max cached intervals
	QuantizeDecimals int     // Cache key precision
	BatchWorkers     int     // Batch fan-out degree
	NearbyTolerance  float64 // FindNearby tolerance, in percent

	// Market data (cmd/scan_klines)
	APIKey     string
	SecretKey  string
	IsTestnet  bool
	Symbol     string
	Timeframe  string
	KlineLimit int

	// Level store
	DBPath string

	// Logging
	LogLevel logger.LogLevel
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Engine
	strategyStr := strings.ToUpper(getEnv("STRATEGY", string(prediction.StrategyBoshen)))
	cfg.Strategy = prediction.StrategyKind(strategyStr)
	if _, ok := prediction.TableFor(cfg.Strategy); !ok {
		errs = append(errs, fmt.Sprintf("unknown STRATEGY %q (expected %s or %s)",
			strategyStr, prediction.StrategyBoshen, prediction.StrategyFibonacci))
	}

	cfg.CacheCapacity, err = getEnvAsIntRequired("CACHE_CAPACITY", 1024)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid CACHE_CAPACITY: %v", err))
	} else if cfg.CacheCapacity <= 0 {
		errs = append(errs, "CACHE_CAPACITY must be positive")
	}

	cfg.QuantizeDecimals, err = getEnvAsIntRequired("CACHE_QUANTIZE_DECIMALS", 6)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid CACHE_QUANTIZE_DECIMALS: %v", err))
	} else if cfg.QuantizeDecimals <= 0 || cfg.QuantizeDecimals > 9 {
		errs = append(errs, "CACHE_QUANTIZE_DECIMALS must be between 1 and 9")
	}

	cfg.BatchWorkers, err = getEnvAsIntRequired("BATCH_WORKERS", 8)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid BATCH_WORKERS: %v", err))
	} else if cfg.BatchWorkers <= 0 {
		errs = append(errs, "BATCH_WORKERS must be positive")
	}

	cfg.NearbyTolerance, err = getEnvAsFloatRequired("NEARBY_TOLERANCE_PERCENT", 0.5)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid NEARBY_TOLERANCE_PERCENT: %v", err))
	} else if cfg.NearbyTolerance < 0 {
		errs = append(errs, "NEARBY_TOLERANCE_PERCENT cannot be negative")
	}

	// Market data. Keys are optional: kline and ticker endpoints are public.
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", true) // Default to testnet for safety

	cfg.Symbol = getEnv("SYMBOL", "ETHUSDT")
	if cfg.Symbol == "" {
		errs = append(errs, "SYMBOL must be set")
	}
	cfg.Timeframe = getEnv("KLINE_TIMEFRAME", "1h")

	cfg.KlineLimit, err = getEnvAsIntRequired("KLINE_LIMIT", 100)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid KLINE_LIMIT: %v", err))
	} else if cfg.KlineLimit <= 0 || cfg.KlineLimit > 1500 {
		errs = append(errs, "KLINE_LIMIT must be between 1 and 1500")
	}

	// Level store
	cfg.DBPath = getEnv("DB_PATH", "./data/prediction_levels.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Logging
	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
