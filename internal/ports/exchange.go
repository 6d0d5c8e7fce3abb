package ports

import (
	"context"

	"boshenLines/internal/domain"
)

// MarketData supplies chart klines and spot prices to the commands that
// feed intervals into the prediction engine. The engine itself never
// talks to an exchange.
type MarketData interface {
	// GetKlines retrieves up to limit historical klines for the symbol/timeframe.
	GetKlines(ctx context.Context, symbol, timeframe string, limit int) ([]*domain.Kline, error)

	// GetTickerPrice retrieves the latest price for the symbol.
	GetTickerPrice(ctx context.Context, symbol string) (float64, error)
}
