package domain

import "time"

// Kline represents a single candlestick data point as delivered by a
// market-data source. The prediction engine reads only the Low/High
// pair; the remaining fields belong to the charting/selection layer.
type Kline struct {
	OpenTime  time.Time // Start time of the interval
	CloseTime time.Time // End time of the interval
	Symbol    string    // Trading symbol
	Timeframe string    // Kline timeframe (e.g., "1m", "1h")
	Open      float64   // Opening price
	High      float64   // Highest price
	Low       float64   // Lowest price
	Close     float64   // Closing price
	Volume    float64   // Trading volume
	IsFinal   bool      // Whether this kline is the final one for the timeframe
}

// Interval extracts the low/high pair the prediction engine consumes.
func (k *Kline) Interval() Interval {
	return Interval{Low: k.Low, High: k.High}
}
