package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is one OHLCV sample.
type Candle struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
}

// SeriesMeta carries provider metadata for a fetched series.
type SeriesMeta struct {
	Currency       string `json:"currency"`
	ExchangeName   string `json:"exchange_name"`
	InstrumentType string `json:"instrument_type"`
	Granularity    string `json:"granularity"`
	Range          string `json:"range"`
}

// Series is a chronologically ascending OHLCV series for one symbol,
// produced once per pipeline run.
type Series struct {
	Symbol      string     `json:"symbol"`
	Meta        SeriesMeta `json:"meta"`
	Candles     []Candle   `json:"candles"`
	RetrievedAt time.Time  `json:"retrieved_at"`
}

// Since returns a copy of the series restricted to candles at or after
// the given instant. The backing candles are shared, never mutated.
func (s *Series) Since(from time.Time) *Series {
	idx := len(s.Candles)
	for i, c := range s.Candles {
		if !c.Timestamp.Before(from) {
			idx = i
			break
		}
	}
	trimmed := *s
	trimmed.Candles = s.Candles[idx:]
	return &trimmed
}
