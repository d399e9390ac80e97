package dataflows

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradevisor/internal/config"
	"tradevisor/internal/models"
)

var (
	// ErrUnsupportedKind marks asset kinds the provider has no endpoint
	// for. Distinct from ErrProvider so callers never mistake a
	// categorical gap for a transient outage.
	ErrUnsupportedKind = errors.New("unsupported asset kind")

	// ErrProvider marks provider-side failures: transport errors,
	// non-200 statuses, and malformed payloads.
	ErrProvider = errors.New("market data provider error")

	// ErrInvalidTimeFrame marks period tokens outside the fixed set. An
	// input failure, never sent to the provider.
	ErrInvalidTimeFrame = errors.New("invalid time frame token")
)

// YahooClient fetches OHLCV series from the Yahoo Finance chart API.
type YahooClient struct {
	client *resty.Client
	retry  *RetryConfig
	logger *zap.Logger
}

// NewYahooClient creates a client against cfg.YahooBaseURL.
func NewYahooClient(cfg *config.Config, logger *zap.Logger) *YahooClient {
	client := resty.New()
	client.SetBaseURL(cfg.YahooBaseURL)
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	return &YahooClient{
		client: client,
		retry:  DefaultRetryConfig(),
		logger: logger,
	}
}

// chart API payload; OHLCV arrays carry nulls for halted periods.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency        string `json:"currency"`
				Symbol          string `json:"symbol"`
				ExchangeName    string `json:"exchangeName"`
				InstrumentType  string `json:"instrumentType"`
				DataGranularity string `json:"dataGranularity"`
				Range           string `json:"range"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchSeries requests the OHLCV series for (asset, timeFrame). Only
// stock assets are supported; other kinds fail with ErrUnsupportedKind
// before any network call.
func (y *YahooClient) FetchSeries(ctx context.Context, asset models.Asset, tf models.TimeFrame) (*models.Series, error) {
	if asset.Kind != models.AssetStock {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, asset.Kind)
	}
	if !tf.Range.Valid() {
		return nil, fmt.Errorf("%w: range %q", ErrInvalidTimeFrame, string(tf.Range))
	}
	if !tf.Interval.Valid() {
		return nil, fmt.Errorf("%w: interval %q", ErrInvalidTimeFrame, string(tf.Interval))
	}

	y.logger.Info("fetching market data",
		zap.String("symbol", asset.Symbol),
		zap.String("range", string(tf.Range)),
		zap.String("interval", string(tf.Interval)))

	var payload chartResponse
	err := WithRetry(y.retry, func() error {
		resp, err := y.client.R().
			SetContext(ctx).
			SetPathParam("symbol", asset.Symbol).
			SetQueryParams(map[string]string{
				"range":          string(tf.Range),
				"interval":       string(tf.Interval),
				"includePrePost": "false",
				"events":         "div,split",
			}).
			SetResult(&payload).
			Get("/v8/finance/chart/{symbol}")
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("status %d", resp.StatusCode())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrProvider,
			payload.Chart.Error.Code, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: empty result for %s", ErrProvider, asset.Symbol)
	}

	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: no quote data for %s", ErrProvider, asset.Symbol)
	}
	quote := result.Indicators.Quote[0]

	series := &models.Series{
		Symbol: asset.Symbol,
		Meta: models.SeriesMeta{
			Currency:       result.Meta.Currency,
			ExchangeName:   result.Meta.ExchangeName,
			InstrumentType: result.Meta.InstrumentType,
			Granularity:    result.Meta.DataGranularity,
			Range:          result.Meta.Range,
		},
		RetrievedAt: time.Now().UTC(),
	}

	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) ||
			i >= len(quote.Low) || i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		// halted or partial periods come back as nulls; skip them
		if quote.Open[i] == nil || quote.High[i] == nil ||
			quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		var volume int64
		if quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		series.Candles = append(series.Candles, models.Candle{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      decimal.NewFromFloat(*quote.Open[i]),
			High:      decimal.NewFromFloat(*quote.High[i]),
			Low:       decimal.NewFromFloat(*quote.Low[i]),
			Close:     decimal.NewFromFloat(*quote.Close[i]),
			Volume:    volume,
		})
	}

	if len(series.Candles) == 0 {
		return nil, fmt.Errorf("%w: no usable candles for %s", ErrProvider, asset.Symbol)
	}

	sort.Slice(series.Candles, func(i, j int) bool {
		return series.Candles[i].Timestamp.Before(series.Candles[j].Timestamp)
	})

	y.logger.Debug("market data fetched",
		zap.String("symbol", asset.Symbol),
		zap.Int("candles", len(series.Candles)))

	return series, nil
}
