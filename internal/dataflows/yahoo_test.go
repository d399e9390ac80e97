package dataflows

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tradevisor/internal/config"
	"tradevisor/internal/models"
)

func testClient(t *testing.T, handler http.Handler) *YahooClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewYahooClient(&config.Config{YahooBaseURL: srv.URL}, zap.NewNop())
	// keep failure-path tests fast
	client.retry = &RetryConfig{MaxRetries: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
	return client
}

const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {
        "currency": "USD",
        "symbol": "AAPL",
        "exchangeName": "NMS",
        "instrumentType": "EQUITY",
        "dataGranularity": "1d",
        "range": "5d"
      },
      "timestamp": [1717027200, 1717113600, 1717200000],
      "indicators": {
        "quote": [{
          "open":   [100.5, null, 102.0],
          "high":   [101.0, null, 103.5],
          "low":    [99.5,  null, 101.5],
          "close":  [100.8, null, 103.0],
          "volume": [50000, null, 60000]
        }]
      }
    }],
    "error": null
  }
}`

func TestFetchSeries(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"range":    r.URL.Query().Get("range"),
			"interval": r.URL.Query().Get("interval"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartPayload))
	}))

	series, err := client.FetchSeries(context.Background(),
		models.Asset{Symbol: "AAPL", Kind: models.AssetStock},
		models.TimeFrame{Range: models.Range5Day, Interval: models.Range1Day})
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	assert.Equal(t, "5d", gotQuery["range"])
	assert.Equal(t, "1d", gotQuery["interval"])

	assert.Equal(t, "AAPL", series.Symbol)
	assert.Equal(t, "USD", series.Meta.Currency)
	assert.Equal(t, "1d", series.Meta.Granularity)

	// the null middle sample is skipped
	require.Len(t, series.Candles, 2)
	assert.True(t, series.Candles[0].Timestamp.Before(series.Candles[1].Timestamp))
	assert.Equal(t, "100.5", series.Candles[0].Open.String())
	assert.Equal(t, int64(60000), series.Candles[1].Volume)
}

func TestFetchSeriesUnsupportedKind(t *testing.T) {
	var calls int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))

	_, err := client.FetchSeries(context.Background(),
		models.Asset{Symbol: "EUR/USD", Kind: models.AssetForex},
		models.TimeFrame{Range: models.Range1Day, Interval: models.Range1Hour})
	require.ErrorIs(t, err, ErrUnsupportedKind)
	assert.Zero(t, atomic.LoadInt32(&calls), "unsupported kinds must not reach the network")
}

func TestFetchSeriesInvalidTimeFrame(t *testing.T) {
	var calls int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	asset := models.Asset{Symbol: "AAPL", Kind: models.AssetStock}

	_, err := client.FetchSeries(context.Background(), asset,
		models.TimeFrame{Range: "7m", Interval: models.Range1Hour})
	assert.ErrorIs(t, err, ErrInvalidTimeFrame)

	_, err = client.FetchSeries(context.Background(), asset,
		models.TimeFrame{Range: models.Range1Day, Interval: "1D"})
	assert.ErrorIs(t, err, ErrInvalidTimeFrame)

	assert.Zero(t, atomic.LoadInt32(&calls), "invalid tokens must not reach the network")
}

func TestFetchSeriesServerError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.FetchSeries(context.Background(),
		models.Asset{Symbol: "AAPL", Kind: models.AssetStock},
		models.TimeFrame{Range: models.Range1Day, Interval: models.Range1Hour})
	assert.ErrorIs(t, err, ErrProvider)
}

func TestFetchSeriesProviderError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))

	_, err := client.FetchSeries(context.Background(),
		models.Asset{Symbol: "GONE", Kind: models.AssetStock},
		models.TimeFrame{Range: models.Range1Day, Interval: models.Range1Hour})
	require.ErrorIs(t, err, ErrProvider)
	assert.Contains(t, err.Error(), "delisted")
}

func TestFetchSeriesAllNullCandles(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
  "chart": {
    "result": [{
      "meta": {"currency": "USD", "symbol": "AAPL"},
      "timestamp": [1717027200],
      "indicators": {"quote": [{"open": [null], "high": [null], "low": [null], "close": [null], "volume": [null]}]}
    }],
    "error": null
  }
}`))
	}))

	_, err := client.FetchSeries(context.Background(),
		models.Asset{Symbol: "AAPL", Kind: models.AssetStock},
		models.TimeFrame{Range: models.Range1Day, Interval: models.Range1Hour})
	assert.ErrorIs(t, err, ErrProvider)
}

func TestFetchSeriesRetriesTransientFailure(t *testing.T) {
	var calls int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartPayload))
	}))

	series, err := client.FetchSeries(context.Background(),
		models.Asset{Symbol: "AAPL", Kind: models.AssetStock},
		models.TimeFrame{Range: models.Range5Day, Interval: models.Range1Day})
	require.NoError(t, err)
	assert.Len(t, series.Candles, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
