package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tradevisor/internal/models"
)

func TestSnapshotSave(t *testing.T) {
	dir := t.TempDir()
	store := NewSnapshotStore(dir, zap.NewNop())
	store.now = func() time.Time {
		return time.Date(2025, 6, 2, 14, 30, 5, 0, time.UTC)
	}

	candle := models.Candle{
		Timestamp: time.Date(2025, 6, 2, 13, 30, 0, 0, time.UTC),
		Open:      decimal.RequireFromString("100.5"),
		High:      decimal.RequireFromString("103.25"),
		Low:       decimal.RequireFromString("99.875"),
		Close:     decimal.RequireFromString("102.1"),
		Volume:    50000,
	}
	series := &models.Series{
		Symbol:  "AAPL",
		Meta:    models.SeriesMeta{Currency: "USD"},
		Candles: []models.Candle{candle},
	}
	path, err := store.Save(models.Asset{Symbol: "AAPL", Kind: models.AssetStock}, series)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "AAPL", "2025-06-02_14-30-05.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got models.Series
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, "USD", got.Meta.Currency)

	require.Len(t, got.Candles, 1)
	assert.True(t, candle.Timestamp.Equal(got.Candles[0].Timestamp))
	assert.True(t, candle.Open.Equal(got.Candles[0].Open))
	assert.True(t, candle.Low.Equal(got.Candles[0].Low))
	assert.Equal(t, candle.Volume, got.Candles[0].Volume)
}

func TestSnapshotSaveDistinctTimestamps(t *testing.T) {
	dir := t.TempDir()
	store := NewSnapshotStore(dir, zap.NewNop())

	stamps := []time.Time{
		time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 10, 0, 1, 0, time.UTC),
	}
	i := 0
	store.now = func() time.Time {
		ts := stamps[i]
		i++
		return ts
	}

	asset := models.Asset{Symbol: "AAPL", Kind: models.AssetStock}
	series := &models.Series{Symbol: "AAPL"}

	first, err := store.Save(asset, series)
	require.NoError(t, err)
	second, err := store.Save(asset, series)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
