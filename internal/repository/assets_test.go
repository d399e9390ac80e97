package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradevisor/internal/models"
)

func TestLoadAssets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stocks.txt")
	require.NoError(t, os.WriteFile(path, []byte("AAPL\n\n  MSFT  \nGOOGL\n"), 0644))

	assets, err := LoadAssets(path)
	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, "AAPL", assets[0].Symbol)
	assert.Equal(t, "MSFT", assets[1].Symbol)
	assert.Equal(t, "GOOGL", assets[2].Symbol)
	for _, a := range assets {
		assert.Equal(t, models.AssetStock, a.Kind)
	}
}

func TestLoadAssetsMissingFile(t *testing.T) {
	_, err := LoadAssets(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
