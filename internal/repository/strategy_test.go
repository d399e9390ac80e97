package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStrategies(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "momentum.txt"), []byte("ride the trend"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mean_reversion.txt"), []byte("fade the move"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	strategies, err := LoadStrategies(dir)
	require.NoError(t, err)
	require.Len(t, strategies, 2)

	names := []string{strategies[0].Name, strategies[1].Name}
	assert.Contains(t, names, "momentum")
	assert.Contains(t, names, "mean_reversion")
}

func TestStrategyContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "momentum.txt"), []byte("ride the trend"), 0644))

	strategies, err := LoadStrategies(dir)
	require.NoError(t, err)
	require.Len(t, strategies, 1)

	content, err := strategies[0].Content()
	require.NoError(t, err)
	assert.Equal(t, "ride the trend", content)
}

func TestLoadStrategiesMissingDir(t *testing.T) {
	_, err := LoadStrategies(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
