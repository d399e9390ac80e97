package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"tradevisor/internal/models"
)

// SnapshotStore writes one timestamped JSON snapshot of the raw market
// series per fetch. Timestamped names keep snapshots collision-free
// without any locking.
type SnapshotStore struct {
	baseDir string
	logger  *zap.Logger
	now     func() time.Time
}

// NewSnapshotStore returns a store rooted at baseDir.
func NewSnapshotStore(baseDir string, logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{baseDir: baseDir, logger: logger, now: time.Now}
}

// Save writes the series under <baseDir>/<symbol>/<timestamp>.json and
// returns the written path.
func (s *SnapshotStore) Save(asset models.Asset, series *models.Series) (string, error) {
	dir := filepath.Join(s.baseDir, asset.FileSlug())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("save snapshot for %s: %w", asset.Symbol, err)
	}

	path := filepath.Join(dir, s.now().Format("2006-01-02_15-04-05")+".json")
	data, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return "", fmt.Errorf("save snapshot for %s: %w", asset.Symbol, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("save snapshot for %s: %w", asset.Symbol, err)
	}

	s.logger.Debug("snapshot saved", zap.String("path", path))
	return path, nil
}
