// Package repository holds the file-backed stores: the per-asset
// sentiment history log, timestamped market-data snapshots, trading
// strategies, and the asset list.
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

// SentimentStore is the append-only sentiment history, one JSON file per
// asset. Entries are ordered oldest to newest and never edited or
// deleted.
type SentimentStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewSentimentStore returns a store rooted at baseDir.
func NewSentimentStore(baseDir string, logger *zap.Logger) *SentimentStore {
	return &SentimentStore{baseDir: baseDir, logger: logger}
}

// History reads the full sentiment history for an asset. A missing file
// is an empty history, not an error.
func (s *SentimentStore) History(asset models.Asset) ([]models.SentimentEntry, error) {
	data, err := os.ReadFile(s.path(asset))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sentiment history for %s: %w", asset.Symbol, err)
	}

	var entries []models.SentimentEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse sentiment history for %s: %w", asset.Symbol, err)
	}
	return entries, nil
}

// Append adds one entry at the end of the asset's history. Prior
// entries are carried over unmodified.
func (s *SentimentStore) Append(asset models.Asset, sentiment models.SentimentResult, at time.Time) error {
	entries, err := s.History(asset)
	if err != nil {
		return err
	}
	entries = append(entries, models.SentimentEntry{Sentiment: sentiment, Timestamp: at})

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return fmt.Errorf("append sentiment for %s: %w", asset.Symbol, err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("append sentiment for %s: %w", asset.Symbol, err)
	}
	if err := os.WriteFile(s.path(asset), data, 0644); err != nil {
		return fmt.Errorf("append sentiment for %s: %w", asset.Symbol, err)
	}

	s.logger.Debug("sentiment appended",
		zap.String("symbol", asset.Symbol),
		zap.Int("entries", len(entries)))
	return nil
}

func (s *SentimentStore) path(asset models.Asset) string {
	return filepath.Join(s.baseDir, asset.FileSlug()+".json")
}
