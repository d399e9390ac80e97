package repository

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"tradevisor/internal/models"
)

// LoadAssets reads the asset list: one symbol per line, blank lines
// ignored, every entry a stock.
func LoadAssets(path string) ([]models.Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asset list: %w", err)
	}
	defer f.Close()

	var assets []models.Asset
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		symbol := strings.TrimSpace(scanner.Text())
		if symbol == "" {
			continue
		}
		assets = append(assets, models.Asset{Symbol: symbol, Kind: models.AssetStock})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read asset list: %w", err)
	}
	return assets, nil
}
