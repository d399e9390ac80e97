package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Strategy is a named block of guidance text injected into the
// recommendation prompt. Identity is the file name minus extension;
// content is loaded on demand.
type Strategy struct {
	Name string
	path string
}

// Content reads the strategy's prompt text.
func (s *Strategy) Content() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("load strategy %s: %w", s.Name, err)
	}
	return string(data), nil
}

// LoadStrategies lists the strategies in a directory.
func LoadStrategies(dir string) ([]Strategy, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list strategies: %w", err)
	}

	var strategies []Strategy
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		strategies = append(strategies, Strategy{
			Name: name,
			path: filepath.Join(dir, e.Name()),
		})
	}
	return strategies, nil
}
