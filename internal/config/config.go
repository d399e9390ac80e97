package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds every path and credential the advisor needs. Values come
// from DefaultConfig and are overridden by environment variables (loaded
// from .env in main).
type Config struct {
	ProjectDir string `json:"project_dir"`
	DataDir    string `json:"data_dir"`

	PromptDir     string `json:"prompt_dir"`
	StrategiesDir string `json:"strategies_dir"`
	AssetListPath string `json:"asset_list_path"`

	SnapshotDir        string `json:"snapshot_dir"`
	SentimentDir       string `json:"sentiment_dir"`
	RecommendationsDir string `json:"recommendations_dir"`

	OpenAIAPIKey  string `json:"-"`
	OpenAIBaseURL string `json:"openai_base_url"`
	OpenAIModel   string `json:"openai_model"`

	YahooBaseURL string `json:"yahoo_base_url"`

	Debug bool `json:"debug"`
}

// DefaultConfig returns the configuration rooted at the current working
// directory, with environment overrides applied.
func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ProjectDir: currentDir,
		DataDir:    filepath.Join(currentDir, "data"),

		PromptDir:     filepath.Join(currentDir, "prompts"),
		StrategiesDir: filepath.Join(currentDir, "data", "strategies"),
		AssetListPath: filepath.Join(currentDir, "data", "stocks.txt"),

		SnapshotDir:        filepath.Join(currentDir, "repository", "asset_data"),
		SentimentDir:       filepath.Join(currentDir, "repository", "sentiment"),
		RecommendationsDir: filepath.Join(currentDir, "recommendations"),

		OpenAIBaseURL: "https://api.openai.com/v1",
		OpenAIModel:   "gpt-4o-2024-08-06",

		YahooBaseURL: "https://query1.finance.yahoo.com",
	}

	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.OpenAIBaseURL = v
	}
	if v := os.Getenv("TRADEVISOR_MODEL"); v != "" {
		c.OpenAIModel = v
	}
	if v := os.Getenv("TRADEVISOR_YAHOO_URL"); v != "" {
		c.YahooBaseURL = v
	}
	if os.Getenv("TRADEVISOR_DEBUG") == "true" {
		c.Debug = true
	}
}

// EnsureDirectories creates every directory the run writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.DataDir,
		c.StrategiesDir,
		c.SnapshotDir,
		c.SentimentDir,
		c.RecommendationsDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForAdvise checks the credentials required before a pipeline run.
func (c *Config) ValidateForAdvise() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return nil
}
