// Package cli is the interactive surface: cobra commands, survey
// prompts, and the styled result output.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradevisor/internal/advisor"
	"tradevisor/internal/chart"
	"tradevisor/internal/config"
	"tradevisor/internal/dataflows"
	"tradevisor/internal/llm"
	"tradevisor/internal/pipeline"
	"tradevisor/internal/prompt"
	"tradevisor/internal/repository"
)

// Version is stamped at build time.
var Version = "dev"

// Execute wires the command tree and runs it. The logger is the single
// process logger, handed down to every component.
func Execute(logger *zap.Logger) error {
	cfg := config.DefaultConfig()

	root := &cobra.Command{
		Use:           "tradevisor",
		Short:         "Interactive LLM-assisted trading analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.EnsureDirectories()
		},
	}

	root.AddCommand(
		newAdviseCmd(cfg, logger),
		newStrategiesCmd(cfg),
		newConfigCmd(cfg),
		newVersionCmd(),
	)

	err := root.Execute()
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}

func newAdviseCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "advise",
		Short: "Run one interactive analysis session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateForAdvise(); err != nil {
				return err
			}
			return runAdvise(cmd, cfg, logger)
		},
	}
}

func runAdvise(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) error {
	ctx := cmd.Context()

	assets, err := repository.LoadAssets(cfg.AssetListPath)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		return fmt.Errorf("asset list %s is empty", cfg.AssetListPath)
	}

	strategies, err := repository.LoadStrategies(cfg.StrategiesDir)
	if err != nil {
		return err
	}
	if len(strategies) == 0 {
		return fmt.Errorf("no strategies in %s", cfg.StrategiesDir)
	}

	sel, err := promptSelection(assets, strategies)
	if err != nil {
		return err
	}

	if quote, err := dataflows.GetLiveQuote(sel.Asset.Symbol); err == nil {
		printQuote(quote)
	} else {
		logger.Debug("live quote unavailable",
			zap.String("symbol", sel.Asset.Symbol),
			zap.Error(err))
	}

	ok, err := confirmRun(sel)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	client, err := llm.NewClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	prompts := prompt.NewStore(cfg.PromptDir)
	sentiments := repository.NewSentimentStore(cfg.SentimentDir, logger)
	snapshots := repository.NewSnapshotStore(cfg.SnapshotDir, logger)
	market := dataflows.NewYahooClient(cfg, logger)
	charts := chart.NewRenderer(cfg.SnapshotDir, logger)

	classifier := advisor.NewClassifier(client, prompts, logger)
	composer := advisor.NewComposer(market, snapshots, sentiments, charts, client, prompts, logger)
	session := pipeline.NewSession(classifier, composer, sentiments, cfg.RecommendationsDir, logger)

	fmt.Println("Analyzing, this can take a minute...")
	out, err := session.Run(ctx, sel)
	if err != nil {
		return err
	}

	printOutcome(out)
	return nil
}

func newStrategiesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available trading strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			strategies, err := repository.LoadStrategies(cfg.StrategiesDir)
			if err != nil {
				return err
			}
			if len(strategies) == 0 {
				fmt.Printf("No strategies in %s\n", cfg.StrategiesDir)
				return nil
			}
			for _, s := range strategies {
				fmt.Println(s.Name)
			}
			return nil
		},
	}
}

func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	})
	return configCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(os.Stdout, "tradevisor", Version)
		},
	}
}
