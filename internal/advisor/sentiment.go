// Package advisor runs the two analysis stages: sentiment
// classification and the buy/sell/hold recommendation built on top of
// it.
package advisor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tradevisor/internal/models"
	"tradevisor/internal/prompt"
)

// sentimentTemplate is the prompt file the classifier fills.
const sentimentTemplate = "sentiment_analysis.txt"

// SentimentModel answers a filled sentiment prompt with a typed result.
type SentimentModel interface {
	ClassifySentiment(ctx context.Context, prompt string) (*models.SentimentResult, error)
}

// Classifier fills the sentiment template for a selection and asks the
// model for a classification.
type Classifier struct {
	model   SentimentModel
	prompts *prompt.Store
	logger  *zap.Logger
	now     func() time.Time
}

// NewClassifier wires a Classifier.
func NewClassifier(model SentimentModel, prompts *prompt.Store, logger *zap.Logger) *Classifier {
	return &Classifier{model: model, prompts: prompts, logger: logger, now: time.Now}
}

// Classify produces a sentiment for the asset over the chosen frame.
func (c *Classifier) Classify(ctx context.Context, asset models.Asset, tf models.TimeFrame) (*models.SentimentResult, error) {
	tpl, err := c.prompts.Load(sentimentTemplate)
	if err != nil {
		return nil, fmt.Errorf("classify sentiment: %w", err)
	}

	filled, err := tpl.Render(map[string]string{
		"asset":         asset.Symbol,
		"asset_kind":    string(asset.Kind),
		"time_range":    string(tf.Range),
		"time_interval": string(tf.Interval),
		"now":           c.now().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("classify sentiment: %w", err)
	}

	res, err := c.model.ClassifySentiment(ctx, filled)
	if err != nil {
		return nil, err
	}

	c.logger.Info("sentiment classified",
		zap.String("symbol", asset.Symbol),
		zap.String("label", string(res.Label)))
	return res, nil
}
