package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tradevisor/internal/chart"
	"tradevisor/internal/models"
	"tradevisor/internal/prompt"
	"tradevisor/internal/repository"
)

// recommendationTemplate is the prompt file the composer fills.
const recommendationTemplate = "recommendation.txt"

// historyTail is how many past sentiment labels the prompt carries.
const historyTail = 5

// MarketSource fetches the OHLCV series behind a recommendation.
type MarketSource interface {
	FetchSeries(ctx context.Context, asset models.Asset, tf models.TimeFrame) (*models.Series, error)
}

// SnapshotWriter archives a fetched series.
type SnapshotWriter interface {
	Save(asset models.Asset, series *models.Series) (string, error)
}

// HistoryReader reads an asset's past sentiments.
type HistoryReader interface {
	History(asset models.Asset) ([]models.SentimentEntry, error)
}

// ChartRenderer draws the candlestick chart attached to the request.
type ChartRenderer interface {
	Render(series *models.Series, rng models.TimeRange) (*chart.RenderedChart, error)
}

// RecommendationModel answers a filled recommendation prompt plus a
// chart image with a typed result.
type RecommendationModel interface {
	ComposeRecommendation(ctx context.Context, prompt, imagePath string) (*models.RecommendationResult, error)
}

// Composer assembles the full recommendation request: market data,
// snapshot, chart, sentiment history, strategy text, and the model call.
type Composer struct {
	market    MarketSource
	snapshots SnapshotWriter
	history   HistoryReader
	charts    ChartRenderer
	model     RecommendationModel
	prompts   *prompt.Store
	logger    *zap.Logger
}

// NewComposer wires a Composer.
func NewComposer(
	market MarketSource,
	snapshots SnapshotWriter,
	history HistoryReader,
	charts ChartRenderer,
	model RecommendationModel,
	prompts *prompt.Store,
	logger *zap.Logger,
) *Composer {
	return &Composer{
		market:    market,
		snapshots: snapshots,
		history:   history,
		charts:    charts,
		model:     model,
		prompts:   prompts,
		logger:    logger,
	}
}

// Composition is a recommendation plus the chart it was judged against.
type Composition struct {
	Recommendation *models.RecommendationResult
	Chart          *chart.RenderedChart
}

// Compose runs the data-to-recommendation path for one selection. A
// failed fetch or chart aborts; a failed snapshot only logs, the archive
// is not on the critical path.
func (c *Composer) Compose(
	ctx context.Context,
	asset models.Asset,
	tf models.TimeFrame,
	strategy repository.Strategy,
	sentiment *models.SentimentResult,
) (*Composition, error) {
	series, err := c.market.FetchSeries(ctx, asset, tf)
	if err != nil {
		return nil, err
	}

	if _, err := c.snapshots.Save(asset, series); err != nil {
		c.logger.Warn("snapshot save failed",
			zap.String("symbol", asset.Symbol),
			zap.Error(err))
	}

	rendered, err := c.charts.Render(series, tf.Range)
	if err != nil {
		return nil, fmt.Errorf("compose recommendation: %w", err)
	}

	entries, err := c.history.History(asset)
	if err != nil {
		return nil, fmt.Errorf("compose recommendation: %w", err)
	}

	strategyText, err := strategy.Content()
	if err != nil {
		return nil, fmt.Errorf("compose recommendation: %w", err)
	}

	seriesJSON, err := json.Marshal(series)
	if err != nil {
		return nil, fmt.Errorf("compose recommendation: %w", err)
	}

	tpl, err := c.prompts.Load(recommendationTemplate)
	if err != nil {
		return nil, fmt.Errorf("compose recommendation: %w", err)
	}
	filled, err := tpl.Render(map[string]string{
		"asset":             asset.Symbol,
		"asset_kind":        string(asset.Kind),
		"sentiment":         string(sentiment.Label),
		"sentiment_history": historyLabels(entries),
		"time_range":        string(tf.Range),
		"time_interval":     string(tf.Interval),
		"strategy":          strategyText,
		"asset_data":        string(seriesJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("compose recommendation: %w", err)
	}

	rec, err := c.model.ComposeRecommendation(ctx, filled, rendered.Path)
	if err != nil {
		return nil, err
	}

	c.logger.Info("recommendation composed",
		zap.String("symbol", asset.Symbol),
		zap.String("decision", string(rec.Decision)))
	return &Composition{Recommendation: rec, Chart: rendered}, nil
}

// historyLabels joins the labels of the most recent entries, oldest
// first, for the prompt. An empty history reads as "none".
func historyLabels(entries []models.SentimentEntry) string {
	if len(entries) > historyTail {
		entries = entries[len(entries)-historyTail:]
	}
	if len(entries) == 0 {
		return "none"
	}
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = string(e.Sentiment.Label)
	}
	return strings.Join(labels, ", ")
}
