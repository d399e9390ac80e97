// Package pipeline drives one full advisory run: classify sentiment,
// compose a recommendation, then persist the artifact and the history
// entry.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"tradevisor/internal/advisor"
	"tradevisor/internal/models"
	"tradevisor/internal/repository"
)

// SentimentClassifier is the classification stage.
type SentimentClassifier interface {
	Classify(ctx context.Context, asset models.Asset, tf models.TimeFrame) (*models.SentimentResult, error)
}

// RecommendationComposer is the composition stage.
type RecommendationComposer interface {
	Compose(ctx context.Context, asset models.Asset, tf models.TimeFrame, strategy repository.Strategy, sentiment *models.SentimentResult) (*advisor.Composition, error)
}

// HistoryAppender records a sentiment into the asset's history log.
type HistoryAppender interface {
	Append(asset models.Asset, sentiment models.SentimentResult, at time.Time) error
}

// Selection is everything the user picked for one run.
type Selection struct {
	Asset    models.Asset
	Frame    models.TimeFrame
	Strategy repository.Strategy
}

// Outcome is what one run produced. PersistFailed marks runs whose
// analysis succeeded but whose artifact or history write did not.
type Outcome struct {
	Selection      Selection
	Sentiment      *models.SentimentResult
	Recommendation *models.RecommendationResult
	ChartPath      string
	ArtifactPath   string
	PersistFailed  bool
}

// Session runs selections through the advisory stages.
type Session struct {
	classifier SentimentClassifier
	composer   RecommendationComposer
	history    HistoryAppender
	outDir     string
	logger     *zap.Logger
	now        func() time.Time
}

// NewSession wires a Session writing artifacts under outDir.
func NewSession(
	classifier SentimentClassifier,
	composer RecommendationComposer,
	history HistoryAppender,
	outDir string,
	logger *zap.Logger,
) *Session {
	return &Session{
		classifier: classifier,
		composer:   composer,
		history:    history,
		outDir:     outDir,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes one selection end to end. Classification and composition
// failures abort before anything is written; persistence failures are
// reported on the outcome but do not discard the analysis.
func (s *Session) Run(ctx context.Context, sel Selection) (*Outcome, error) {
	sentiment, err := s.classifier.Classify(ctx, sel.Asset, sel.Frame)
	if err != nil {
		return nil, err
	}

	comp, err := s.composer.Compose(ctx, sel.Asset, sel.Frame, sel.Strategy, sentiment)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Selection:      sel,
		Sentiment:      sentiment,
		Recommendation: comp.Recommendation,
		ChartPath:      comp.Chart.Path,
	}

	at := s.now()
	path, err := s.writeArtifact(sel, sentiment, comp.Recommendation, at)
	if err != nil {
		s.logger.Error("artifact write failed",
			zap.String("symbol", sel.Asset.Symbol),
			zap.Error(err))
		out.PersistFailed = true
	} else {
		out.ArtifactPath = path
	}

	if err := s.history.Append(sel.Asset, *sentiment, at); err != nil {
		s.logger.Error("sentiment history append failed",
			zap.String("symbol", sel.Asset.Symbol),
			zap.Error(err))
		out.PersistFailed = true
	}

	return out, nil
}

// artifact is the JSON shape written per run.
type artifact struct {
	Asset                string                   `json:"asset"`
	Strategy             string                   `json:"strategy"`
	TimeRange            string                   `json:"time_range"`
	TimeInterval         string                   `json:"time_interval"`
	Sentiment            models.SentimentResult   `json:"sentiment"`
	Pattern              string                   `json:"pattern"`
	SupportAndResistance models.SupportResistance `json:"support_and_resistance"`
	Entry                models.PricePoint        `json:"entry"`
	Exit                 models.PricePoint        `json:"exit"`
	Position             string                   `json:"position"`
	Recommendation       struct {
		Decision   models.Decision `json:"decision"`
		Confidence float64         `json:"confidence"`
		Rationale  string          `json:"rationale"`
	} `json:"recommendation"`
}

// writeArtifact writes the run result to
// <outDir>/<date>/<SYMBOL>_<strategy>_<time>.json and returns the path.
func (s *Session) writeArtifact(
	sel Selection,
	sentiment *models.SentimentResult,
	rec *models.RecommendationResult,
	at time.Time,
) (string, error) {
	a := artifact{
		Asset:                sel.Asset.Symbol,
		Strategy:             sel.Strategy.Name,
		TimeRange:            string(sel.Frame.Range),
		TimeInterval:         string(sel.Frame.Interval),
		Sentiment:            *sentiment,
		Pattern:              rec.Pattern,
		SupportAndResistance: rec.SupportAndResistance,
		Entry:                rec.Entry,
		Exit:                 rec.Exit,
		Position:             rec.Position,
	}
	a.Recommendation.Decision = rec.Decision
	a.Recommendation.Confidence = rec.Confidence
	a.Recommendation.Rationale = rec.Rationale

	dir := filepath.Join(s.outDir, at.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("write recommendation artifact: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.json",
		sel.Asset.FileSlug(), sel.Strategy.Name, at.Format("15-04-05"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("write recommendation artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write recommendation artifact: %w", err)
	}

	s.logger.Info("recommendation saved", zap.String("path", path))
	return path, nil
}
