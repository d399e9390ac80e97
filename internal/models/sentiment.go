package models

import (
	"fmt"
	"time"
)

// SentimentLabel is the three-valued market-mood classification.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentResult is the typed reply of a sentiment classification.
// Immutable once parsed.
type SentimentResult struct {
	Label      SentimentLabel `json:"sentiment"`
	Confidence float64        `json:"confidence"`
	Rationale  string         `json:"rationale"`
}

// Validate checks the label set and confidence bounds.
func (s *SentimentResult) Validate() error {
	switch s.Label {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
	default:
		return fmt.Errorf("invalid sentiment label: %q", string(s.Label))
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("sentiment confidence %v out of [0,1]", s.Confidence)
	}
	return nil
}

// SentimentEntry is one record of an asset's append-only sentiment history.
type SentimentEntry struct {
	Sentiment SentimentResult `json:"sentiment"`
	Timestamp time.Time       `json:"timestamp"`
}
