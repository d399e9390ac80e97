package models

import "fmt"

// Decision is the final trading action.
type Decision string

const (
	DecisionBuy  Decision = "buy"
	DecisionSell Decision = "sell"
	DecisionHold Decision = "hold"
)

// SupportResistance holds the levels the model reasoned from.
type SupportResistance struct {
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
	Ratio      float64 `json:"ratio"`
}

// PricePoint is a suggested price with a free-text timing hint.
type PricePoint struct {
	Price float64 `json:"price"`
	Time  string  `json:"time"`
}

// RecommendationResult is the typed reply of a recommendation request.
// Immutable once parsed.
type RecommendationResult struct {
	Decision             Decision          `json:"decision"`
	Confidence           float64           `json:"confidence"`
	Rationale            string            `json:"rationale"`
	Pattern              string            `json:"pattern"`
	Position             string            `json:"position"`
	SupportAndResistance SupportResistance `json:"support_and_resistance"`
	Entry                PricePoint        `json:"entry"`
	Exit                 PricePoint        `json:"exit"`
}

// Validate checks the decision set and confidence bounds.
func (r *RecommendationResult) Validate() error {
	switch r.Decision {
	case DecisionBuy, DecisionSell, DecisionHold:
	default:
		return fmt.Errorf("invalid decision: %q", string(r.Decision))
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("recommendation confidence %v out of [0,1]", r.Confidence)
	}
	return nil
}
