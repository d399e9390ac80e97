package dataflows

import (
	"fmt"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// LiveQuote is a point-in-time market snapshot shown while the user is
// picking an asset. It never feeds the recommendation pipeline.
type LiveQuote struct {
	Symbol      string
	Price       decimal.Decimal
	Currency    string
	MarketState string
}

// GetLiveQuote looks up the current quote for a symbol.
func GetLiveQuote(symbol string) (*LiveQuote, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("get quote for %s: %w", symbol, err)
	}

	return &LiveQuote{
		Symbol:      symbol,
		Price:       decimal.NewFromFloat(q.RegularMarketPrice),
		Currency:    q.CurrencyID,
		MarketState: string(q.MarketState),
	}, nil
}
