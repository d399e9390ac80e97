package models

import "strings"

// AssetKind categorizes tradable instruments.
type AssetKind string

const (
	AssetStock  AssetKind = "stock"
	AssetForex  AssetKind = "forex"
	AssetCrypto AssetKind = "crypto"
)

// Asset identifies a tradable instrument by symbol. Immutable after creation.
type Asset struct {
	Symbol string    `json:"symbol"`
	Kind   AssetKind `json:"kind"`
}

// FileSlug returns the symbol in a form safe to use as a file or
// directory name. Forex pairs carry a slash (EUR/USD).
func (a Asset) FileSlug() string {
	return strings.ReplaceAll(a.Symbol, "/", "_")
}
