package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errEmptyAssetID  = errors.New("asset id is required")
	errEmptyCurrency = errors.New("currency is required")
)

// PriceQuery identifies a price: units of Currency per one unit of AssetID.
type PriceQuery struct {
	AssetID  string `json:"asset_id"`
	Currency string `json:"currency"`
}

// NewPriceQuery trims the currency, so the provider sees the same code the
// cache key is built from. A blank currency means DefaultCurrency.
func NewPriceQuery(assetID, currency string) PriceQuery {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	return PriceQuery{AssetID: assetID, Currency: currency}
}

func (q PriceQuery) Validate() error {
	if strings.TrimSpace(q.AssetID) == "" {
		return errEmptyAssetID
	}
	if strings.TrimSpace(q.Currency) == "" {
		return errEmptyCurrency
	}
	return nil
}

// CacheKey is assetID + "-" + lowercased currency. The asset id is kept
// verbatim since provider slugs are case sensitive.
func (q PriceQuery) CacheKey() string {
	return fmt.Sprintf("%s-%s", q.AssetID, NormalizeCurrency(q.Currency))
}

func (q PriceQuery) String() string {
	return q.AssetID + "/" + q.Currency
}

// AssetPrice is a resolved spot price as exposed over HTTP.
type AssetPrice struct {
	AssetID   string          `json:"asset_id"`
	Currency  string          `json:"currency"`
	Price     decimal.Decimal `json:"price"`
	FetchedAt time.Time       `json:"fetched_at"`
}

type ConversionRequest struct {
	FromAssetID string          `json:"from"`
	ToAssetID   string          `json:"to"`
	Amount      decimal.Decimal `json:"amount"`
}

type ConversionResult struct {
	FromAssetID  string          `json:"from"`
	ToAssetID    string          `json:"to"`
	FromAmount   decimal.Decimal `json:"from_amount"`
	ToAmount     decimal.Decimal `json:"to_amount"`
	FromPriceUSD decimal.Decimal `json:"from_price_usd"`
	ToPriceUSD   decimal.Decimal `json:"to_price_usd"`
}
