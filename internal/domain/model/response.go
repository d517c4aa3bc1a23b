package model

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SimplePriceResponse is the /simple/price body keyed by asset id. Values are
// kept raw so numeric text is never routed through float64.
type SimplePriceResponse map[string]json.RawMessage

// PriceLookup is the outcome of extracting one price from a response: either
// Found with an exact Value, or missing.
type PriceLookup struct {
	Found bool
	Value decimal.Decimal
	// Raw is the numeric text as the provider sent it, unquoted.
	Raw string
}

var missing = PriceLookup{}

// Lookup extracts response[assetID][currency]. A missing key, null, a value
// that is not a number or numeric string, and a non-positive price all yield
// a not-found lookup.
func (r SimplePriceResponse) Lookup(assetID, currency string) PriceLookup {
	assetRaw, ok := r[assetID]
	if !ok {
		return missing
	}

	var quotes map[string]json.RawMessage
	if err := json.Unmarshal(assetRaw, &quotes); err != nil || quotes == nil {
		return missing
	}

	valueRaw, ok := quotes[currency]
	if !ok {
		valueRaw, ok = quotes[NormalizeCurrency(currency)]
		if !ok {
			return missing
		}
	}

	return parsePrice(valueRaw)
}

func parsePrice(raw json.RawMessage) PriceLookup {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return missing
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return missing
		}
	} else {
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return missing
		}
		text = num.String()
	}

	value, err := decimal.NewFromString(text)
	if err != nil || !value.IsPositive() {
		return missing
	}

	return PriceLookup{Found: true, Value: value, Raw: text}
}
