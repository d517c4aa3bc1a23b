package model

import "strings"

// DefaultCurrency is the quote currency used when none is given and the
// common leg of every conversion.
const DefaultCurrency = "usd"

// NormalizeCurrency lowercases a currency code for cache-key purposes. The
// original casing is still what goes out to the provider.
func NormalizeCurrency(currency string) string {
	return strings.ToLower(strings.TrimSpace(currency))
}
