package ports

import "context"

// PriceCache maps a PriceQuery cache key to a decimal-as-string price.
type PriceCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	ClearExpired(ctx context.Context) error
}
