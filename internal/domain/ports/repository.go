package ports

import (
	"context"

	"crypto-price-service/internal/domain/model"
)

// PriceProvider is the outbound price API.
type PriceProvider interface {
	FetchSimplePrice(ctx context.Context, assetID, currency string) (model.SimplePriceResponse, error)
}
