package ports

import (
	"context"

	"crypto-price-service/internal/domain/model"

	"github.com/shopspring/decimal"
)

type PriceService interface {
	FetchPrice(ctx context.Context, assetID, currency string) (decimal.Decimal, error)
	Convert(ctx context.Context, amount decimal.Decimal, fromAssetID, toAssetID string) (decimal.Decimal, error)
	ConvertDetailed(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error)
}
