package service

import (
	"context"
	"fmt"

	"crypto-price-service/internal/domain/model"
	"crypto-price-service/internal/domain/ports"
	"crypto-price-service/pkg/logger"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// minConversionPrecision is the number of decimal places a conversion keeps
// when the result is at least 1; smaller results get more places.
const minConversionPrecision int32 = 20

type PriceService struct {
	repository ports.PriceProvider
	cache      ports.PriceCache
	log        *logger.Logger
}

func NewPriceService(repository ports.PriceProvider, cache ports.PriceCache, log *logger.Logger) *PriceService {
	return &PriceService{
		repository: repository,
		cache:      cache,
		log:        log,
	}
}

// FetchPrice returns the spot price of assetID in currency, "usd" when
// currency is empty. Cached prices are served without a network call; a
// provider answer without a usable price is never cached.
func (s *PriceService) FetchPrice(ctx context.Context, assetID, currency string) (decimal.Decimal, error) {
	query := model.NewPriceQuery(assetID, currency)
	if err := query.Validate(); err != nil {
		s.log.Error("Invalid price query", "op", "FetchPrice", "query", query.String(), "error", err)
		return decimal.Zero, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	key := query.CacheKey()
	if cached, found := s.cache.Get(ctx, key); found {
		price, err := decimal.NewFromString(cached)
		if err == nil {
			return price, nil
		}
		s.log.Warn("Ignoring unparseable cache entry", "key", key, "value", cached, "error", err)
	}

	s.log.Info("Fetching price from provider", "query", query.String())
	resp, err := s.repository.FetchSimplePrice(ctx, query.AssetID, query.Currency)
	if err != nil {
		s.log.Error("Failed to fetch price", "op", "FetchPrice", "query", query.String(), "error", err)
		return decimal.Zero, fmt.Errorf("%w: %w", ErrPriceFetch, err)
	}

	lookup := resp.Lookup(query.AssetID, query.Currency)
	if !lookup.Found {
		s.log.Error("Price not found in provider response", "op", "FetchPrice", "query", query.String())
		return decimal.Zero, fmt.Errorf("%w: %s", ErrPriceNotFound, query)
	}

	if err := s.cache.Set(ctx, key, lookup.Raw); err != nil {
		s.log.Error("Failed to cache price", "key", key, "error", err)
	}

	return lookup.Value, nil
}

// Convert returns amount * fromUSD / toUSD. Both USD prices are fetched
// concurrently; the first failure fails the conversion.
func (s *PriceService) Convert(ctx context.Context, amount decimal.Decimal, fromAssetID, toAssetID string) (decimal.Decimal, error) {
	result, err := s.convert(ctx, amount, fromAssetID, toAssetID)
	if err != nil {
		return decimal.Zero, err
	}
	return result.ToAmount, nil
}

// ConvertDetailed is Convert plus both USD legs, and rejects negative amounts.
func (s *PriceService) ConvertDetailed(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error) {
	if request.Amount.IsNegative() {
		s.log.Error("Invalid conversion amount", "op", "Convert", "amount", request.Amount.String())
		return nil, ErrInvalidAmount
	}
	return s.convert(ctx, request.Amount, request.FromAssetID, request.ToAssetID)
}

func (s *PriceService) convert(ctx context.Context, amount decimal.Decimal, fromAssetID, toAssetID string) (*model.ConversionResult, error) {
	var fromPrice, toPrice decimal.Decimal

	// A failing leg does not cancel the other one, so a successful price
	// still lands in the cache.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		fromPrice, err = s.FetchPrice(ctx, fromAssetID, model.DefaultCurrency)
		return err
	})
	g.Go(func() error {
		var err error
		toPrice, err = s.FetchPrice(ctx, toAssetID, model.DefaultCurrency)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error("Failed to convert", "op", "Convert", "from", fromAssetID, "to", toAssetID, "error", err)
		return nil, err
	}

	if toPrice.IsZero() {
		s.log.Error("Target price is zero", "op", "Convert", "to", toAssetID)
		return nil, fmt.Errorf("%w: %s has a zero USD price", ErrDivisionByZero, toAssetID)
	}

	numerator := amount.Mul(fromPrice)

	return &model.ConversionResult{
		FromAssetID:  fromAssetID,
		ToAssetID:    toAssetID,
		FromAmount:   amount,
		ToAmount:     numerator.DivRound(toPrice, divisionPrecision(numerator, toPrice)),
		FromPriceUSD: fromPrice,
		ToPriceUSD:   toPrice,
	}, nil
}

// divisionPrecision widens the decimal places by the number of leading zeros
// the quotient num/den will have, so tiny results keep their significant digits.
func divisionPrecision(num, den decimal.Decimal) int32 {
	magnitude := int64(num.NumDigits()) + int64(num.Exponent()) - int64(den.NumDigits()) - int64(den.Exponent())
	if magnitude >= 0 {
		return minConversionPrecision
	}
	return minConversionPrecision + int32(-magnitude) + 1
}
