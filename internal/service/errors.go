package service

import "errors"

// Errors returned by PriceService. Match them with errors.Is; ErrPriceFetch
// also wraps the transport error that caused it.
var (
	ErrInvalidQuery   = errors.New("invalid price query")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrPriceNotFound  = errors.New("price not found")
	ErrPriceFetch     = errors.New("price fetch failed")
	ErrDivisionByZero = errors.New("division by zero")
)
