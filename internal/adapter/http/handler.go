package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"crypto-price-service/internal/domain/model"
	"crypto-price-service/internal/domain/ports"
	"crypto-price-service/internal/metrics"
	"crypto-price-service/internal/service"
	"crypto-price-service/pkg/logger"

	"github.com/shopspring/decimal"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type Handler struct {
	service ports.PriceService
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewHandler(service ports.PriceService, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		log:     log,
		metrics: metrics,
	}
}

func (h *Handler) GetPriceHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.PriceRequestsTotal.Inc()

	asset := strings.TrimSpace(r.URL.Query().Get("asset"))
	currency := strings.TrimSpace(r.URL.Query().Get("currency"))

	if asset == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameter: asset")
		return
	}
	if currency == "" {
		currency = model.DefaultCurrency
	}

	price, err := h.service.FetchPrice(r.Context(), asset, currency)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, model.AssetPrice{
		AssetID:   asset,
		Currency:  currency,
		Price:     price,
		FetchedAt: time.Now().UTC(),
	})
}

func (h *Handler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.ConversionRequestsTotal.Inc()

	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	amountStr := r.URL.Query().Get("amount")

	if from == "" || to == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "missing required parameters: from and to")
		return
	}

	amount := decimal.NewFromInt(1)
	if amountStr != "" {
		var err error
		amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			h.sendErrorResponse(w, http.StatusBadRequest, "invalid amount parameter")
			return
		}
	}

	request := model.ConversionRequest{
		FromAssetID: from,
		ToAssetID:   to,
		Amount:      amount,
	}

	result, err := h.service.ConvertDetailed(r.Context(), request)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, result)
}

func (h *Handler) sendSuccessResponse(w http.ResponseWriter, data interface{}) {
	response := Response{
		Success: true,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	response := Response{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode error response", "error", err)
	}
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidQuery):
		statusCode = http.StatusBadRequest
		errorMessage = "invalid price query"
	case errors.Is(err, service.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		errorMessage = "invalid amount"
	case errors.Is(err, service.ErrPriceNotFound):
		statusCode = http.StatusNotFound
		errorMessage = "price not found"
	case errors.Is(err, service.ErrPriceFetch):
		statusCode = http.StatusServiceUnavailable
		errorMessage = "price provider failure"
	case errors.Is(err, service.ErrDivisionByZero):
		statusCode = http.StatusUnprocessableEntity
		errorMessage = "target asset has a zero price"
	}

	h.log.Error("Service error", "error", err, "status_code", statusCode)
	h.sendErrorResponse(w, statusCode, errorMessage)
}
