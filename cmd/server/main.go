package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crypto-price-service/internal/adapter/cache"
	httpRouter "crypto-price-service/internal/adapter/http"
	"crypto-price-service/internal/adapter/repository"
	"crypto-price-service/internal/config"
	"crypto-price-service/internal/domain/model"
	"crypto-price-service/internal/domain/ports"
	"crypto-price-service/internal/metrics"
	"crypto-price-service/internal/service"
	"crypto-price-service/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	log.Info("Starting crypto price service")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)
	priceCache := cache.NewMemoryCache(cfg.Cache.TTL, log.With("component", "cache"), appMetrics)

	priceAPI := repository.NewCoinGeckoAPI(repository.CoinGeckoOptions{
		BaseURL:      cfg.PriceAPI.BaseURL,
		APIKey:       cfg.PriceAPI.APIKey,
		APIKeyHeader: cfg.PriceAPI.APIKeyHeader,
		UserAgent:    cfg.PriceAPI.UserAgent,
		Timeout:      cfg.PriceAPI.Timeout,
	}, log.With("component", "provider"), appMetrics)

	priceService := service.NewPriceService(priceAPI, priceCache, log)
	handler := httpRouter.NewHandler(priceService, log, appMetrics)

	router := httpRouter.NewRouter(handler, log, appMetrics, prometheus.DefaultGatherer)
	routes := router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, cancelBackground := context.WithCancel(context.Background())
	go priceCache.RunSweeper(ctx, cfg.Cache.SweepInterval)
	go warmPrices(ctx, priceService, cfg.Warmup.Assets, log)

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	cancelBackground()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}

// warmPrices fills the cache with the USD price of each configured asset so
// the first conversions after startup skip the provider round trip.
func warmPrices(ctx context.Context, svc ports.PriceService, assets []string, log *logger.Logger) int {
	warmed := 0
	for _, asset := range assets {
		if ctx.Err() != nil {
			break
		}
		if _, err := svc.FetchPrice(ctx, asset, model.DefaultCurrency); err != nil {
			log.Warn("Failed to warm price", "asset", asset, "error", err)
			continue
		}
		warmed++
	}
	if len(assets) > 0 {
		log.Info("Warmed price cache", "requested", len(assets), "warmed", warmed)
	}
	return warmed
}
