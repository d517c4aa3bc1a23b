package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	PriceRequestsTotal      prometheus.Counter
	ConversionRequestsTotal prometheus.Counter

	CacheHitsTotal      prometheus.Counter
	CacheMissesTotal    prometheus.Counter
	CacheEvictionsTotal prometheus.Counter

	ProviderRequestsTotal   *prometheus.CounterVec
	ProviderRequestDuration prometheus.Histogram
}

// NewMetrics registers every collector with reg. Pass prometheus.DefaultRegisterer
// in the server and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		PriceRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "price_requests_total",
				Help: "Total number of spot price requests",
			},
		),

		ConversionRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "conversion_requests_total",
				Help: "Total number of asset conversion requests",
			},
		),

		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "price_cache_hits_total",
				Help: "Total number of price cache hits",
			},
		),

		CacheMissesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "price_cache_misses_total",
				Help: "Total number of price cache misses, expired entries included",
			},
		),

		CacheEvictionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "price_cache_evictions_total",
				Help: "Total number of expired entries removed by the sweeper",
			},
		),

		ProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "price_provider_requests_total",
				Help: "Total number of outbound price provider requests",
			},
			[]string{"outcome"},
		),

		ProviderRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "price_provider_request_duration_seconds",
				Help:    "Outbound price provider request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
