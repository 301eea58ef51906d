package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corsa_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "corsa_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	// SearchesTotal counts catalog searches by outcome (ok, invalid_query, error).
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corsa_searches_total",
			Help: "Total number of catalog searches",
		},
		[]string{"status"},
	)
	// OffersIngestedTotal counts offers accepted into the catalog.
	OffersIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "corsa_offers_ingested_total",
			Help: "Total number of offers accepted into the catalog",
		},
	)
	// OffersStored tracks the current catalog size.
	OffersStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "corsa_offers_stored",
			Help: "Number of offers currently stored",
		},
	)
)
