package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BankRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_requests_total",
			Help: "Total number of bank API requests",
		},
		[]string{"method", "path"},
	)

	BankRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bank_requests_in_flight",
			Help: "Number of bank API requests currently being processed",
		},
	)

	BankRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bank_request_duration_seconds",
			Help:    "Duration of bank API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP error responses",
		},
		[]string{"status", "path", "method"},
	)

	DomainErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_errors_total",
			Help: "Total number of domain errors returned to callers",
		},
		[]string{"category", "code", "status"},
	)

	RateLimitBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_blocked_total",
			Help: "Total number of requests blocked by rate limiter",
		},
		[]string{"path", "limiter_type"},
	)
)
