package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_registrations_total",
			Help: "Total number of accounts registered",
		},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	LogoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_logouts_total",
			Help: "Total number of logouts",
		},
	)

	DepositsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_deposits_total",
			Help: "Total number of successful deposits",
		},
	)

	WithdrawalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_withdrawals_total",
			Help: "Total number of successful withdrawals",
		},
	)

	InsufficientFundsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_insufficient_funds_total",
			Help: "Total number of withdrawals rejected for insufficient funds",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bank_sessions_active",
			Help: "Number of currently active sessions",
		},
	)

	SessionsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_sessions_expired_total",
			Help: "Total number of sessions purged after expiry",
		},
	)

	StoreSaveFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_store_save_failures_total",
			Help: "Total number of failed store saves",
		},
	)

	StoreCorruptionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_store_corruptions_total",
			Help: "Total number of corrupt store documents found on load",
		},
	)

	StoreSaveDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bank_store_save_duration_seconds",
			Help:    "Duration of store saves in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
