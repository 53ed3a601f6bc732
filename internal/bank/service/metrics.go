package service

import (
	"securebank/internal/observability/metrics"
)

func incrementRegistrations() {
	metrics.RegistrationsTotal.Inc()
}

func incrementLogins(result string) {
	metrics.LoginsTotal.WithLabelValues(result).Inc()
}

func incrementLogouts() {
	metrics.LogoutsTotal.Inc()
}

func incrementDeposits() {
	metrics.DepositsTotal.Inc()
}

func incrementWithdrawals() {
	metrics.WithdrawalsTotal.Inc()
}

func incrementInsufficientFunds() {
	metrics.InsufficientFundsTotal.Inc()
}

func incrementSessionsActive() {
	metrics.SessionsActive.Inc()
}

func decrementSessionsActive() {
	metrics.SessionsActive.Dec()
}

func addSessionsExpired(n int) {
	metrics.SessionsExpiredTotal.Add(float64(n))
	metrics.SessionsActive.Sub(float64(n))
}
