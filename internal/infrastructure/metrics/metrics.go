package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PassMetrics bundles every pass lifecycle metric. All observer methods
// are nil-safe so unit tests can run without a registry.
type PassMetrics struct {
	PassesPurchasedTotal      prometheus.CounterVec
	PurchaseAmountTotal       prometheus.CounterVec
	PassesRedeemedTotal       prometheus.CounterVec
	RedemptionConflictsTotal  prometheus.CounterVec
	VerificationAttemptsTotal prometheus.CounterVec
	PassesExpiredTotal        prometheus.CounterVec
	VerificationDuration      prometheus.HistogramVec
}

func NewPassMetrics() *PassMetrics {
	return &PassMetrics{
		PassesPurchasedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passes_purchased_total",
				Help: "Passes purchased, by venue and pass type",
			},
			[]string{"venue_id", "pass_type"},
		),

		PurchaseAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passes_purchased_amount_total",
				Help: "Total purchase revenue, by venue and pass type",
			},
			[]string{"venue_id", "pass_type"},
		),

		PassesRedeemedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passes_redeemed_total",
				Help: "Successful redemptions, by venue and verification method",
			},
			[]string{"venue_id", "method"},
		),

		RedemptionConflictsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pass_redemption_conflicts_total",
				Help: "Redemption attempts that lost the conditional write",
			},
			[]string{"venue_id"},
		),

		VerificationAttemptsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pass_verification_attempts_total",
				Help: "Verification attempts, by venue and outcome",
			},
			[]string{"venue_id", "result"},
		),

		PassesExpiredTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passes_expired_total",
				Help: "Passes swept to expired, by venue",
			},
			[]string{"venue_id"},
		),

		VerificationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pass_verification_duration_seconds",
				Help:    "End-to-end verification handling time",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"venue_id"},
		),
	}
}

func (m *PassMetrics) ObservePurchase(venueID, passType string, amount float64) {
	if m == nil {
		return
	}
	m.PassesPurchasedTotal.WithLabelValues(venueID, passType).Inc()
	m.PurchaseAmountTotal.WithLabelValues(venueID, passType).Add(amount)
}

func (m *PassMetrics) ObserveRedemption(venueID, method string) {
	if m == nil {
		return
	}
	m.PassesRedeemedTotal.WithLabelValues(venueID, method).Inc()
}

func (m *PassMetrics) ObserveConflict(venueID string) {
	if m == nil {
		return
	}
	m.RedemptionConflictsTotal.WithLabelValues(venueID).Inc()
}

func (m *PassMetrics) ObserveVerificationAttempt(venueID, result string, seconds float64) {
	if m == nil {
		return
	}
	m.VerificationAttemptsTotal.WithLabelValues(venueID, result).Inc()
	m.VerificationDuration.WithLabelValues(venueID).Observe(seconds)
}

func (m *PassMetrics) ObserveExpired(venueID string) {
	if m == nil {
		return
	}
	m.PassesExpiredTotal.WithLabelValues(venueID).Inc()
}
