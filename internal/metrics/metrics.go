package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// VIN decoder metrics

	VINDecodesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "vin_decodes_total",
		Help:      "VIN decode attempts by outcome.",
	}, []string{"outcome"})

	VINLookupDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "market",
		Name:      "vin_lookup_duration_seconds",
		Help:      "Latency of the external VIN lookup call.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	})

	// Verification metrics

	VerificationsIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "verifications_issued_total",
		Help:      "Verification tokens minted.",
	})

	VerificationRedemptionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "verification_redemptions_total",
		Help:      "Verification redemption attempts by outcome.",
	}, []string{"outcome"})

	// Listing metrics

	ListingsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "listings_created_total",
		Help:      "Draft listings created through the wizard.",
	})

	// Payment metrics

	CheckoutSessionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "checkout_sessions_total",
		Help:      "Stripe checkout sessions created, by fee type.",
	}, []string{"fee"})

	WebhookEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "stripe_webhook_events_total",
		Help:      "Stripe webhook events received, by type and result.",
	}, []string{"type", "result"})

	// Sweeper metrics

	SweeperActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "sweeper_actions_total",
		Help:      "Rows handled by the maintenance sweeper, by action.",
	}, []string{"action"})

	SweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "market",
		Name:      "sweep_duration_seconds",
		Help:      "Time taken for one sweep cycle.",
		Buckets:   prometheus.DefBuckets,
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "market",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		VINDecodesTotal,
		VINLookupDuration,
		VerificationsIssuedTotal,
		VerificationRedemptionsTotal,
		ListingsCreatedTotal,
		CheckoutSessionsTotal,
		WebhookEventsTotal,
		SweeperActionsTotal,
		SweepDuration,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}
