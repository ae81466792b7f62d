package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicketsSold total number of tickets sold, by payment method (counter)
	TicketsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boat",
			Name:      "tickets_sold_total",
			Help:      "The total number of tickets sold",
		},
		[]string{"payment_method"},
	)

	// TicketRevenue revenue from ticket sales in currency units (counter)
	TicketRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "boat",
			Name:      "ticket_revenue_total",
			Help:      "Revenue from ticket sales",
		},
	)

	// SaleRejections sales refused by a business rule, by reason (counter)
	SaleRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boat",
			Name:      "ticket_sale_rejections_total",
			Help:      "Ticket sales rejected by a business rule",
		},
		[]string{"reason"},
	)

	// ParcelsReceived total number of parcels registered (counter)
	ParcelsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "boat",
			Name:      "parcels_received_total",
			Help:      "The total number of parcels registered for freight",
		},
	)

	// EventPublishFailures events that could not be handed to the broker (counter)
	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boat",
			Name:      "event_publish_failures_total",
			Help:      "Domain events that failed to publish",
		},
		[]string{"event"},
	)

	// HTTPRequests handled HTTP requests (counter)
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "http",
			Name:      "requests_total",
			Help:      "The total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration request latency (histogram)
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
