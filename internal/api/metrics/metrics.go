// Package metrics defines and registers all custom Prometheus metrics for the
// delivery fulfillment API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fulfillment"

// DeliveriesCreatedTotal counts deliveries recorded at order intake.
var DeliveriesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deliveries_created_total",
		Help:      "Total number of deliveries created at order intake.",
	},
)

// DeliveriesAssignedTotal counts deliveries stamped with a courier.
var DeliveriesAssignedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deliveries_assigned_total",
		Help:      "Total number of deliveries assigned to a courier.",
	},
)

// StatusTransitionsTotal counts terminal status transitions.
// Label:
//   - status: the terminal status applied (DELIVERED_SUCCESSFULLY or DELIVERY_FAILED)
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of deliveries moved to a terminal status.",
	},
	[]string{"status"},
)

// NotificationFailuresTotal counts notification e-mails that could not be sent.
var NotificationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of customer notification e-mails that failed to send.",
	},
)

// GeocodeRequestsTotal counts geocoding lookups by outcome.
// Label:
//   - result: "ok", "cache_hit", "unresolved", or "error"
var GeocodeRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_requests_total",
		Help:      "Total number of geocoding lookups, labelled by result.",
	},
	[]string{"result"},
)

// RouteResolutionDuration measures end-to-end route resolution time.
var RouteResolutionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "route_resolution_duration_seconds",
		Help:      "Duration of full route resolution including geocoding fan-out.",
		Buckets:   prometheus.DefBuckets,
	},
)

// StatusQueueDepth tracks pending reports in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var StatusQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "status_queue_depth",
		Help:      "Current number of status reports pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
