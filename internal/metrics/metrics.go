package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Workflow outcomes
	JoinAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "volunteer_join_attempts_total",
			Help: "Join attempts by outcome",
		},
		[]string{"outcome"}, // "created", "capacity_exceeded", "duplicate", "role_not_found", "error"
	)

	Reviews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "volunteer_reviews_total",
			Help: "Reviews of volunteer applications and role requests",
		},
		[]string{"subject", "decision"}, // subject: "application", "request"
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "volunteer_notifications_created_total",
			Help: "Notifications inserted by type",
		},
		[]string{"type"},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "volunteer_notification_failures_total",
			Help: "Notification inserts that failed after the primary mutation succeeded",
		},
		[]string{"type"},
	)

	StorageCleanupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "volunteer_storage_cleanup_failures_total",
			Help: "Event image removals that failed",
		},
	)

	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "volunteer_api_requests_total",
			Help: "API requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "volunteer_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "volunteer_api_active_requests",
			Help: "Requests currently in flight",
		},
	)
)

// RecordJoin counts a join attempt outcome.
func RecordJoin(outcome string) {
	JoinAttempts.WithLabelValues(outcome).Inc()
}

// RecordReview counts an approve or reject decision.
func RecordReview(subject, decision string) {
	Reviews.WithLabelValues(subject, decision).Inc()
}

// RecordNotification counts a notification insert attempt for the given type.
func RecordNotification(notificationType string, err error) {
	if err != nil {
		NotificationFailures.WithLabelValues(notificationType).Inc()
		return
	}
	NotificationsCreated.WithLabelValues(notificationType).Inc()
}

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
