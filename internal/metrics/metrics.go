// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deletion outcomes.
const (
	OutcomeDeleted  = "deleted"
	OutcomeNoop     = "noop"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// MetricsCollector is the metrics surface used by services, handlers and workers.
type MetricsCollector interface {
	RecordDeletion(kind, outcome string)
	RecordDeletionLatency(kind string, duration time.Duration)
	RecordArchivedRows(table string, count int)
	RecordNotificationFailure()
	RecordHTTPStatus(statusCode int)
	RecordNewsPublished(count int)
}

// Collector is the Prometheus implementation of MetricsCollector.
type Collector struct {
	deletions            *prometheus.CounterVec
	deletionLatency      *prometheus.HistogramVec
	archivedRows         *prometheus.CounterVec
	notificationFailures prometheus.Counter
	httpStatus           *prometheus.CounterVec
	newsPublished        prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobmatch_deletions_total",
			Help: "Deletion requests by entity kind and outcome.",
		}, []string{"kind", "outcome"}),
		deletionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobmatch_deletion_duration_seconds",
			Help:    "Duration of a single-entity deletion including its transaction.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		archivedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobmatch_archived_rows_total",
			Help: "Audit rows written per archive table.",
		}, []string{"table"}),
		notificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobmatch_notification_failures_total",
			Help: "Notifications that could not be created after a committed change.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobmatch_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		newsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobmatch_news_published_total",
			Help: "Scheduled news items published by the worker.",
		}),
	}

	reg.MustRegister(
		c.deletions,
		c.deletionLatency,
		c.archivedRows,
		c.notificationFailures,
		c.httpStatus,
		c.newsPublished,
	)

	return c
}

// RecordDeletion counts one deletion request.
func (c *Collector) RecordDeletion(kind, outcome string) {
	c.deletions.WithLabelValues(kind, outcome).Inc()
}

// RecordDeletionLatency observes how long a deletion took.
func (c *Collector) RecordDeletionLatency(kind string, duration time.Duration) {
	c.deletionLatency.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordArchivedRows adds count rows to the archive table counter.
func (c *Collector) RecordArchivedRows(table string, count int) {
	if count <= 0 {
		return
	}
	c.archivedRows.WithLabelValues(table).Add(float64(count))
}

// RecordNotificationFailure counts a dropped notification.
func (c *Collector) RecordNotificationFailure() {
	c.notificationFailures.Inc()
}

// RecordHTTPStatus counts a response by status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordNewsPublished adds count published news items.
func (c *Collector) RecordNewsPublished(count int) {
	c.newsPublished.Add(float64(count))
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

var _ MetricsCollector = (*Collector)(nil)
