// Package metrics exposes the Prometheus collectors of the service.
// They register on the default registry served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Classifier stages
const (
	StageBinary     = "binary"
	StageMulticlass = "multiclass"
)

var (
	// Predictions counts final pipeline labels
	Predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "examtriage",
		Name:      "predictions_total",
		Help:      "Final labels produced by the inference pipeline.",
	}, []string{"label"})

	// ClassifierCalls counts batch calls to the model service
	ClassifierCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "examtriage",
		Name:      "classifier_calls_total",
		Help:      "Batch classification requests by model and outcome.",
	}, []string{"model", "outcome"})

	// ClassifierLatency observes batch call duration
	ClassifierLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "examtriage",
		Name:      "classifier_request_seconds",
		Help:      "Latency of batch classification requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"model"})

	// CacheLookups counts label cache hits and misses
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "examtriage",
		Name:      "label_cache_lookups_total",
		Help:      "Label cache lookups by result.",
	}, []string{"result"})

	// IntegrityFailures counts label index mismatches between models and the category table
	IntegrityFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "examtriage",
		Name:      "integrity_failures_total",
		Help:      "Classification integrity failures by stage.",
	}, []string{"stage"})

	// HTTPRequests counts served API requests
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "examtriage",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request handling time
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "examtriage",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)
