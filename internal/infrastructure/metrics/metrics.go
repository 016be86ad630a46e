package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Invoice-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invoice",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "invoice",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Extraction service calls
	ExtractionCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invoice",
			Subsystem: "api",
			Name:      "extraction_calls_total",
			Help:      "Total calls to the chat extraction service",
		},
		[]string{"status"},
	)

	// Extraction retries
	ExtractionRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "invoice",
			Subsystem: "api",
			Name:      "extraction_retries_total",
			Help:      "Total retried extraction calls",
		},
	)

	// Extraction call duration
	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "invoice",
			Subsystem: "api",
			Name:      "extraction_duration_seconds",
			Help:      "Extraction service call duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	// Generated invoices
	InvoicesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invoice",
			Subsystem: "api",
			Name:      "invoices_generated_total",
			Help:      "Total invoice documents generated",
		},
		[]string{"status"},
	)

	// Rendered document size
	DocumentBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "invoice",
			Subsystem: "api",
			Name:      "document_bytes_total",
			Help:      "Total bytes of rendered PDF documents",
		},
	)
)

// RecordRequest records HTTP request metrics
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordExtraction records an extraction service call outcome
func RecordExtraction(status string, durationSec float64) {
	ExtractionCallsTotal.WithLabelValues(status).Inc()
	ExtractionDuration.Observe(durationSec)
}

// RecordInvoice records a generated invoice and its document size
func RecordInvoice(status string, documentBytes int) {
	InvoicesGeneratedTotal.WithLabelValues(status).Inc()
	if documentBytes > 0 {
		DocumentBytesTotal.Add(float64(documentBytes))
	}
}
