package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	adminRequestsTotal  *prometheus.CounterVec
	adminLatencySeconds *prometheus.HistogramVec
	adminErrorsTotal    *prometheus.CounterVec
	auditEntriesTotal   *prometheus.CounterVec
	auditFailuresTotal  *prometheus.CounterVec
	auditSkippedTotal   *prometheus.CounterVec
	uploadRejectedTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used for admin observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_errors_total",
			Help: "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		auditEntriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_entries_total",
			Help: "Audit entries successfully persisted, by action.",
		}, []string{"action"})

		auditFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Audit entries lost to audit-store write failures, by action.",
		}, []string{"action"})

		auditSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_skipped_total",
			Help: "Wrapped admin invocations that completed non-2xx and were not audited.",
		}, []string{"action"})

		uploadRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "document_upload_rejected_total",
			Help: "Document uploads rejected before storage, by reason.",
		}, []string{"reason"})

		prometheus.MustRegister(
			adminRequestsTotal,
			adminLatencySeconds,
			adminErrorsTotal,
			auditEntriesTotal,
			auditFailuresTotal,
			auditSkippedTotal,
			uploadRejectedTotal,
		)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// AuditEntries exposes the counter for persisted audit entries.
func AuditEntries() *prometheus.CounterVec {
	RegisterMetrics()
	return auditEntriesTotal
}

// AuditFailures exposes the counter for failed audit writes.
func AuditFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return auditFailuresTotal
}

// AuditSkipped exposes the counter for non-2xx outcomes that skipped auditing.
func AuditSkipped() *prometheus.CounterVec {
	RegisterMetrics()
	return auditSkippedTotal
}

// UploadRejected exposes the counter for rejected document uploads.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejectedTotal
}
