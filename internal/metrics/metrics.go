// Package metrics bundles the Prometheus collectors for the attribute
// mapping pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Registry         *prometheus.Registry
	ProviderRequests *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec
	PipelineErrors   *prometheus.CounterVec
	RowsAssembled    prometheus.Counter
	BatchRecords     *prometheus.CounterVec
}

// New constructs and registers all collectors on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	providerRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paxth_provider_requests_total",
			Help: "Outbound provider calls by provider (scrape, llm).",
		},
		[]string{"provider"},
	)
	providerDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paxth_provider_request_duration_seconds",
			Help:    "Latency of outbound provider calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
	pipelineErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paxth_pipeline_errors_total",
			Help: "Pipeline failures by error kind.",
		},
		[]string{"kind"},
	)
	rowsAssembled := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paxth_rows_assembled_total",
			Help: "Rows assembled successfully.",
		},
	)
	batchRecords := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paxth_batch_records_total",
			Help: "Batch records processed by outcome.",
		},
		[]string{"status"},
	)

	registry.MustRegister(providerRequests, providerDuration, pipelineErrors, rowsAssembled, batchRecords)

	return &Metrics{
		Registry:         registry,
		ProviderRequests: providerRequests,
		ProviderDuration: providerDuration,
		PipelineErrors:   pipelineErrors,
		RowsAssembled:    rowsAssembled,
		BatchRecords:     batchRecords,
	}
}

// IncRequest counts one outbound call to a provider.
func (m *Metrics) IncRequest(provider string) {
	if m == nil {
		return
	}
	m.ProviderRequests.WithLabelValues(provider).Inc()
}

// ObserveDuration records the latency of an outbound call.
func (m *Metrics) ObserveDuration(provider string, d time.Duration) {
	if m == nil {
		return
	}
	m.ProviderDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// IncError counts a pipeline failure by kind label.
func (m *Metrics) IncError(kind string) {
	if m == nil {
		return
	}
	m.PipelineErrors.WithLabelValues(kind).Inc()
}

// IncRow counts one assembled row.
func (m *Metrics) IncRow() {
	if m == nil {
		return
	}
	m.RowsAssembled.Inc()
}

// IncBatchRecord counts one processed batch record by outcome.
func (m *Metrics) IncBatchRecord(status string) {
	if m == nil {
		return
	}
	m.BatchRecords.WithLabelValues(status).Inc()
}
