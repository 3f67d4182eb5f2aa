package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the conversion pipeline metrics shared by both
// front-ends. Domain-specific collectors register on top through the
// registry.
type Metrics struct {
	// Per-run metrics, labelled by source format.
	DocumentsProcessed *prometheus.CounterVec
	ConversionDuration *prometheus.HistogramVec
	ConversionErrors   *prometheus.CounterVec

	// Item metrics.
	EntityTypesEmitted       *prometheus.CounterVec
	RelationshipTypesEmitted *prometheus.CounterVec
	ItemsSkipped             *prometheus.CounterVec
	PropertiesRenamed        *prometheus.CounterVec

	// Input metrics.
	TriplesParsed   prometheus.Counter
	InputSizeBytes  prometheus.Histogram
	MemoryRejected  prometheus.Counter
	MemoryOverrides prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all pipeline metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		DocumentsProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fabriconv",
				Subsystem: "pipeline",
				Name:      "documents_total",
				Help:      "Total number of source documents processed",
			},
			[]string{"format", "status"},
		),

		ConversionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fabriconv",
				Subsystem: "pipeline",
				Name:      "duration_seconds",
				Help:      "Document conversion duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"format"},
		),

		ConversionErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fabriconv",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of conversion errors by class",
			},
			[]string{"format", "class"},
		),

		EntityTypesEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fabriconv",
				Subsystem: "output",
				Name:      "entity_types_total",
				Help:      "Total number of entity types emitted",
			},
			[]string{"format"},
		),

		RelationshipTypesEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fabriconv",
				Subsystem: "output",
				Name:      "relationship_types_total",
				Help:      "Total number of relationship types emitted",
			},
			[]string{"format"},
		),

		ItemsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fabriconv",
				Subsystem: "output",
				Name:      "skipped_items_total",
				Help:      "Total number of source items skipped",
			},
			[]string{"format", "kind"},
		),

		PropertiesRenamed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fabriconv",
				Subsystem: "output",
				Name:      "properties_renamed_total",
				Help:      "Total number of properties renamed due to type conflicts",
			},
			[]string{"format"},
		),

		TriplesParsed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fabriconv",
				Subsystem: "input",
				Name:      "triples_total",
				Help:      "Total number of RDF triples parsed",
			},
		),

		InputSizeBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "fabriconv",
				Subsystem: "input",
				Name:      "size_bytes",
				Help:      "Source document size in bytes",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
			},
		),

		MemoryRejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fabriconv",
				Subsystem: "input",
				Name:      "memory_rejected_total",
				Help:      "Documents rejected by the memory pre-flight check",
			},
		),

		MemoryOverrides: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fabriconv",
				Subsystem: "input",
				Name:      "memory_overrides_total",
				Help:      "Documents forced past the memory pre-flight check",
			},
		),
	}
}

// ObserveConversion records the outcome of one document conversion.
func (m *Metrics) ObserveConversion(format, status string, duration time.Duration) {
	m.DocumentsProcessed.WithLabelValues(format, status).Inc()
	m.ConversionDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// collectors returns every collector for bulk registration.
func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.DocumentsProcessed,
		m.ConversionDuration,
		m.ConversionErrors,
		m.EntityTypesEmitted,
		m.RelationshipTypesEmitted,
		m.ItemsSkipped,
		m.PropertiesRenamed,
		m.TriplesParsed,
		m.InputSizeBytes,
		m.MemoryRejected,
		m.MemoryOverrides,
	}
}
