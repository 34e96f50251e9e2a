package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Analysis metrics.
	TanksAnalyzed        prometheus.Counter
	TanksUnresolved      *prometheus.CounterVec // label: reason
	SeparationViolations prometheus.Counter
	PolygonsSkipped      prometheus.Counter

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tank_etl",
			Name:      "messages_consumed_total",
			Help:      "Total site documents read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tank_etl",
			Name:      "messages_produced_total",
			Help:      "Total analysis reports written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tank_etl",
			Name:      "transform_errors_total",
			Help:      "Total site documents that failed analysis.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tank_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tank_etl",
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tank_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		TanksAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tank_etl",
			Name:      "tanks_analyzed_total",
			Help:      "Total tanks processed by the analysis engine.",
		}),
		TanksUnresolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tank_etl",
			Name:      "tanks_unresolved_total",
			Help:      "Tanks that could not be fully analyzed, by reason.",
		}, []string{"reason"}),
		SeparationViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tank_etl",
			Name:      "separation_violations_total",
			Help:      "Tanks failing the minimum separation distance requirement.",
		}),
		PolygonsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tank_etl",
			Name:      "polygons_skipped_total",
			Help:      "Site polygons rejected during parsing as degenerate.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tank_etl",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tank_etl",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tank_etl",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tank_etl",
			Name:      "geocode_enabled",
			Help:      "1 when address geocoding is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.TanksAnalyzed,
		m.TanksUnresolved,
		m.SeparationViolations,
		m.PolygonsSkipped,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tank_etl", Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tank_etl", Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tank_etl", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "tank_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "tank_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "tank_etl", Name: "batch_processing_duration_seconds"}),
		TanksAnalyzed:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tank_etl", Name: "tanks_analyzed_total"}),
		TanksUnresolved:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tank_etl", Name: "tanks_unresolved_total"}, []string{"reason"}),
		SeparationViolations:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tank_etl", Name: "separation_violations_total"}),
		PolygonsSkipped:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tank_etl", Name: "polygons_skipped_total"}),
		GeocodeRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tank_etl", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tank_etl", Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "tank_etl", Name: "geocode_api_duration_seconds"}),
		GeocodeEnabled:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "tank_etl", Name: "geocode_enabled"}),
	}
}
