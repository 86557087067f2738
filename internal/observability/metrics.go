package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ── HTTP request metrics (RED method) ──────────────────────────────────

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soldash",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status_code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "soldash",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "soldash",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being processed.",
	})
)

// ── Snapshot / dataset metrics ─────────────────────────────────────────

var (
	DatasetLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soldash",
		Subsystem: "dataset",
		Name:      "loads_total",
		Help:      "Dataset deserialization attempts per logical dataset.",
	}, []string{"dataset", "status"})

	SnapshotLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "soldash",
		Subsystem: "snapshot",
		Name:      "load_duration_seconds",
		Help:      "Time to load one full snapshot from the data directory.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
	})

	SnapshotAge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "soldash",
		Subsystem: "snapshot",
		Name:      "age_seconds",
		Help:      "Age of the most recently loaded snapshot per its last_updated stamp.",
	})

	SnapshotWarnings = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "soldash",
		Subsystem: "snapshot",
		Name:      "warnings",
		Help:      "Recoverable warnings accumulated while loading the latest snapshot.",
	})
)

// ── Render metrics ─────────────────────────────────────────────────────

var (
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soldash",
		Subsystem: "render",
		Name:      "total",
		Help:      "Tab render cycles by outcome.",
	}, []string{"tab", "status"})

	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "soldash",
		Subsystem: "render",
		Name:      "duration_seconds",
		Help:      "Duration of a full tab render cycle.",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"tab"})

	ChartsRenderedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soldash",
		Subsystem: "render",
		Name:      "charts_total",
		Help:      "Charts rendered by kind.",
	}, []string{"kind", "status"})
)
