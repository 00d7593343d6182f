// Package metrics records analysis statistics in a prometheus registry that
// can be written to a node_exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jmylchreest/tether/internal/scan"
)

// Registry holds all tether metrics.
type Registry struct {
	AnalysesTotal        prometheus.Counter
	UnboundElementsTotal *prometheus.CounterVec
	SuggestionsTotal     *prometheus.CounterVec
	NodesScanned         prometheus.Gauge
	AnalysisDuration     prometheus.Histogram

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics initialised.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.AnalysesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "tether_analyses_total",
			Help: "Total number of completed analyses",
		},
	)

	r.UnboundElementsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tether_unbound_elements_total",
			Help: "Unbound elements reported, by kind",
		},
		[]string{"kind"}, // fill, stroke, typography
	)

	r.SuggestionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tether_suggestions_total",
			Help: "Suggestions offered, by match type",
		},
		[]string{"match"}, // exact, closest
	)

	r.NodesScanned = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "tether_nodes_scanned",
			Help: "Nodes visited by the most recent analysis",
		},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tether_analysis_duration_seconds",
			Help:    "Duration of analyses in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// Kinds are pre-declared so a clean document still exports zeros.
	for _, k := range []scan.Kind{scan.KindFill, scan.KindStroke, scan.KindTypography} {
		r.UnboundElementsTotal.WithLabelValues(string(k))
	}

	return r
}

// RecordAnalysis implements analyzer.Recorder.
func (r *Registry) RecordAnalysis(elements []scan.Element, totalNodes int, elapsed time.Duration) {
	r.AnalysesTotal.Inc()
	r.NodesScanned.Set(float64(totalNodes))
	r.AnalysisDuration.Observe(elapsed.Seconds())

	for _, e := range elements {
		r.UnboundElementsTotal.WithLabelValues(string(e.Kind)).Inc()
		for _, s := range e.Suggestions {
			r.SuggestionsTotal.WithLabelValues(string(s.MatchType)).Inc()
		}
	}
}

// GetPrometheusRegistry returns the underlying prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current metrics to path in the text exposition
// format, replacing the file atomically.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
