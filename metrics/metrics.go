// Package metrics exposes the diagnostics of a conversion run as Prometheus
// counters, written to a node-exporter textfile at the end of the run.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TextfileName is the name of the metrics file in the output directory.
const TextfileName = "m0convert.prom"

// Recorder holds the run metrics. It implements diagnostics.Observer.
type Recorder struct {
	registry    *prometheus.Registry
	diagnostics *prometheus.CounterVec
	triples     *prometheus.GaugeVec
	duration    prometheus.Gauge
	lastRun     prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "m0convert",
			Name:      "diagnostics_total",
			Help:      "Per-record anomalies found during conversion, by kind.",
		}, []string{"kind"}),
		triples: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "m0convert",
			Name:      "output_triples",
			Help:      "Number of triples written, by output graph.",
		}, []string{"graph"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "m0convert",
			Name:      "run_duration_seconds",
			Help:      "Duration of the last conversion run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "m0convert",
			Name:      "last_run_timestamp_seconds",
			Help:      "Completion time of the last conversion run.",
		}),
	}
	r.registry.MustRegister(r.diagnostics, r.triples, r.duration, r.lastRun)
	return r
}

// Observe counts one diagnostic of the given kind.
func (r *Recorder) Observe(kind string) {
	r.diagnostics.WithLabelValues(kind).Inc()
}

// Triples records the size of an output graph.
func (r *Recorder) Triples(graph string, n int) {
	r.triples.WithLabelValues(graph).Set(float64(n))
}

// Finish records the run duration and completion time.
func (r *Recorder) Finish(started, finished time.Time) {
	r.duration.Set(finished.Sub(started).Seconds())
	r.lastRun.Set(float64(finished.Unix()))
}

// Registry returns the registry holding the run metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the metrics in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
