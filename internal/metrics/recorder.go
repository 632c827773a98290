package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "frankestudy"

// Recorder owns the study's Prometheus collectors. It is safe for
// concurrent use.
type Recorder struct {
	registry    *prometheus.Registry
	fits        *prometheus.CounterVec
	fitDuration *prometheus.HistogramVec
	scenarios   *prometheus.CounterVec
	figures     prometheus.Counter

	fitCount atomic.Int64
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fits_total",
			Help:      "Number of fitted models.",
		}, []string{"method", "resampling"}),
		fitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_duration_seconds",
			Help:      "Duration of a single model fit.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"method"}),
		scenarios: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenarios_total",
			Help:      "Number of executed scenarios by kind and outcome.",
		}, []string{"kind", "status"}),
		figures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "figures_written_total",
			Help:      "Number of figure files written.",
		}),
	}
	r.registry.MustRegister(
		r.fits,
		r.fitDuration,
		r.scenarios,
		r.figures,
		collectors.NewGoCollector(),
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveFit records one model fit.
func (r *Recorder) ObserveFit(method, resampling string, d time.Duration) {
	r.fits.WithLabelValues(method, resampling).Inc()
	r.fitDuration.WithLabelValues(method).Observe(d.Seconds())
	r.fitCount.Add(1)
}

// ObserveScenario records the outcome of one scenario.
func (r *Recorder) ObserveScenario(kind string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.scenarios.WithLabelValues(kind, status).Inc()
}

// FigureWritten counts a written figure file.
func (r *Recorder) FigureWritten() { r.figures.Inc() }

// Fits returns the number of fits observed so far.
func (r *Recorder) Fits() int64 { return r.fitCount.Load() }

// WriteTextfile writes the registry to path in the textfile collector format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
