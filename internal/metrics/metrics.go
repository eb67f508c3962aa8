// Package metrics records curveprep pipeline counters on a private
// Prometheus registry and exports them as a node-exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/algo-curves/dataset"
)

// Stage labels for CurvesTotal.
const (
	StageLoaded    = "loaded"
	StageSmoothed  = "smoothed"
	StageExtracted = "extracted"
	StageExtended  = "extended"
)

// Recorder owns the pipeline collectors.
type Recorder struct {
	reg *prometheus.Registry

	curves       *prometheus.CounterVec
	peakFailures prometheus.Counter
	peakValues   prometheus.Histogram
	runDuration  prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		curves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "curveprep_curves_total",
				Help: "Curves processed, by pipeline stage.",
			},
			[]string{"stage"},
		),
		peakFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "curveprep_peak_failures_total",
			Help: "Curves for which no peak satisfied the detection constraints.",
		}),
		peakValues: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "curveprep_peak_value",
			Help:    "Extracted peak values.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "curveprep_run_duration_seconds",
			Help: "Wall time of the last curveprep run.",
		}),
	}
	r.reg.MustRegister(r.curves, r.peakFailures, r.peakValues, r.runDuration)
	return r
}

// Registry exposes the private registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Curves adds n curves to the given stage.
func (r *Recorder) Curves(stage string, n int) {
	r.curves.WithLabelValues(stage).Add(float64(n))
}

// Peaks observes extracted peak values.
func (r *Recorder) Peaks(values []float64) {
	for _, v := range values {
		r.peakValues.Observe(v)
	}
}

// Failure counts the curves without a peak reported in a dataset error.
func (r *Recorder) Failure(err error) {
	if n := len(dataset.FailedCurves(err)); n > 0 {
		r.peakFailures.Add(float64(n))
	}
}

// RunDuration records the elapsed time since start.
func (r *Recorder) RunDuration(start time.Time) {
	r.runDuration.Set(time.Since(start).Seconds())
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
