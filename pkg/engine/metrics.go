package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	status               = "status"
	statusSuccess        = "success"
	statusFailure        = "failure"
	statusNotImplemented = "notimplemented"
)

type metrics struct {
	invocations *prometheus.CounterVec
	rows        prometheus.Counter
	elements    prometheus.Counter
	execution   prometheus.Histogram
}

func newMetrics(r prometheus.Registerer) *metrics {
	return &metrics{
		invocations: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "vireo_engine_invocations_total",
			Help: "Total number of higher-order function invocations",
		}, []string{status}),
		rows: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "vireo_engine_rows_processed_total",
			Help: "Total number of array rows processed by successful invocations",
		}),
		elements: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "vireo_engine_elements_processed_total",
			Help: "Total number of array elements processed by successful invocations",
		}),
		execution: newNativeHistogram(r, prometheus.HistogramOpts{
			Name: "vireo_engine_execution_duration_seconds",
			Help: "Duration of function execution in seconds",
		}),
	}
}

func newNativeHistogram(r prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	opts.NativeHistogramBucketFactor = 1.1
	opts.NativeHistogramMaxBucketNumber = 100
	opts.NativeHistogramMinResetDuration = time.Hour

	return promauto.With(r).NewHistogram(opts)
}
