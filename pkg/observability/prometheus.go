package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	perrors "github.com/matzehuels/stratum/pkg/errors"
)

// PrometheusHooks implements [SolverHooks] and [RenderHooks] on top of
// Prometheus collectors.
type PrometheusHooks struct {
	solves        *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	solveLayers   prometheus.Histogram
	reloads       *prometheus.CounterVec
	renders       *prometheus.CounterVec
	renderBytes   prometheus.Histogram
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// It panics if a collector with the same name is already registered.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stratum_solves_total",
			Help: "Total number of solves, labelled by source and result code.",
		}, []string{"source", "result"}),
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stratum_solve_duration_seconds",
			Help:    "Time spent building and solving constraint graphs.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"source"}),
		solveLayers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stratum_solve_layers",
			Help:    "Number of layers per solve.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stratum_stackfile_reloads_total",
			Help: "Total number of stackfile reloads, labelled by result.",
		}, []string{"result"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stratum_renders_total",
			Help: "Total number of graph renders, labelled by format and result.",
		}, []string{"format", "result"}),
		renderBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stratum_render_bytes",
			Help:    "Size of rendered graph artifacts in bytes.",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		}),
	}
	reg.MustRegister(h.solves, h.solveDuration, h.solveLayers, h.reloads, h.renders, h.renderBytes)
	return h
}

// result turns an error into a low-cardinality label value.
func result(err error) string {
	if err == nil {
		return "ok"
	}
	return string(perrors.Classify(err))
}

func (h *PrometheusHooks) OnSolveStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnSolveComplete(_ context.Context, source string, layerCount int, d time.Duration, err error) {
	h.solves.WithLabelValues(source, result(err)).Inc()
	h.solveDuration.WithLabelValues(source).Observe(d.Seconds())
	h.solveLayers.Observe(float64(layerCount))
}

func (h *PrometheusHooks) OnReload(_ context.Context, _ string, err error) {
	h.reloads.WithLabelValues(result(err)).Inc()
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, format string, size int, _ time.Duration, err error) {
	h.renders.WithLabelValues(format, result(err)).Inc()
	if err == nil {
		h.renderBytes.Observe(float64(size))
	}
}
