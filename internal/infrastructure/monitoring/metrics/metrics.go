// Package metrics exposes the Prometheus registry and the instrumentation
// gem-flux-mcp's tool dispatch layer records against: per-tool invocation
// counts and latency, gapfill/FBA-specific duration histograms, and a
// session-store occupancy gauge.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the instrumentation surface the MCP tool registry and
// session store call into. The disabled Recorder returned by NewNop is safe
// to call every method on — metrics are strictly an optional add-on per
// config.MetricsConfig.Enabled.
type Recorder struct {
	registry       *prometheus.Registry
	toolInvokes    *prometheus.CounterVec
	toolDuration   *prometheus.HistogramVec
	gapfillSeconds prometheus.Histogram
	fbaSeconds     prometheus.Histogram
	sessionModels  prometheus.Gauge
	sessionMedia   prometheus.Gauge
	enabled        bool
}

// New builds a Recorder with its own registry (so it never collides with
// Go/process default-collector registrations elsewhere) and registers the
// Go/process collectors alongside the application metrics.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		toolInvokes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gemflux",
			Name:      "tool_invocations_total",
			Help:      "Total MCP tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gemflux",
			Name:      "tool_duration_seconds",
			Help:      "MCP tool handler latency by tool name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		gapfillSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gemflux",
			Name:      "gapfill_duration_seconds",
			Help:      "Duration of the two-stage gapfill pipeline.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		fbaSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gemflux",
			Name:      "fba_duration_seconds",
			Help:      "Duration of a single FBA solve.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		sessionModels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gemflux",
			Name:      "session_models",
			Help:      "Number of draft/gapfilled models currently held in the session store.",
		}),
		sessionMedia: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gemflux",
			Name:      "session_media",
			Help:      "Number of media definitions currently held in the session store.",
		}),
		enabled: true,
	}
	reg.MustRegister(r.toolInvokes, r.toolDuration, r.gapfillSeconds, r.fbaSeconds, r.sessionModels, r.sessionMedia)
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	return r
}

// NewNop returns a Recorder whose methods are all no-ops, used when
// config.MetricsConfig.Enabled is false.
func NewNop() *Recorder { return &Recorder{} }

// Handler returns the /metrics HTTP handler for this Recorder's registry.
// Callers must not call Handler on a NewNop Recorder.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveToolInvocation records one MCP tool call's outcome and latency.
func (r *Recorder) ObserveToolInvocation(tool, outcome string, seconds float64) {
	if !r.enabled {
		return
	}
	r.toolInvokes.WithLabelValues(tool, outcome).Inc()
	r.toolDuration.WithLabelValues(tool).Observe(seconds)
}

// ObserveGapfillDuration records one gapfill_model pipeline run.
func (r *Recorder) ObserveGapfillDuration(seconds float64) {
	if !r.enabled {
		return
	}
	r.gapfillSeconds.Observe(seconds)
}

// ObserveFBADuration records one run_fba solve.
func (r *Recorder) ObserveFBADuration(seconds float64) {
	if !r.enabled {
		return
	}
	r.fbaSeconds.Observe(seconds)
}

// SetSessionOccupancy reports the session store's current model/media counts.
func (r *Recorder) SetSessionOccupancy(models, media int) {
	if !r.enabled {
		return
	}
	r.sessionModels.Set(float64(models))
	r.sessionMedia.Set(float64(media))
}
