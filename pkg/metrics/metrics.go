// Package metrics exposes Prometheus collectors for cross-fade and
// projection activity.
//
// A nil *Metrics is valid and records nothing, so components accept one
// unconditionally.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors shared by the animator and projection.
type Metrics struct {
	AnimationsStarted   prometheus.Counter
	AnimationsRejected  prometheus.Counter
	AnimationsCancelled prometheus.Counter
	DirectPaints        prometheus.Counter
	ProjectionRebuilds  prometheus.Counter
	AnimationDuration   prometheus.Histogram
}

// New creates the collectors and registers them with reg. Pass nil to
// skip registration (useful when several widgets share one process).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnimationsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statefade_animations_started_total",
			Help: "Buffered cross-fades accepted by the platform.",
		}),
		AnimationsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statefade_animations_rejected_total",
			Help: "Paints that requested a cross-fade but were painted directly.",
		}),
		AnimationsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statefade_animations_cancelled_total",
			Help: "In-flight cross-fades stopped by a state change or resize.",
		}),
		DirectPaints: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statefade_direct_paints_total",
			Help: "Paints rendered without buffered animation.",
		}),
		ProjectionRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statefade_projection_rebuilds_total",
			Help: "Wholesale rebuilds of grouped list projections.",
		}),
		AnimationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "statefade_animation_duration_seconds",
			Help:    "Requested duration of accepted cross-fades.",
			Buckets: []float64{0.05, 0.1, 0.2, 0.3, 0.5, 1},
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.AnimationsStarted,
			m.AnimationsRejected,
			m.AnimationsCancelled,
			m.DirectPaints,
			m.ProjectionRebuilds,
			m.AnimationDuration,
		)
	}
	return m
}

// AnimationStarted records an accepted cross-fade of duration d.
func (m *Metrics) AnimationStarted(d time.Duration) {
	if m == nil {
		return
	}
	m.AnimationsStarted.Inc()
	m.AnimationDuration.Observe(d.Seconds())
}

// AnimationRejected records a cross-fade the platform declined.
func (m *Metrics) AnimationRejected() {
	if m == nil {
		return
	}
	m.AnimationsRejected.Inc()
}

// AnimationCancelled records a stopped in-flight cross-fade.
func (m *Metrics) AnimationCancelled() {
	if m == nil {
		return
	}
	m.AnimationsCancelled.Inc()
}

// DirectPaint records a paint that bypassed buffered animation.
func (m *Metrics) DirectPaint() {
	if m == nil {
		return
	}
	m.DirectPaints.Inc()
}

// ProjectionRebuilt records one projection rebuild.
func (m *Metrics) ProjectionRebuilt() {
	if m == nil {
		return
	}
	m.ProjectionRebuilds.Inc()
}
