// Package metrics exposes chase session counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "divecatch"

// Metrics holds the session collectors. A nil *Metrics records nothing, so
// sessions built without one need no guards.
type Metrics struct {
	active   prometheus.Gauge
	ticks    prometheus.Counter
	tickTime prometheus.Histogram
	captures prometheus.Counter
	dives    prometheus.Counter
	hops     prometheus.Counter
	outcomes *prometheus.CounterVec
	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_running",
			Help:      "Sessions whose tick loop is running.",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks across all sessions.",
		}),
		tickTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent inside one tick, broadcast included.",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
		}),
		captures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "captures_total",
			Help:      "Evaders caught by a diving pursuer.",
		}),
		dives: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dives_total",
			Help:      "Dives started in finished sessions.",
		}),
		hops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hops_total",
			Help:      "Escape hops taken in finished sessions.",
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_ended_total",
			Help:      "Finished sessions by outcome.",
		}, []string{"outcome"}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{m.active, m.ticks, m.tickTime, m.captures, m.dives, m.hops, m.outcomes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.active.Inc()
}

// SessionEnded records a finished session's totals.
func (m *Metrics) SessionEnded(outcome string, dives, hops int) {
	if m == nil {
		return
	}
	m.active.Dec()
	m.outcomes.WithLabelValues(outcome).Inc()
	m.dives.Add(float64(dives))
	m.hops.Add(float64(hops))
}

func (m *Metrics) Tick(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.tickTime.Observe(elapsed.Seconds())
}

func (m *Metrics) Captured() {
	if m == nil {
		return
	}
	m.captures.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
