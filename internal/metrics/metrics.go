// Package metrics holds the Prometheus collectors for calculator activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"abacus/abacusos/calc"
)

// Metrics counts key presses and evaluations on its own registry.
type Metrics struct {
	Registry *prometheus.Registry

	keys        *prometheus.CounterVec
	evaluations *prometheus.CounterVec
	sessions    prometheus.Gauge
}

// New registers the calculator collectors plus the Go runtime and process
// collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		keys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "abacus",
			Name:      "key_presses_total",
			Help:      "Calculator keys applied, by key kind.",
		}, []string{"kind"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "abacus",
			Name:      "evaluations_total",
			Help:      "Arithmetic evaluations performed, by operator.",
		}, []string{"operator"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "abacus",
			Name:      "sessions_open",
			Help:      "Calculator sessions currently open.",
		}),
	}
	m.Registry.MustRegister(
		m.keys,
		m.evaluations,
		m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveKey records one applied key and, if it produced one, its evaluation.
// A nil receiver is a no-op.
func (m *Metrics) ObserveKey(k calc.Key, ev *calc.Evaluation) {
	if m == nil {
		return
	}
	m.keys.WithLabelValues(k.Kind.String()).Inc()
	if ev != nil {
		m.ObserveEvaluation(ev.Operator)
	}
}

func (m *Metrics) ObserveEvaluation(operator string) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(operator).Inc()
}

// SessionOpened and SessionClosed track the open session gauge.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.sessions.Inc()
	}
}

func (m *Metrics) SessionClosed() {
	if m != nil {
		m.sessions.Dec()
	}
}
