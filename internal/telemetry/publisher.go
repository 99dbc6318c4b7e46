// Package telemetry exports event manager notifications as Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"audiod/internal/manager"
)

const namespace = "audiod"

// Publisher implements manager.EventPublisher on top of Prometheus
// collectors. It never blocks, so it is safe to call under the manager lock.
type Publisher struct {
	constructed *prometheus.CounterVec
	destructed  prometheus.Counter
	switches    *prometheus.CounterVec
	failures    *prometheus.CounterVec
	violations  *prometheus.CounterVec
	tracked     prometheus.Gauge
}

var _ manager.EventPublisher = (*Publisher)(nil)

// NewPublisher creates the collectors and registers them with reg.
func NewPublisher(reg prometheus.Registerer) *Publisher {
	p := &Publisher{
		constructed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_constructed_total",
			Help:      "Events constructed, by backend",
		}, []string{"backend"}),
		destructed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_destructed_total",
			Help:      "Events destructed individually",
		}),
		switches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "impl_switches_total",
			Help:      "Backend switches, by target backend",
		}, []string{"backend"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "construct_failures_total",
			Help:      "Backend construct failures, by backend",
		}, []string{"backend"}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_violations_total",
			Help:      "Event manager contract violations, by operation",
		}, []string{"op"}),
		tracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_tracked",
			Help:      "Events currently tracked by the event manager",
		}),
	}
	reg.MustRegister(p.constructed, p.destructed, p.switches, p.failures, p.violations, p.tracked)
	return p
}

// Publish updates the collectors for n.
func (p *Publisher) Publish(n manager.Notification) {
	switch n.Name {
	case manager.NoteEventConstructed:
		p.constructed.WithLabelValues(n.Backend).Inc()
		p.tracked.Inc()
	case manager.NoteEventDestructed:
		p.destructed.Inc()
		p.tracked.Dec()
	case manager.NoteEventsReleased:
		if k, ok := n.Fields["events"].(int); ok {
			p.tracked.Sub(float64(k))
		}
	case manager.NoteImplChanged:
		p.switches.WithLabelValues(n.Backend).Inc()
	case manager.NoteConstructFailed:
		p.failures.WithLabelValues(n.Backend).Inc()
	case manager.NoteContractViolation:
		op, _ := n.Fields["op"].(string)
		p.violations.WithLabelValues(op).Inc()
	}
}
