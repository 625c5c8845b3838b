// Package metrics holds the prometheus instrumentation of the governance module.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gate"

// Metrics counts proposal lifecycle events. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Proposals bound to a new oracle question.
	Admitted prometheus.Counter

	// Transactions executed through the executor.
	Executed prometheus.Counter

	// Question hashes moved to invalidated, partitioned by reason.
	Invalidated *prometheus.CounterVec

	// Rejected operations, partitioned by operation and reason.
	Rejections *prometheus.CounterVec
}

// NewMetrics creates the module counters and registers them with reg. If reg is nil the counters
// are created but not registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Admitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_admitted_total",
			Help:      "How many proposals were bound to a new oracle question.",
		}),
		Executed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_executed_total",
			Help:      "How many proposal transactions were executed.",
		}),
		Invalidated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_invalidated_total",
			Help:      "How many question hashes were invalidated, partitioned by reason.",
		}, []string{"reason"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "How many operations were rejected, partitioned by operation and reason.",
		}, []string{"operation", "reason"}),
	}

	if reg != nil {
		m.Admitted = registerOnce(reg, m.Admitted).(prometheus.Counter)
		m.Executed = registerOnce(reg, m.Executed).(prometheus.Counter)
		m.Invalidated = registerOnce(reg, m.Invalidated).(*prometheus.CounterVec)
		m.Rejections = registerOnce(reg, m.Rejections).(*prometheus.CounterVec)
	}

	return m
}

// ProposalAdmitted counts a proposal bound to a new oracle question.
func (m *Metrics) ProposalAdmitted() {
	if m == nil {
		return
	}
	m.Admitted.Inc()
}

// TransactionExecuted counts a transaction run through the executor.
func (m *Metrics) TransactionExecuted() {
	if m == nil {
		return
	}
	m.Executed.Inc()
}

// ProposalInvalidated counts an invalidated question hash by reason.
func (m *Metrics) ProposalInvalidated(reason string) {
	if m == nil {
		return
	}
	m.Invalidated.WithLabelValues(reason).Inc()
}

// Rejected counts a rejected operation by reason.
func (m *Metrics) Rejected(operation, reason string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(operation, reason).Inc()
}

// registerOnce registers the collector with reg. If an identical collector is already registered
// the existing one is returned. Panics if the collector cannot be registered.
func registerOnce(reg prometheus.Registerer, collector prometheus.Collector) prometheus.Collector {
	if err := reg.Register(collector); err != nil {
		are := prometheus.AlreadyRegisteredError{}
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		panic(err)
	}

	return collector
}
