// Package metrics exposes Prometheus counters for the transaction core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	OffersSubmitted  prometheus.Counter
	Transitions      *prometheus.CounterVec
	ComplianceBlocks *prometheus.CounterVec
}

// New registers the core counters against the given registerer. Tests pass a
// fresh prometheus.NewRegistry to keep registrations isolated.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OffersSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_offers_submitted_total",
			Help: "Offers successfully submitted.",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_transaction_transitions_total",
			Help: "Successful status transitions by target status.",
		}, []string{"to"}),
		ComplianceBlocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_compliance_blocks_total",
			Help: "Operations blocked by an unmet compliance prerequisite.",
		}, []string{"requirement"}),
	}

	reg.MustRegister(m.OffersSubmitted, m.Transitions, m.ComplianceBlocks)

	return m
}
