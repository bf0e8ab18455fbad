// Package metrics exposes a process-wide Prometheus registry tracking
// protocol activity: policies issued, capital locked, and pool balances.
// Call Registry() to obtain the shared instance; it is safe to call from
// multiple goroutines, registration happens exactly once.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Protocol holds every metric this module publishes.
type Protocol struct {
	policiesIssued   *prometheus.CounterVec
	policiesRejected *prometheus.CounterVec
	mcrLocked        *prometheus.GaugeVec
	poolOcean        *prometheus.GaugeVec
	poolTotalSupply  *prometheus.GaugeVec
	indexRealized    *prometheus.CounterVec
}

var (
	once     sync.Once
	registry *Protocol
)

// Registry returns the process-wide metrics registry, constructing and
// registering it with the default Prometheus registerer on first call.
func Registry() *Protocol {
	once.Do(func() {
		registry = &Protocol{
			policiesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "covercore_policies_issued_total",
				Help: "Count of policies successfully issued by risk module.",
			}, []string{"risk_module"}),
			policiesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "covercore_policies_rejected_total",
				Help: "Count of policy issuance attempts rejected, by reason.",
			}, []string{"reason"}),
			mcrLocked: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "covercore_pool_mcr_locked",
				Help: "Current minimum capital requirement locked in a pool.",
			}, []string{"pool"}),
			poolOcean: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "covercore_pool_ocean",
				Help: "Current free capital (total_supply - mcr) in a pool.",
			}, []string{"pool"}),
			poolTotalSupply: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "covercore_pool_total_supply",
				Help: "Current total scaled-balance supply of a pool.",
			}, []string{"pool"}),
			indexRealized: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "covercore_pool_index_realizations_total",
				Help: "Count of current_index realizations performed on a pool.",
			}, []string{"pool"}),
		}
		prometheus.MustRegister(
			registry.policiesIssued,
			registry.policiesRejected,
			registry.mcrLocked,
			registry.poolOcean,
			registry.poolTotalSupply,
			registry.indexRealized,
		)
	})
	return registry
}

// ObservePolicyIssued records a successful issuance under riskModule.
func (m *Protocol) ObservePolicyIssued(riskModule string) {
	if m == nil {
		return
	}
	m.policiesIssued.WithLabelValues(normalise(riskModule)).Inc()
}

// ObservePolicyRejected records a failed issuance attempt, keyed by a short
// reason string (e.g. "insufficient_capital", "invalid_policy").
func (m *Protocol) ObservePolicyRejected(reason string) {
	if m == nil {
		return
	}
	m.policiesRejected.WithLabelValues(normalise(reason)).Inc()
}

// SetPoolSnapshot updates the per-pool gauges in one call, as taken after a
// state-mutating operation on that pool.
func (m *Protocol) SetPoolSnapshot(pool string, mcr, ocean, totalSupply float64) {
	if m == nil {
		return
	}
	label := normalise(pool)
	m.mcrLocked.WithLabelValues(label).Set(mcr)
	m.poolOcean.WithLabelValues(label).Set(ocean)
	m.poolTotalSupply.WithLabelValues(label).Set(totalSupply)
}

// IncIndexRealized records one current_index realization on pool.
func (m *Protocol) IncIndexRealized(pool string) {
	if m == nil {
		return
	}
	m.indexRealized.WithLabelValues(normalise(pool)).Inc()
}

func normalise(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
