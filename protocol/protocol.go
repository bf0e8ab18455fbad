// Package protocol implements the global coordinator that ties risk
// modules and capital pools together: it is the directory insurance
// policies are issued through, solving the capital-allocation problem of
// spreading a policy's MCR across every eligible pool.
package protocol

import (
	"log/slog"
	"strings"

	"github.com/ensuro-labs/covercore/capitalpool"
	"github.com/ensuro-labs/covercore/clock"
	"github.com/ensuro-labs/covercore/policy"
	"github.com/ensuro-labs/covercore/riskmodule"
)

// advanceableClock is satisfied by clock implementations that allow a
// caller to move time forward, such as *clock.ManualClock. Production
// clocks (clock.SystemClock) do not implement it.
type advanceableClock interface {
	clock.Clock
	Advance(secs int64) int64
}

// Protocol is the single-threaded, synchronous coordinator described in
// spec section 4.5. It owns the risk-module and pool directories; every
// mutating method must be externally serialized if embedded in a
// concurrent service (spec section 5).
type Protocol struct {
	clk clock.Clock
	log *slog.Logger

	riskModules     map[string]riskmodule.RiskModule
	riskModuleOrder []string

	pools     map[string]*capitalpool.Pool
	poolOrder []string

	policies    []*policy.Policy
	policyCount uint64
}

// New constructs an empty Protocol bound to clk. A nil logger falls back
// to slog.Default(); a nil clock falls back to clock.SystemClock{}.
func New(clk clock.Clock, log *slog.Logger) *Protocol {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Protocol{
		clk:         clk,
		log:         log,
		riskModules: make(map[string]riskmodule.RiskModule),
		pools:       make(map[string]*capitalpool.Pool),
	}
}

// Now returns the protocol's current time, in seconds since epoch.
func (p *Protocol) Now() int64 { return p.clk.Now() }

// FastForwardTime advances the shared clock by secs seconds, for
// deterministic simulation only. It fails if the protocol's clock does
// not support manual advancement.
func (p *Protocol) FastForwardTime(secs int64) (int64, error) {
	advanceable, ok := p.clk.(advanceableClock)
	if !ok {
		return 0, ErrClockNotAdvanceable
	}
	now := advanceable.Advance(secs)
	p.log.Info("clock advanced", "seconds", secs, "now", now)
	return now, nil
}

// AddRiskModule registers rm under its name, last-write-wins. The first
// registration fixes its position in enumeration order.
func (p *Protocol) AddRiskModule(rm riskmodule.RiskModule) error {
	name := strings.TrimSpace(rm.Name())
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := p.riskModules[name]; !exists {
		p.riskModuleOrder = append(p.riskModuleOrder, name)
	}
	p.riskModules[name] = rm
	p.log.Info("risk module registered", "name", name)
	return nil
}

// AddEToken registers pool under its name, last-write-wins. The first
// registration fixes its position in enumeration order.
func (p *Protocol) AddEToken(pool *capitalpool.Pool) error {
	name := strings.TrimSpace(pool.Name())
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := p.pools[name]; !exists {
		p.poolOrder = append(p.poolOrder, name)
	}
	p.pools[name] = pool
	p.log.Info("pool registered", "name", name)
	return nil
}

// RiskModule looks up a registered risk module by name.
func (p *Protocol) RiskModule(name string) (riskmodule.RiskModule, error) {
	rm, ok := p.riskModules[name]
	if !ok {
		return riskmodule.RiskModule{}, ErrRiskModuleNotFound
	}
	return rm, nil
}

// Pool looks up a registered pool by name.
func (p *Protocol) Pool(name string) (*capitalpool.Pool, error) {
	pool, ok := p.pools[name]
	if !ok {
		return nil, ErrPoolNotFound
	}
	return pool, nil
}

// ListRiskModules returns every registered risk module in registration
// order.
func (p *Protocol) ListRiskModules() []riskmodule.RiskModule {
	out := make([]riskmodule.RiskModule, 0, len(p.riskModuleOrder))
	for _, name := range p.riskModuleOrder {
		out = append(out, p.riskModules[name])
	}
	return out
}

// ListPools returns every registered pool in registration order.
func (p *Protocol) ListPools() []*capitalpool.Pool {
	out := make([]*capitalpool.Pool, 0, len(p.poolOrder))
	for _, name := range p.poolOrder {
		out = append(out, p.pools[name])
	}
	return out
}

// Policies returns every policy issued so far, in issuance order.
func (p *Protocol) Policies() []*policy.Policy {
	out := make([]*policy.Policy, len(p.policies))
	copy(out, p.policies)
	return out
}

// PolicyByID looks up a previously issued policy by its assigned ID.
func (p *Protocol) PolicyByID(id uint64) (*policy.Policy, bool) {
	for _, pol := range p.policies {
		if pol.ID() == id {
			return pol, true
		}
	}
	return nil, false
}
