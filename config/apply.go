package config

import (
	"fmt"

	"github.com/ensuro-labs/covercore/capitalpool"
	"github.com/ensuro-labs/covercore/clock"
	"github.com/ensuro-labs/covercore/protocol"
	"github.com/ensuro-labs/covercore/riskmodule"
)

// Apply registers every risk module and pool declared in b onto p, in
// declaration order. It is meant to run once, against a freshly
// constructed, empty Protocol.
func Apply(b Bootstrap, p *protocol.Protocol, clk clock.Clock) error {
	for _, spec := range b.RiskModules {
		rm, err := riskmodule.Build(spec.Name, spec.MCRPercentage, spec.PremiumShare, spec.EnsuroShare)
		if err != nil {
			return fmt.Errorf("config: apply risk module %q: %w", spec.Name, err)
		}
		if err := p.AddRiskModule(rm); err != nil {
			return fmt.Errorf("config: register risk module %q: %w", spec.Name, err)
		}
	}

	for _, spec := range b.Pools {
		pool, err := capitalpool.New(spec.Name, spec.ExpirationPeriodSeconds, clk)
		if err != nil {
			return fmt.Errorf("config: apply pool %q: %w", spec.Name, err)
		}
		if err := p.AddEToken(pool); err != nil {
			return fmt.Errorf("config: register pool %q: %w", spec.Name, err)
		}
	}

	return nil
}
