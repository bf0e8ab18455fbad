package config

import "fmt"

// Validate checks a loaded Bootstrap for internal consistency before it is
// applied to a protocol.Protocol: no blank or duplicate names, and sane
// percentage/duration ranges. riskmodule.Build and capitalpool.New still
// re-validate their own narrower preconditions (e.g. premium_share +
// ensuro_share <= 100); this pass catches bootstrap-file mistakes early
// with the file as a whole in view, rather than failing one entry at a
// time during Apply.
func Validate(b Bootstrap) error {
	seenRiskModules := make(map[string]bool, len(b.RiskModules))
	for _, rm := range b.RiskModules {
		if rm.Name == "" {
			return fmt.Errorf("risk_modules: entry with blank name")
		}
		if seenRiskModules[rm.Name] {
			return fmt.Errorf("risk_modules: duplicate name %q", rm.Name)
		}
		seenRiskModules[rm.Name] = true
		if rm.MCRPercentage < 0 || rm.MCRPercentage > 100 {
			return fmt.Errorf("risk_modules[%s]: mcr_percentage %d out of range 0-100", rm.Name, rm.MCRPercentage)
		}
		if rm.PremiumShare < 0 || rm.EnsuroShare < 0 {
			return fmt.Errorf("risk_modules[%s]: shares must not be negative", rm.Name)
		}
		if rm.PremiumShare+rm.EnsuroShare > 100 {
			return fmt.Errorf("risk_modules[%s]: premium_share + ensuro_share exceeds 100", rm.Name)
		}
	}

	seenPools := make(map[string]bool, len(b.Pools))
	for _, pool := range b.Pools {
		if pool.Name == "" {
			return fmt.Errorf("pools: entry with blank name")
		}
		if seenPools[pool.Name] {
			return fmt.Errorf("pools: duplicate name %q", pool.Name)
		}
		seenPools[pool.Name] = true
		if pool.ExpirationPeriodSeconds <= 0 {
			return fmt.Errorf("pools[%s]: expiration_period_seconds must be positive", pool.Name)
		}
	}

	return nil
}
