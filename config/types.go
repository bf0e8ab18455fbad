package config

// RiskModuleSpec declares one risk module to register with the protocol at
// bootstrap, in the same integer-percentage shape riskmodule.Build expects.
type RiskModuleSpec struct {
	Name          string `toml:"name" yaml:"name"`
	MCRPercentage int64  `toml:"mcr_percentage" yaml:"mcr_percentage"`
	PremiumShare  int64  `toml:"premium_share" yaml:"premium_share"`
	EnsuroShare   int64  `toml:"ensuro_share" yaml:"ensuro_share"`
}

// PoolSpec declares one capital pool to register with the protocol at
// bootstrap.
type PoolSpec struct {
	Name                    string `toml:"name" yaml:"name"`
	ExpirationPeriodSeconds int64  `toml:"expiration_period_seconds" yaml:"expiration_period_seconds"`
}

// Bootstrap is the declarative description of a protocol's initial risk
// modules and capital pools, loaded from a TOML or YAML file at startup.
type Bootstrap struct {
	RiskModules []RiskModuleSpec `toml:"risk_modules" yaml:"risk_modules"`
	Pools       []PoolSpec       `toml:"pools" yaml:"pools"`
}
