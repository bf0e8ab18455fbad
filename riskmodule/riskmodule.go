// Package riskmodule defines the immutable parameterization of one class
// of insurance: how much capital a policy must lock (MCR) and how a
// policy's profit premium is split between the module operator and the
// protocol treasury.
package riskmodule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ensuro-labs/covercore/fixedpoint"
)

// ErrEmptyName is returned when a risk module is built with a blank name.
var ErrEmptyName = errors.New("riskmodule: name must not be empty")

// ErrSharesExceedOne is returned when premium_share + ensuro_share > 1.
var ErrSharesExceedOne = errors.New("riskmodule: premium_share + ensuro_share exceeds 100%")

// RiskModule is immutable after construction; every field is fixed at
// Build time and never mutated.
type RiskModule struct {
	name          string
	mcrPercentage fixedpoint.Ray
	premiumShare  fixedpoint.Ray
	ensuroShare   fixedpoint.Ray
}

// Name returns the risk module's unique identifier.
func (rm RiskModule) Name() string { return rm.name }

// MCRPercentage returns the fraction of (payout - premium) that must be
// collateralized.
func (rm RiskModule) MCRPercentage() fixedpoint.Ray { return rm.mcrPercentage }

// PremiumShare returns the fraction of profit-premium routed to the
// module operator.
func (rm RiskModule) PremiumShare() fixedpoint.Ray { return rm.premiumShare }

// EnsuroShare returns the fraction of profit-premium routed to the
// protocol treasury.
func (rm RiskModule) EnsuroShare() fixedpoint.Ray { return rm.ensuroShare }

// Build constructs a RiskModule from integer percentages (0-100), matching
// the constructor the rest of this codebase expects client code to use:
// every fraction argument is divided by 100 to obtain its Ray value.
//
// Defaults when not overridden by the caller: mcrPercentagePct=100,
// premiumSharePct=0, ensuroSharePct=0 (see DefaultBuild).
func Build(name string, mcrPercentagePct, premiumSharePct, ensuroSharePct int64) (RiskModule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return RiskModule{}, ErrEmptyName
	}
	mcrPct, err := fixedpoint.RayFromPercent(mcrPercentagePct)
	if err != nil {
		return RiskModule{}, fmt.Errorf("riskmodule: mcr_percentage: %w", err)
	}
	premiumPct, err := fixedpoint.RayFromPercent(premiumSharePct)
	if err != nil {
		return RiskModule{}, fmt.Errorf("riskmodule: premium_share: %w", err)
	}
	ensuroPct, err := fixedpoint.RayFromPercent(ensuroSharePct)
	if err != nil {
		return RiskModule{}, fmt.Errorf("riskmodule: ensuro_share: %w", err)
	}
	sumShares, err := premiumPct.Add(ensuroPct)
	if err != nil {
		return RiskModule{}, fmt.Errorf("riskmodule: %w", err)
	}
	if sumShares.Cmp(fixedpoint.OneRay) > 0 {
		return RiskModule{}, ErrSharesExceedOne
	}
	return RiskModule{
		name:          name,
		mcrPercentage: mcrPct,
		premiumShare:  premiumPct,
		ensuroShare:   ensuroPct,
	}, nil
}

// DefaultBuild constructs a RiskModule with the default shares described in
// spec section 4.2: full collateralization, no operator or treasury share
// of profit premium.
func DefaultBuild(name string) (RiskModule, error) {
	return Build(name, 100, 0, 0)
}
