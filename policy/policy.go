// Package policy models a single sold insurance contract: the immutable
// snapshot of its payout, premium, required backing capital (MCR), and the
// annualized interest rate it owes the liquidity providers that back it.
package policy

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ensuro-labs/covercore/fixedpoint"
	"github.com/ensuro-labs/covercore/riskmodule"
)

// SecondsPerYear is the 365-day year used to annualize a policy's interest
// rate and, in the pool index, to turn an annual rate into per-second
// growth.
const SecondsPerYear = 365 * 24 * 3600

// ErrInvalidPolicy covers the structural preconditions a Policy must meet:
// premium < payout, start < expiration, and (checked by the caller per
// spec section 4.3) interest_rate > 0.
var ErrInvalidPolicy = errors.New("policy: invalid policy parameters")

// LockedFund records how much MCR a single pool backed for a policy.
type LockedFund struct {
	PoolName string
	Amount   fixedpoint.Wad
}

// Policy is immutable after construction except for appends to its locked
// funds ledger, which the protocol coordinator performs during issuance.
type Policy struct {
	id           uint64
	riskModule   riskmodule.RiskModule
	payout       fixedpoint.Wad
	premium      fixedpoint.Wad
	lossProb     fixedpoint.Ray
	start        int64
	expiration   int64
	mcr          fixedpoint.Wad
	purePremium  fixedpoint.Wad
	interestRate fixedpoint.Ray
	lockedFunds  []LockedFund
}

// ID returns the policy's monotonically increasing identifier.
func (p *Policy) ID() uint64 { return p.id }

// RiskModule returns the risk module this policy was issued under.
func (p *Policy) RiskModule() riskmodule.RiskModule { return p.riskModule }

// Payout returns the policy's worst-case payout.
func (p *Policy) Payout() fixedpoint.Wad { return p.payout }

// Premium returns the premium paid for the policy.
func (p *Policy) Premium() fixedpoint.Wad { return p.premium }

// LossProb returns the expected probability of full payout.
func (p *Policy) LossProb() fixedpoint.Ray { return p.lossProb }

// Start returns the policy's start time, in seconds since epoch.
func (p *Policy) Start() int64 { return p.start }

// Expiration returns the policy's expiration time, in seconds since epoch.
func (p *Policy) Expiration() int64 { return p.expiration }

// MCR returns the minimum capital requirement this policy must lock.
func (p *Policy) MCR() fixedpoint.Wad { return p.mcr }

// PurePremium returns payout * loss_prob, the expected loss.
func (p *Policy) PurePremium() fixedpoint.Wad { return p.purePremium }

// InterestRate returns the annual Ray rate (fraction of MCR per
// SecondsPerYear) owed to the pools backing this policy's MCR.
func (p *Policy) InterestRate() fixedpoint.Ray { return p.interestRate }

// LockedFunds returns a copy of the (pool_name, amount) allocation ledger.
func (p *Policy) LockedFunds() []LockedFund {
	out := make([]LockedFund, len(p.lockedFunds))
	copy(out, p.lockedFunds)
	return out
}

// AppendLockedFund records that poolName backed amount of this policy's
// MCR. Only the protocol coordinator calls this, during issuance.
func (p *Policy) AppendLockedFund(poolName string, amount fixedpoint.Wad) {
	p.lockedFunds = append(p.lockedFunds, LockedFund{PoolName: poolName, Amount: amount})
}

// New computes every derived quantity eagerly and returns the resulting
// Policy. It does not itself enforce interest_rate > 0 -- per spec section
// 4.3 that check belongs to the coordinator, so callers may inspect a
// policy's intermediates (pure_premium, mcr, interest_rate) even when they
// would ultimately be rejected. New does enforce the structural
// preconditions premium < payout and start < expiration, since violating
// either makes the interest-rate derivation meaningless or divides by
// zero.
func New(id uint64, rm riskmodule.RiskModule, payout, premium fixedpoint.Wad, lossProb fixedpoint.Ray, start, expiration int64) (*Policy, error) {
	if premium.Cmp(payout) >= 0 {
		return nil, fmt.Errorf("%w: premium %s must be less than payout %s", ErrInvalidPolicy, premium, payout)
	}
	if expiration <= start {
		return nil, fmt.Errorf("%w: expiration %d must be after start %d", ErrInvalidPolicy, expiration, start)
	}

	purePremium, err := lossProb.MulWad(payout)
	if err != nil {
		return nil, fmt.Errorf("policy: pure_premium: %w", err)
	}

	payoutMinusPremium, err := payout.Sub(premium)
	if err != nil {
		return nil, fmt.Errorf("policy: %w", err)
	}
	mcr, err := rm.MCRPercentage().MulWad(payoutMinusPremium)
	if err != nil {
		return nil, fmt.Errorf("policy: mcr: %w", err)
	}

	profitPremium, err := premium.Sub(purePremium)
	if err != nil {
		return nil, fmt.Errorf("policy: profit_premium: %w", err)
	}
	forEnsuro, err := rm.EnsuroShare().MulWad(profitPremium)
	if err != nil {
		return nil, fmt.Errorf("policy: for_ensuro: %w", err)
	}
	forRiskModule, err := rm.PremiumShare().MulWad(profitPremium)
	if err != nil {
		return nil, fmt.Errorf("policy: for_risk_module: %w", err)
	}
	forLPs, err := profitPremium.Sub(forEnsuro)
	if err != nil {
		return nil, fmt.Errorf("policy: for_lps: %w", err)
	}
	forLPs, err = forLPs.Sub(forRiskModule)
	if err != nil {
		return nil, fmt.Errorf("policy: for_lps: %w", err)
	}

	interestRate, err := interestRateFor(forLPs, mcr, start, expiration)
	if err != nil {
		return nil, fmt.Errorf("policy: interest_rate: %w", err)
	}

	return &Policy{
		id:           id,
		riskModule:   rm,
		payout:       payout,
		premium:      premium,
		lossProb:     lossProb,
		start:        start,
		expiration:   expiration,
		mcr:          mcr,
		purePremium:  purePremium,
		interestRate: interestRate,
	}, nil
}

// interestRateFor computes for_lps * SECONDS_PER_YEAR / ((expiration -
// start) * mcr) as a Ray, per spec section 3. The numerator and
// denominator are both Wad-scaled "dollar-seconds" quantities, so the
// division is done directly against their raw representations rather than
// through the scale-preserving Ray/Wad operators.
func interestRateFor(forLPs, mcr fixedpoint.Wad, start, expiration int64) (fixedpoint.Ray, error) {
	numerator, err := forLPs.MulInt64(SecondsPerYear)
	if err != nil {
		return fixedpoint.ZeroRay, err
	}
	deltaT := expiration - start
	denominator := new(big.Int).Mul(big.NewInt(deltaT), mcr.Raw())
	return fixedpoint.RatioToRay(numerator.Raw(), denominator)
}
