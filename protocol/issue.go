package protocol

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ensuro-labs/covercore/capitalpool"
	"github.com/ensuro-labs/covercore/fixedpoint"
	"github.com/ensuro-labs/covercore/metrics"
	"github.com/ensuro-labs/covercore/policy"
)

// NewPolicy issues a policy under the named risk module and distributes
// its MCR across every eligible, registered pool proportionally to their
// free capital ("ocean"). It is all-or-nothing: feasibility (step 5 of
// spec section 4.5) is checked before any pool is mutated, so a failure
// never leaves partial state behind.
func (p *Protocol) NewPolicy(riskModuleName string, payout, premium fixedpoint.Wad, lossProb fixedpoint.Ray, expiration int64, parameters map[string]string) (*policy.Policy, error) {
	rm, err := p.RiskModule(riskModuleName)
	if err != nil {
		metrics.Registry().ObservePolicyRejected("risk_module_not_found")
		return nil, err
	}

	start := p.clk.Now()
	nextID := p.policyCount + 1
	pol, err := policy.New(nextID, rm, payout, premium, lossProb, start, expiration)
	if err != nil {
		metrics.Registry().ObservePolicyRejected("invalid_policy")
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if pol.InterestRate().Sign() <= 0 {
		metrics.Registry().ObservePolicyRejected("invalid_policy")
		return nil, fmt.Errorf("%w: interest_rate must be positive, got %s", ErrInvalidPolicy, pol.InterestRate())
	}

	eligible, err := p.eligiblePools(pol)
	if err != nil {
		return nil, err
	}
	totalOcean := fixedpoint.ZeroWad
	for _, e := range eligible {
		totalOcean, err = totalOcean.Add(e.ocean)
		if err != nil {
			return nil, err
		}
	}
	if totalOcean.Cmp(pol.MCR()) < 0 {
		metrics.Registry().ObservePolicyRejected("insufficient_capital")
		return nil, fmt.Errorf("%w: have %s, need %s", ErrInsufficientCapital, totalOcean, pol.MCR())
	}

	allocations, err := allocateMCR(pol.MCR(), eligible, totalOcean)
	if err != nil {
		return nil, err
	}

	for _, alloc := range allocations {
		if err := alloc.pool.LockMCR(pol, alloc.amount); err != nil {
			// Feasibility was validated above against the same ocean
			// figures, so this should not happen outside of a
			// concurrent mutation the single-threaded contract (spec
			// section 5) forbids. Surface it rather than leave the
			// policy partially backed.
			return nil, fmt.Errorf("protocol: lock_mcr on %q: %w", alloc.pool.Name(), err)
		}
		pol.AppendLockedFund(alloc.pool.Name(), alloc.amount)
		p.reportPoolSnapshot(alloc.pool)
	}

	p.policyCount = nextID
	p.policies = append(p.policies, pol)
	metrics.Registry().ObservePolicyIssued(riskModuleName)
	p.log.Info("policy issued", "policy_id", pol.ID(), "risk_module", riskModuleName,
		"mcr", pol.MCR().String(), "pools_used", len(allocations))
	return pol, nil
}

// reportPoolSnapshot publishes pool's current mcr/ocean/total_supply gauges.
// Errors reading the projected total supply are logged, not propagated:
// issuance has already committed by the time this runs.
func (p *Protocol) reportPoolSnapshot(pool *capitalpool.Pool) {
	total, err := pool.TotalSupply()
	if err != nil {
		p.log.Warn("metrics: total_supply", "pool", pool.Name(), "error", err)
		return
	}
	ocean, err := pool.Ocean()
	if err != nil {
		p.log.Warn("metrics: ocean", "pool", pool.Name(), "error", err)
		return
	}
	metrics.Registry().SetPoolSnapshot(pool.Name(), pool.MCR().Float64(), ocean.Float64(), total.Float64())
}

type eligiblePool struct {
	pool  *capitalpool.Pool
	ocean fixedpoint.Wad
}

// eligiblePools enumerates registered pools in registration order,
// keeping only those that accept pol and have positive ocean (spec
// section 4.5 step 4).
func (p *Protocol) eligiblePools(pol *policy.Policy) ([]eligiblePool, error) {
	var out []eligiblePool
	for _, pool := range p.ListPools() {
		if !pool.Accepts(pol) {
			continue
		}
		ocean, err := pool.Ocean()
		if err != nil {
			return nil, err
		}
		if ocean.Sign() <= 0 {
			continue
		}
		out = append(out, eligiblePool{pool: pool, ocean: ocean})
	}
	return out, nil
}

type allocation struct {
	pool   *capitalpool.Pool
	amount fixedpoint.Wad
}

// allocateMCR distributes mcr across eligible pools proportionally to
// their ocean, in enumeration order. Every pool but the last gets
// floor(mcr * pool.ocean / totalOcean), and a pool whose share floors to
// zero gets no allocation; the last eligible pool absorbs whatever remains
// so the allocations sum to mcr exactly (spec section 4.5 step 6, spec
// section 9's truncation-direction note). If that remainder exceeds the
// last pool's ocean, it fails with ErrInsufficientCapital before any pool
// is touched.
func allocateMCR(mcr fixedpoint.Wad, eligible []eligiblePool, totalOcean fixedpoint.Wad) ([]allocation, error) {
	if len(eligible) == 0 {
		return nil, errors.New("protocol: no eligible pools")
	}
	allocations := make([]allocation, 0, len(eligible))
	remaining := mcr
	for i, e := range eligible {
		if i == len(eligible)-1 {
			if remaining.Cmp(e.ocean) > 0 {
				return nil, fmt.Errorf("%w: pool %q cannot absorb remainder %s (ocean %s)", ErrInsufficientCapital, e.pool.Name(), remaining, e.ocean)
			}
			allocations = append(allocations, allocation{pool: e.pool, amount: remaining})
			break
		}
		share := proportionalFloor(mcr, e.ocean, totalOcean)
		if share.Sign() == 0 {
			continue
		}
		allocations = append(allocations, allocation{pool: e.pool, amount: share})
		var err error
		remaining, err = remaining.Sub(share)
		if err != nil {
			return nil, err
		}
	}
	return allocations, nil
}

// proportionalFloor computes floor(mcr * ocean / totalOcean) at Wad
// precision. The raw scaled integers satisfy
// (mcr*10^18)*(ocean*10^18)/(totalOcean*10^18) == floor(mcr*ocean/totalOcean)*10^18,
// so the ratio can be computed directly against the raw representations.
func proportionalFloor(mcr, ocean, totalOcean fixedpoint.Wad) fixedpoint.Wad {
	raw := new(big.Int).Mul(mcr.Raw(), ocean.Raw())
	raw.Quo(raw, totalOcean.Raw())
	return fixedpoint.WadFromRaw(raw)
}
