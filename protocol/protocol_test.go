package protocol

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ensuro-labs/covercore/capitalpool"
	"github.com/ensuro-labs/covercore/clock"
	"github.com/ensuro-labs/covercore/fixedpoint"
	"github.com/ensuro-labs/covercore/riskmodule"
)

const day = 24 * 3600
const year = 365 * day

func newTestProtocol(t *testing.T, now int64) (*Protocol, *clock.ManualClock) {
	t.Helper()
	clk := clock.NewManualClock(now)
	return New(clk, nil), clk
}

func mustRiskModule(t *testing.T, name string, mcrPct, premiumPct, ensuroPct int64) riskmodule.RiskModule {
	t.Helper()
	rm, err := riskmodule.Build(name, mcrPct, premiumPct, ensuroPct)
	require.NoError(t, err)
	return rm
}

func mustPool(t *testing.T, name string, expirationPeriod int64, clk clock.Clock) *capitalpool.Pool {
	t.Helper()
	pool, err := capitalpool.New(name, expirationPeriod, clk)
	require.NoError(t, err)
	return pool
}

// TestNewPolicySinglePoolAllocatesFullMCR covers spec scenario 1: a single
// eligible pool absorbs a policy's entire MCR.
func TestNewPolicySinglePoolAllocatesFullMCR(t *testing.T) {
	p, _ := newTestProtocol(t, 0)
	require.NoError(t, p.AddRiskModule(mustRiskModule(t, "RM1", 100, 0, 0)))
	pool := mustPool(t, "P1", year, p.clk)
	require.NoError(t, p.AddEToken(pool))
	_, err := p.Deposit("P1", "alice", fixedpoint.WadFromInt64(10_000))
	require.NoError(t, err)

	lossProb, err := fixedpoint.RayFromPercent(1)
	require.NoError(t, err)
	pol, err := p.NewPolicy("RM1", fixedpoint.WadFromInt64(1000), fixedpoint.WadFromInt64(100), lossProb, 30*day, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1), pol.ID())
	require.Equal(t, 0, pol.MCR().Cmp(fixedpoint.WadFromInt64(900)))

	locked := pol.LockedFunds()
	require.Len(t, locked, 1)
	require.Equal(t, "P1", locked[0].PoolName)
	require.Equal(t, 0, locked[0].Amount.Cmp(pol.MCR()))
	require.Equal(t, 0, pool.MCR().Cmp(pol.MCR()))
}

// TestNewPolicyInterestAccruesToDepositor covers spec scenario 2: after the
// full policy duration, the sole depositor has earned for_lps dollars.
func TestNewPolicyInterestAccruesToDepositor(t *testing.T) {
	p, clk := newTestProtocol(t, 0)
	require.NoError(t, p.AddRiskModule(mustRiskModule(t, "RM1", 100, 0, 0)))
	pool := mustPool(t, "P1", year, p.clk)
	require.NoError(t, p.AddEToken(pool))
	_, err := p.Deposit("P1", "alice", fixedpoint.WadFromInt64(10_000))
	require.NoError(t, err)

	lossProb, err := fixedpoint.RayFromPercent(1)
	require.NoError(t, err)
	_, err = p.NewPolicy("RM1", fixedpoint.WadFromInt64(1000), fixedpoint.WadFromInt64(100), lossProb, 30*day, nil)
	require.NoError(t, err)

	clk.Advance(30 * day)
	bal, err := pool.BalanceOf("alice")
	require.NoError(t, err)
	want := fixedpoint.WadFromInt64(10_090)
	diff, err := want.Sub(bal)
	require.NoError(t, err)
	if diff.Sign() < 0 {
		diff, err = bal.Sub(want)
		require.NoError(t, err)
	}
	require.LessOrEqual(t, diff.Cmp(fixedpoint.WadFromRaw(big.NewInt(1))), 0)
}

// TestNewPolicySplitsMCRProportionallyAcrossPools covers spec scenario 3:
// MCR is split proportionally between two eligible pools by ocean, with the
// last pool absorbing the truncation remainder.
func TestNewPolicySplitsMCRProportionallyAcrossPools(t *testing.T) {
	p, _ := newTestProtocol(t, 0)
	require.NoError(t, p.AddRiskModule(mustRiskModule(t, "RM1", 100, 0, 0)))
	poolA := mustPool(t, "A", year, p.clk)
	poolB := mustPool(t, "B", year, p.clk)
	require.NoError(t, p.AddEToken(poolA))
	require.NoError(t, p.AddEToken(poolB))
	_, err := p.Deposit("A", "alice", fixedpoint.WadFromInt64(3_000))
	require.NoError(t, err)
	_, err = p.Deposit("B", "bob", fixedpoint.WadFromInt64(7_000))
	require.NoError(t, err)

	lossProb, err := fixedpoint.RayFromPercent(1)
	require.NoError(t, err)
	pol, err := p.NewPolicy("RM1", fixedpoint.WadFromInt64(1000), fixedpoint.WadFromInt64(100), lossProb, 30*day, nil)
	require.NoError(t, err)

	locked := pol.LockedFunds()
	require.Len(t, locked, 2)
	sum := fixedpoint.ZeroWad
	for _, lf := range locked {
		sum, err = sum.Add(lf.Amount)
		require.NoError(t, err)
	}
	require.Equal(t, 0, sum.Cmp(pol.MCR()), "allocations must sum exactly to policy MCR")

	// A has 30% of the ocean: floor(900 * 0.3) = 270.
	require.Equal(t, "A", locked[0].PoolName)
	require.Equal(t, 0, locked[0].Amount.Cmp(fixedpoint.WadFromInt64(270)))
	// B is last and absorbs the remainder: 900 - 270 = 630.
	require.Equal(t, "B", locked[1].PoolName)
	require.Equal(t, 0, locked[1].Amount.Cmp(fixedpoint.WadFromInt64(630)))
}

// TestNewPolicySkipsIneligiblePools covers spec scenario 4: a pool whose
// expiration_period is too short to accept the policy is excluded from
// allocation even when it has ocean.
func TestNewPolicySkipsIneligiblePools(t *testing.T) {
	p, _ := newTestProtocol(t, 0)
	require.NoError(t, p.AddRiskModule(mustRiskModule(t, "RM1", 100, 0, 0)))
	short := mustPool(t, "Short", 10*day, p.clk)
	long := mustPool(t, "Long", year, p.clk)
	require.NoError(t, p.AddEToken(short))
	require.NoError(t, p.AddEToken(long))
	_, err := p.Deposit("Short", "alice", fixedpoint.WadFromInt64(10_000))
	require.NoError(t, err)
	_, err = p.Deposit("Long", "bob", fixedpoint.WadFromInt64(10_000))
	require.NoError(t, err)

	lossProb, err := fixedpoint.RayFromPercent(1)
	require.NoError(t, err)
	pol, err := p.NewPolicy("RM1", fixedpoint.WadFromInt64(1000), fixedpoint.WadFromInt64(100), lossProb, 30*day, nil)
	require.NoError(t, err)

	locked := pol.LockedFunds()
	require.Len(t, locked, 1)
	require.Equal(t, "Long", locked[0].PoolName)
	require.True(t, short.MCR().IsZero())
}

// TestNewPolicyBlendsRateAcrossTwoPolicies covers spec scenario 5: locking
// MCR from a second policy against a pool blends mcr_interest_rate by
// capital-weighted average rather than overwriting it.
func TestNewPolicyBlendsRateAcrossTwoPolicies(t *testing.T) {
	p, _ := newTestProtocol(t, 0)
	require.NoError(t, p.AddRiskModule(mustRiskModule(t, "RM1", 100, 0, 0)))
	pool := mustPool(t, "P1", year, p.clk)
	require.NoError(t, p.AddEToken(pool))
	_, err := p.Deposit("P1", "alice", fixedpoint.WadFromInt64(10_000))
	require.NoError(t, err)

	zeroLoss, err := fixedpoint.RayFromPercent(0)
	require.NoError(t, err)
	a, err := p.NewPolicy("RM1", fixedpoint.WadFromInt64(1000), fixedpoint.WadFromInt64(110), zeroLoss, year, nil)
	require.NoError(t, err)
	b, err := p.NewPolicy("RM1", fixedpoint.WadFromInt64(1000), fixedpoint.WadFromInt64(210), zeroLoss, year, nil)
	require.NoError(t, err)

	// mcr_pct=100%, so each policy's MCR is payout-premium: 890 + 790.
	require.Equal(t, 0, pool.MCR().Cmp(fixedpoint.WadFromInt64(1680)))
	require.Positive(t, pool.TokenInterestRate().Sign())

	// mcr_interest_rate = (rate_a*890 + rate_b*790) / 1680.
	shareA, err := a.InterestRate().MulWad(a.MCR())
	require.NoError(t, err)
	shareB, err := b.InterestRate().MulWad(b.MCR())
	require.NoError(t, err)
	numerator, err := shareA.Add(shareB)
	require.NoError(t, err)
	wantRate, err := fixedpoint.RatioToRay(numerator.Raw(), pool.MCR().Raw())
	require.NoError(t, err)
	require.Equal(t, 0, pool.MCRInterestRate().Cmp(wantRate))
	require.Equal(t, 1, pool.MCRInterestRate().Cmp(a.InterestRate()))
	require.Equal(t, -1, pool.MCRInterestRate().Cmp(b.InterestRate()))
}

// TestNewPolicyFailsAllOrNothingWhenCapitalInsufficient covers spec
// scenario 6: when total ocean is below the policy's MCR, no pool is
// mutated.
func TestNewPolicyFailsAllOrNothingWhenCapitalInsufficient(t *testing.T) {
	p, _ := newTestProtocol(t, 0)
	require.NoError(t, p.AddRiskModule(mustRiskModule(t, "RM1", 100, 0, 0)))
	pool := mustPool(t, "P1", year, p.clk)
	require.NoError(t, p.AddEToken(pool))
	_, err := p.Deposit("P1", "alice", fixedpoint.WadFromInt64(500))
	require.NoError(t, err)

	lossProb, err := fixedpoint.RayFromPercent(1)
	require.NoError(t, err)
	_, err = p.NewPolicy("RM1", fixedpoint.WadFromInt64(1000), fixedpoint.WadFromInt64(100), lossProb, 30*day, nil)
	require.ErrorIs(t, err, ErrInsufficientCapital)
	require.True(t, pool.MCR().IsZero())
	require.Empty(t, p.Policies())
}

func TestNewPolicyRejectsUnknownRiskModule(t *testing.T) {
	p, _ := newTestProtocol(t, 0)
	lossProb, err := fixedpoint.RayFromPercent(1)
	require.NoError(t, err)
	_, err = p.NewPolicy("nope", fixedpoint.WadFromInt64(1000), fixedpoint.WadFromInt64(100), lossProb, 30*day, nil)
	require.ErrorIs(t, err, ErrRiskModuleNotFound)
}
