package protocol

import (
	"fmt"

	"github.com/ensuro-labs/covercore/capitalpool"
	"github.com/ensuro-labs/covercore/fixedpoint"
	"github.com/ensuro-labs/covercore/logging"
	"github.com/ensuro-labs/covercore/metrics"
)

// Redeem withdraws provider's balance (or amount of it, if non-nil) from
// the named pool. It is a thin coordinator-level convenience over
// Pool.Redeem, per spec section 6's optional coordinator wrapper.
func (p *Protocol) Redeem(poolName string, provider capitalpool.Provider, amount *fixedpoint.Wad) (fixedpoint.Wad, error) {
	pool, err := p.Pool(poolName)
	if err != nil {
		return fixedpoint.ZeroWad, err
	}
	redeemed, err := pool.Redeem(provider, amount)
	if err != nil {
		return fixedpoint.ZeroWad, fmt.Errorf("protocol: redeem: %w", err)
	}
	metrics.Registry().IncIndexRealized(poolName)
	p.reportPoolSnapshot(pool)
	p.log.Info("redeem accepted", "pool", poolName, "amount", redeemed.String(),
		logging.MaskField("provider", string(provider)))
	return redeemed, nil
}
