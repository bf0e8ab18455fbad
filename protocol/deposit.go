package protocol

import (
	"fmt"

	"github.com/ensuro-labs/covercore/capitalpool"
	"github.com/ensuro-labs/covercore/fixedpoint"
	"github.com/ensuro-labs/covercore/logging"
	"github.com/ensuro-labs/covercore/metrics"
)

// Deposit credits amount into provider's balance in the named pool. This
// is a thin coordinator-level convenience over Pool.Deposit, per the
// external-interface surface in spec section 6.
func (p *Protocol) Deposit(poolName string, provider capitalpool.Provider, amount fixedpoint.Wad) (fixedpoint.Wad, error) {
	pool, err := p.Pool(poolName)
	if err != nil {
		return fixedpoint.ZeroWad, err
	}
	balance, err := pool.Deposit(provider, amount)
	if err != nil {
		return fixedpoint.ZeroWad, fmt.Errorf("protocol: deposit: %w", err)
	}
	metrics.Registry().IncIndexRealized(poolName)
	p.reportPoolSnapshot(pool)
	p.log.Info("deposit accepted", "pool", poolName, "amount", amount.String(),
		logging.MaskField("provider", string(provider)))
	return balance, nil
}
