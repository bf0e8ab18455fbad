package capitalpool

import "github.com/ensuro-labs/covercore/fixedpoint"

// Deposit realizes the index, credits amount to provider's balance, and
// re-bases provider's principal to the present index. Returns the new
// visible balance.
func (p *Pool) Deposit(provider Provider, amount fixedpoint.Wad) (fixedpoint.Wad, error) {
	if amount.Sign() <= 0 {
		return fixedpoint.ZeroWad, ErrInvalidAmount
	}
	if err := p.updateCurrentIndex(); err != nil {
		return fixedpoint.ZeroWad, err
	}
	current, err := p.balanceAt(provider, p.currentIndex)
	if err != nil {
		return fixedpoint.ZeroWad, err
	}
	newBalance, err := current.Add(amount)
	if err != nil {
		return fixedpoint.ZeroWad, err
	}
	p.principalBalance[provider] = newBalance
	p.entryIndex[provider] = p.currentIndex
	p.entryTimestamp[provider] = p.lastIndexUpdate
	return newBalance, nil
}

// Redeem withdraws amount from provider's balance, or the provider's full
// balance when amount is nil. It preserves a deliberate ordering quirk
// from the reference implementation this module generalizes: the
// principal is rebased to (balance - amount) using the index as it stood
// *before* this call realizes it to now, so interest accrued between the
// pool's last index update and the present is not paid out on the
// redeemed portion within the same call (flagged as an open question in
// spec section 9; preserved here for behavioral compatibility).
func (p *Pool) Redeem(provider Provider, amount *fixedpoint.Wad) (fixedpoint.Wad, error) {
	if amount != nil && amount.Sign() <= 0 {
		return fixedpoint.ZeroWad, ErrInvalidAmount
	}
	balance, err := p.balanceAt(provider, p.currentIndex)
	if err != nil {
		return fixedpoint.ZeroWad, err
	}
	if balance.Sign() <= 0 {
		return fixedpoint.ZeroWad, nil
	}

	redeemAmount := balance
	if amount != nil && amount.Cmp(balance) < 0 {
		redeemAmount = *amount
	}

	remaining, err := balance.Sub(redeemAmount)
	if err != nil {
		return fixedpoint.ZeroWad, err
	}
	p.principalBalance[provider] = remaining

	if err := p.updateCurrentIndex(); err != nil {
		return fixedpoint.ZeroWad, err
	}

	if remaining.Sign() == 0 {
		delete(p.principalBalance, provider)
		delete(p.entryIndex, provider)
		delete(p.entryTimestamp, provider)
	} else {
		p.entryIndex[provider] = p.currentIndex
		p.entryTimestamp[provider] = p.lastIndexUpdate
	}

	return redeemAmount, nil
}
