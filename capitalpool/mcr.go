package capitalpool

import (
	"fmt"

	"github.com/ensuro-labs/covercore/fixedpoint"
	"github.com/ensuro-labs/covercore/policy"
)

// Accepts reports whether the pool is willing to back pol: its
// expiration must fall within the pool's expiration_period from now.
func (p *Pool) Accepts(pol *policy.Policy) bool {
	return pol.Expiration() <= p.clk.Now()+p.expirationPeriod
}

// LockMCR locks amount of capital to back pol, updating the pool's
// blended mcr_interest_rate and token_interest_rate. amount must not
// exceed the pool's current ocean.
func (p *Pool) LockMCR(pol *policy.Policy, amount fixedpoint.Wad) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	ocean, err := p.Ocean()
	if err != nil {
		return err
	}
	if amount.Cmp(ocean) > 0 {
		return fmt.Errorf("%w: requested %s, ocean %s", ErrInsufficientOcean, amount, ocean)
	}

	if err := p.updateCurrentIndex(); err != nil {
		return err
	}

	oldMCR := p.mcr
	if oldMCR.IsZero() {
		p.mcr = amount
		p.mcrInterestRate = pol.InterestRate()
	} else {
		weighted, err := blendedRate(p.mcrInterestRate, oldMCR, pol.InterestRate(), amount)
		if err != nil {
			return err
		}
		newMCR, err := oldMCR.Add(amount)
		if err != nil {
			return err
		}
		p.mcr = newMCR
		p.mcrInterestRate = weighted
	}

	totalSupply, err := p.TotalSupply()
	if err != nil {
		return err
	}
	if totalSupply.Sign() > 0 {
		newTokenRate, err := tokenRateFrom(p.mcrInterestRate, p.mcr, totalSupply)
		if err != nil {
			return err
		}
		p.tokenInterestRate = newTokenRate
	}
	return nil
}

// blendedRate computes the capital-weighted mean of two (rate, amount)
// pairs: (oldRate*oldAmount + newRate*newAmount) / (oldAmount+newAmount).
func blendedRate(oldRate fixedpoint.Ray, oldAmount fixedpoint.Wad, newRate fixedpoint.Ray, newAmount fixedpoint.Wad) (fixedpoint.Ray, error) {
	oldShare, err := oldRate.MulWad(oldAmount)
	if err != nil {
		return fixedpoint.ZeroRay, err
	}
	newShare, err := newRate.MulWad(newAmount)
	if err != nil {
		return fixedpoint.ZeroRay, err
	}
	numerator, err := oldShare.Add(newShare)
	if err != nil {
		return fixedpoint.ZeroRay, err
	}
	denominator, err := oldAmount.Add(newAmount)
	if err != nil {
		return fixedpoint.ZeroRay, err
	}
	return fixedpoint.RatioToRay(numerator.Raw(), denominator.Raw())
}

// tokenRateFrom computes mcrInterestRate * mcr / totalSupply as a Ray.
func tokenRateFrom(mcrInterestRate fixedpoint.Ray, mcr, totalSupply fixedpoint.Wad) (fixedpoint.Ray, error) {
	numerator, err := mcrInterestRate.MulWad(mcr)
	if err != nil {
		return fixedpoint.ZeroRay, err
	}
	return fixedpoint.RatioToRay(numerator.Raw(), totalSupply.Raw())
}
