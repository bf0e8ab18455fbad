// Package capitalpool implements EToken: an interest-bearing capital pool
// of liquidity-provider deposits that backs insurance policies. Provider
// balances are stored as scaled principal -- principal already divided by
// the provider's entry index -- and read back by multiplying by the
// pool's current, continuously-compounding index. This is the standard
// "scaled balance" rebasing model used by compound-interest lending
// pools, applied here to back insurance MCR instead of loans.
package capitalpool

import (
	"strings"

	"github.com/ensuro-labs/covercore/clock"
	"github.com/ensuro-labs/covercore/fixedpoint"
)

// Pool is a single capital-accruing token (EToken in the reference
// terminology). All mutating methods are synchronous and must be
// serialized by the caller if embedded in a concurrent service (spec
// section 5): there is no internal locking.
type Pool struct {
	name             string
	expirationPeriod int64
	clk              clock.Clock

	currentIndex      fixedpoint.Ray
	lastIndexUpdate   int64
	tokenInterestRate fixedpoint.Ray

	mcr             fixedpoint.Wad
	mcrInterestRate fixedpoint.Ray

	principalBalance map[Provider]fixedpoint.Wad
	entryIndex       map[Provider]fixedpoint.Ray
	entryTimestamp   map[Provider]int64
}

// New constructs a Pool with current_index initialized to 1 and
// last_index_update pinned to the clock's present time, per spec section 3.
func New(name string, expirationPeriod int64, clk clock.Clock) (*Pool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Pool{
		name:             name,
		expirationPeriod: expirationPeriod,
		clk:              clk,
		currentIndex:     fixedpoint.OneRay,
		lastIndexUpdate:  clk.Now(),
		principalBalance: make(map[Provider]fixedpoint.Wad),
		entryIndex:       make(map[Provider]fixedpoint.Ray),
		entryTimestamp:   make(map[Provider]int64),
	}, nil
}

// Name returns the pool's unique identifier.
func (p *Pool) Name() string { return p.name }

// ExpirationPeriod returns the maximum lifetime, in seconds, of a policy
// this pool will accept.
func (p *Pool) ExpirationPeriod() int64 { return p.expirationPeriod }

// CurrentIndex returns the pool's index as of its last realization. It is
// not projected forward to now; call BalanceOf or TotalSupply for a
// present-time view.
func (p *Pool) CurrentIndex() fixedpoint.Ray { return p.currentIndex }

// LastIndexUpdate returns the timestamp the current index was realized at.
func (p *Pool) LastIndexUpdate() int64 { return p.lastIndexUpdate }

// TokenInterestRate returns the annual rate at which the index presently
// grows; the index advances by rate/SecondsPerYear each second.
func (p *Pool) TokenInterestRate() fixedpoint.Ray { return p.tokenInterestRate }

// MCR returns the total backing currently locked by this pool.
func (p *Pool) MCR() fixedpoint.Wad { return p.mcr }

// MCRInterestRate returns the capital-weighted mean interest rate of the
// policies backed by this pool.
func (p *Pool) MCRInterestRate() fixedpoint.Ray { return p.mcrInterestRate }

// HasProvider reports whether provider currently has an active balance.
func (p *Pool) HasProvider(provider Provider) bool {
	_, ok := p.principalBalance[provider]
	return ok
}
