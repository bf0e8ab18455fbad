package fixedpoint

import "math/big"

// Wad is a fixed-point decimal with 18 fractional digits, used for every
// monetary amount in the accounting core (payouts, premiums, balances).
type Wad struct {
	raw *big.Int
}

// ZeroWad is the additive identity.
var ZeroWad = Wad{}

// WadFromInt64 lifts an integer literal to a Wad, i.e. n * 10^18. This is
// the `from_value` constructor of the fixed-point spec.
func WadFromInt64(n int64) Wad {
	return Wad{raw: new(big.Int).Mul(big.NewInt(n), wadScale)}
}

// WadFromRaw wraps an already-scaled integer (i.e. raw = value * 10^18)
// as a Wad without further scaling.
func WadFromRaw(raw *big.Int) Wad {
	return Wad{raw: new(big.Int).Set(rawOf(raw))}
}

// WadFromFraction computes num/den as a Wad, truncating toward zero. den
// must be non-zero.
func WadFromFraction(num, den int64) (Wad, error) {
	if den == 0 {
		return ZeroWad, ErrDivisionByZero
	}
	raw := new(big.Int).Mul(big.NewInt(num), wadScale)
	raw.Quo(raw, big.NewInt(den))
	if err := checkRange(raw); err != nil {
		return ZeroWad, err
	}
	return Wad{raw: raw}, nil
}

// Raw returns a copy of the underlying scaled integer representation.
func (w Wad) Raw() *big.Int {
	return new(big.Int).Set(rawOf(w.raw))
}

// IsZero reports whether w represents zero.
func (w Wad) IsZero() bool {
	return rawOf(w.raw).Sign() == 0
}

// Sign returns -1, 0, or 1 depending on the sign of w.
func (w Wad) Sign() int {
	return rawOf(w.raw).Sign()
}

// Cmp compares w to o, returning -1, 0, or 1.
func (w Wad) Cmp(o Wad) int {
	return rawOf(w.raw).Cmp(rawOf(o.raw))
}

// Add returns w + o.
func (w Wad) Add(o Wad) (Wad, error) {
	sum := new(big.Int).Add(rawOf(w.raw), rawOf(o.raw))
	if err := checkRange(sum); err != nil {
		return ZeroWad, err
	}
	return Wad{raw: sum}, nil
}

// Sub returns w - o. The result may be negative; callers that require
// non-negative balances must check Sign() themselves.
func (w Wad) Sub(o Wad) (Wad, error) {
	diff := new(big.Int).Sub(rawOf(w.raw), rawOf(o.raw))
	if err := checkRange(diff); err != nil {
		return ZeroWad, err
	}
	return Wad{raw: diff}, nil
}

// Mul returns w * o with the product rescaled back to Wad precision,
// truncating toward zero.
func (w Wad) Mul(o Wad) (Wad, error) {
	product := new(big.Int).Mul(rawOf(w.raw), rawOf(o.raw))
	product.Quo(product, wadScale)
	if err := checkRange(product); err != nil {
		return ZeroWad, err
	}
	return Wad{raw: product}, nil
}

// Div returns w / o, truncating toward zero.
func (w Wad) Div(o Wad) (Wad, error) {
	if rawOf(o.raw).Sign() == 0 {
		return ZeroWad, ErrDivisionByZero
	}
	numerator := new(big.Int).Mul(rawOf(w.raw), wadScale)
	numerator.Quo(numerator, rawOf(o.raw))
	if err := checkRange(numerator); err != nil {
		return ZeroWad, err
	}
	return Wad{raw: numerator}, nil
}

// MulInt64 scales w by a plain integer count (not a Wad fraction) without
// rescaling the result, e.g. converting a per-second amount into a
// per-year one. Use Mul for Wad*Wad products.
func (w Wad) MulInt64(n int64) (Wad, error) {
	product := new(big.Int).Mul(rawOf(w.raw), big.NewInt(n))
	if err := checkRange(product); err != nil {
		return ZeroWad, err
	}
	return Wad{raw: product}, nil
}

// ToRay converts a Wad to a Ray at full precision (multiplies by 10^9).
func (w Wad) ToRay() Ray {
	return Ray{raw: new(big.Int).Mul(rawOf(w.raw), wadToRay)}
}

// String renders the Wad using its raw scaled integer, for diagnostics.
func (w Wad) String() string {
	return rawOf(w.raw).String()
}

// Float64 approximates w as a float64 dollar amount, for metrics gauges and
// other lossy observability surfaces. Never use it for accounting math.
func (w Wad) Float64() float64 {
	f := new(big.Float).SetInt(rawOf(w.raw))
	f.Quo(f, new(big.Float).SetInt(wadScale))
	result, _ := f.Float64()
	return result
}
