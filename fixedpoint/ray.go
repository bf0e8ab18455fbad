package fixedpoint

import "math/big"

// Ray is a fixed-point decimal with 27 fractional digits, used for every
// rate and fraction in the accounting core (interest rates, MCR
// percentages, loss probabilities).
type Ray struct {
	raw *big.Int
}

// ZeroRay is the additive identity.
var ZeroRay = Ray{}

// OneRay is the multiplicative identity, i.e. the Ray representation of 1.0.
var OneRay = Ray{raw: new(big.Int).Set(rayScale)}

// RayFromInt64 lifts an integer literal to a Ray, i.e. n * 10^27.
func RayFromInt64(n int64) Ray {
	return Ray{raw: new(big.Int).Mul(big.NewInt(n), rayScale)}
}

// RayFromRaw wraps an already-scaled integer (i.e. raw = value * 10^27) as
// a Ray without further scaling.
func RayFromRaw(raw *big.Int) Ray {
	return Ray{raw: new(big.Int).Set(rawOf(raw))}
}

// RayFromFraction computes num/den as a Ray, truncating toward zero. den
// must be non-zero.
func RayFromFraction(num, den int64) (Ray, error) {
	if den == 0 {
		return ZeroRay, ErrDivisionByZero
	}
	raw := new(big.Int).Mul(big.NewInt(num), rayScale)
	raw.Quo(raw, big.NewInt(den))
	if err := checkRange(raw); err != nil {
		return ZeroRay, err
	}
	return Ray{raw: raw}, nil
}

// RayFromPercent converts an integer percentage (0-100) to its Ray
// fraction, i.e. pct/100. Used by RiskModule construction per spec section 4.2.
func RayFromPercent(pct int64) (Ray, error) {
	return RayFromFraction(pct, 100)
}

// Raw returns a copy of the underlying scaled integer representation.
func (r Ray) Raw() *big.Int {
	return new(big.Int).Set(rawOf(r.raw))
}

// IsZero reports whether r represents zero.
func (r Ray) IsZero() bool {
	return rawOf(r.raw).Sign() == 0
}

// Sign returns -1, 0, or 1 depending on the sign of r.
func (r Ray) Sign() int {
	return rawOf(r.raw).Sign()
}

// Cmp compares r to o, returning -1, 0, or 1.
func (r Ray) Cmp(o Ray) int {
	return rawOf(r.raw).Cmp(rawOf(o.raw))
}

// Add returns r + o.
func (r Ray) Add(o Ray) (Ray, error) {
	sum := new(big.Int).Add(rawOf(r.raw), rawOf(o.raw))
	if err := checkRange(sum); err != nil {
		return ZeroRay, err
	}
	return Ray{raw: sum}, nil
}

// Sub returns r - o. The result may be negative.
func (r Ray) Sub(o Ray) (Ray, error) {
	diff := new(big.Int).Sub(rawOf(r.raw), rawOf(o.raw))
	if err := checkRange(diff); err != nil {
		return ZeroRay, err
	}
	return Ray{raw: diff}, nil
}

// Mul returns r * o with the product rescaled back to Ray precision,
// truncating toward zero.
func (r Ray) Mul(o Ray) (Ray, error) {
	product := new(big.Int).Mul(rawOf(r.raw), rawOf(o.raw))
	product.Quo(product, rayScale)
	if err := checkRange(product); err != nil {
		return ZeroRay, err
	}
	return Ray{raw: product}, nil
}

// Div returns r / o, truncating toward zero.
func (r Ray) Div(o Ray) (Ray, error) {
	if rawOf(o.raw).Sign() == 0 {
		return ZeroRay, ErrDivisionByZero
	}
	numerator := new(big.Int).Mul(rawOf(r.raw), rayScale)
	numerator.Quo(numerator, rawOf(o.raw))
	if err := checkRange(numerator); err != nil {
		return ZeroRay, err
	}
	return Ray{raw: numerator}, nil
}

// ToWad converts a Ray to a Wad, truncating toward zero (divides by 10^9).
func (r Ray) ToWad() Wad {
	return Wad{raw: new(big.Int).Quo(rawOf(r.raw), wadToRay)}
}

// MulWad multiplies a Ray rate by a Wad amount, returning a Wad. This is
// the common "amount * rate" shape used throughout the pool and policy
// math, where mixing scales is otherwise disallowed by the type system.
func (r Ray) MulWad(w Wad) (Wad, error) {
	product := new(big.Int).Mul(rawOf(w.raw), rawOf(r.raw))
	product.Quo(product, rayScale)
	if err := checkRange(product); err != nil {
		return ZeroWad, err
	}
	return Wad{raw: product}, nil
}

// String renders the Ray using its raw scaled integer, for diagnostics.
func (r Ray) String() string {
	return rawOf(r.raw).String()
}

// RatioToRay computes numerator/denominator as a Ray, truncating toward
// zero. Unlike Div, the inputs are raw big integers sharing an arbitrary
// common unit (e.g. Wad-scaled dollar-seconds on both sides) rather than
// two Ray values; this is the composite cross-scale division Policy's
// interest-rate derivation needs (spec section 3).
func RatioToRay(numerator, denominator *big.Int) (Ray, error) {
	if denominator == nil || denominator.Sign() == 0 {
		return ZeroRay, ErrDivisionByZero
	}
	scaled := new(big.Int).Mul(rawOf(numerator), rayScale)
	scaled.Quo(scaled, denominator)
	if err := checkRange(scaled); err != nil {
		return ZeroRay, err
	}
	return Ray{raw: scaled}, nil
}
