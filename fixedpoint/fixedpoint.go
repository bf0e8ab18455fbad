// Package fixedpoint implements the two fixed-point decimal scales used
// throughout the accounting core: Wad (18 fractional decimals, monetary
// amounts) and Ray (27 fractional decimals, rates and fractions). Both are
// backed by arbitrary-precision integers and bounded to fit a signed
// 256-bit word, matching the precision of the on-chain accounting this
// module's arithmetic is modelled on.
package fixedpoint

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrDivisionByZero is returned by Div when the divisor is zero.
var ErrDivisionByZero = errors.New("fixedpoint: division by zero")

// ErrOverflow is returned when a result would not fit in a signed 256-bit
// integer.
var ErrOverflow = errors.New("fixedpoint: overflow")

const (
	// WadDecimals is the fractional precision of Wad values.
	WadDecimals = 18
	// RayDecimals is the fractional precision of Ray values.
	RayDecimals = 27
)

var (
	wadScale = pow10(WadDecimals)
	rayScale = pow10(RayDecimals)
	wadToRay = pow10(RayDecimals - WadDecimals)

	// maxWord and minWord bound the representable range to a signed
	// 256-bit integer: [-2^255, 2^255-1].
	maxWord = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	minWord = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
)

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

func checkRange(v *big.Int) error {
	if v.Cmp(maxWord) > 0 || v.Cmp(minWord) < 0 {
		return fmt.Errorf("%w: %s exceeds signed 256-bit range", ErrOverflow, v.String())
	}
	return nil
}

func rawOf(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
