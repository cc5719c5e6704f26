package fixed

import (
	"errors"
	"math"

	"github.com/holiman/uint256"
)

// Precision is the fixed-point scale: a stored integer v represents v/Precision.
const Precision int64 = 100_000_000

var (
	// ErrOverflow indicates a result that does not fit in 64 bits.
	ErrOverflow = errors.New("fixed: 64-bit overflow")

	// ErrDivideByZero indicates a zero divisor.
	ErrDivideByZero = errors.New("fixed: division by zero")
)

// FromFloat converts a real value to fixed point, truncating toward zero and
// saturating at the int64 range.
func FromFloat(v float64) int64 {
	s := math.Trunc(v * float64(Precision))
	switch {
	case math.IsNaN(s):
		return 0
	case s >= math.MaxInt64:
		return math.MaxInt64
	case s <= math.MinInt64:
		return math.MinInt64
	}
	return int64(s)
}

// FromFloatUnsigned is FromFloat for masses. Negative values clamp to zero.
func FromFloatUnsigned(v float64) uint64 {
	s := math.Trunc(v * float64(Precision))
	switch {
	case math.IsNaN(s), s <= 0:
		return 0
	case s >= math.MaxUint64:
		return math.MaxUint64
	}
	return uint64(s)
}

// ToFloat converts a fixed-point value back to a real value.
func ToFloat(v int64) float64 {
	return float64(v) / float64(Precision)
}

// ToFloatUnsigned converts a fixed-point mass back to a real value.
func ToFloatUnsigned(v uint64) float64 {
	return float64(v) / float64(Precision)
}

// Sqrt returns the integer square root of x by Heron's method.
//
// The value returned is the last iterate, which for some non-squares is the
// ceiling rather than the floor (Sqrt(3) == 2). Negative input returns -1.
func Sqrt(x int64) int64 {
	if x < 0 {
		return -1
	}

	xOld := x
	xNew := x/2 + x&1
	for xNew < xOld {
		xOld = xNew
		xNew = (xOld + x/xOld) / 2
	}

	return xNew
}

// GravitationalAcceleration returns one axis of the acceleration that a body
// of the given mass exerts at separation r with axis delta d:
//
//	((((-g*mass*d)*Precision)/r)*Precision/r)/r
//
// Every division truncates toward zero, left to right. Intermediates are
// carried at 256 bits, so only the final value is range checked.
func GravitationalAcceleration(g int64, mass uint64, d, r int64) (int64, error) {
	if r == 0 {
		return 0, ErrDivideByZero
	}
	if mass > math.MaxInt64 {
		return 0, ErrOverflow
	}

	p := wide(Precision)
	rw := wide(r)

	v := wide(-g)
	if g == math.MinInt64 {
		v.Neg(wide(g))
	}
	v.Mul(v, wide(int64(mass)))
	v.Mul(v, wide(d))
	v.Mul(v, p)
	v.SDiv(v, rw)
	v.Mul(v, p)
	v.SDiv(v, rw)
	v.SDiv(v, rw)

	return narrow(v)
}

func wide(v int64) *uint256.Int {
	z := new(uint256.Int)
	if v < 0 {
		z.SetUint64(uint64(-v))
		return z.Neg(z)
	}
	return z.SetUint64(uint64(v))
}

func narrow(z *uint256.Int) (int64, error) {
	if z.Sign() < 0 {
		abs := new(uint256.Int).Neg(z)
		if !abs.IsUint64() || abs.Uint64() > 1<<63 {
			return 0, ErrOverflow
		}
		return -int64(abs.Uint64()), nil
	}
	if !z.IsUint64() || z.Uint64() > math.MaxInt64 {
		return 0, ErrOverflow
	}
	return int64(z.Uint64()), nil
}
