// Package numeric implements bounded integer arithmetic: every binary/
// unary integer operation is computed at full precision and then checked
// against the configured bit width before being returned.
package numeric

import (
	"math/big"

	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/values"
)

var (
	one = big.NewInt(1)
)

// bounds returns the inclusive [min, max] an Int may occupy for the given
// bit width: [-2^(bits-1), 2^(bits-1)-1].
func bounds(bits int) (*big.Int, *big.Int) {
	half := new(big.Int).Lsh(one, uint(bits-1))
	max := new(big.Int).Sub(half, one)
	min := new(big.Int).Neg(half)
	return min, max
}

// InBounds reports whether v fits the configured bit width.
func InBounds(cfg *config.Config, v *big.Int) bool {
	min, max := bounds(cfg.MaxIntSize)
	return v.Cmp(min) >= 0 && v.Cmp(max) <= 0
}

func checkBound(cfg *config.Config, v *big.Int, loc errors.Location) error {
	if !InBounds(cfg, v) {
		return errors.NumberTooHighf(loc, "integer %s is out of range for a %d-bit integer", v.String(), cfg.MaxIntSize)
	}
	return nil
}

// checkOperands rejects up front if any operand is already outside bounds,
// so an out-of-range intermediate always raises even if the final result
// of the operation would itself land back in range.
func checkOperands(cfg *config.Config, loc errors.Location, operands ...*big.Int) error {
	for _, o := range operands {
		if err := checkBound(cfg, o, loc); err != nil {
			return err
		}
	}
	return nil
}

// Add computes a+b, checking operands then the result.
func Add(cfg *config.Config, a, b values.Int, loc errors.Location) (values.Int, error) {
	if err := checkOperands(cfg, loc, a.V, b.V); err != nil {
		return values.Int{}, err
	}
	r := new(big.Int).Add(a.V, b.V)
	if err := checkBound(cfg, r, loc); err != nil {
		return values.Int{}, err
	}
	return values.NewIntFromBig(r), nil
}

// Sub computes a-b, checking operands then the result.
func Sub(cfg *config.Config, a, b values.Int, loc errors.Location) (values.Int, error) {
	if err := checkOperands(cfg, loc, a.V, b.V); err != nil {
		return values.Int{}, err
	}
	r := new(big.Int).Sub(a.V, b.V)
	if err := checkBound(cfg, r, loc); err != nil {
		return values.Int{}, err
	}
	return values.NewIntFromBig(r), nil
}

// Mul computes a*b, checking operands then the result.
func Mul(cfg *config.Config, a, b values.Int, loc errors.Location) (values.Int, error) {
	if err := checkOperands(cfg, loc, a.V, b.V); err != nil {
		return values.Int{}, err
	}
	r := new(big.Int).Mul(a.V, b.V)
	if err := checkBound(cfg, r, loc); err != nil {
		return values.Int{}, err
	}
	return values.NewIntFromBig(r), nil
}

// Neg computes -a.
func Neg(cfg *config.Config, a values.Int, loc errors.Location) (values.Int, error) {
	if err := checkOperands(cfg, loc, a.V); err != nil {
		return values.Int{}, err
	}
	r := new(big.Int).Neg(a.V)
	if err := checkBound(cfg, r, loc); err != nil {
		return values.Int{}, err
	}
	return values.NewIntFromBig(r), nil
}

// Pos computes +a (a no-op besides the bounds check applied to every
// operand).
func Pos(cfg *config.Config, a values.Int, loc errors.Location) (values.Int, error) {
	if err := checkOperands(cfg, loc, a.V); err != nil {
		return values.Int{}, err
	}
	return a.Clone(), nil
}

// FloorDiv computes a//b with Python's floor-toward-negative-infinity
// semantics (Go's big.Int.Quo truncates toward zero instead).
func FloorDiv(cfg *config.Config, a, b values.Int, loc errors.Location) (values.Int, error) {
	if err := checkOperands(cfg, loc, a.V, b.V); err != nil {
		return values.Int{}, err
	}
	if b.V.Sign() == 0 {
		return values.Int{}, errors.RuntimeTypeErrorf(loc, "integer division or modulo by zero")
	}
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(a.V, b.V, r)
	if r.Sign() != 0 && (r.Sign() < 0) != (b.V.Sign() < 0) {
		q.Sub(q, one)
	}
	if err := checkBound(cfg, q, loc); err != nil {
		return values.Int{}, err
	}
	return values.NewIntFromBig(q), nil
}

// Mod computes a%b with the divisor's sign, matching Python's `%`.
func Mod(cfg *config.Config, a, b values.Int, loc errors.Location) (values.Int, error) {
	if err := checkOperands(cfg, loc, a.V, b.V); err != nil {
		return values.Int{}, err
	}
	if b.V.Sign() == 0 {
		return values.Int{}, errors.RuntimeTypeErrorf(loc, "integer division or modulo by zero")
	}
	r := new(big.Int)
	new(big.Int).QuoRem(a.V, b.V, r)
	if r.Sign() != 0 && (r.Sign() < 0) != (b.V.Sign() < 0) {
		r.Add(r, b.V)
	}
	if err := checkBound(cfg, r, loc); err != nil {
		return values.Int{}, err
	}
	return values.NewIntFromBig(r), nil
}

// BitAnd, BitOr, BitXor compute the bitwise ops over Go's arbitrary-
// precision two's-complement semantics, then bound-check the result.
func BitAnd(cfg *config.Config, a, b values.Int, loc errors.Location) (values.Int, error) {
	return bitwise(cfg, a, b, loc, new(big.Int).And)
}

func BitOr(cfg *config.Config, a, b values.Int, loc errors.Location) (values.Int, error) {
	return bitwise(cfg, a, b, loc, new(big.Int).Or)
}

func BitXor(cfg *config.Config, a, b values.Int, loc errors.Location) (values.Int, error) {
	return bitwise(cfg, a, b, loc, new(big.Int).Xor)
}

func bitwise(cfg *config.Config, a, b values.Int, loc errors.Location, op func(x, y *big.Int) *big.Int) (values.Int, error) {
	if err := checkOperands(cfg, loc, a.V, b.V); err != nil {
		return values.Int{}, err
	}
	r := op(a.V, b.V)
	if err := checkBound(cfg, r, loc); err != nil {
		return values.Int{}, err
	}
	return values.NewIntFromBig(r), nil
}

// Shl computes a<<n. The bit-length of the pre-shift operand plus the
// shift amount is checked before the shift is actually performed, so a
// pathological shift amount can't force an astronomically large
// intermediate allocation and only then get rejected.
func Shl(cfg *config.Config, a, n values.Int, loc errors.Location) (values.Int, error) {
	if err := checkOperands(cfg, loc, a.V, n.V); err != nil {
		return values.Int{}, err
	}
	if n.V.Sign() < 0 {
		return values.Int{}, errors.RuntimeTypeErrorf(loc, "negative shift count")
	}
	if !n.V.IsInt64() {
		return values.Int{}, errors.NumberTooHighf(loc, "shift amount %s is too large", n.V.String())
	}
	shift := n.V.Int64()
	needed := int64(a.V.BitLen()) + shift
	if needed > int64(cfg.MaxIntSize) {
		return values.Int{}, errors.NumberTooHighf(loc, "left shift of %s by %d exceeds %d-bit range", a.V.String(), shift, cfg.MaxIntSize)
	}
	r := new(big.Int).Lsh(a.V, uint(shift))
	if err := checkBound(cfg, r, loc); err != nil {
		return values.Int{}, err
	}
	return values.NewIntFromBig(r), nil
}

// Shr computes a>>n. Right shift only shrinks magnitude, so only the
// operand bound (not the result) can ever be the fault.
func Shr(cfg *config.Config, a, n values.Int, loc errors.Location) (values.Int, error) {
	if err := checkOperands(cfg, loc, a.V, n.V); err != nil {
		return values.Int{}, err
	}
	if n.V.Sign() < 0 {
		return values.Int{}, errors.RuntimeTypeErrorf(loc, "negative shift count")
	}
	if !n.V.IsInt64() {
		return values.NewInt(0), nil
	}
	r := new(big.Int).Rsh(a.V, uint(n.V.Int64()))
	return values.NewIntFromBig(r), nil
}

// Pow computes base**exp for a non-negative integer exponent. A
// bit-length lower bound (exp * (bitlen(|base|)-1)) is checked before the
// full big.Int.Exp is computed, short-circuiting exponents that would
// obviously blow the bit budget without materializing the result.
func Pow(cfg *config.Config, base, exp values.Int, loc errors.Location) (values.Int, error) {
	if err := checkOperands(cfg, loc, base.V, exp.V); err != nil {
		return values.Int{}, err
	}
	if exp.V.Sign() < 0 {
		return values.Int{}, errors.RuntimeTypeErrorf(loc, "negative exponent requires float power")
	}
	if exp.V.Sign() == 0 {
		return values.NewInt(1), nil
	}
	absBase := new(big.Int).Abs(base.V)
	if absBase.Sign() == 0 {
		return values.NewInt(0), nil
	}
	if absBase.Cmp(one) == 0 {
		r := new(big.Int).Exp(base.V, exp.V, nil)
		return values.NewIntFromBig(r), nil
	}
	if !exp.V.IsInt64() {
		return values.Int{}, errors.NumberTooHighf(loc, "exponent %s is too large", exp.V.String())
	}
	e := exp.V.Int64()
	lowerBoundBits := int64(absBase.BitLen()-1) * e
	if lowerBoundBits > int64(cfg.MaxIntSize) {
		return values.Int{}, errors.NumberTooHighf(loc, "%s ** %d exceeds %d-bit range", base.V.String(), e, cfg.MaxIntSize)
	}
	r := new(big.Int).Exp(base.V, exp.V, nil)
	if err := checkBound(cfg, r, loc); err != nil {
		return values.Int{}, err
	}
	return values.NewIntFromBig(r), nil
}
