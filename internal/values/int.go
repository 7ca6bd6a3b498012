package values

import "math/big"

// Int is an arbitrary-precision integer backed by big.Int. This package
// does not check the configured bit-width bound: the numeric package
// checks every arithmetic operand and result against it, while an integer
// literal is not checked until it is used in arithmetic.
type Int struct {
	V *big.Int
}

func (Int) Type() string { return "int" }

// NewInt builds an Int from an int64.
func NewInt(n int64) Int {
	return Int{V: big.NewInt(n)}
}

// NewIntFromBig builds an Int taking ownership of v (the caller must not
// mutate v afterwards).
func NewIntFromBig(v *big.Int) Int {
	return Int{V: v}
}

// Clone returns an Int wrapping a fresh copy of the underlying big.Int, so
// callers can mutate the clone without aliasing the original.
func (i Int) Clone() Int {
	return Int{V: new(big.Int).Set(i.V)}
}

// Int64 reports the value truncated/converted to an int64. Callers should
// only use this after confirming the Int is within range (e.g. after a
// numeric bounds check), such as when it is about to be used to size a
// container.
func (i Int) Int64() int64 {
	return i.V.Int64()
}

// Sign returns -1, 0, or 1.
func (i Int) Sign() int {
	return i.V.Sign()
}

// IsZero reports whether the integer is zero (used for truthiness).
func (i Int) IsZero() bool {
	return i.V.Sign() == 0
}
