package numeric

import (
	"math"
	"math/big"

	"draconic/internal/errors"
	"draconic/internal/values"
)

// ToFloat coerces an Int or Bool operand to the unbounded float that a
// mixed int/float operation promotes to; the result is no longer subject
// to the integer bound.
func ToFloat(v values.Value) (values.Float, bool) {
	switch t := v.(type) {
	case values.Float:
		return t, true
	case values.Int:
		f := new(big.Float).SetInt(t.V)
		out, _ := f.Float64()
		return values.Float(out), true
	case values.Bool:
		if t {
			return values.Float(1), true
		}
		return values.Float(0), true
	default:
		return 0, false
	}
}

// FAdd, FSub, FMul, FDiv, FMod, FPow implement the unbounded float
// arithmetic that int/float-mixed or float/float operations promote to.
func FAdd(a, b values.Float) values.Float { return a + b }
func FSub(a, b values.Float) values.Float { return a - b }
func FMul(a, b values.Float) values.Float { return a * b }

func FDiv(a, b values.Float, loc errors.Location) (values.Float, error) {
	if b == 0 {
		return 0, errors.RuntimeTypeErrorf(loc, "float division by zero")
	}
	return a / b, nil
}

func FFloorDiv(a, b values.Float, loc errors.Location) (values.Float, error) {
	if b == 0 {
		return 0, errors.RuntimeTypeErrorf(loc, "float floor division by zero")
	}
	return values.Float(math.Floor(float64(a / b))), nil
}

func FMod(a, b values.Float, loc errors.Location) (values.Float, error) {
	if b == 0 {
		return 0, errors.RuntimeTypeErrorf(loc, "float modulo by zero")
	}
	r := math.Mod(float64(a), float64(b))
	if r != 0 && (r < 0) != (b < 0) {
		r += float64(b)
	}
	return values.Float(r), nil
}

func FPow(a, b values.Float) values.Float {
	return values.Float(math.Pow(float64(a), float64(b)))
}

func FNeg(a values.Float) values.Float { return -a }
