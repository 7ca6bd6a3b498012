package eval

import (
	"draconic/internal/container"
	"draconic/internal/errors"
	"draconic/internal/numeric"
	"draconic/internal/values"
)

// asInt reports whether v is an Int or Bool (both route through the
// bounded-integer layer), returning the Int it behaves as.
func asInt(v values.Value) (values.Int, bool) {
	switch t := v.(type) {
	case values.Int:
		return t, true
	case values.Bool:
		return t.ToInt(), true
	default:
		return values.Int{}, false
	}
}

func isNumeric(v values.Value) bool {
	switch v.(type) {
	case values.Int, values.Bool, values.Float:
		return true
	default:
		return false
	}
}

// evalBinary dispatches `left OP right` for every Binary operator: integer
// ops route through numeric, containers route through container, and a
// mixed int/float pair always promotes to the unbounded float path.
func (e *Evaluator) evalBinary(op string, left, right values.Value, loc errors.Location) (values.Value, error) {
	switch op {
	case "+":
		return e.evalAdd(left, right, loc)
	case "-":
		return e.evalSub(left, right, loc)
	case "*":
		return e.evalMul(left, right, loc)
	case "/":
		return e.evalTrueDiv(left, right, loc)
	case "//":
		return e.evalFloorDiv(left, right, loc)
	case "%":
		return e.evalMod(left, right, loc)
	case "**":
		return e.evalPow(left, right, loc)
	case "<<", ">>":
		return e.evalShift(op, left, right, loc)
	case "&", "|", "^":
		return e.evalBitwise(op, left, right, loc)
	default:
		return nil, errors.RuntimeTypeErrorf(loc, "unknown binary operator %q", op)
	}
}

func (e *Evaluator) evalAdd(left, right values.Value, loc errors.Location) (values.Value, error) {
	if ls, ok := left.(*container.SafeStr); ok {
		if rs, ok := right.(*container.SafeStr); ok {
			return ls.Concat(rs)
		}
		return nil, typeErr("+", left, right, loc)
	}
	if ll, ok := left.(*container.SafeList); ok {
		if rl, ok := right.(*container.SafeList); ok {
			return ll.Concat(rl)
		}
		return nil, typeErr("+", left, right, loc)
	}
	if lt, ok := left.(*values.Tuple); ok {
		if rt, ok := right.(*values.Tuple); ok {
			combined := append(append([]values.Value(nil), lt.Elements...), rt.Elements...)
			return &values.Tuple{Elements: combined}, nil
		}
		return nil, typeErr("+", left, right, loc)
	}
	if isNumeric(left) && isNumeric(right) {
		return e.numericBinary("+", left, right, loc)
	}
	return nil, typeErr("+", left, right, loc)
}

func (e *Evaluator) evalSub(left, right values.Value, loc errors.Location) (values.Value, error) {
	if isNumeric(left) && isNumeric(right) {
		return e.numericBinary("-", left, right, loc)
	}
	return nil, typeErr("-", left, right, loc)
}

func (e *Evaluator) evalMul(left, right values.Value, loc errors.Location) (values.Value, error) {
	if isNumeric(left) && isNumeric(right) {
		return e.numericBinary("*", left, right, loc)
	}
	if s, n, ok := stringRepeatOperands(left, right); ok {
		return s.Repeat(n)
	}
	if l, n, ok := listRepeatOperands(left, right); ok {
		return l.Repeat(n)
	}
	return nil, typeErr("*", left, right, loc)
}

func stringRepeatOperands(left, right values.Value) (*container.SafeStr, int, bool) {
	if s, ok := left.(*container.SafeStr); ok {
		if n, ok := asInt(right); ok {
			return s, int(n.Int64()), true
		}
	}
	if s, ok := right.(*container.SafeStr); ok {
		if n, ok := asInt(left); ok {
			return s, int(n.Int64()), true
		}
	}
	return nil, 0, false
}

func listRepeatOperands(left, right values.Value) (*container.SafeList, int, bool) {
	if l, ok := left.(*container.SafeList); ok {
		if n, ok := asInt(right); ok {
			return l, int(n.Int64()), true
		}
	}
	if l, ok := right.(*container.SafeList); ok {
		if n, ok := asInt(left); ok {
			return l, int(n.Int64()), true
		}
	}
	return nil, 0, false
}

func (e *Evaluator) evalTrueDiv(left, right values.Value, loc errors.Location) (values.Value, error) {
	if !isNumeric(left) || !isNumeric(right) {
		return nil, typeErr("/", left, right, loc)
	}
	lf, _ := numeric.ToFloat(left)
	rf, _ := numeric.ToFloat(right)
	return numeric.FDiv(lf, rf, loc)
}

func (e *Evaluator) evalFloorDiv(left, right values.Value, loc errors.Location) (values.Value, error) {
	if !isNumeric(left) || !isNumeric(right) {
		return nil, typeErr("//", left, right, loc)
	}
	li, liok := asInt(left)
	ri, riok := asInt(right)
	if liok && riok {
		return numeric.FloorDiv(e.cfg, li, ri, loc)
	}
	lf, _ := numeric.ToFloat(left)
	rf, _ := numeric.ToFloat(right)
	return numeric.FFloorDiv(lf, rf, loc)
}

func (e *Evaluator) evalMod(left, right values.Value, loc errors.Location) (values.Value, error) {
	if !isNumeric(left) || !isNumeric(right) {
		return nil, typeErr("%", left, right, loc)
	}
	li, liok := asInt(left)
	ri, riok := asInt(right)
	if liok && riok {
		return numeric.Mod(e.cfg, li, ri, loc)
	}
	lf, _ := numeric.ToFloat(left)
	rf, _ := numeric.ToFloat(right)
	return numeric.FMod(lf, rf, loc)
}

func (e *Evaluator) evalPow(left, right values.Value, loc errors.Location) (values.Value, error) {
	if !isNumeric(left) || !isNumeric(right) {
		return nil, typeErr("**", left, right, loc)
	}
	li, liok := asInt(left)
	ri, riok := asInt(right)
	if liok && riok && ri.Sign() >= 0 {
		return numeric.Pow(e.cfg, li, ri, loc)
	}
	lf, _ := numeric.ToFloat(left)
	rf, _ := numeric.ToFloat(right)
	return numeric.FPow(lf, rf), nil
}

func (e *Evaluator) evalShift(op string, left, right values.Value, loc errors.Location) (values.Value, error) {
	li, liok := asInt(left)
	ri, riok := asInt(right)
	if !liok || !riok {
		return nil, typeErr(op, left, right, loc)
	}
	if op == "<<" {
		return numeric.Shl(e.cfg, li, ri, loc)
	}
	return numeric.Shr(e.cfg, li, ri, loc)
}

func (e *Evaluator) evalBitwise(op string, left, right values.Value, loc errors.Location) (values.Value, error) {
	if _, lok := left.(*container.SafeSet); lok {
		if _, rok := right.(*container.SafeSet); rok {
			return nil, errors.FeatureNotAvailablef(loc, "set bitwise operator %q is disabled; use the method form instead", op)
		}
	}
	li, liok := asInt(left)
	ri, riok := asInt(right)
	if !liok || !riok {
		return nil, typeErr(op, left, right, loc)
	}
	switch op {
	case "&":
		return numeric.BitAnd(e.cfg, li, ri, loc)
	case "|":
		return numeric.BitOr(e.cfg, li, ri, loc)
	default:
		return numeric.BitXor(e.cfg, li, ri, loc)
	}
}

// numericBinary routes a confirmed-numeric pair through the bounded
// integer layer when both sides are Int/Bool, or the unbounded float
// layer the moment either side is a Float.
func (e *Evaluator) numericBinary(op string, left, right values.Value, loc errors.Location) (values.Value, error) {
	li, liok := asInt(left)
	ri, riok := asInt(right)
	if liok && riok {
		switch op {
		case "+":
			return numeric.Add(e.cfg, li, ri, loc)
		case "-":
			return numeric.Sub(e.cfg, li, ri, loc)
		case "*":
			return numeric.Mul(e.cfg, li, ri, loc)
		}
	}
	lf, _ := numeric.ToFloat(left)
	rf, _ := numeric.ToFloat(right)
	switch op {
	case "+":
		return numeric.FAdd(lf, rf), nil
	case "-":
		return numeric.FSub(lf, rf), nil
	case "*":
		return numeric.FMul(lf, rf), nil
	default:
		return nil, errors.RuntimeTypeErrorf(loc, "unsupported numeric operator %q", op)
	}
}

// evalUnary dispatches unary -, +, ~, and `not`.
func (e *Evaluator) evalUnary(op string, operand values.Value, loc errors.Location) (values.Value, error) {
	switch op {
	case "not":
		return values.Bool(!Truthy(operand)), nil
	case "-":
		if f, ok := operand.(values.Float); ok {
			return numeric.FNeg(f), nil
		}
		if i, ok := asInt(operand); ok {
			return numeric.Neg(e.cfg, i, loc)
		}
		return nil, errors.RuntimeTypeErrorf(loc, "bad operand type for unary -: '%s'", operand.Type())
	case "+":
		if f, ok := operand.(values.Float); ok {
			return f, nil
		}
		if i, ok := asInt(operand); ok {
			return numeric.Pos(e.cfg, i, loc)
		}
		return nil, errors.RuntimeTypeErrorf(loc, "bad operand type for unary +: '%s'", operand.Type())
	case "~":
		i, ok := asInt(operand)
		if !ok {
			return nil, errors.RuntimeTypeErrorf(loc, "bad operand type for unary ~: '%s'", operand.Type())
		}
		one := values.NewInt(1)
		negated, err := numeric.Neg(e.cfg, i, loc)
		if err != nil {
			return nil, err
		}
		return numeric.Sub(e.cfg, negated, one, loc)
	default:
		return nil, errors.RuntimeTypeErrorf(loc, "unknown unary operator %q", op)
	}
}

func typeErr(op string, left, right values.Value, loc errors.Location) error {
	return errors.RuntimeTypeErrorf(loc, "unsupported operand type(s) for %s: '%s' and '%s'", op, left.Type(), right.Type())
}
