package eval

import (
	"draconic/internal/container"
	"draconic/internal/errors"
	"draconic/internal/numeric"
	"draconic/internal/values"
)

// compareOp evaluates one link of a chained comparison. The caller chains
// links left-to-right with short-circuit evaluation, evaluating each
// operand at most once even though it may serve as both the right side of
// one link and the left side of the next.
func compareOp(op string, a, b values.Value, loc errors.Location) (bool, error) {
	switch op {
	case "==":
		return Equals(a, b)
	case "!=":
		eq, err := Equals(a, b)
		return !eq, err
	case "in":
		return membership(b, a, loc)
	case "not in":
		ok, err := membership(b, a, loc)
		return !ok, err
	case "<", "<=", ">", ">=":
		return ordered(op, a, b, loc)
	default:
		return false, errors.RuntimeTypeErrorf(loc, "unknown comparison operator %q", op)
	}
}

// LessThan exposes the `<` ordering rule to callers outside this package
// (internal/builtins' sorted/min/max), without handing out the full
// comparison-operator dispatch.
func LessThan(a, b values.Value) (bool, error) {
	return ordered("<", a, b, errors.Location{})
}

func ordered(op string, a, b values.Value, loc errors.Location) (bool, error) {
	if af, aok := numeric.ToFloat(a); aok {
		if bf, bok := numeric.ToFloat(b); bok {
			return numericOrder(op, float64(af), float64(bf)), nil
		}
	}
	if as, aok := a.(*container.SafeStr); aok {
		if bs, bok := b.(*container.SafeStr); bok {
			return stringOrder(op, as.String(), bs.String()), nil
		}
	}
	return false, errors.RuntimeTypeErrorf(loc, "'%s' not supported between instances of '%s' and '%s'", op, a.Type(), b.Type())
}

func numericOrder(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

func stringOrder(op string, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

// membership implements `item in container` for str/list/set/dict/tuple.
func membership(c, item values.Value, loc errors.Location) (bool, error) {
	switch t := c.(type) {
	case *container.SafeStr:
		s, ok := item.(*container.SafeStr)
		if !ok {
			return false, errors.RuntimeTypeErrorf(loc, "'in <string>' requires string as left operand, not %s", item.Type())
		}
		return containsSubstring(t.String(), s.String()), nil
	case *container.SafeList:
		for _, e := range t.Items() {
			if eq, err := Equals(e, item); err != nil {
				return false, err
			} else if eq {
				return true, nil
			}
		}
		return false, nil
	case *container.SafeSet:
		return t.Has(item)
	case *container.SafeDict:
		_, found, err := t.Get(item)
		return found, err
	case *values.Tuple:
		for _, e := range t.Elements {
			if eq, err := Equals(e, item); err != nil {
				return false, err
			} else if eq {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, errors.RuntimeTypeErrorf(loc, "argument of type '%s' is not iterable", c.Type())
	}
}

func containsSubstring(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	hr, nr := []rune(haystack), []rune(needle)
	if len(nr) > len(hr) {
		return false
	}
	for i := 0; i+len(nr) <= len(hr); i++ {
		match := true
		for j := range nr {
			if hr[i+j] != nr[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
