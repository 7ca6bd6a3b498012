package eval

import (
	"draconic/internal/container"
	"draconic/internal/numeric"
	"draconic/internal/values"
)

// Equals implements `==` structurally, promoting Bool/Int/Float to a
// common numeric representation the way the borrowed language compares
// across numeric kinds (True == 1, 1 == 1.0, ...), and comparing
// containers element-wise rather than by identity.
func Equals(a, b values.Value) (bool, error) {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf, nil
		}
	}
	switch at := a.(type) {
	case values.NoneType:
		_, ok := b.(values.NoneType)
		return ok, nil
	case *container.SafeStr:
		bt, ok := b.(*container.SafeStr)
		return ok && at.String() == bt.String(), nil
	case *container.SafeList:
		bt, ok := b.(*container.SafeList)
		if !ok {
			return false, nil
		}
		return sliceEquals(at.Items(), bt.Items())
	case *values.Tuple:
		bt, ok := b.(*values.Tuple)
		if !ok {
			return false, nil
		}
		return sliceEquals(at.Elements, bt.Elements)
	case *container.SafeSet:
		bt, ok := b.(*container.SafeSet)
		if !ok || at.Len() != bt.Len() {
			return false, nil
		}
		for _, e := range at.Elements() {
			has, err := bt.Has(e)
			if err != nil || !has {
				return false, err
			}
		}
		return true, nil
	case *container.SafeDict:
		bt, ok := b.(*container.SafeDict)
		if !ok || at.Len() != bt.Len() {
			return false, nil
		}
		keys, vals := at.Keys(), at.Values()
		for i, k := range keys {
			bv, found, err := bt.Get(k)
			if err != nil {
				return false, err
			}
			if !found {
				return false, nil
			}
			eq, err := Equals(vals[i], bv)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	default:
		return a == b, nil
	}
}

func sliceEquals(a, b []values.Value) (bool, error) {
	if len(a) != len(b) {
		return false, nil
	}
	for i := range a {
		eq, err := Equals(a[i], b[i])
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

func asFloat(v values.Value) (float64, bool) {
	f, ok := numeric.ToFloat(v)
	return float64(f), ok
}
