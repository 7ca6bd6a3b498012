package container

import (
	"fmt"

	"draconic/internal/values"
)

// keyFor produces a canonical, comparable string key for a hashable
// Value, so SafeSet/SafeDict can use plain Go maps internally while still
// remembering the original Value for iteration and host-visible equality.
func keyFor(v values.Value) (string, error) {
	switch k := v.(type) {
	case values.Int:
		return "i:" + k.V.String(), nil
	case values.Float:
		return fmt.Sprintf("f:%g", float64(k)), nil
	case values.Bool:
		return fmt.Sprintf("b:%t", bool(k)), nil
	case values.NoneType:
		return "n:", nil
	case *SafeStr:
		return "s:" + k.String(), nil
	case *values.Tuple:
		s := "t:("
		for i, e := range k.Elements {
			if i > 0 {
				s += ","
			}
			ek, err := keyFor(e)
			if err != nil {
				return "", err
			}
			s += ek
		}
		return s + ")", nil
	default:
		return "", fmt.Errorf("unhashable type: %q", v.Type())
	}
}
