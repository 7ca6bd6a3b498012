package eval

import (
	"draconic/internal/container"
	"draconic/internal/values"
)

// Truthy implements the borrowed language's truthiness rule: 0, 0.0,
// False, None, and empty containers are falsy; everything else is truthy.
func Truthy(v values.Value) bool {
	switch t := v.(type) {
	case values.NoneType:
		return false
	case values.Bool:
		return bool(t)
	case values.Int:
		return !t.IsZero()
	case values.Float:
		return t != 0
	case *container.SafeStr:
		return t.Len() > 0
	case *container.SafeList:
		return t.Len() > 0
	case *container.SafeSet:
		return t.Len() > 0
	case *container.SafeDict:
		return t.Len() > 0
	case *values.Tuple:
		return len(t.Elements) > 0
	default:
		return true
	}
}
