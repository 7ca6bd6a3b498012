// Package repr formats runtime values the way the borrowed language's
// str()/repr() builtins and f-string interpolation do. It sits above
// values/container so both internal/eval (f-strings) and internal/
// builtins (str, repr, print) can share one formatting implementation.
package repr

import (
	"strconv"
	"strings"

	"draconic/internal/container"
	"draconic/internal/values"
)

// Str renders v the way `str(v)` or an f-string embedding would: no
// quoting for strings, Python-style float formatting, and
// True/False/None spelled as in Python.
func Str(v values.Value) string {
	if s, ok := v.(*container.SafeStr); ok {
		return s.String()
	}
	return Repr(v)
}

// Repr renders v the way `repr(v)` would: strings are quoted, containers
// show their elements via Repr recursively.
func Repr(v values.Value) string {
	switch t := v.(type) {
	case values.NoneType:
		return "None"
	case values.Bool:
		if t {
			return "True"
		}
		return "False"
	case values.Int:
		return t.V.String()
	case values.Float:
		return formatFloat(float64(t))
	case *container.SafeStr:
		return quote(t.String())
	case *container.SafeList:
		return "[" + joinRepr(t.Items()) + "]"
	case *container.SafeSet:
		if len(t.Elements()) == 0 {
			return "set()"
		}
		return "{" + joinRepr(t.Elements()) + "}"
	case *container.SafeDict:
		var sb strings.Builder
		sb.WriteByte('{')
		keys, vals := t.Keys(), t.Values()
		for i := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(Repr(keys[i]))
			sb.WriteString(": ")
			sb.WriteString(Repr(vals[i]))
		}
		sb.WriteByte('}')
		return sb.String()
	case *values.Tuple:
		if len(t.Elements) == 1 {
			return "(" + Repr(t.Elements[0]) + ",)"
		}
		return "(" + joinRepr(t.Elements) + ")"
	case *values.Function:
		return "<function " + t.Name + ">"
	case *values.Lambda:
		return "<function <lambda>>"
	case *values.Native:
		return "<built-in function " + t.Name + ">"
	case *values.Opaque:
		return "<" + t.TypeName + ">"
	default:
		return "<unknown>"
	}
}

func joinRepr(items []values.Value) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = Repr(it)
	}
	return strings.Join(parts, ", ")
}

func quote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, "\"") {
		return "\"" + s + "\""
	}
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		if exp, err := strconv.Atoi(s[i+1:]); err == nil && exp >= -4 && exp < 16 {
			s = strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
