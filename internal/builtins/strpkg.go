package builtins

import (
	"strings"

	"draconic/internal/config"
	"draconic/internal/container"
	"draconic/internal/errors"
	"draconic/internal/values"
)

func stringMembers(cfg *config.Config) map[string]values.Value {
	asStr := func(who string, v values.Value) (*container.SafeStr, error) {
		s, ok := v.(*container.SafeStr)
		if !ok {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "string.%s() argument must be a str, not '%s'", who, v.Type())
		}
		return s, nil
	}
	return map[string]values.Value{
		"upper": &values.Native{Name: "upper", Fn: func(args []values.Value) (values.Value, error) {
			s, err := asStr("upper", arg0(args))
			if err != nil {
				return nil, err
			}
			return container.NewSafeStr(cfg, strings.ToUpper(s.String()))
		}},
		"lower": &values.Native{Name: "lower", Fn: func(args []values.Value) (values.Value, error) {
			s, err := asStr("lower", arg0(args))
			if err != nil {
				return nil, err
			}
			return container.NewSafeStr(cfg, strings.ToLower(s.String()))
		}},
		"strip": &values.Native{Name: "strip", Fn: func(args []values.Value) (values.Value, error) {
			s, err := asStr("strip", arg0(args))
			if err != nil {
				return nil, err
			}
			return container.NewSafeStr(cfg, strings.TrimSpace(s.String()))
		}},
		"split": &values.Native{Name: "split", Fn: func(args []values.Value) (values.Value, error) {
			if len(args) < 1 || len(args) > 2 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "string.split() takes one or two arguments (%d given)", len(args))
			}
			s, err := asStr("split", args[0])
			if err != nil {
				return nil, err
			}
			var parts []string
			if len(args) == 2 {
				sep, err := asStr("split", args[1])
				if err != nil {
					return nil, err
				}
				parts = strings.Split(s.String(), sep.String())
			} else {
				parts = strings.Fields(s.String())
			}
			items := make([]values.Value, len(parts))
			for i, p := range parts {
				sv, err := container.NewSafeStr(cfg, p)
				if err != nil {
					return nil, err
				}
				items[i] = sv
			}
			return container.NewSafeList(cfg, items)
		}},
		"join": &values.Native{Name: "join", Fn: func(args []values.Value) (values.Value, error) {
			if len(args) != 2 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "string.join() takes exactly two arguments (%d given)", len(args))
			}
			sep, err := asStr("join", args[0])
			if err != nil {
				return nil, err
			}
			elems, err := container.Elements(args[1])
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(elems))
			for i, el := range elems {
				es, err := asStr("join", el)
				if err != nil {
					return nil, err
				}
				parts[i] = es.String()
			}
			return container.NewSafeStr(cfg, strings.Join(parts, sep.String()))
		}},
		"replace": &values.Native{Name: "replace", Fn: func(args []values.Value) (values.Value, error) {
			if len(args) != 3 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "string.replace() takes exactly three arguments (%d given)", len(args))
			}
			s, err := asStr("replace", args[0])
			if err != nil {
				return nil, err
			}
			old, err := asStr("replace", args[1])
			if err != nil {
				return nil, err
			}
			new_, err := asStr("replace", args[2])
			if err != nil {
				return nil, err
			}
			return container.NewSafeStr(cfg, strings.ReplaceAll(s.String(), old.String(), new_.String()))
		}},
		"contains": &values.Native{Name: "contains", Fn: func(args []values.Value) (values.Value, error) {
			if len(args) != 2 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "string.contains() takes exactly two arguments (%d given)", len(args))
			}
			s, err := asStr("contains", args[0])
			if err != nil {
				return nil, err
			}
			sub, err := asStr("contains", args[1])
			if err != nil {
				return nil, err
			}
			return values.Bool(strings.Contains(s.String(), sub.String())), nil
		}},
		"startswith": &values.Native{Name: "startswith", Fn: func(args []values.Value) (values.Value, error) {
			if len(args) != 2 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "string.startswith() takes exactly two arguments (%d given)", len(args))
			}
			s, err := asStr("startswith", args[0])
			if err != nil {
				return nil, err
			}
			prefix, err := asStr("startswith", args[1])
			if err != nil {
				return nil, err
			}
			return values.Bool(strings.HasPrefix(s.String(), prefix.String())), nil
		}},
		"endswith": &values.Native{Name: "endswith", Fn: func(args []values.Value) (values.Value, error) {
			if len(args) != 2 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "string.endswith() takes exactly two arguments (%d given)", len(args))
			}
			s, err := asStr("endswith", args[0])
			if err != nil {
				return nil, err
			}
			suffix, err := asStr("endswith", args[1])
			if err != nil {
				return nil, err
			}
			return values.Bool(strings.HasSuffix(s.String(), suffix.String())), nil
		}},
	}
}

func arg0(args []values.Value) values.Value {
	if len(args) == 0 {
		return values.None
	}
	return args[0]
}
