package container

import (
	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/values"
)

// SafeDict is the drop-in replacement for a native dict.
type SafeDict struct {
	cfg   *config.Config
	keys  map[string]values.Value
	vals  map[string]values.Value
	order []string
}

func (*SafeDict) Type() string { return "dict" }

// KV is one key/value pair, used to seed a SafeDict at construction.
type KV struct {
	Key   values.Value
	Value values.Value
}

// NewSafeDict builds a SafeDict from the given pairs, rejecting the
// result outright if it would exceed the limit.
func NewSafeDict(cfg *config.Config, pairs []KV) (*SafeDict, error) {
	d := &SafeDict{
		cfg:  cfg,
		keys: make(map[string]values.Value),
		vals: make(map[string]values.Value),
	}
	for _, p := range pairs {
		if err := d.Set(p.Key, p.Value); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// NewSafeDictFromPairs builds a SafeDict from an iterable of 2-element
// tuples/lists, matching forms like `dict(((1,1),(2,2)))` and
// `dict((i, i) for i in range(1000))`.
func NewSafeDictFromPairs(cfg *config.Config, it values.Value) (*SafeDict, error) {
	elems, err := Elements(it)
	if err != nil {
		return nil, err
	}
	pairs := make([]KV, 0, len(elems))
	for _, e := range elems {
		k, v, err := asPair(e)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, KV{Key: k, Value: v})
	}
	return NewSafeDict(cfg, pairs)
}

func asPair(v values.Value) (values.Value, values.Value, error) {
	switch t := v.(type) {
	case *values.Tuple:
		if len(t.Elements) != 2 {
			return nil, nil, errors.RuntimeTypeErrorf(errors.Location{}, "dictionary update sequence element has length %d; 2 is required", len(t.Elements))
		}
		return t.Elements[0], t.Elements[1], nil
	case *SafeList:
		if t.Len() != 2 {
			return nil, nil, errors.RuntimeTypeErrorf(errors.Location{}, "dictionary update sequence element has length %d; 2 is required", t.Len())
		}
		items := t.Items()
		return items[0], items[1], nil
	default:
		return nil, nil, errors.RuntimeTypeErrorf(errors.Location{}, "cannot convert dictionary update sequence element of type %s", v.Type())
	}
}

// Len returns the current number of entries.
func (d *SafeDict) Len() int { return len(d.order) }

// Get looks up a key.
func (d *SafeDict) Get(key values.Value) (values.Value, bool, error) {
	k, err := keyFor(key)
	if err != nil {
		return nil, false, err
	}
	v, ok := d.vals[k]
	return v, ok, nil
}

// Set inserts or updates an entry, failing with IterableTooLong when the
// key is new and the grown dict would exceed the limit.
func (d *SafeDict) Set(key, val values.Value) error {
	k, err := keyFor(key)
	if err != nil {
		return err
	}
	if _, exists := d.vals[k]; !exists {
		if err := checkLen(d.cfg, len(d.order)+1, "dict"); err != nil {
			return err
		}
		d.order = append(d.order, k)
	}
	d.keys[k] = key
	d.vals[k] = val
	return nil
}

// Delete removes a key if present. Shrinking never needs a length check.
func (d *SafeDict) Delete(key values.Value) error {
	k, err := keyFor(key)
	if err != nil {
		return err
	}
	if _, exists := d.vals[k]; !exists {
		return nil
	}
	delete(d.keys, k)
	delete(d.vals, k)
	for i, o := range d.order {
		if o == k {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

// Update merges other's entries in, checking the union size against the
// limit before committing any of it.
func (d *SafeDict) Update(other *SafeDict) error {
	added := 0
	for _, k := range other.order {
		if _, exists := d.vals[k]; !exists {
			added++
		}
	}
	if err := checkLen(d.cfg, len(d.order)+added, "dict"); err != nil {
		return err
	}
	for _, k := range other.order {
		if _, exists := d.vals[k]; !exists {
			d.order = append(d.order, k)
		}
		d.keys[k] = other.keys[k]
		d.vals[k] = other.vals[k]
	}
	return nil
}

// Keys returns the dict's keys in insertion order.
func (d *SafeDict) Keys() []values.Value {
	out := make([]values.Value, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.keys[k])
	}
	return out
}

// Values returns the dict's values in insertion order.
func (d *SafeDict) Values() []values.Value {
	out := make([]values.Value, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.vals[k])
	}
	return out
}

// Items returns the dict's (key, value) pairs in insertion order, each as
// a 2-element Tuple.
func (d *SafeDict) Items() []values.Value {
	out := make([]values.Value, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, &values.Tuple{Elements: []values.Value{d.keys[k], d.vals[k]}})
	}
	return out
}
