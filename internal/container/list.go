package container

import (
	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/values"
)

// SafeList is the drop-in replacement for a native list: every operation
// that can grow it checks the resulting length against cfg.MaxConstLen
// before committing.
type SafeList struct {
	cfg   *config.Config
	items []values.Value
}

func (*SafeList) Type() string { return "list" }

// NewSafeList materializes items into a SafeList, rejecting it outright if
// its length already exceeds the limit.
func NewSafeList(cfg *config.Config, items []values.Value) (*SafeList, error) {
	if err := checkLen(cfg, len(items), "list"); err != nil {
		return nil, err
	}
	return &SafeList{cfg: cfg, items: items}, nil
}

// NewSafeListFromIterable builds a SafeList from any iterable Value (list,
// set, dict (keys), str, or tuple) — e.g. `list('123')` returns a SafeList
// of its characters, never a native slice.
func NewSafeListFromIterable(cfg *config.Config, it values.Value) (*SafeList, error) {
	if t, ok := it.(*values.Tuple); ok {
		return NewSafeList(cfg, append([]values.Value(nil), t.Elements...))
	}
	elems, err := Elements(it)
	if err != nil {
		return nil, err
	}
	return NewSafeList(cfg, elems)
}

// Len returns the current length.
func (l *SafeList) Len() int { return len(l.items) }

// Items returns a defensive copy of the underlying elements.
func (l *SafeList) Items() []values.Value {
	out := make([]values.Value, len(l.items))
	copy(out, l.items)
	return out
}

func (l *SafeList) normalizeIndex(i int) int {
	if i < 0 {
		return i + len(l.items)
	}
	return i
}

// Get returns the element at index i (supports negative indices).
func (l *SafeList) Get(i int) (values.Value, error) {
	idx := l.normalizeIndex(i)
	if idx < 0 || idx >= len(l.items) {
		return nil, errors.RuntimeTypeErrorf(errors.Location{}, "list index out of range")
	}
	return l.items[idx], nil
}

// Set assigns the element at index i. This never changes length so it
// never needs a length check.
func (l *SafeList) Set(i int, v values.Value) error {
	idx := l.normalizeIndex(i)
	if idx < 0 || idx >= len(l.items) {
		return errors.RuntimeTypeErrorf(errors.Location{}, "list assignment index out of range")
	}
	l.items[idx] = v
	return nil
}

// Delete removes the element at index i. Deletion never grows the list.
func (l *SafeList) Delete(i int) error {
	idx := l.normalizeIndex(i)
	if idx < 0 || idx >= len(l.items) {
		return errors.RuntimeTypeErrorf(errors.Location{}, "list assignment index out of range")
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return nil
}

// Append adds one element, failing with IterableTooLong when the grown
// length would exceed the limit.
func (l *SafeList) Append(v values.Value) error {
	if err := checkLen(l.cfg, len(l.items)+1, "list"); err != nil {
		return err
	}
	l.items = append(l.items, v)
	return nil
}

// Extend appends every element of it, pre-checking the final length for
// known-length iterables and accumulating with a per-step check otherwise.
func (l *SafeList) Extend(it values.Value) error {
	if n, ok := KnownLen(it); ok {
		if err := checkLen(l.cfg, len(l.items)+n, "list"); err != nil {
			return err
		}
	}
	elems, err := Elements(it)
	if err != nil {
		return err
	}
	for _, e := range elems {
		if err := checkLen(l.cfg, len(l.items)+1, "list"); err != nil {
			return err
		}
		l.items = append(l.items, e)
	}
	return nil
}

// Insert inserts v at index i, shifting subsequent elements right.
func (l *SafeList) Insert(i int, v values.Value) error {
	if err := checkLen(l.cfg, len(l.items)+1, "list"); err != nil {
		return err
	}
	if i < 0 {
		i = 0
	}
	if i > len(l.items) {
		i = len(l.items)
	}
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = v
	return nil
}

// Pop removes and returns the element at index i (default: the last).
func (l *SafeList) Pop(i int) (values.Value, error) {
	if len(l.items) == 0 {
		return nil, errors.RuntimeTypeErrorf(errors.Location{}, "pop from empty list")
	}
	idx := l.normalizeIndex(i)
	if idx < 0 || idx >= len(l.items) {
		return nil, errors.RuntimeTypeErrorf(errors.Location{}, "pop index out of range")
	}
	v := l.items[idx]
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return v, nil
}

// Clear removes all elements. Never grows, so never checked.
func (l *SafeList) Clear() {
	l.items = l.items[:0]
}

// Reverse reverses the list in place.
func (l *SafeList) Reverse() {
	for i, j := 0, len(l.items)-1; i < j; i, j = i+1, j-1 {
		l.items[i], l.items[j] = l.items[j], l.items[i]
	}
}

// Concat implements `self + other`, returning a new SafeList regardless of
// which operand a caller arrived at it from.
func (l *SafeList) Concat(other *SafeList) (*SafeList, error) {
	combined := make([]values.Value, 0, len(l.items)+len(other.items))
	combined = append(combined, l.items...)
	combined = append(combined, other.items...)
	return NewSafeList(l.cfg, combined)
}

// Repeat implements `self * k` / `k * self`, returning a new SafeList.
func (l *SafeList) Repeat(k int) (*SafeList, error) {
	if k <= 0 {
		return NewSafeList(l.cfg, nil)
	}
	n := len(l.items) * k
	if err := checkLen(l.cfg, n, "list"); err != nil {
		return nil, err
	}
	out := make([]values.Value, 0, n)
	for i := 0; i < k; i++ {
		out = append(out, l.items...)
	}
	return NewSafeList(l.cfg, out)
}
