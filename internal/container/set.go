package container

import (
	"draconic/internal/config"
	"draconic/internal/values"
)

// SafeSet is the drop-in replacement for a native set. Membership is
// stored in a map keyed by keyFor for O(1) lookup while `order` preserves
// insertion order for iteration/display, the way Python sets appear
// ordered-by-insertion in CPython even though that isn't a language
// guarantee — matching it here avoids surprising non-determinism in
// script output.
type SafeSet struct {
	cfg     *config.Config
	members map[string]values.Value
	order   []string
}

func (*SafeSet) Type() string { return "set" }

// NewSafeSet builds a SafeSet from a slice of elements, deduplicating as
// it goes and rejecting the result if it would exceed the limit.
func NewSafeSet(cfg *config.Config, elems []values.Value) (*SafeSet, error) {
	s := &SafeSet{cfg: cfg, members: make(map[string]values.Value)}
	for _, e := range elems {
		if err := s.Add(e); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewSafeSetFromIterable builds a SafeSet from any iterable Value — e.g.
// `set('123')` returns a SafeSet of its characters.
func NewSafeSetFromIterable(cfg *config.Config, it values.Value) (*SafeSet, error) {
	elems, err := Elements(it)
	if err != nil {
		return nil, err
	}
	return NewSafeSet(cfg, elems)
}

// Len returns the current cardinality.
func (s *SafeSet) Len() int { return len(s.order) }

// Has reports set membership.
func (s *SafeSet) Has(v values.Value) (bool, error) {
	k, err := keyFor(v)
	if err != nil {
		return false, err
	}
	_, ok := s.members[k]
	return ok, nil
}

// Add inserts v, failing with IterableTooLong if v is new and the grown
// set would exceed the limit.
func (s *SafeSet) Add(v values.Value) error {
	k, err := keyFor(v)
	if err != nil {
		return err
	}
	if _, exists := s.members[k]; exists {
		return nil
	}
	if err := checkLen(s.cfg, len(s.order)+1, "set"); err != nil {
		return err
	}
	s.members[k] = v
	s.order = append(s.order, k)
	return nil
}

// Remove deletes v if present. Shrinking never needs a length check.
func (s *SafeSet) Remove(v values.Value) error {
	k, err := keyFor(v)
	if err != nil {
		return err
	}
	if _, exists := s.members[k]; !exists {
		return nil
	}
	delete(s.members, k)
	for i, o := range s.order {
		if o == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// newKeysNotIn counts how many of other's elements are not already
// members of s, which is exactly how many Update(other) would add.
func (s *SafeSet) newKeysNotIn(other values.Value) (int, []values.Value, error) {
	elems, err := Elements(other)
	if err != nil {
		return 0, nil, err
	}
	n := 0
	seen := make(map[string]bool, len(elems))
	for _, e := range elems {
		k, err := keyFor(e)
		if err != nil {
			return 0, nil, err
		}
		if _, exists := s.members[k]; !exists && !seen[k] {
			seen[k] = true
			n++
		}
	}
	return n, elems, nil
}

// Update adds every element of other, checking |self ∪ other| against the
// limit before committing any of it.
func (s *SafeSet) Update(other values.Value) error {
	added, elems, err := s.newKeysNotIn(other)
	if err != nil {
		return err
	}
	if err := checkLen(s.cfg, len(s.order)+added, "set"); err != nil {
		return err
	}
	for _, e := range elems {
		k, _ := keyFor(e)
		if _, exists := s.members[k]; !exists {
			s.members[k] = e
			s.order = append(s.order, k)
		}
	}
	return nil
}

// Union returns a new SafeSet containing every element of s and other —
// the container-closure rule applies symmetrically regardless of which
// operand a caller arrived at it from.
func (s *SafeSet) Union(other values.Value) (*SafeSet, error) {
	elems, err := Elements(other)
	if err != nil {
		return nil, err
	}
	combined := make([]values.Value, 0, len(s.order)+len(elems))
	for _, k := range s.order {
		combined = append(combined, s.members[k])
	}
	combined = append(combined, elems...)
	return NewSafeSet(s.cfg, combined)
}

// IntersectionUpdate keeps only elements also present in other. Shrinking
// never needs a length check.
func (s *SafeSet) IntersectionUpdate(other values.Value) error {
	elems, err := Elements(other)
	if err != nil {
		return err
	}
	keep := make(map[string]bool)
	for _, e := range elems {
		k, err := keyFor(e)
		if err != nil {
			return err
		}
		keep[k] = true
	}
	newOrder := s.order[:0:0]
	for _, k := range s.order {
		if keep[k] {
			newOrder = append(newOrder, k)
		} else {
			delete(s.members, k)
		}
	}
	s.order = newOrder
	return nil
}

// Intersection returns a new SafeSet of elements present in both s and
// other.
func (s *SafeSet) Intersection(other values.Value) (*SafeSet, error) {
	elems, err := Elements(other)
	if err != nil {
		return nil, err
	}
	otherKeys := make(map[string]bool, len(elems))
	for _, e := range elems {
		k, err := keyFor(e)
		if err != nil {
			return nil, err
		}
		otherKeys[k] = true
	}
	var kept []values.Value
	for _, k := range s.order {
		if otherKeys[k] {
			kept = append(kept, s.members[k])
		}
	}
	return NewSafeSet(s.cfg, kept)
}

// Elements returns the set's members in insertion order.
func (s *SafeSet) Elements() []values.Value {
	out := make([]values.Value, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.members[k])
	}
	return out
}
