package container

import (
	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/values"
)

// SafeStr is the drop-in replacement for a native string. Length is
// measured in runes (codepoints), matching the borrowed language's
// character-indexed string semantics.
type SafeStr struct {
	cfg   *config.Config
	runes []rune
}

func (*SafeStr) Type() string { return "str" }

// NewSafeStr builds a SafeStr from a Go string, rejecting it outright if
// it would exceed the limit.
func NewSafeStr(cfg *config.Config, s string) (*SafeStr, error) {
	r := []rune(s)
	if err := checkLen(cfg, len(r), "str"); err != nil {
		return nil, err
	}
	return &SafeStr{cfg: cfg, runes: r}, nil
}

// String returns the Go string form.
func (s *SafeStr) String() string { return string(s.runes) }

// Len returns the character length.
func (s *SafeStr) Len() int { return len(s.runes) }

func (s *SafeStr) normalizeIndex(i int) int {
	if i < 0 {
		return i + len(s.runes)
	}
	return i
}

// At returns the single-character SafeStr at index i (supports negative
// indices).
func (s *SafeStr) At(i int) (*SafeStr, error) {
	idx := s.normalizeIndex(i)
	if idx < 0 || idx >= len(s.runes) {
		return nil, errors.RuntimeTypeErrorf(errors.Location{}, "string index out of range")
	}
	return &SafeStr{cfg: s.cfg, runes: []rune{s.runes[idx]}}, nil
}

// Chars returns every character as its own single-character SafeStr, the
// representation used when a string is treated as an iterable (for-in,
// list('abc'), etc).
func (s *SafeStr) Chars() []values.Value {
	out := make([]values.Value, len(s.runes))
	for i, r := range s.runes {
		out[i] = &SafeStr{cfg: s.cfg, runes: []rune{r}}
	}
	return out
}

// Concat implements `self + other`, returning a new SafeStr.
func (s *SafeStr) Concat(other *SafeStr) (*SafeStr, error) {
	combined := make([]rune, 0, len(s.runes)+len(other.runes))
	combined = append(combined, s.runes...)
	combined = append(combined, other.runes...)
	if err := checkLen(s.cfg, len(combined), "str"); err != nil {
		return nil, err
	}
	return &SafeStr{cfg: s.cfg, runes: combined}, nil
}

// Repeat implements `self * k` / `k * self`, returning a new SafeStr.
func (s *SafeStr) Repeat(k int) (*SafeStr, error) {
	if k <= 0 {
		return &SafeStr{cfg: s.cfg}, nil
	}
	n := len(s.runes) * k
	if err := checkLen(s.cfg, n, "str"); err != nil {
		return nil, err
	}
	out := make([]rune, 0, n)
	for i := 0; i < k; i++ {
		out = append(out, s.runes...)
	}
	return &SafeStr{cfg: s.cfg, runes: out}, nil
}
