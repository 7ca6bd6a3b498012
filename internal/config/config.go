// Package config holds the limits that bound a sandboxed execution.
package config

import "fmt"

// Feature names that can appear in Config.DisabledFeatures.
const (
	FeatureStarredLiteral = "starred_literal" // [*a, *b] in list/set/dict displays
	FeatureAttributeWrite = "attribute_write" // obj.attr = value
	FeatureSetBitwiseOps  = "set_bitwise_ops" // a | b, a & b, a ^ b on sets; refused whether or not listed
)

// Config is an immutable bundle of limits recognized by the core. Build one
// with New and never mutate it after an interpreter has been constructed
// from it; the Evaluator and Governor treat it as read-only for the
// lifetime of an execution.
type Config struct {
	// MaxIntSize is the bit width an Int value's magnitude must fit in:
	// -2^(bits-1) <= v <= 2^(bits-1)-1.
	MaxIntSize int
	// MaxConstLen is the maximum length of any observable list, set, dict
	// or string value.
	MaxConstLen int
	// MaxLoops is the total number of loop-body passes (for/while/
	// comprehension) permitted across one top-level execution.
	MaxLoops int
	// MaxStatements is the total number of statement-node entries
	// permitted across one top-level execution.
	MaxStatements int
	// DisabledFeatures names syntactic forms the Evaluator refuses with
	// FeatureNotAvailable.
	DisabledFeatures map[string]bool
}

// Option configures a Config at construction time.
type Option func(*Config)

// WithMaxIntSize sets the integer bit-width bound.
func WithMaxIntSize(bits int) Option {
	return func(c *Config) { c.MaxIntSize = bits }
}

// WithMaxConstLen sets the container/string length bound.
func WithMaxConstLen(n int) Option {
	return func(c *Config) { c.MaxConstLen = n }
}

// WithMaxLoops sets the loop-iteration budget.
func WithMaxLoops(n int) Option {
	return func(c *Config) { c.MaxLoops = n }
}

// WithMaxStatements sets the statement-execution budget.
func WithMaxStatements(n int) Option {
	return func(c *Config) { c.MaxStatements = n }
}

// WithDisabledFeature disables a named syntactic form.
func WithDisabledFeature(name string) Option {
	return func(c *Config) {
		if c.DisabledFeatures == nil {
			c.DisabledFeatures = make(map[string]bool)
		}
		c.DisabledFeatures[name] = true
	}
}

// Defaults are generous enough not to be the active cause of failure in
// normal programs: a signed 32-bit int limit, 1000-element containers, and
// loop/statement budgets in the tens of millions.
func Defaults() *Config {
	return &Config{
		MaxIntSize:    32,
		MaxConstLen:   1000,
		MaxLoops:      99_999_999,
		MaxStatements: 99_999_999,
		DisabledFeatures: map[string]bool{
			FeatureStarredLiteral: true,
			FeatureAttributeWrite: true,
		},
	}
}

// New builds a Config from Defaults with the given options applied, then
// validates it.
func New(opts ...Option) (*Config, error) {
	c := Defaults()
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects a nonsensical limit bundle at construction time rather
// than letting it silently disable the envelope at the first violation.
func (c *Config) Validate() error {
	if c.MaxIntSize < 2 {
		return fmt.Errorf("config: max_int_size must be at least 2 bits, got %d", c.MaxIntSize)
	}
	if c.MaxConstLen < 0 {
		return fmt.Errorf("config: max_const_len must not be negative, got %d", c.MaxConstLen)
	}
	if c.MaxLoops < 0 {
		return fmt.Errorf("config: max_loops must not be negative, got %d", c.MaxLoops)
	}
	if c.MaxStatements < 0 {
		return fmt.Errorf("config: max_statements must not be negative, got %d", c.MaxStatements)
	}
	return nil
}

// FeatureDisabled reports whether the named syntactic form is refused.
func (c *Config) FeatureDisabled(name string) bool {
	return c.DisabledFeatures != nil && c.DisabledFeatures[name]
}
