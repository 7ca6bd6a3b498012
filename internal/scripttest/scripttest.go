// Package scripttest runs golden-script suites: a directory of scripts
// paired with an expected final value (its canonical repr) or an expected
// error kind, declared in a small per-suite YAML manifest — the one thing
// a script-level interpreter test actually needs to assert: what a script
// evaluates to, or how it fails.
package scripttest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/interp"
	"draconic/internal/repr"
)

// Case is one golden script and its expectation.
type Case struct {
	Name        string `yaml:"name"`
	File        string `yaml:"file"`
	ExpectValue string `yaml:"expect_value"` // canonical repr, compared verbatim
	ExpectError string `yaml:"expect_error"` // an errors.Kind name, e.g. "NumberTooHigh"
}

// Manifest is one suite: a name plus its cases, loaded from suite.yaml.
type Manifest struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// LoadManifest reads and parses a suite manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("scripttest: parsing %s: %w", path, err)
	}
	return &m, nil
}

// Result is the outcome of running one Case.
type Result struct {
	Name     string
	Passed   bool
	Message  string
	Duration time.Duration
}

// Report collects every Case's Result for one suite run.
type Report struct {
	Suite   string
	Results []Result
}

// Passed reports whether every case in the report succeeded.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// RunDir loads dir/suite.yaml and runs every case it names, resolving
// each Case.File relative to dir. cfg is shared across cases; each case
// still gets its own interp.Interpreter, so no state crosses case
// boundaries.
func RunDir(dir string, cfg *config.Config) (*Report, error) {
	m, err := LoadManifest(filepath.Join(dir, "suite.yaml"))
	if err != nil {
		return nil, err
	}
	report := &Report{Suite: m.Name}
	for _, c := range m.Cases {
		report.Results = append(report.Results, runCase(dir, c, cfg))
	}
	return report, nil
}

func runCase(dir string, c Case, cfg *config.Config) Result {
	start := time.Now()
	src, err := os.ReadFile(filepath.Join(dir, c.File))
	if err != nil {
		return Result{Name: c.Name, Passed: false, Message: err.Error(), Duration: time.Since(start)}
	}

	it := interp.New(cfg)
	v, execErr := it.Execute(context.Background(), string(src))
	dur := time.Since(start)

	if c.ExpectError != "" {
		de, ok := execErr.(*errors.DraconicError)
		if !ok || string(de.Kind) != c.ExpectError {
			return Result{
				Name:     c.Name,
				Passed:   false,
				Message:  fmt.Sprintf("expected error kind %q, got %v", c.ExpectError, execErr),
				Duration: dur,
			}
		}
		return Result{Name: c.Name, Passed: true, Duration: dur}
	}

	if execErr != nil {
		return Result{Name: c.Name, Passed: false, Message: execErr.Error(), Duration: dur}
	}
	got := repr.Repr(v)
	if got != c.ExpectValue {
		return Result{
			Name:     c.Name,
			Passed:   false,
			Message:  fmt.Sprintf("expected %s, got %s", c.ExpectValue, got),
			Duration: dur,
		}
	}
	return Result{Name: c.Name, Passed: true, Duration: dur}
}
