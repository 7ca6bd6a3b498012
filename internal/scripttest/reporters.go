package scripttest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter renders a finished Report to a writer.
type Reporter interface {
	Report(w io.Writer, r *Report) error
}

// TextReporter prints a checkmark/cross line per case, colored via
// fatih/color.
type TextReporter struct{}

func (TextReporter) Report(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "suite: %s\n", r.Suite)
	passed, failed := 0, 0
	for _, res := range r.Results {
		if res.Passed {
			passed++
			fmt.Fprintf(w, "  %s %s (%v)\n", color.GreenString("PASS"), res.Name, res.Duration)
			continue
		}
		failed++
		fmt.Fprintf(w, "  %s %s (%v)\n", color.RedString("FAIL"), res.Name, res.Duration)
		if res.Message != "" {
			fmt.Fprintf(w, "      %s\n", res.Message)
		}
	}
	fmt.Fprintf(w, "%d passed, %d failed\n", passed, failed)
	return nil
}

// JSONReporter renders a Report as a single JSON document.
type JSONReporter struct{}

func (JSONReporter) Report(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
