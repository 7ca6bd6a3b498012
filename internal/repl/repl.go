// Package repl implements the interactive loop draconic's `repl` command
// runs: one statement per line, persisting locals across lines in one
// interp.Session — a scanner loop over the input feeding one long-lived
// Environment, with a fresh Evaluator and Governor for each line.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/interp"
	"draconic/internal/repr"
)

// Start runs the loop, reading lines from in and writing prompts/results
// to out, until EOF or a line reading "exit"/"quit".
func Start(in io.Reader, out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "draconic REPL | type 'exit' to quit")
	scanner := bufio.NewScanner(in)
	sess := interp.NewSession(interp.New(cfg))
	ctx := context.Background()

	for {
		fmt.Fprint(out, ">>> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}
		v, err := sess.Line(ctx, line)
		if err != nil {
			printError(out, err)
			continue
		}
		fmt.Fprintln(out, repr.Repr(v))
	}
}

func printError(out io.Writer, err error) {
	de, ok := err.(*errors.DraconicError)
	if !ok {
		fmt.Fprintln(out, color.RedString("error: %s", err.Error()))
		return
	}
	fmt.Fprintln(out, color.RedString("%s: %s", de.Kind, de.Message))
	if loc := de.Location.String(); loc != "" {
		fmt.Fprintln(out, color.HiBlackString("  at %s", loc))
	}
}
