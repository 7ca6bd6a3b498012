// Package commands implements cmd/draconic's cobra command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"draconic/internal/config"
	"draconic/internal/errors"
)

var (
	flagMaxIntSize    int
	flagMaxConstLen   int
	flagMaxLoops      int
	flagMaxStatements int
)

// Root builds the top-level "draconic" command and wires every
// subcommand under it.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "draconic",
		Short: "A sandboxed expression and script interpreter",
	}
	root.PersistentFlags().IntVar(&flagMaxIntSize, "max-int-bits", 32, "bit width bound on integer magnitude")
	root.PersistentFlags().IntVar(&flagMaxConstLen, "max-const-len", 1000, "max length of any list/set/dict/str value")
	root.PersistentFlags().IntVar(&flagMaxLoops, "max-loops", 99_999_999, "loop-body pass budget for one execution")
	root.PersistentFlags().IntVar(&flagMaxStatements, "max-statements", 99_999_999, "statement budget for one execution")

	root.AddCommand(runCmd(), evalCmd(), replCmd(), fmtCmd(), testCmd(), initCmd())
	return root
}

// cfgFromFlags builds a Config from the persistent envelope flags, the
// only place the CLI layer touches internal/config directly.
func cfgFromFlags() (*config.Config, error) {
	return config.New(
		config.WithMaxIntSize(flagMaxIntSize),
		config.WithMaxConstLen(flagMaxConstLen),
		config.WithMaxLoops(flagMaxLoops),
		config.WithMaxStatements(flagMaxStatements),
	)
}

// printErr renders a DraconicError in the kind/message/location shape
// shown throughout the REPL and CLI, grounded on the retrieval pack's
// kanso teacher's internal/errors/reporter.go use of fatih/color (red for
// the kind, dim for the source location).
func printErr(err error) {
	de, ok := err.(*errors.DraconicError)
	if !ok {
		fmt.Fprintln(os.Stderr, color.RedString("error: %s", err.Error()))
		return
	}
	fmt.Fprintln(os.Stderr, color.RedString("%s: %s", de.Kind, de.Message))
	if loc := de.Location.String(); loc != "" {
		fmt.Fprintln(os.Stderr, color.HiBlackString("  at %s", loc))
	}
}
