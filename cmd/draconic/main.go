// Command draconic is the CLI front end for the interpreter: run, eval,
// repl, fmt, test and init subcommands over a github.com/spf13/cobra
// command tree.
package main

import (
	"fmt"
	"os"

	"draconic/cmd/draconic/commands"
)

func main() {
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
