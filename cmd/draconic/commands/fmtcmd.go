package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"draconic/internal/formatter"
	"draconic/internal/parser"
)

func fmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Re-serialize a script into canonical source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			stmts, err := parser.Parse(string(src), args[0])
			if err != nil {
				printErr(err)
				os.Exit(1)
			}
			out, err := formatter.Format(stmts)
			if err != nil {
				printErr(err)
				os.Exit(1)
			}
			if write {
				return os.WriteFile(args[0], []byte(out), 0644)
			}
			fmt.Print(out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result back to the file instead of stdout")
	return cmd
}
