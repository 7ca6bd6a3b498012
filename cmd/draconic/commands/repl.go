package commands

import (
	"os"

	"github.com/spf13/cobra"

	"draconic/internal/repl"
)

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cfgFromFlags()
			if err != nil {
				return err
			}
			repl.Start(os.Stdin, os.Stdout, cfg)
			return nil
		},
	}
}
