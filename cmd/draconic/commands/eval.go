package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"draconic/internal/interp"
	"draconic/internal/repr"
)

func evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expr>",
		Short: "Evaluate a single expression and print its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cfgFromFlags()
			if err != nil {
				return err
			}
			v, err := interp.New(cfg).Evaluate(context.Background(), args[0])
			if err != nil {
				printErr(err)
				os.Exit(1)
			}
			fmt.Println(repr.Repr(v))
			return nil
		},
	}
}
