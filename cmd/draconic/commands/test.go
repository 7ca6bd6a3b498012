package commands

import (
	"os"

	"github.com/spf13/cobra"

	"draconic/internal/scripttest"
)

func testCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "test <dir>",
		Short: "Run a golden-script suite (a suite.yaml manifest plus its scripts)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cfgFromFlags()
			if err != nil {
				return err
			}
			report, err := scripttest.RunDir(args[0], cfg)
			if err != nil {
				return err
			}
			var rep scripttest.Reporter = scripttest.TextReporter{}
			if jsonOut {
				rep = scripttest.JSONReporter{}
			}
			if err := rep.Report(os.Stdout, report); err != nil {
				return err
			}
			if !report.Passed() {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "report results as JSON")
	return cmd
}
