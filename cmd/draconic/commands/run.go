package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"draconic/internal/audit"
	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/interp"
	"draconic/internal/repr"
)

func runCmd() *cobra.Command {
	var auditDB string
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Parse and execute a script, printing its final value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			cfg, err := cfgFromFlags()
			if err != nil {
				return err
			}
			it := interp.New(cfg)
			started := time.Now()
			v, runErr := it.Execute(context.Background(), string(src))

			if auditDB != "" {
				if err := recordExecution(auditDB, cfg, it, started, runErr); err != nil {
					fmt.Fprintln(os.Stderr, "audit:", err)
				}
			}

			if runErr != nil {
				printErr(runErr)
				os.Exit(1)
			}
			fmt.Println(repr.Repr(v))
			return nil
		},
	}
	cmd.Flags().StringVar(&auditDB, "audit-db", "", "record the run's outcome and resource cost to this SQLite file")
	return cmd
}

// recordExecution opens the audit log at path, appends one Entry for the
// just-completed execution, and closes it again — a CLI invocation is a
// one-shot process, so there is no long-lived *audit.Log to share across
// calls the way a server embedding (internal/playground) would keep one.
func recordExecution(path string, cfg *config.Config, it *interp.Interpreter, started time.Time, runErr error) error {
	log, err := audit.Open(path)
	if err != nil {
		return err
	}
	defer log.Close()

	outcome, kind := "ok", ""
	if runErr != nil {
		outcome = "error"
		if de, ok := runErr.(*errors.DraconicError); ok {
			kind = string(de.Kind)
		}
	}
	return log.Record(context.Background(), audit.Entry{
		StartedAt:   started,
		Duration:    time.Since(started),
		Fingerprint: audit.Fingerprint(cfg),
		Outcome:     outcome,
		ErrorKind:   kind,
		Stats:       it.LastStats(),
	})
}
