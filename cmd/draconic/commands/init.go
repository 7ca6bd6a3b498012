package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const manifestTemplate = `name: %s
version: 0.1.0
entry_point: main.drac
limits:
  max_int_bits: 32
  max_const_len: 1000
  max_loops: 99999999
  max_statements: 99999999
`

const mainTemplate = `# %s
greeting = "hello from draconic"
print(greeting)
`

// initCmd scaffolds a new embedding project: a draconic.yaml manifest plus
// a starter script, so `draconic init` leaves a runnable project behind
// rather than an empty directory.
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <dir>",
		Short: "Scaffold a new embedding project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			name := filepath.Base(dir)
			manifest := fmt.Sprintf(manifestTemplate, name)
			if err := os.WriteFile(filepath.Join(dir, "draconic.yaml"), []byte(manifest), 0644); err != nil {
				return err
			}
			main := fmt.Sprintf(mainTemplate, name)
			if err := os.WriteFile(filepath.Join(dir, "main.drac"), []byte(main), 0644); err != nil {
				return err
			}
			fmt.Printf("initialized %s\n", dir)
			return nil
		},
	}
}
