package commands

import (
	"github.com/kestrelkit/kestrel"
	"github.com/kestrelkit/kestrel/internal/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the kestrel CLI.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "kestrel",
		Short: "Project-file generator for module-based C/C++ projects",
		Long: `Kestrel turns a project descriptor into build-system and IDE project
files: a generated configuration header, an umbrella include header,
embedded binary resources, and one set of project files per exporter.

Saves are deterministic and idempotent - unchanged files are never
rewritten, so incremental builds stay incremental.`,
		Version: kestrel.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
