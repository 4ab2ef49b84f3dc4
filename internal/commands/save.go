package commands

import (
	"fmt"
	"path/filepath"

	"github.com/kestrelkit/kestrel/internal/exporters"
	"github.com/kestrelkit/kestrel/internal/modules"
	"github.com/kestrelkit/kestrel/internal/output"
	"github.com/kestrelkit/kestrel/internal/project"
	"github.com/kestrelkit/kestrel/internal/resources"
	"github.com/kestrelkit/kestrel/internal/saver"
	"github.com/spf13/cobra"
)

// SaveCmd creates the save command: load a project descriptor, run the
// save pipeline, and report every accumulated error.
func SaveCmd() *cobra.Command {
	var (
		outPath    string
		modulesDir string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "save <project file>",
		Short: "Regenerate a project's build files and headers",
		Long: `Save loads the project descriptor, resolves its modules, and
regenerates every build artifact: the descriptor itself, the config and
umbrella headers, embedded binary resources, and the project files of
each declared exporter.

One exporter failing never stops the others; every error is reported
and a failed save leaves the project pointing at its previous location.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(args[0], outPath, modulesDir, dryRun)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Target path for the saved descriptor (defaults to the input path)")
	cmd.Flags().StringVar(&modulesDir, "modules-dir", "", "Override the modules directory from kestrel.yml")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change as diffs without writing anything")

	return cmd
}

func runSave(descriptorPath, outPath, modulesDir string, dryRun bool) error {
	p, err := project.Load(descriptorPath)
	if err != nil {
		output.Error(err.Error())
		return err
	}

	cfg, err := project.LoadToolConfig(p.Dir())
	if err != nil {
		output.Error(err.Error())
		return err
	}
	if modulesDir == "" {
		modulesDir = filepath.Join(p.Dir(), cfg.ModulesDir)
	}

	resolver := modules.NewResolver(modulesDir)
	if err := resolver.Rescan(); err != nil {
		output.Error(err.Error())
		return err
	}

	target := p.FilePath()
	if outPath != "" {
		if target, err = filepath.Abs(outPath); err != nil {
			return err
		}
	}

	writer := saver.NewWriter()
	writer.DryRun = dryRun

	sv := saver.New(p, target, saver.Options{
		GeneratedDirName: cfg.GeneratedDir,
		Resolver:         resolver,
		Packer:           resources.NewPack(p.Assets, p.Dir()),
		NewExporter:      exporters.New,
		Writer:           writer,
	})

	output.Verbose(fmt.Sprintf("Saving project %s to %s", p.Name, target))

	if first := sv.Save(); first != "" {
		for _, msg := range sv.Errors() {
			output.Error(msg)
		}
		return fmt.Errorf("save failed: %s", first)
	}

	if dryRun {
		output.Info("Dry run complete - nothing was written")
		return nil
	}

	output.Success("Saved project: " + p.Name)
	return nil
}
