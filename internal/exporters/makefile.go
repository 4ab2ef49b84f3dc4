package exporters

import (
	"fmt"
	"path/filepath"

	"github.com/kestrelkit/kestrel/internal/modules"
	"github.com/kestrelkit/kestrel/internal/project"
	"github.com/kestrelkit/kestrel/internal/saver"
)

// makefileExporter emits a GNU Makefile that compiles the generated
// sources and links them into a static library named after the project.
type makefileExporter struct {
	settings
	project *project.Project
}

func newMakefileExporter(spec project.ExporterSpec, p *project.Project) *makefileExporter {
	return &makefileExporter{settings: newSettings(spec, p), project: p}
}

func (e *makefileExporter) Name() string { return "Linux Makefile" }

type makefileData struct {
	TargetName   string
	Defines      []string
	IncludePaths []string
	Sources      []string
}

func (e *makefileExporter) Create(sv *saver.Saver, tree *project.Item, mods []*modules.Module) error {
	data := makefileData{
		TargetName:   project.SanitizeIdentifier(e.project.Name),
		Defines:      e.defines,
		IncludePaths: e.relSearchPaths(),
	}
	for _, f := range e.relTreeFiles(tree) {
		if isCompilable(f) {
			data.Sources = append(data.Sources, f)
		}
	}

	content, err := renderTemplate("templates/makefile.tmpl", data)
	if err != nil {
		return fmt.Errorf("Makefile exporter: %w", err)
	}

	path := filepath.Join(e.targetFolder, "Makefile")
	if _, err := sv.Writer().WriteFileIfDifferent(path, content); err != nil {
		return fmt.Errorf("Makefile exporter: %w", err)
	}

	return nil
}
