package exporters

import (
	"encoding/xml"
	"fmt"
	"path/filepath"

	"github.com/kestrelkit/kestrel/internal/modules"
	"github.com/kestrelkit/kestrel/internal/project"
	"github.com/kestrelkit/kestrel/internal/saver"
)

// codeBlocksExporter emits a Code::Blocks .cbp project file.
type codeBlocksExporter struct {
	settings
	project *project.Project
}

func newCodeBlocksExporter(spec project.ExporterSpec, p *project.Project) *codeBlocksExporter {
	return &codeBlocksExporter{settings: newSettings(spec, p), project: p}
}

func (e *codeBlocksExporter) Name() string { return "Code::Blocks project" }

type cbpOption struct {
	Title    string `xml:"title,attr,omitempty"`
	Compiler string `xml:"compiler,attr,omitempty"`
	Option   string `xml:"option,attr,omitempty"`
	Dir      string `xml:"directory,attr,omitempty"`
}

type cbpCompiler struct {
	Adds []cbpOption `xml:"Add"`
}

type cbpUnit struct {
	Filename string `xml:"filename,attr"`
}

type cbpProjectBody struct {
	Options  []cbpOption `xml:"Option"`
	Compiler cbpCompiler `xml:"Compiler"`
	Units    []cbpUnit   `xml:"Unit"`
}

type cbpFile struct {
	XMLName     xml.Name       `xml:"CodeBlocks_project_file"`
	FileVersion struct {
		Major int `xml:"major,attr"`
		Minor int `xml:"minor,attr"`
	} `xml:"FileVersion"`
	Project cbpProjectBody `xml:"Project"`
}

func (e *codeBlocksExporter) Create(sv *saver.Saver, tree *project.Item, mods []*modules.Module) error {
	var f cbpFile
	f.FileVersion.Major = 1
	f.FileVersion.Minor = 6

	f.Project.Options = []cbpOption{
		{Title: e.project.Name},
		{Compiler: "gcc"},
	}

	for _, d := range e.defines {
		f.Project.Compiler.Adds = append(f.Project.Compiler.Adds, cbpOption{Option: "-D" + d})
	}
	for _, p := range e.relSearchPaths() {
		f.Project.Compiler.Adds = append(f.Project.Compiler.Adds, cbpOption{Dir: p})
	}

	for _, file := range e.relTreeFiles(tree) {
		f.Project.Units = append(f.Project.Units, cbpUnit{Filename: file})
	}

	body, err := xml.MarshalIndent(&f, "", "\t")
	if err != nil {
		return fmt.Errorf("Code::Blocks exporter: %w", err)
	}
	content := append([]byte(xml.Header), append(body, '\n')...)

	name := project.SanitizeIdentifier(e.project.Name) + ".cbp"
	path := filepath.Join(e.targetFolder, name)
	if _, err := sv.Writer().WriteFileIfDifferent(path, content); err != nil {
		return fmt.Errorf("Code::Blocks exporter: %w", err)
	}

	return nil
}
