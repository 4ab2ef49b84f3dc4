// Package exporters provides the built-in target build-system backends.
// Each backend implements saver.Exporter independently; there is no
// shared state beyond the interface contract.
package exporters

import (
	"fmt"
	"path/filepath"

	"github.com/kestrelkit/kestrel/internal/project"
	"github.com/kestrelkit/kestrel/internal/saver"
)

// New builds the backend for one exporter spec. An unknown type is an
// error the saver records against that exporter alone.
func New(spec project.ExporterSpec, p *project.Project) (saver.Exporter, error) {
	switch spec.Type {
	case "makefile":
		return newMakefileExporter(spec, p), nil
	case "codeblocks":
		return newCodeBlocksExporter(spec, p), nil
	default:
		return nil, fmt.Errorf("Unknown exporter type: %s", spec.Type)
	}
}

// settings is the state every backend accumulates before emitting its
// files: search paths and preprocessor defines, in contribution order,
// deduplicated.
type settings struct {
	targetFolder string
	searchPaths  []string
	defines      []string
}

func newSettings(spec project.ExporterSpec, p *project.Project) settings {
	return settings{targetFolder: filepath.Join(p.Dir(), spec.Folder)}
}

func (s *settings) TargetFolder() string { return s.targetFolder }

func (s *settings) AddSearchPath(path string) {
	for _, existing := range s.searchPaths {
		if existing == path {
			return
		}
	}
	s.searchPaths = append(s.searchPaths, path)
}

func (s *settings) AddDefine(symbol, value string) {
	d := symbol
	if value != "" {
		d = symbol + "=" + value
	}
	for _, existing := range s.defines {
		if existing == d {
			return
		}
	}
	s.defines = append(s.defines, d)
}

// relSearchPaths returns the search paths relative to the target folder,
// falling back to the absolute path when no relative form exists.
func (s *settings) relSearchPaths() []string {
	out := make([]string, len(s.searchPaths))
	for i, p := range s.searchPaths {
		rel, err := filepath.Rel(s.targetFolder, p)
		if err != nil {
			rel = p
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

// relTreeFiles flattens the generated tree's leaves into paths relative
// to the target folder, in (sorted) tree order.
func (s *settings) relTreeFiles(tree *project.Item) []string {
	leaves := tree.Files()
	out := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		rel, err := filepath.Rel(s.targetFolder, leaf.Path)
		if err != nil {
			rel = leaf.Path
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func isCompilable(path string) bool {
	switch filepath.Ext(path) {
	case ".cpp", ".cc", ".cxx", ".c":
		return true
	}
	return false
}
