// Package modules loads module metadata and resolves the module set a
// project needs. A module is a self-contained C/C++ library unit living
// in its own directory, described by a module.yml file.
package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// MetadataFile is the per-module descriptor filename.
const MetadataFile = "module.yml"

// ConfigFlag is one configuration option a module exposes. Symbol is a
// C preprocessor symbol; the project decides whether it is enabled,
// disabled, or left at the module's default.
type ConfigFlag struct {
	Symbol      string `yaml:"symbol"`
	Description string `yaml:"description,omitempty"`
}

// Module is an identifiable library unit. ID doubles as the preprocessor
// availability-macro suffix and the stable sort/display key.
type Module struct {
	ID           string            `yaml:"id"`
	Description  string            `yaml:"description,omitempty"`
	Dependencies []string          `yaml:"dependencies,omitempty"`
	SearchPaths  []string          `yaml:"searchPaths,omitempty"`
	Defines      map[string]string `yaml:"defines,omitempty"`
	Flags        []ConfigFlag      `yaml:"flags,omitempty"`

	dir string
}

// Load reads a module's metadata from dir/module.yml.
func Load(dir string) (*Module, error) {
	path := filepath.Join(dir, MetadataFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var m Module
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if m.ID == "" {
		m.ID = filepath.Base(dir)
	}
	m.dir = dir

	return &m, nil
}

// Dir returns the module's directory on disk.
func (m *Module) Dir() string { return m.dir }

// HeaderName returns the module's main header filename, <id>.h.
func (m *Module) HeaderName() string { return m.ID + ".h" }

// IncludeStatement returns the line the umbrella header uses to pull in
// this module. The path is relative to the modules search path that
// every exporter adds, so it is stable across build systems.
func (m *Module) IncludeStatement() string {
	return fmt.Sprintf("#include \"%s/%s\"", m.ID, m.HeaderName())
}

// SettingsTarget is what a module contributes build settings to. The
// save orchestrator passes each exporter here before the exporter emits
// its project files.
type SettingsTarget interface {
	AddSearchPath(path string)
	AddDefine(symbol, value string)
}

// Contribute adds the module's search paths and defines to an exporter.
func (m *Module) Contribute(t SettingsTarget) {
	t.AddSearchPath(m.dir)
	for _, p := range m.SearchPaths {
		t.AddSearchPath(filepath.Join(m.dir, p))
	}
	syms := make([]string, 0, len(m.Defines))
	for sym := range m.Defines {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	for _, sym := range syms {
		t.AddDefine(sym, m.Defines[sym])
	}
}
