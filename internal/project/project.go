package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FlagState is the tri-state value of a configuration flag.
type FlagState string

const (
	FlagEnabled  FlagState = "enabled"
	FlagDisabled FlagState = "disabled"
	FlagDefault  FlagState = "" // unset, the module's compiled-in default applies
)

// ExporterSpec names one target build system the project should be
// exported to, and where its files go (relative to the project file).
type ExporterSpec struct {
	Type    string            `yaml:"type"`
	Folder  string            `yaml:"folder"`
	Defines map[string]string `yaml:"defines,omitempty"`
}

// Project is the root description of a generated project. It is loaded
// from a descriptor file and borrowed by the saver for the duration of
// a save; the saver may move its file location.
type Project struct {
	ID             string               `yaml:"id"`
	Name           string               `yaml:"name"`
	Version        string               `yaml:"version"`
	GeneratedDir   string               `yaml:"generatedDir,omitempty"`
	ConfigHeader   string               `yaml:"configHeader,omitempty"`
	UmbrellaHeader string               `yaml:"umbrellaHeader,omitempty"`
	Modules        []string             `yaml:"modules"`
	Flags          map[string]FlagState `yaml:"flags,omitempty"`
	Assets         []string             `yaml:"assets,omitempty"`
	ExtraConfig    string               `yaml:"extraConfig,omitempty"`
	Exporters      []ExporterSpec       `yaml:"exporters"`

	filePath string
}

// Load reads and parses a project descriptor file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project descriptor: %w", err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project descriptor %s: %w", path, err)
	}

	if p.ID == "" {
		return nil, fmt.Errorf("project descriptor %s has no id", path)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("project descriptor %s has no name", path)
	}
	if !semver.IsValid("v" + p.Version) {
		return nil, fmt.Errorf("project %s has invalid version %q", p.Name, p.Version)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	p.filePath = abs

	return &p, nil
}

// Marshal serializes the project back to its descriptor form.
func (p *Project) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// FilePath returns the project's current on-disk location.
func (p *Project) FilePath() string { return p.filePath }

// SetFilePath moves the project's on-disk location. The saver uses this
// to point the project at its save target, and to roll back on failure.
func (p *Project) SetFilePath(path string) { p.filePath = path }

// Dir returns the directory containing the project file.
func (p *Project) Dir() string { return filepath.Dir(p.filePath) }

// GeneratedFolder returns the absolute path of the generated-code folder.
func (p *Project) GeneratedFolder(defaultName string) string {
	name := p.GeneratedDir
	if name == "" {
		name = defaultName
	}
	return filepath.Join(p.Dir(), name)
}

// ConfigHeaderName returns the filename of the generated config header.
func (p *Project) ConfigHeaderName() string {
	if p.ConfigHeader != "" {
		return p.ConfigHeader
	}
	return "AppConfig.h"
}

// UmbrellaHeaderName returns the filename of the generated umbrella header.
func (p *Project) UmbrellaHeaderName() string {
	if p.UmbrellaHeader != "" {
		return p.UmbrellaHeader
	}
	return SanitizeIdentifier(p.Name) + ".h"
}

// ConfigFlag returns the project's value for a flag symbol.
func (p *Project) ConfigFlag(symbol string) FlagState {
	return p.Flags[symbol]
}

// SetConfigFlag records a value for a flag symbol. Exporters may call
// this while contributing settings; the saver re-emits the config header
// afterwards so the new value lands on disk.
func (p *Project) SetConfigFlag(symbol string, state FlagState) {
	if p.Flags == nil {
		p.Flags = make(map[string]FlagState)
	}
	p.Flags[symbol] = state
}

// UID returns the project ID in a form usable inside a C include guard.
func (p *Project) UID() string {
	return strings.ToUpper(SanitizeIdentifier(p.ID))
}

// VersionHex renders the project version as a single hex integer,
// (major << 16) + (minor << 8) + patch.
func (p *Project) VersionHex() string {
	version := p.Version
	// drop any prerelease or build suffix: 1.2.3-rc1 counts as 1.2.3
	if i := strings.IndexAny(version, "-+"); i >= 0 {
		version = version[:i]
	}
	var nums [3]int
	for i, part := range strings.SplitN(version, ".", 3) {
		nums[i], _ = strconv.Atoi(part)
	}
	return fmt.Sprintf("0x%x", nums[0]<<16|nums[1]<<8|nums[2])
}

// SanitizeIdentifier rewrites a string so it is safe to use as (part of)
// a C identifier: anything that isn't a letter, digit or underscore
// becomes an underscore.
func SanitizeIdentifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
