// Package saver sequences everything a project save produces: the main
// descriptor, the generated config and umbrella headers, the embedded
// resource pair, and one set of build files per exporter. Errors are
// accumulated, never thrown: the run is best-effort so the user gets as
// many valid exporter outputs as possible and sees every failure.
package saver

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/kestrelkit/kestrel/internal/modules"
	"github.com/kestrelkit/kestrel/internal/output"
	"github.com/kestrelkit/kestrel/internal/project"
	"gopkg.in/yaml.v3"
)

// GeneratedGroupName is the display name of the generated-files group.
const GeneratedGroupName = "Kestrel Generated Code"

// binaryDataBase is the basename of the resource pair.
const binaryDataBase = "BinaryData"

// Exporter is one target build-system backend. The saver creates its
// target folder, feeds it settings, then asks it to emit its files; the
// backend owns its on-disk format entirely.
type Exporter interface {
	Name() string
	TargetFolder() string

	// settings contributed by the project and its modules
	AddSearchPath(path string)
	AddDefine(symbol, value string)

	// Create emits the backend's project files from the sorted generated
	// tree. A returned error is recorded against this exporter only;
	// other exporters still run.
	Create(sv *Saver, tree *project.Item, mods []*modules.Module) error
}

// ExporterFactory builds a backend for one exporter spec.
type ExporterFactory func(spec project.ExporterSpec, p *project.Project) (Exporter, error)

// ModuleResolver yields the full module set the project requires. It
// never fails; an unknown ref simply isn't in the result.
type ModuleResolver interface {
	Resolve(refs []string) []*modules.Module
}

// ResourcePacker turns the project's binary assets into a generated
// source/header pair, handing every file back through the saver's
// stable writer. FileCount of zero means there is nothing to pack and
// any stale pair should be removed.
type ResourcePacker interface {
	FileCount() int
	Pack(cppPath, headerPath string, write func(path string, content []byte) error) error
}

// Options wires the saver's collaborators.
type Options struct {
	GeneratedDirName string // fallback when the descriptor names none
	Resolver         ModuleResolver
	Packer           ResourcePacker
	NewExporter      ExporterFactory
	Writer           *Writer
}

// Saver runs one save of one project. Construct a fresh Saver per save
// call; the generated-file group it builds is not reused.
type Saver struct {
	project         *project.Project
	projectFile     string
	generatedFolder string
	group           *project.Item
	writer          *Writer
	resolver        ModuleResolver
	packer          ResourcePacker
	newExporter     ExporterFactory

	errs          ErrorList
	extraConfig   string
	configHeader  string
	binaryDataCpp string
	produced      map[string]bool
}

// New prepares a save of p to projectFile.
func New(p *project.Project, projectFile string, opts Options) *Saver {
	if opts.Writer == nil {
		opts.Writer = NewWriter()
	}

	return &Saver{
		project:         p,
		projectFile:     projectFile,
		generatedFolder: p.GeneratedFolder(opts.GeneratedDirName),
		group:           project.NewGroup(GeneratedGroupName, project.GeneratedGroupID),
		writer:          opts.Writer,
		resolver:        opts.Resolver,
		packer:          opts.Packer,
		newExporter:     opts.NewExporter,
		produced:        make(map[string]bool),
	}
}

// Project returns the project being saved.
func (s *Saver) Project() *project.Project { return s.project }

// Writer returns the stable writer every generated artifact must pass
// through.
func (s *Saver) Writer() *Writer { return s.writer }

// GeneratedFolder returns the generated-code folder's absolute path.
func (s *Saver) GeneratedFolder() string { return s.generatedFolder }

// GeneratedGroup returns the generated-files group in its current state.
func (s *Saver) GeneratedGroup() *project.Item { return s.group }

// Errors returns every error recorded so far, in order.
func (s *Saver) Errors() []string { return s.errs.All() }

// SetExtraConfigContent sets a verbatim block appended to the config
// header. Exporters may call this while contributing settings; the
// second config-header pass writes it out.
func (s *Saver) SetExtraConfigContent(content string) {
	s.extraConfig = content
}

// Save runs the whole pipeline and returns the first error message, or
// "" on success. When anything failed, the project's file location is
// rolled back to its pre-save value; files already written stay on disk,
// since regeneration is idempotent and a later successful save converges.
func (s *Saver) Save() string {
	oldFile := s.project.FilePath()
	s.project.SetFilePath(s.projectFile)

	s.writeMainProjectFile()

	var mods []*modules.Module
	if s.resolver != nil {
		mods = s.resolver.Resolve(s.project.Modules)
	}

	if s.errs.Empty() {
		s.writeConfigHeader(mods)
	}

	if s.errs.Empty() {
		s.writeBinaryDataFiles()
	}

	if s.errs.Empty() {
		s.writeUmbrellaHeader(mods)
	}

	if s.errs.Empty() {
		s.writeExporterProjects(mods)
	}

	if s.errs.Empty() {
		// repeated in case the exporters added anything to it
		s.writeConfigHeader(mods)
	}

	if dirExists(s.generatedFolder) && s.errs.Empty() {
		s.writeReadme()

		// sweep out stale generated files from earlier runs; everything
		// this run produced (and the keep-list) survives, so unchanged
		// files are never deleted and rewritten
		if !s.writer.DryRun {
			NewPruner(s.generatedFolder).Prune(s.produced)
		}
	}

	if !s.errs.Empty() {
		s.project.SetFilePath(oldFile)
	}

	return s.errs.First()
}

// SaveGeneratedFile writes relPath under the generated-code folder via
// the stable writer and registers it in the generated group. Returns nil
// when the write failed (the failure is recorded).
func (s *Saver) SaveGeneratedFile(relPath string, content []byte) *project.Item {
	if !s.writer.DryRun {
		if err := os.MkdirAll(s.generatedFolder, 0755); err != nil {
			s.errs.Add("Couldn't create folder: " + s.generatedFolder)
			return nil
		}
	}

	path := filepath.Join(s.generatedFolder, relPath)
	if s.replaceFileIfDifferent(path, content) {
		return s.AddFileToGeneratedGroup(path)
	}

	return nil
}

// AddFileToGeneratedGroup registers a file in the generated group,
// idempotently: the same absolute path always yields the same item.
func (s *Saver) AddFileToGeneratedGroup(path string) *project.Item {
	s.produced[path] = true
	return s.group.AddFile(path)
}

// replaceFileIfDifferent routes a write through the stable writer and
// records a failure in the error list. Returns whether the file now
// holds the wanted bytes (written or already identical).
func (s *Saver) replaceFileIfDifferent(path string, content []byte) bool {
	if _, err := s.writer.WriteFileIfDifferent(path, content); err != nil {
		s.errs.Add("Can't write to file: " + path)
		return false
	}
	return true
}

func (s *Saver) writeMainProjectFile() {
	data, err := s.project.Marshal()
	if err != nil {
		s.errs.Add("Can't serialize project: " + err.Error())
		return
	}

	// serialize -> parse -> serialize must be byte-stable; a mismatch
	// means the descriptor wouldn't survive a reload
	var reparsed project.Project
	if err := yaml.Unmarshal(data, &reparsed); err != nil {
		s.errs.Add("Project descriptor does not reparse: " + err.Error())
		return
	}
	data2, err := yaml.Marshal(&reparsed)
	if err != nil || !bytes.Equal(data, data2) {
		s.errs.Add("Project descriptor does not round-trip losslessly")
		return
	}

	s.replaceFileIfDifferent(s.projectFile, data)
}

func (s *Saver) writeConfigHeader(mods []*modules.Module) {
	name := s.project.ConfigHeaderName()
	s.configHeader = filepath.Join(s.generatedFolder, name)
	s.SaveGeneratedFile(name, RenderConfigHeader(s.project, mods, s.extraConfig))
}

func (s *Saver) writeBinaryDataFiles() {
	s.binaryDataCpp = filepath.Join(s.generatedFolder, binaryDataBase+".cpp")
	binaryDataH := filepath.Join(s.generatedFolder, binaryDataBase+".h")

	if s.packer != nil && s.packer.FileCount() > 0 {
		if !s.writer.DryRun {
			if err := os.MkdirAll(s.generatedFolder, 0755); err != nil {
				s.errs.Add("Couldn't create folder: " + s.generatedFolder)
				return
			}
		}

		write := func(path string, content []byte) error {
			_, err := s.writer.WriteFileIfDifferent(path, content)
			return err
		}

		if err := s.packer.Pack(s.binaryDataCpp, binaryDataH, write); err != nil {
			s.errs.Add("Can't create binary resources file: " + s.binaryDataCpp)
		} else {
			s.AddFileToGeneratedGroup(s.binaryDataCpp)
			s.AddFileToGeneratedGroup(binaryDataH)
		}
	} else if !s.writer.DryRun {
		// keep the tree consistent with a now-empty asset list
		os.Remove(s.binaryDataCpp)
		os.Remove(binaryDataH)
	}
}

func (s *Saver) writeUmbrellaHeader(mods []*modules.Module) {
	hasConfig := fileExists(s.configHeader)
	hasResources := fileExists(s.binaryDataCpp)
	content := RenderUmbrellaHeader(s.project, mods, hasConfig, hasResources)
	s.SaveGeneratedFile(s.project.UmbrellaHeaderName(), content)
}

func (s *Saver) writeExporterProjects(mods []*modules.Module) {
	// snapshot before any exporter runs, so backends never see each
	// other's generated-file contributions
	snapshot := s.group.Clone()

	for _, spec := range s.project.Exporters {
		exp, err := s.newExporter(spec, s.project)
		if err != nil {
			s.errs.Add(err.Error())
			continue
		}

		output.Info("Writing files for: " + exp.Name())

		if !s.writer.DryRun {
			if err := os.MkdirAll(exp.TargetFolder(), 0755); err != nil {
				s.errs.Add("Can't create folder: " + exp.TargetFolder())
				continue
			}
		}

		s.group = snapshot.Clone()
		exp.AddSearchPath(s.generatedFolder)

		for _, sym := range sortedKeys(spec.Defines) {
			exp.AddDefine(sym, spec.Defines[sym])
		}
		for _, m := range mods {
			m.Contribute(exp)
		}

		s.group.SortRecursively()

		if err := exp.Create(s, s.group, mods); err != nil {
			s.errs.Add(err.Error())
		}
	}
}

func (s *Saver) writeReadme() {
	const readme = `
 Important Note!!
 ================

The purpose of this folder is to contain files that are auto-generated by kestrel,
and ALL files in this folder will be mercilessly DELETED and completely re-written
whenever kestrel saves your project.

Therefore, it's a bad idea to make any manual changes to the files in here, or to
put any of your own files in here if you don't want to lose them. (Of course you may
choose to add the folder's contents to your version-control system so that you can
re-merge your own modifications after kestrel has saved its changes).
`
	path := filepath.Join(s.generatedFolder, "README.txt")
	if s.replaceFileIfDifferent(path, []byte(readme)) {
		s.produced[path] = true
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
