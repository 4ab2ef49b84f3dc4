package modules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kestrelkit/kestrel/internal/output"
)

// Resolver scans a modules directory and resolves the set of modules a
// project requires, including transitive dependencies.
type Resolver struct {
	modulesDir string
	known      map[string]*Module
}

// NewResolver creates a resolver for the given modules directory.
func NewResolver(modulesDir string) *Resolver {
	return &Resolver{
		modulesDir: modulesDir,
		known:      make(map[string]*Module),
	}
}

// Rescan discovers every module directory under the modules dir. A
// directory counts as a module when it contains a module.yml. Broken
// metadata is reported and skipped, not fatal.
func (r *Resolver) Rescan() error {
	entries, err := os.ReadDir(r.modulesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to scan modules dir %s: %w", r.modulesDir, err)
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(r.modulesDir, e.Name())
		if _, err := os.Stat(filepath.Join(dir, MetadataFile)); err != nil {
			continue
		}
		m, err := Load(dir)
		if err != nil {
			output.Warn(fmt.Sprintf("Skipping module %s: %v", e.Name(), err))
			continue
		}
		r.known[m.ID] = m
	}

	return nil
}

// Lookup returns a module by ID, or nil if it was not found by Rescan.
func (r *Resolver) Lookup(id string) *Module { return r.known[id] }

// Resolve returns the modules for the given refs plus their transitive
// dependencies, in ref order with dependencies appended after the module
// that pulled them in. Unknown refs are skipped; the caller gets the
// best list the modules dir can provide, possibly empty.
func (r *Resolver) Resolve(refs []string) []*Module {
	var resolved []*Module
	seen := make(map[string]bool)

	var add func(id string)
	add = func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true

		m := r.known[id]
		if m == nil {
			output.Verbose(fmt.Sprintf("Module not found: %s", id))
			return
		}
		resolved = append(resolved, m)
		for _, dep := range m.Dependencies {
			add(dep)
		}
	}

	for _, ref := range refs {
		add(ref)
	}

	return resolved
}
