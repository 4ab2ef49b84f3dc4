package saver

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// KeepFile is an optional file inside the generated-code folder listing
// gitignore-style patterns for entries the pruner must preserve, on top
// of the built-in keep-list. The file itself is always preserved.
const KeepFile = ".kestrelkeep"

// Names always preserved when clearing the generated folder: version
// control metadata and user build-system descriptors.
var keepNames = []string{".svn", ".cvs", ".git", ".hg", "CMakeLists.txt", KeepFile}

// Pruner clears stale generated files out of the generated-code folder,
// preserving anything on the keep-list. The saver runs it at the end of
// a successful save with the set of files that run produced, so stale
// leftovers from earlier runs disappear while current files are never
// deleted and rewritten (which would defeat stable writes).
type Pruner struct {
	root     string
	patterns *ignore.GitIgnore
}

// NewPruner creates a pruner for the given generated-code folder,
// compiling extra keep patterns from its .kestrelkeep file if present.
func NewPruner(root string) *Pruner {
	return &Pruner{root: root, patterns: loadKeepPatterns(root)}
}

// Prune deletes every file and sub-folder under the generated folder
// except kept entries and the preserve set (absolute paths of the files
// the current save produced). It returns whether the folder ended up
// fully empty. Deletion is post-order: a directory goes only after all
// of its deletable descendants are gone, so keeping one file keeps the
// chain of directories above it.
func (p *Pruner) Prune(preserve map[string]bool) bool {
	return p.pruneDir(p.root, "", preserve)
}

func (p *Pruner) pruneDir(dir, rel string, preserve map[string]bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	empty := true
	for _, e := range entries {
		childRel := filepath.Join(rel, e.Name())
		child := filepath.Join(dir, e.Name())

		if p.shouldKeep(e.Name(), childRel) || preserve[child] {
			empty = false
			continue
		}

		if e.IsDir() {
			if p.pruneDir(child, childRel, preserve) {
				if os.Remove(child) != nil {
					empty = false
				}
			} else {
				empty = false
			}
		} else if os.Remove(child) != nil {
			empty = false
		}
	}

	return empty
}

// shouldKeep is a pure function of the entry's name and its path
// relative to the generated folder.
func (p *Pruner) shouldKeep(name, rel string) bool {
	for _, keep := range keepNames {
		if name == keep {
			return true
		}
	}
	return p.patterns != nil && p.patterns.MatchesPath(rel)
}

func loadKeepPatterns(root string) *ignore.GitIgnore {
	f, err := os.Open(filepath.Join(root, KeepFile))
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	return ignore.CompileIgnoreLines(lines...)
}
