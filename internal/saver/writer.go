package saver

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Writer writes generated artifacts to disk, but only when their content
// actually changed. Unchanged files are never touched, which keeps their
// timestamps intact for incremental builds and makes regeneration
// idempotent. Every file the saver or an exporter produces goes through
// a Writer.
type Writer struct {
	// DryRun previews changes instead of writing them: changed files are
	// reported as diffs on Out and nothing is modified on disk.
	DryRun bool
	Out    io.Writer
}

// NewWriter returns a Writer that reports dry-run diffs on stdout.
func NewWriter() *Writer {
	return &Writer{Out: os.Stdout}
}

// WriteFileIfDifferent writes content to path unless the file already
// holds exactly those bytes. It creates parent directories as needed and
// reports whether the file was (or, in dry-run, would be) rewritten.
func (w *Writer) WriteFileIfDifferent(path string, content []byte) (bool, error) {
	existing, readErr := os.ReadFile(path)
	if readErr == nil && bytes.Equal(existing, content) {
		return false, nil
	}

	if w.DryRun {
		w.printDiff(path, existing, content)
		return true, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return true, nil
}

func (w *Writer) printDiff(path string, old, updated []byte) {
	if w.Out == nil {
		return
	}
	fmt.Fprintf(w.Out, "--- %s\n", path)
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(old), string(updated), true)
	dmp.DiffCleanupSemantic(diffs)
	fmt.Fprintln(w.Out, dmp.DiffPrettyText(diffs))
}
