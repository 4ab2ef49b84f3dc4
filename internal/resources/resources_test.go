package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectWrites(t *testing.T) (map[string][]byte, func(string, []byte) error) {
	t.Helper()
	written := make(map[string][]byte)
	return written, func(path string, content []byte) error {
		written[path] = content
		return nil
	}
}

func TestPack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icon.png"), []byte{0x89, 0x50, 0x4e}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))

	pack := NewPack([]string{"icon.png", "notes.txt"}, dir)
	require.Equal(t, 2, pack.FileCount())

	written, write := collectWrites(t)
	require.NoError(t, pack.Pack("/gen/BinaryData.cpp", "/gen/BinaryData.h", write))

	header := string(written["/gen/BinaryData.h"])
	assert.Contains(t, header, "namespace BinaryData")
	assert.Contains(t, header, "extern const char*   icon_png;")
	assert.Contains(t, header, "icon_pngSize = 3;")
	assert.Contains(t, header, "notes_txtSize = 2;")

	cpp := string(written["/gen/BinaryData.cpp"])
	assert.Contains(t, cpp, `#include "BinaryData.h"`)
	assert.Contains(t, cpp, "137,80,78")
	assert.Contains(t, cpp, "BinaryData::icon_png")
}

func TestPack_DuplicateNamesAreDisambiguated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "data.bin"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "data.bin"), []byte("b"), 0644))

	pack := NewPack([]string{"a/data.bin", "b/data.bin"}, dir)

	written, write := collectWrites(t)
	require.NoError(t, pack.Pack("/gen/BinaryData.cpp", "/gen/BinaryData.h", write))

	header := string(written["/gen/BinaryData.h"])
	assert.Contains(t, header, "data_bin;")
	assert.Contains(t, header, "data_bin2;")
}

func TestPack_MissingAssetFails(t *testing.T) {
	pack := NewPack([]string{"gone.bin"}, t.TempDir())

	_, write := collectWrites(t)
	err := pack.Pack("/gen/BinaryData.cpp", "/gen/BinaryData.h", write)
	assert.Error(t, err)
}
