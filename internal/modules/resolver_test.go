package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T, modulesDir, id, contents string) {
	t.Helper()
	dir := filepath.Join(modulesDir, id)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataFile), []byte(contents), 0644))
}

func TestLoad(t *testing.T) {
	modulesDir := t.TempDir()
	writeModule(t, modulesDir, "audio", `id: audio
description: Audio playback
dependencies: [core]
flags:
  - symbol: AUDIO_ENABLE_MP3
    description: Enables the MP3 decoder
`)

	m, err := Load(filepath.Join(modulesDir, "audio"))
	require.NoError(t, err)

	assert.Equal(t, "audio", m.ID)
	assert.Equal(t, []string{"core"}, m.Dependencies)
	require.Len(t, m.Flags, 1)
	assert.Equal(t, "AUDIO_ENABLE_MP3", m.Flags[0].Symbol)
	assert.Equal(t, `#include "audio/audio.h"`, m.IncludeStatement())
}

func TestLoad_IDDefaultsToDirName(t *testing.T) {
	modulesDir := t.TempDir()
	writeModule(t, modulesDir, "core", "description: Core utilities\n")

	m, err := Load(filepath.Join(modulesDir, "core"))
	require.NoError(t, err)
	assert.Equal(t, "core", m.ID)
}

func TestResolver_ResolveFollowsDependencies(t *testing.T) {
	modulesDir := t.TempDir()
	writeModule(t, modulesDir, "core", "id: core\n")
	writeModule(t, modulesDir, "audio", "id: audio\ndependencies: [core]\n")
	writeModule(t, modulesDir, "gui", "id: gui\ndependencies: [core]\n")

	r := NewResolver(modulesDir)
	require.NoError(t, r.Rescan())

	mods := r.Resolve([]string{"audio", "gui"})
	require.Len(t, mods, 3)
	assert.Equal(t, "audio", mods[0].ID)
	assert.Equal(t, "core", mods[1].ID)
	assert.Equal(t, "gui", mods[2].ID)
}

func TestResolver_SkipsUnknownRefs(t *testing.T) {
	modulesDir := t.TempDir()
	writeModule(t, modulesDir, "core", "id: core\n")

	r := NewResolver(modulesDir)
	require.NoError(t, r.Rescan())

	mods := r.Resolve([]string{"missing", "core"})
	require.Len(t, mods, 1)
	assert.Equal(t, "core", mods[0].ID)
}

func TestResolver_MissingModulesDirIsEmpty(t *testing.T) {
	r := NewResolver(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, r.Rescan())
	assert.Empty(t, r.Resolve([]string{"core"}))
}

type fakeTarget struct {
	searchPaths []string
	defines     map[string]string
}

func (f *fakeTarget) AddSearchPath(p string) { f.searchPaths = append(f.searchPaths, p) }
func (f *fakeTarget) AddDefine(sym, val string) {
	if f.defines == nil {
		f.defines = map[string]string{}
	}
	f.defines[sym] = val
}

func TestModule_Contribute(t *testing.T) {
	modulesDir := t.TempDir()
	writeModule(t, modulesDir, "audio", `id: audio
searchPaths: [include]
defines:
  AUDIO_BACKEND: alsa
`)

	m, err := Load(filepath.Join(modulesDir, "audio"))
	require.NoError(t, err)

	var target fakeTarget
	m.Contribute(&target)

	assert.Equal(t, []string{
		filepath.Join(modulesDir, "audio"),
		filepath.Join(modulesDir, "audio", "include"),
	}, target.searchPaths)
	assert.Equal(t, "alsa", target.defines["AUDIO_BACKEND"])
}

type orderedTarget struct {
	defines []string
}

func (o *orderedTarget) AddSearchPath(string) {}
func (o *orderedTarget) AddDefine(sym, val string) {
	o.defines = append(o.defines, sym+"="+val)
}

func TestModule_ContributeDefinesInStableOrder(t *testing.T) {
	modulesDir := t.TempDir()
	writeModule(t, modulesDir, "codec", `id: codec
defines:
  FFF: "6"
  AAA: "1"
  EEE: "5"
  BBB: "2"
  DDD: "4"
  CCC: "3"
`)

	m, err := Load(filepath.Join(modulesDir, "codec"))
	require.NoError(t, err)

	want := []string{"AAA=1", "BBB=2", "CCC=3", "DDD=4", "EEE=5", "FFF=6"}
	for i := 0; i < 100; i++ {
		var target orderedTarget
		m.Contribute(&target)
		require.Equal(t, want, target.defines, "iteration %d", i)
	}
}
