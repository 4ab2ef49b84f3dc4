package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_AddFileIsIdempotent(t *testing.T) {
	g := NewGroup("Generated", GeneratedGroupID)

	first := g.AddFile("/tmp/proj/Generated/AppConfig.h")
	second := g.AddFile("/tmp/proj/Generated/AppConfig.h")

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Len(t, g.Children, 1)
}

func TestItem_AddFileFindsPathsInSubGroups(t *testing.T) {
	g := NewGroup("Generated", GeneratedGroupID)
	sub := g.AddGroup("resources")
	leaf := sub.AddFile("/tmp/proj/Generated/resources/icon.png")

	// registering through the root must return the nested item
	assert.Same(t, leaf, g.AddFile("/tmp/proj/Generated/resources/icon.png"))
	assert.Len(t, g.Children, 1)
}

func TestItem_AddGroupIsIdempotent(t *testing.T) {
	g := NewGroup("Generated", GeneratedGroupID)

	a := g.AddGroup("resources")
	b := g.AddGroup("resources")

	assert.Same(t, a, b)
}

func TestItem_SortRecursivelyIsCaseInsensitive(t *testing.T) {
	g := NewGroup("Generated", GeneratedGroupID)
	g.AddFile("/p/zeta.cpp")
	g.AddFile("/p/Alpha.cpp")
	g.AddFile("/p/beta.cpp")
	sub := g.AddGroup("inner")
	sub.AddFile("/p/inner/B.h")
	sub.AddFile("/p/inner/a.h")

	g.SortRecursively()

	names := make([]string, len(g.Children))
	for i, c := range g.Children {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Alpha.cpp", "beta.cpp", "inner", "zeta.cpp"}, names)
	assert.Equal(t, "a.h", sub.Children[0].Name)
	assert.Equal(t, "B.h", sub.Children[1].Name)
}

func TestItem_CloneIsIndependent(t *testing.T) {
	g := NewGroup("Generated", GeneratedGroupID)
	g.AddFile("/p/a.cpp")

	snapshot := g.Clone()
	g.AddFile("/p/b.cpp")

	assert.Len(t, g.Children, 2)
	assert.Len(t, snapshot.Children, 1)
	assert.Nil(t, snapshot.FindFile("/p/b.cpp"))
}

func TestItem_FilesFlattensLeaves(t *testing.T) {
	g := NewGroup("Generated", GeneratedGroupID)
	g.AddFile("/p/a.cpp")
	g.AddGroup("sub").AddFile("/p/sub/b.cpp")

	leaves := g.Files()
	require.Len(t, leaves, 2)
	assert.Equal(t, "/p/a.cpp", leaves[0].Path)
	assert.Equal(t, "/p/sub/b.cpp", leaves[1].Path)
}
