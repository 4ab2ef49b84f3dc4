package project

import (
	"path/filepath"
	"sort"
	"strings"
)

// GeneratedGroupID is the reserved identifier that marks the logical
// group holding every file produced during a save, keeping it distinct
// from user source groups.
const GeneratedGroupID = "__generatedcode__"

// Item is a node in the project's logical file tree: either a leaf that
// maps to exactly one file on disk (Path non-empty), or a named group
// of child items.
type Item struct {
	Name     string
	ID       string
	Path     string
	Children []*Item
}

// NewGroup creates an empty group item.
func NewGroup(name, id string) *Item {
	return &Item{Name: name, ID: id, Children: []*Item{}}
}

// IsGroup reports whether the item is a group rather than a file leaf.
func (it *Item) IsGroup() bool { return it.Path == "" }

// FindFile returns the leaf item for the given absolute path, searching
// the whole subtree, or nil if the path isn't registered.
func (it *Item) FindFile(path string) *Item {
	for _, c := range it.Children {
		if c.IsGroup() {
			if found := c.FindFile(path); found != nil {
				return found
			}
		} else if c.Path == path {
			return c
		}
	}
	return nil
}

// AddFile registers a file leaf for an absolute path. Registration is
// idempotent: if the path already has an item anywhere in the subtree,
// that item is returned and nothing is added.
func (it *Item) AddFile(path string) *Item {
	if existing := it.FindFile(path); existing != nil {
		return existing
	}
	leaf := &Item{Name: filepath.Base(path), Path: path}
	it.Children = append(it.Children, leaf)
	return leaf
}

// AddGroup returns the direct child group with the given name, creating
// it if necessary.
func (it *Item) AddGroup(name string) *Item {
	for _, c := range it.Children {
		if c.IsGroup() && c.Name == name {
			return c
		}
	}
	g := NewGroup(name, "")
	it.Children = append(it.Children, g)
	return g
}

// SortRecursively orders every group's children alphabetically,
// case-insensitive, groups and files interleaved, so exporter output is
// deterministic and diff-stable.
func (it *Item) SortRecursively() {
	sort.SliceStable(it.Children, func(i, j int) bool {
		a := strings.ToLower(it.Children[i].Name)
		b := strings.ToLower(it.Children[j].Name)
		if a == b {
			return it.Children[i].Name < it.Children[j].Name
		}
		return a < b
	})
	for _, c := range it.Children {
		if c.IsGroup() {
			c.SortRecursively()
		}
	}
}

// Clone deep-copies the subtree. The saver snapshots the generated group
// before the exporter loop and hands each exporter a fresh copy, so one
// backend never sees another's contributions.
func (it *Item) Clone() *Item {
	out := &Item{Name: it.Name, ID: it.ID, Path: it.Path}
	if it.Children != nil {
		out.Children = make([]*Item, len(it.Children))
		for i, c := range it.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Files flattens the subtree into its file leaves, in tree order.
func (it *Item) Files() []*Item {
	var leaves []*Item
	for _, c := range it.Children {
		if c.IsGroup() {
			leaves = append(leaves, c.Files()...)
		} else {
			leaves = append(leaves, c)
		}
	}
	return leaves
}
