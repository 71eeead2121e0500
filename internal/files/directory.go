// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files

import "slices"

// Directory is a directory in the file tree.
//
// Children are kept in the order they were added. Names are unique among
// them.
type Directory struct {
	name     string
	isRoot   bool
	children []Node
	index    map[string]int
}

func newDirectory(name string) *Directory {
	return &Directory{
		name:  name,
		index: make(map[string]int),
	}
}

// Name returns the name of the directory. It is empty for the root.
func (d *Directory) Name() string {
	return d.name
}

// IsRoot returns true if the directory is the root of its tree.
func (d *Directory) IsRoot() bool {
	return d.isRoot
}

// Len returns the number of children.
func (d *Directory) Len() int {
	return len(d.children)
}

// Children returns all children in insertion order.
func (d *Directory) Children() []Node {
	return slices.Clone(d.children)
}

// Has returns true if any child has the given name.
func (d *Directory) Has(name string) bool {
	_, exists := d.index[name]
	return exists
}

// Child returns the child with the given name, regardless of its kind.
func (d *Directory) Child(name string) (Node, bool) {
	idx, exists := d.index[name]
	if !exists {
		return Node{}, false
	}

	return d.children[idx], true
}

// GetChild returns the child directory with the given name.
//
// It returns a [LookupError] if there is no child with that name or it is not
// a directory.
func (d *Directory) GetChild(name string) (*Directory, error) {
	dir, exists := d.FindChild(name)
	if !exists {
		return nil, d.lookupError(name, KindDirectory)
	}

	return dir, nil
}

// GetFile returns the child file with the given name.
//
// It returns a [LookupError] if there is no child with that name or it is not
// a file.
func (d *Directory) GetFile(name string) (*File, error) {
	file, exists := d.FindFile(name)
	if !exists {
		return nil, d.lookupError(name, KindFile)
	}

	return file, nil
}

// FindChild is like [Directory.GetChild] but returns false instead of an
// error.
func (d *Directory) FindChild(name string) (*Directory, bool) {
	node, exists := d.Child(name)
	if !exists {
		return nil, false
	}

	return node.Directory()
}

// FindFile is like [Directory.GetFile] but returns false instead of an error.
func (d *Directory) FindFile(name string) (*File, bool) {
	node, exists := d.Child(name)
	if !exists {
		return nil, false
	}

	return node.File()
}

// add appends the node unless a child with the same name exists already. In
// that case the existing child is returned along with false.
func (d *Directory) add(node Node) (Node, bool) {
	name := node.Name()

	if existing, exists := d.Child(name); exists {
		return existing, false
	}

	d.index[name] = len(d.children)
	d.children = append(d.children, node)

	return node, true
}

func (d *Directory) lookupError(name string, want Kind) error {
	return &LookupError{
		Dir:  d.name,
		Name: name,
		Want: want,
	}
}
