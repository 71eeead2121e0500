// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files

import (
	"iter"
	"strings"
)

// Tree represents the embedded file tree.
type Tree struct {
	// Do not access directly! Always use [Tree.Root] to access the root
	// directory to ensure it exists.
	root *Directory
}

// Root returns the root directory of the tree.
func (t *Tree) Root() *Directory {
	if t.root == nil {
		t.root = newDirectory("")
		t.root.isRoot = true
	}

	return t.root
}

// Lookup returns the node for the given path. The path is interpreted
// relative to the root, a leading [Separator] is optional. An empty path or
// [Separator] returns the root directory.
//
// It returns a [LookupError] if any segment does not exist or any of the
// parents is not a directory.
func (t *Tree) Lookup(name string) (Node, error) {
	dir := t.Root()

	name = strings.TrimPrefix(name, Separator)
	if name == "" {
		return directoryNode(dir), nil
	}

	dirs, base, err := SplitLocation(Separator + name)
	if err != nil {
		return Node{}, err
	}

	for _, dirName := range dirs {
		dir, err = dir.GetChild(dirName)
		if err != nil {
			return Node{}, err
		}
	}

	node, exists := dir.Child(base)
	if !exists {
		return Node{}, dir.lookupError(base, KindInvalid)
	}

	return node, nil
}

// All returns an iterator that iterates all nodes breadth-first along with
// their absolute paths, starting with the root directory. Children are
// iterated in insertion order.
func (t *Tree) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		root := t.Root()
		if !yield(Separator, directoryNode(root)) {
			return
		}

		type queued struct {
			path string
			dir  *Directory
		}

		queue := []queued{{Separator, root}}

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			for _, node := range current.dir.children {
				nodePath := joinPath(current.path, node.Name())
				if !yield(nodePath, node) {
					return
				}

				if dir, isDir := node.Directory(); isDir {
					queue = append(queue, queued{nodePath, dir})
				}
			}
		}
	}
}

// Stats summarizes the content of a [Tree].
type Stats struct {
	Directories int
	Files       int
	Bytes       uint64
}

// Stats counts all directories, excluding the root, all files and the total
// size of their content.
func (t *Tree) Stats() Stats {
	var stats Stats

	for _, node := range t.All() {
		switch node.Kind() {
		case KindDirectory:
			stats.Directories++
		case KindFile:
			stats.Files++
			stats.Bytes += uint64(node.file.length)
		case KindInvalid:
		}
	}

	// Root is not counted.
	stats.Directories--

	return stats
}

// joinPath joins without cleaning, so names are kept as they are.
func joinPath(base, name string) string {
	if base == Separator {
		return base + name
	}

	return base + Separator + name
}
