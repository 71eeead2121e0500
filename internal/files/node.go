// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files

import "fmt"

// Kind defines the kind of a [Node].
type Kind int

const (
	// KindInvalid is the kind of the zero [Node].
	KindInvalid Kind = iota

	// KindDirectory is a directory. Directories are not part of the embedded
	// data. They are created for the parent paths of files.
	KindDirectory

	// KindFile is a regular file with content in the memory buffer.
	KindFile
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is a single file tree node. It is either a [Directory] or a [File],
// depending on its [Kind].
type Node struct {
	kind Kind
	dir  *Directory
	file *File
}

func directoryNode(dir *Directory) Node {
	return Node{kind: KindDirectory, dir: dir}
}

func fileNode(file *File) Node {
	return Node{kind: KindFile, file: file}
}

// Kind returns the kind of the [Node].
func (n Node) Kind() Kind {
	return n.kind
}

// IsDir returns true if the [Node] is a directory.
func (n Node) IsDir() bool {
	return n.kind == KindDirectory
}

// IsFile returns true if the [Node] is a file.
func (n Node) IsFile() bool {
	return n.kind == KindFile
}

// Directory returns the [Directory] if the [Node] is one.
func (n Node) Directory() (*Directory, bool) {
	return n.dir, n.kind == KindDirectory
}

// File returns the [File] if the [Node] is one.
func (n Node) File() (*File, bool) {
	return n.file, n.kind == KindFile
}

// Name returns the name of the [Node].
func (n Node) Name() string {
	switch n.kind {
	case KindDirectory:
		return n.dir.name
	case KindFile:
		return n.file.name
	default:
		return ""
	}
}

// String returns a string representation of the [Node].
func (n Node) String() string {
	switch n.kind {
	case KindDirectory:
		return fmt.Sprintf("directory (%d entries)", len(n.dir.children))
	case KindFile:
		return fmt.Sprintf("file (%s, %d bytes)", n.file.location, n.file.length)
	default:
		return "invalid node"
	}
}
