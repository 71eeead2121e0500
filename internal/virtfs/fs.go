// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package virtfs

import (
	"bytes"
	"errors"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/aibor/embedfs/internal/files"
)

var (
	_ fs.FS         = (*FS)(nil)
	_ fs.ReadDirFS  = (*FS)(nil)
	_ fs.ReadFileFS = (*FS)(nil)
	_ fs.StatFS     = (*FS)(nil)
)

// FS is a read-only [fs.FS] serving the files of an embedded file tree.
//
// Only paths valid according to [fs.ValidPath] can be opened. Files with
// names that are not valid path elements, like empty names, are listed in
// their directories but can not be opened.
type FS struct {
	tree *files.Tree
}

// New creates a new [FS] for the given tree.
func New(tree *files.Tree) *FS {
	return &FS{tree: tree}
}

// Open opens the named file.
//
// It returns a [PathError] in case of errors.
func (fsys *FS) Open(name string) (fs.File, error) {
	entry, err := fsys.find(name)
	if err != nil {
		return nil, &PathError{
			Op:   "open",
			Path: name,
			Err:  err,
		}
	}

	return newOpenFile(entry), nil
}

// Stat returns information about the named file.
//
// It returns a [PathError] in case of errors.
func (fsys *FS) Stat(name string) (fs.FileInfo, error) {
	entry, err := fsys.find(name)
	if err != nil {
		return nil, &PathError{
			Op:   "stat",
			Path: name,
			Err:  err,
		}
	}

	return &fileInfo{entry}, nil
}

// ReadFile returns a copy of the content of the named file.
//
// It returns a [PathError] in case of errors.
func (fsys *FS) ReadFile(name string) ([]byte, error) {
	entry, err := fsys.find(name)
	if err == nil && !entry.node.IsFile() {
		err = ErrFileInvalid
	}

	if err != nil {
		return nil, &PathError{
			Op:   "read",
			Path: name,
			Err:  err,
		}
	}

	file, _ := entry.node.File()

	return bytes.Clone(file.Content()), nil
}

// ReadDir returns the entries of the named directory sorted by name.
//
// It returns a [PathError] in case of errors.
func (fsys *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	entry, err := fsys.find(name)
	if err == nil && !entry.node.IsDir() {
		err = ErrFileNotDir
	}

	if err != nil {
		return nil, &PathError{
			Op:   "readdir",
			Path: name,
			Err:  err,
		}
	}

	dir, _ := entry.node.Directory()

	list := entries(dir)
	slices.SortFunc(list, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return list, nil
}

func (fsys *FS) find(name string) (dirEntry, error) {
	if !fs.ValidPath(name) {
		return dirEntry{}, ErrFileInvalid
	}

	if name == "." {
		name = ""
	}

	node, err := fsys.tree.Lookup(name)
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			return dirEntry{}, ErrFileNotExist
		}

		return dirEntry{}, err
	}

	entryName := path.Base(name)
	if name == "" {
		entryName = "."
	}

	return dirEntry{name: entryName, node: node}, nil
}
