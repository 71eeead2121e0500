// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package virtfs

import (
	"bytes"
	"io"
	"io/fs"
	"time"

	"github.com/aibor/embedfs/internal/files"
)

const (
	dirMode  fs.FileMode = fs.ModeDir | 0o555
	fileMode fs.FileMode = 0o444
)

var (
	_ fs.FileInfo = (*fileInfo)(nil)
	_ fs.DirEntry = (*dirEntry)(nil)
)

type dirEntry struct {
	name string
	node files.Node
}

func (e *dirEntry) Name() string               { return e.name }
func (e *dirEntry) IsDir() bool                { return e.node.IsDir() }
func (e *dirEntry) Type() fs.FileMode          { return e.mode().Type() }
func (e *dirEntry) Info() (fs.FileInfo, error) { return &fileInfo{*e}, nil }
func (e *dirEntry) String() string             { return fs.FormatDirEntry(e) }

func (e *dirEntry) mode() fs.FileMode {
	if e.node.IsDir() {
		return dirMode
	}

	return fileMode
}

type fileInfo struct {
	dirEntry
}

func (i *fileInfo) Mode() fs.FileMode { return i.mode() }
func (*fileInfo) ModTime() time.Time  { return time.Time{} }
func (i *fileInfo) Sys() any          { return i.node }
func (i *fileInfo) String() string    { return fs.FormatFileInfo(i) }

func (i *fileInfo) Size() int64 {
	file, isFile := i.node.File()
	if !isFile {
		return 0
	}

	return int64(file.Size())
}

var (
	_ fs.File        = (*openFile)(nil)
	_ fs.ReadDirFile = (*openFile)(nil)
	_ io.ReaderAt    = (*openFile)(nil)
	_ io.Seeker      = (*openFile)(nil)
)

type openFile struct {
	info    fileInfo
	reader  *bytes.Reader
	entries []fs.DirEntry
	offset  int
}

func newOpenFile(entry dirEntry) *openFile {
	file := &openFile{
		info: fileInfo{entry},
	}

	switch node := entry.node; node.Kind() {
	case files.KindFile:
		f, _ := node.File()
		file.reader = bytes.NewReader(f.Content())
	case files.KindDirectory:
		dir, _ := node.Directory()
		file.entries = entries(dir)
	case files.KindInvalid:
	}

	return file
}

// Stat implements [fs.File].
func (f *openFile) Stat() (fs.FileInfo, error) {
	return &f.info, nil
}

// Read implements [fs.File].
func (f *openFile) Read(b []byte) (int, error) {
	if f.reader == nil {
		return 0, f.pathError("read", ErrFileInvalid)
	}

	return f.reader.Read(b) //nolint:wrapcheck
}

// ReadAt implements [io.ReaderAt].
func (f *openFile) ReadAt(b []byte, off int64) (int, error) {
	if f.reader == nil {
		return 0, f.pathError("read", ErrFileInvalid)
	}

	return f.reader.ReadAt(b, off) //nolint:wrapcheck
}

// Seek implements [io.Seeker].
func (f *openFile) Seek(offset int64, whence int) (int64, error) {
	if f.reader == nil {
		return 0, f.pathError("seek", ErrFileInvalid)
	}

	return f.reader.Seek(offset, whence) //nolint:wrapcheck
}

// Close implements [fs.File]. There is nothing to release.
func (*openFile) Close() error {
	return nil
}

// ReadDir implements [fs.ReadDirFile].
func (f *openFile) ReadDir(count int) ([]fs.DirEntry, error) {
	if !f.info.IsDir() {
		return nil, f.pathError("readdir", ErrFileNotDir)
	}

	start := f.offset
	end := len(f.entries)
	available := end - start

	if available == 0 && count > 0 {
		return nil, io.EOF
	}

	if count > 0 && available > count {
		end = start + count
	}

	f.offset = end

	return f.entries[start:end], nil
}

func (f *openFile) pathError(op string, err error) error {
	return &PathError{
		Op:   op,
		Path: f.info.name,
		Err:  err,
	}
}

// entries returns the directory's children in insertion order.
func entries(dir *files.Directory) []fs.DirEntry {
	children := dir.Children()
	entries := make([]fs.DirEntry, 0, len(children))

	for _, node := range children {
		entries = append(entries, &dirEntry{
			name: node.Name(),
			node: node,
		})
	}

	return entries
}
