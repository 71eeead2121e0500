// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files

// File is an embedded file.
type File struct {
	name     string
	location string
	offset   uint32
	length   uint32
	content  []byte
}

// Name returns the last segment of the file's location.
func (f *File) Name() string {
	return f.name
}

// Location returns the full path of the file as stored in its record.
func (f *File) Location() string {
	return f.location
}

// Offset returns the offset of the file content in the memory buffer.
func (f *File) Offset() uint32 {
	return f.offset
}

// Size returns the size of the file content in bytes.
func (f *File) Size() uint32 {
	return f.length
}

// Content returns the file content.
//
// The returned slice aliases the memory buffer the tree was built from. It
// must not be modified and is only valid as long as the buffer is.
func (f *File) Content() []byte {
	return f.content
}
