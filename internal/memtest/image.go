// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package memtest builds linear memory images with embedded file records for
// tests.
package memtest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// DefaultStart is the offset of the first record in images built by
// [Image.Build]. The bytes before it are zero, so offset 0 is never
// referenced by a record.
const DefaultStart = 8

const recordSize = 12

type file struct {
	location string
	content  []byte
}

// Image collects embedded files and lays them out like a compiled module
// does: the record list first, followed by the sentinel and then all strings
// and contents.
type Image struct {
	files []file
}

// Add adds a file with the given location and content.
func (i *Image) Add(location, content string) *Image {
	i.files = append(i.files, file{location, []byte(content)})
	return i
}

// Build returns the memory buffer and the offset of the first record. The
// buffer ends with a zero byte, so the content address of an empty last file
// is still within the buffer.
func (i *Image) Build() ([]byte, uint32) {
	tableEnd := DefaultStart + len(i.files)*recordSize + 4
	buf := make([]byte, tableEnd)

	for idx, f := range i.files {
		nameAddr := len(buf)
		buf = append(buf, f.location...)
		buf = append(buf, 0)

		contentAddr := len(buf)
		buf = append(buf, f.content...)

		pos := DefaultStart + idx*recordSize
		putWord(buf[pos:], nameAddr)
		putWord(buf[pos+4:], len(f.content))
		putWord(buf[pos+8:], contentAddr)
	}

	return append(buf, 0), DefaultStart
}

// WriteFile builds the image and writes it into a new file in a temporary
// directory. It returns the path to the file and the start offset.
func (i *Image) WriteFile(tb testing.TB) (string, uint32) {
	tb.Helper()

	buf, start := i.Build()
	path := filepath.Join(tb.TempDir(), "memory.bin")

	err := os.WriteFile(path, buf, 0o600)
	if err != nil {
		tb.Fatalf("write memory image: %v", err)
	}

	return path, start
}

// Words encodes the given words little-endian.
func Words(words ...uint32) []byte {
	buf := make([]byte, 0, len(words)*4)
	for _, word := range words {
		buf = binary.LittleEndian.AppendUint32(buf, word)
	}

	return buf
}

func putWord(buf []byte, value int) {
	binary.LittleEndian.PutUint32(buf, uint32(value)) //nolint:gosec
}
