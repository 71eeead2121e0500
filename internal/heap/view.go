// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package heap

import (
	"bytes"
	"encoding/binary"
)

// WordSize is the size of an unsigned 32 bit word in bytes.
const WordSize = 4

// View is a read-only window on a linear memory buffer.
//
// The zero value is an empty view on which every read fails with
// [ErrOutOfBounds].
type View struct {
	buf []byte
}

// New creates a new [View] for the given buffer. The buffer is not copied.
func New(buf []byte) View {
	return View{buf: buf}
}

// Len returns the size of the underlying buffer.
func (v View) Len() int {
	return len(v.buf)
}

// Bytes returns the complete underlying buffer.
func (v View) Bytes() []byte {
	return v.buf
}

// ReadU32 reads the little-endian unsigned 32 bit word at the given offset.
func (v View) ReadU32(offset uint32) (uint32, error) {
	word, err := v.slice("read u32", offset, WordSize)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(word), nil
}

// ReadBytes returns a view of length bytes starting at offset.
func (v View) ReadBytes(offset, length uint32) ([]byte, error) {
	return v.slice("read bytes", offset, length)
}

// ReadCString reads the zero terminated string starting at offset. The
// terminating zero byte is not part of the returned string.
func (v View) ReadCString(offset uint32) (string, error) {
	if uint64(offset) >= uint64(len(v.buf)) {
		return "", v.accessError("read cstring", offset, 1)
	}

	tail := v.buf[offset:]

	end := bytes.IndexByte(tail, 0)
	if end < 0 {
		return "", v.accessError("read cstring", offset, uint64(len(tail))+1)
	}

	return string(tail[:end]), nil
}

func (v View) slice(op string, offset, length uint32) ([]byte, error) {
	// Computed in 64 bit so offset+length can not wrap around.
	end := uint64(offset) + uint64(length)
	if end > uint64(len(v.buf)) {
		return nil, v.accessError(op, offset, uint64(length))
	}

	return v.buf[offset:end:end], nil
}

func (v View) accessError(op string, offset uint32, length uint64) error {
	return &AccessError{
		Op:     op,
		Offset: uint64(offset),
		Length: length,
		Size:   len(v.buf),
		Err:    ErrOutOfBounds,
	}
}
