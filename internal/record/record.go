// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package record

import (
	"github.com/aibor/embedfs/internal/heap"
)

// Size is the size of a single record in bytes.
const Size = 3 * heap.WordSize

// Record is a single decoded embedded file record.
type Record struct {
	// Offset of the record itself.
	Offset uint32
	// NameAddr is the offset of the zero terminated location string.
	NameAddr uint32
	// Location is the full path of the file, like "/a/b.txt".
	Location string
	// ContentAddr is the offset of the file content.
	ContentAddr uint32
	// Length is the size of the file content in bytes.
	Length uint32
}

// Decode decodes the record at the given offset.
//
// The words are read in the order they are laid out, then the location string
// is resolved and the content range is checked against the buffer.
//
// All errors are returned as [DecodeError].
func Decode(view heap.View, offset uint32) (Record, error) {
	if offset%heap.WordSize != 0 {
		return Record{}, &DecodeError{Offset: offset, Err: ErrUnaligned}
	}

	// The whole record must fit, so the word offsets below can not wrap.
	if _, err := view.ReadBytes(offset, Size); err != nil {
		return Record{}, &DecodeError{Offset: offset, Err: err}
	}

	var (
		record = Record{Offset: offset}
		err    error
	)

	for _, field := range []*uint32{
		&record.NameAddr,
		&record.Length,
		&record.ContentAddr,
	} {
		*field, err = view.ReadU32(offset)
		if err != nil {
			return Record{}, &DecodeError{Offset: record.Offset, Err: err}
		}

		offset += heap.WordSize
	}

	record.Location, err = view.ReadCString(record.NameAddr)
	if err != nil {
		return Record{}, &DecodeError{Offset: record.Offset, Err: err}
	}

	_, err = record.Content(view)
	if err != nil {
		return Record{}, &DecodeError{Offset: record.Offset, Err: err}
	}

	return record, nil
}

// Content returns the view of the record's content in the given buffer.
//
// The content address must be within the buffer, even for empty content.
func (r Record) Content(view heap.View) ([]byte, error) {
	if r.Length == 0 {
		if _, err := view.ReadBytes(r.ContentAddr, 1); err != nil {
			return nil, err
		}
	}

	return view.ReadBytes(r.ContentAddr, r.Length)
}
