// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package record

import (
	"iter"
	"math"

	"github.com/aibor/embedfs/internal/heap"
)

// Option configures a [Reader].
type Option func(*Reader)

// WithMaxRecords limits the number of records a [Reader] decodes. Once more
// records are found, the reader fails with [ErrTooManyRecords]. Zero or less
// means no limit.
func WithMaxRecords(limit int) Option {
	return func(r *Reader) {
		r.limit = limit
	}
}

// Reader decodes records one by one until the sentinel is found.
//
// Create a new instance with [NewReader].
type Reader struct {
	view   heap.View
	offset uint64
	limit  int
	count  int
	done   bool
	err    error
}

// NewReader creates a new [Reader] that starts decoding at the given offset.
func NewReader(view heap.View, start uint32, opts ...Option) *Reader {
	reader := &Reader{
		view:   view,
		offset: uint64(start),
	}

	for _, opt := range opts {
		opt(reader)
	}

	return reader
}

// Offset returns the offset of the next record position.
func (r *Reader) Offset() uint64 {
	return r.offset
}

// Count returns the number of records decoded so far.
func (r *Reader) Count() int {
	return r.count
}

// Next decodes the next record.
//
// It returns false once the sentinel is reached or an error occurred. Errors
// are sticky: once failed, all further calls return the same error. All
// errors match [ErrMalformedEmbeddedData].
func (r *Reader) Next() (Record, bool, error) {
	if r.done {
		return Record{}, false, r.err
	}

	if r.offset > math.MaxUint32 {
		return r.fail(math.MaxUint32, heap.ErrOutOfBounds)
	}

	offset := uint32(r.offset)

	if offset%heap.WordSize != 0 {
		return r.fail(offset, ErrUnaligned)
	}

	nameAddr, err := r.view.ReadU32(offset)
	if err != nil {
		return r.fail(offset, err)
	}

	if nameAddr == 0 {
		r.done = true
		return Record{}, false, nil
	}

	if r.limit > 0 && r.count >= r.limit {
		return r.fail(offset, ErrTooManyRecords)
	}

	record, err := Decode(r.view, offset)
	if err != nil {
		r.done = true
		r.err = err

		return Record{}, false, err
	}

	r.count++
	r.offset += Size

	return record, true, nil
}

func (r *Reader) fail(offset uint32, err error) (Record, bool, error) {
	r.done = true
	r.err = &DecodeError{Offset: offset, Err: err}

	return Record{}, false, r.err
}

// All returns an iterator over all records starting at the given offset.
//
// Records are decoded lazily. Iteration ends at the sentinel. In case of an
// error, it is yielded once along with an empty [Record] and iteration stops.
func All(view heap.View, start uint32, opts ...Option) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		reader := NewReader(view, start, opts...)

		for {
			record, ok, err := reader.Next()
			if err != nil {
				yield(Record{}, err)
				return
			}

			if !ok || !yield(record, nil) {
				return
			}
		}
	}
}
