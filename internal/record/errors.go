// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package record

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEmbeddedData is returned if the record list can not be
	// decoded. Record boundaries can not be trusted anymore once this
	// happened, so decoding must not continue.
	ErrMalformedEmbeddedData = errors.New("malformed embedded data")

	// ErrUnaligned is returned if a record offset is not word aligned.
	ErrUnaligned = errors.New("record offset not word aligned")

	// ErrTooManyRecords is returned if more records are found than allowed
	// by [WithMaxRecords].
	ErrTooManyRecords = errors.New("too many records")
)

// DecodeError wraps errors that occur while decoding the record at Offset.
//
// It matches [ErrMalformedEmbeddedData] with [errors.Is].
type DecodeError struct {
	Offset uint32
	Err    error
}

// Error implements the [error] interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: record at %#x: %v",
		ErrMalformedEmbeddedData, e.Offset, e.Err)
}

// Is implements the [errors.Is] interface.
func (*DecodeError) Is(other error) bool {
	if other == ErrMalformedEmbeddedData {
		return true
	}

	_, ok := other.(*DecodeError)

	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
