// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package heap

import "fmt"

// AccessError records a failed read and the position that caused it.
type AccessError struct {
	Op     string
	Offset uint64
	Length uint64
	Size   int
	Err    error
}

// Error implements the [error] interface.
func (e *AccessError) Error() string {
	return fmt.Sprintf(
		"%s [%d:%d] of %d bytes: %v",
		e.Op,
		e.Offset,
		e.Offset+e.Length,
		e.Size,
		e.Err,
	)
}

// Is implements the [errors.Is] interface.
func (*AccessError) Is(other error) bool {
	_, ok := other.(*AccessError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *AccessError) Unwrap() error {
	return e.Err
}
