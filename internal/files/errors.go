// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned if a looked up node does not exist or is of the
	// wrong kind.
	ErrNotFound = errors.New("not found")

	// ErrInvalidLocation is returned if a location is not an absolute path
	// with a file name.
	ErrInvalidLocation = errors.New("invalid location")
)

// LookupError records a failed lookup and the directory it was done in.
//
// It matches [ErrNotFound] with [errors.Is].
type LookupError struct {
	// Dir is the name of the directory the lookup was done in. Empty for the
	// root directory.
	Dir string
	// Name is the name that was looked up.
	Name string
	// Want is the kind that was looked up. [KindInvalid] if any kind was
	// accepted.
	Want Kind
}

// Error implements the [error] interface.
func (e *LookupError) Error() string {
	want := "entry"
	if e.Want != KindInvalid {
		want = e.Want.String()
	}

	return fmt.Sprintf("directory %q: %s %q: %v", e.Dir, want, e.Name, ErrNotFound)
}

// Is implements the [errors.Is] interface.
func (*LookupError) Is(other error) bool {
	_, ok := other.(*LookupError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (*LookupError) Unwrap() error {
	return ErrNotFound
}
