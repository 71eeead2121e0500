// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package heap

import "errors"

var (
	// ErrOutOfBounds is returned if a read exceeds the buffer.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrNotRegularFile is returned if a file to be mapped is not a regular
	// file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrEmptyFile is returned if a file to be mapped is empty.
	ErrEmptyFile = errors.New("file is empty")
)
