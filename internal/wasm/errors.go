// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package wasm

import "errors"

var (
	// ErrAbort is returned if the module called "env.abort".
	ErrAbort = errors.New("module aborted")

	// ErrNoEmbeddedFiles is returned if the module never announced the
	// address of its embedded file records.
	ErrNoEmbeddedFiles = errors.New("no embedded files announced")

	// ErrNoMemory is returned if the module does not export a memory.
	ErrNoMemory = errors.New("module has no memory")
)
