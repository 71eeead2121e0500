// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package files provides the file tree of the files embedded into a
// WebAssembly module.
//
// The tree is built once from the decoded record list with [Build] and is
// read-only afterwards. Directories are not part of the record list. They are
// created on demand from the file locations. File content is not copied, each
// [File] references its range of the module's memory buffer.
//
// A built [Tree] is safe for concurrent use as long as the underlying memory
// buffer is not modified or grown.
package files
