// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package virtfs provides a read-only [io/fs.FS] on top of an embedded file
// tree. It allows using the embedded files with everything that takes an
// [io/fs.FS], like [net/http.FS] or [io/fs.WalkDir].
//
// File content is not copied when opening files. Reads are served directly
// from the module's memory buffer.
package virtfs
