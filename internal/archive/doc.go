// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package archive exports file systems as archives. It is used to extract the
// files embedded into a WebAssembly module as a newc CPIO archive.
package archive
