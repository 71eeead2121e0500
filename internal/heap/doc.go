// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package heap provides bounds checked read access to the linear memory of a
// WebAssembly module.
//
// A [View] never copies. Byte slices returned by [View.ReadBytes] and
// [View.Bytes] alias the underlying buffer and must be treated as immutable.
// They are only valid as long as the owner of the buffer keeps it alive and
// does not grow or modify it.
package heap
