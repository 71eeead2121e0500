// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package record decodes the list of embedded file records from a linear
// memory buffer.
//
// Each record is three little-endian unsigned 32 bit words:
//
//	+0  nameAddr     offset of the zero terminated path
//	+4  length       content size in bytes
//	+8  contentAddr  offset of the content
//
// Records follow each other directly. The list ends with a record position
// whose nameAddr word is zero.
package record
