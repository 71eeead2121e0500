// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import "errors"

// ErrNotRegularFile is returned if a file to be archived is neither a
// directory nor a regular file.
var ErrNotRegularFile = errors.New("not a regular file")
