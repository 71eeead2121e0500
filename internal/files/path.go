// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files

import (
	"fmt"
	"strings"
)

// Separator is the path separator used in embedded file locations.
const Separator = "/"

// SplitLocation splits an embedded file location into its parent directory
// names and the file name.
//
// The location must start with [Separator]. No normalization is done, so
// empty segments and "." or ".." are returned as they are. The file name must
// not be empty.
func SplitLocation(location string) ([]string, string, error) {
	if !strings.HasPrefix(location, Separator) {
		return nil, "", fmt.Errorf("%w: %q: not absolute", ErrInvalidLocation, location)
	}

	// The first segment is the empty string before the leading separator.
	segments := strings.Split(location, Separator)[1:]
	last := len(segments) - 1

	name := segments[last]
	if name == "" {
		return nil, "", fmt.Errorf("%w: %q: no file name", ErrInvalidLocation, location)
	}

	return segments[:last], name, nil
}
