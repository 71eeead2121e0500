// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"fmt"
	"io/fs"
	"log/slog"
)

// FileMode is the mode regular files are archived with.
const FileMode fs.FileMode = 0o644

// WriteFS writes all directories and regular files of fsys into the given
// [Writer]. Parents are always written before their children. The root
// directory itself is not written.
func WriteFS(writer Writer, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == "." {
			return nil
		}

		slog.Debug("Archive file", slog.String("path", path))

		switch {
		case entry.IsDir():
			return writer.WriteDirectory(path)
		case entry.Type().IsRegular():
			return writeRegular(writer, fsys, path)
		default:
			return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
		}
	})
}

func writeRegular(writer Writer, fsys fs.FS, path string) error {
	source, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer source.Close()

	return writer.WriteRegular(path, source, FileMode)
}
