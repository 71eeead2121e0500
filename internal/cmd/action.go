// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aibor/embedfs/internal/archive"
	"github.com/aibor/embedfs/internal/files"
	"github.com/aibor/embedfs/internal/virtfs"
	"golang.org/x/sync/errgroup"
)

// list prints one line per node: its kind, its size and its path.
// Directories have no size.
func list(tree *files.Tree, output io.Writer) error {
	for path, node := range tree.All() {
		if dir, ok := node.Directory(); ok {
			if dir.IsRoot() {
				continue
			}

			_, err := fmt.Fprintf(output, "d\t-\t%s\n", path)
			if err != nil {
				return fmt.Errorf("write: %w", err)
			}

			continue
		}

		file, _ := node.File()

		_, err := fmt.Fprintf(output, "f\t%d\t%s\n", file.Size(), path)
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}

	stats := tree.Stats()
	slog.Debug("Listed tree",
		slog.Int("directories", stats.Directories),
		slog.Int("files", stats.Files),
		slog.Uint64("bytes", stats.Bytes),
	)

	return nil
}

type digestItem struct {
	path string
	file *files.File
	sum  string
}

// digest prints the sha256 digest of every file in the format of sha256sum.
// Digests are computed concurrently by the given number of jobs, but printed
// in tree order.
func digest(ctx context.Context, tree *files.Tree, jobs int, output io.Writer) error {
	items := []*digestItem{}

	for path, node := range tree.All() {
		if file, ok := node.File(); ok {
			items = append(items, &digestItem{path: path, file: file})
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for _, item := range items {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}

			sum := sha256.Sum256(item.file.Content())
			item.sum = hex.EncodeToString(sum[:])

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("digest: %w", err)
	}

	for _, item := range items {
		_, err := fmt.Fprintf(output, "%s  %s\n", item.sum, item.path)
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}

	return nil
}

// cat writes the content of the file at the given location.
func cat(tree *files.Tree, location string, output io.Writer) error {
	node, err := tree.Lookup(location)
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	file, ok := node.File()
	if !ok {
		return fmt.Errorf("%s: %w", location, ErrIsDirectory)
	}

	if _, err := output.Write(file.Content()); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

// writeCPIO writes all embedded files into a new cpio archive at path. The
// file is removed again if writing fails.
func writeCPIO(tree *files.Tree, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	defer func() {
		if err != nil {
			_ = file.Close()
			removeArchive(path)
		}
	}()

	writer := archive.NewCPIOWriter(file)

	err = archive.WriteFS(writer, virtfs.New(tree))
	if err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	slog.Debug("Wrote archive", slog.String("path", path))

	return nil
}

func removeArchive(path string) {
	slog.Debug("Removing archive", slog.String("path", path))

	err := os.Remove(path)
	if err != nil {
		slog.Error(
			"Failed to remove archive",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}
