// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package files

import (
	"iter"
	"log/slog"

	"github.com/aibor/embedfs/internal/heap"
	"github.com/aibor/embedfs/internal/record"
)

// Builder builds a [Tree] from records one by one.
//
// Parent directories are created as needed. The first node added with a
// name wins. Records for names that exist already in their parent directory
// are skipped, regardless of the kind of the existing node. The same is true
// for records with a parent path segment that names an existing file.
type Builder struct {
	buf     heap.View
	tree    Tree
	skipped int
}

// NewBuilder creates a new [Builder] for records decoded from buf.
func NewBuilder(buf heap.View) *Builder {
	return &Builder{buf: buf}
}

// Insert adds the file described by the record to the tree.
//
// It returns a [record.DecodeError] if the record's location is invalid or
// its content is not within the buffer.
func (b *Builder) Insert(rec record.Record) error {
	dirs, name, err := SplitLocation(rec.Location)
	if err != nil {
		return &record.DecodeError{Offset: rec.Offset, Err: err}
	}

	content, err := rec.Content(b.buf)
	if err != nil {
		return &record.DecodeError{Offset: rec.Offset, Err: err}
	}

	parent := b.tree.Root()

	for _, dirName := range dirs {
		node, exists := parent.Child(dirName)
		if !exists {
			node, _ = parent.add(directoryNode(newDirectory(dirName)))
		}

		dir, isDir := node.Directory()
		if !isDir {
			b.skip(rec, "parent is a file")
			return nil
		}

		parent = dir
	}

	file := &File{
		name:     name,
		location: rec.Location,
		offset:   rec.ContentAddr,
		length:   rec.Length,
		content:  content,
	}

	if _, added := parent.add(fileNode(file)); !added {
		b.skip(rec, "exists")
	}

	return nil
}

func (b *Builder) skip(rec record.Record, reason string) {
	b.skipped++

	slog.Debug("Skip embedded file",
		slog.String("location", rec.Location),
		slog.String("reason", reason),
	)
}

// Skipped returns the number of records that were skipped.
func (b *Builder) Skipped() int {
	return b.skipped
}

// Tree returns the tree built so far.
func (b *Builder) Tree() *Tree {
	return &b.tree
}

// BuildFrom builds a new [Tree] from all records of the given sequence.
//
// If the sequence yields an error or any record can not be inserted, building
// is aborted and the error is returned. There is no partial tree in this
// case.
func BuildFrom(buf heap.View, records iter.Seq2[record.Record, error]) (*Tree, error) {
	builder := NewBuilder(buf)

	for rec, err := range records {
		if err != nil {
			return nil, err
		}

		err = builder.Insert(rec)
		if err != nil {
			return nil, err
		}
	}

	tree := builder.Tree()

	slog.Debug("Built embedded file tree",
		slog.Int("entries", tree.Root().Len()),
		slog.Int("skipped", builder.Skipped()),
	)

	return tree, nil
}

// Build builds a new [Tree] from the record list that starts at the given
// offset of the buffer.
//
// Any decoding error aborts building and is returned. All such errors match
// [record.ErrMalformedEmbeddedData].
func Build(buf heap.View, start uint32, opts ...record.Option) (*Tree, error) {
	return BuildFrom(buf, record.All(buf, start, opts...))
}
