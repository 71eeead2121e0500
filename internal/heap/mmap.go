// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build unix

package heap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapping is a read-only memory mapping of a linear memory dump file.
type Mapping struct {
	data []byte
}

// Map maps the file with the given name read-only into memory.
//
// The caller must call [Mapping.Close] once all views and all file trees
// built from it are no longer used.
func Map(name string) (*Mapping, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, ErrNotRegularFile
	}

	if info.Size() == 0 {
		return nil, ErrEmptyFile
	}

	data, err := unix.Mmap(
		int(file.Fd()),
		0,
		int(info.Size()),
		unix.PROT_READ,
		unix.MAP_SHARED,
	)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}

	return &Mapping{data: data}, nil
}

// View returns a [View] on the mapped file.
func (m *Mapping) View() View {
	return New(m.data)
}

// Close unmaps the file. Views obtained before must not be used afterwards.
func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}

	err := unix.Munmap(m.data)
	m.data = nil

	if err != nil {
		return fmt.Errorf("munmap: %w", err)
	}

	return nil
}
