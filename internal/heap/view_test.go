// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package heap_test

import (
	"errors"
	"testing"

	"github.com/aibor/embedfs/internal/heap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewReadU32(t *testing.T) {
	view := heap.New([]byte{
		0x01, 0x00, 0x00, 0x00,
		0x78, 0x56, 0x34, 0x12,
		0xff, 0xff,
	})

	tests := []struct {
		name     string
		offset   uint32
		expected uint32
		err      error
	}{
		{
			name:     "first word",
			offset:   0,
			expected: 1,
		},
		{
			name:     "little endian",
			offset:   4,
			expected: 0x12345678,
		},
		{
			name:   "partial word",
			offset: 8,
			err:    heap.ErrOutOfBounds,
		},
		{
			name:   "at end",
			offset: 10,
			err:    heap.ErrOutOfBounds,
		},
		{
			name:   "overflowing offset",
			offset: 0xfffffffe,
			err:    heap.ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := view.ReadU32(tt.offset)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestViewReadBytes(t *testing.T) {
	buf := []byte("0123456789")
	view := heap.New(buf)

	t.Run("view", func(t *testing.T) {
		actual, err := view.ReadBytes(2, 3)
		require.NoError(t, err)
		assert.Equal(t, []byte("234"), actual)

		buf[3] = 'x'
		assert.Equal(t, []byte("2x4"), actual, "must not be a copy")
		buf[3] = '3'
	})

	t.Run("empty at end", func(t *testing.T) {
		actual, err := view.ReadBytes(10, 0)
		require.NoError(t, err)
		assert.Empty(t, actual)
	})

	t.Run("capacity limited", func(t *testing.T) {
		actual, err := view.ReadBytes(0, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, cap(actual))
	})

	t.Run("out of bounds", func(t *testing.T) {
		_, err := view.ReadBytes(8, 3)
		require.ErrorIs(t, err, heap.ErrOutOfBounds)

		var accessErr *heap.AccessError
		require.ErrorAs(t, err, &accessErr)
		assert.Equal(t, uint64(8), accessErr.Offset)
		assert.Equal(t, uint64(3), accessErr.Length)
		assert.Equal(t, 10, accessErr.Size)
	})
}

func TestViewReadCString(t *testing.T) {
	view := heap.New([]byte("/a/b.txt\x00\x00rest"))

	tests := []struct {
		name     string
		offset   uint32
		expected string
		err      error
	}{
		{
			name:     "full",
			offset:   0,
			expected: "/a/b.txt",
		},
		{
			name:     "inner",
			offset:   3,
			expected: "b.txt",
		},
		{
			name:     "empty",
			offset:   9,
			expected: "",
		},
		{
			name:   "unterminated",
			offset: 10,
			err:    heap.ErrOutOfBounds,
		},
		{
			name:   "beyond",
			offset: 14,
			err:    heap.ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := view.ReadCString(tt.offset)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestViewZeroValue(t *testing.T) {
	var view heap.View

	assert.Equal(t, 0, view.Len())

	_, err := view.ReadU32(0)
	require.ErrorIs(t, err, heap.ErrOutOfBounds)

	_, err = view.ReadCString(0)
	require.ErrorIs(t, err, heap.ErrOutOfBounds)
}

func TestAccessErrorIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		assert assert.BoolAssertionFunc
	}{
		{
			name:   "same type",
			err:    &heap.AccessError{Op: "read u32"},
			target: &heap.AccessError{},
			assert: assert.True,
		},
		{
			name:   "wrapped sentinel",
			err:    &heap.AccessError{Err: heap.ErrOutOfBounds},
			target: heap.ErrOutOfBounds,
			assert: assert.True,
		},
		{
			name:   "other error",
			err:    errors.New("fail"),
			target: &heap.AccessError{},
			assert: assert.False,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assert(t, errors.Is(tt.err, tt.target))
		})
	}
}
