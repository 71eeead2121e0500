// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"testing"
	"testing/fstest"

	"github.com/aibor/embedfs/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvArgs(t *testing.T) {
	tests := []struct {
		name   string
		env    string
		output []string
	}{
		{
			name:   "empty",
			env:    "",
			output: []string{},
		},
		{
			name:   "multiple args",
			env:    "-raw -offset 0x400",
			output: []string{"-raw", "-offset", "0x400"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EMBEDFS_ARGS", tt.env)
			assert.Equal(t, tt.output, cmd.EnvArgs())
		})
	}
}

func TestLocalConfigArgs(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		env      map[string]string
		expected []string
	}{
		{
			name:     "empty",
			content:  "",
			expected: []string{},
		},
		{
			name:     "single line",
			content:  "-offset=8\n-cat=/a b",
			expected: []string{"-offset=8", "-cat=/a b"},
		},
		{
			name:     "multiple lines",
			content:  "-offset\n8\n-jobs\n4\n",
			expected: []string{"-offset", "8", "-jobs", "4"},
		},
		{
			name:     "with env vars",
			content:  "-cpio=${DIR}/out.cpio\n-cat=$FILE--\n-offset=${UNSET}8\n",
			env:      map[string]string{"DIR": "/tmp", "FILE": "/a"},
			expected: []string{"-cpio=/tmp/out.cpio", "-cat=/a--", "-offset=8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFS := fstest.MapFS{
				"conf": &fstest.MapFile{
					Data: []byte(tt.content),
				},
			}

			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			content, err := cmd.LocalConfigArgs(testFS, "conf")
			require.NoError(t, err)

			assert.Equal(t, tt.expected, content)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		content, err := cmd.LocalConfigArgs(fstest.MapFS{}, "conf")
		require.NoError(t, err)
		assert.Nil(t, content)
	})
}

func TestMergedArgs(t *testing.T) {
	testFS := fstest.MapFS{
		".embedfs-args": &fstest.MapFile{
			Data: []byte("-raw\n-offset=8\n"),
		},
	}

	t.Setenv("EMBEDFS_ARGS", "-debug")

	args, err := cmd.MergedArgs(
		[]string{"embedfs", "-offset=16", "memory.bin"},
		testFS,
		".embedfs-args",
	)
	require.NoError(t, err)

	expected := []string{
		"embedfs",
		"-raw",
		"-offset=8",
		"-debug",
		"-offset=16",
		"memory.bin",
	}
	assert.Equal(t, expected, args)
}
