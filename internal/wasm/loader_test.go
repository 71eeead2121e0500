// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package wasm_test

import (
	"testing"

	"github.com/aibor/embedfs/internal/files"
	"github.com/aibor/embedfs/internal/memtest"
	"github.com/aibor/embedfs/internal/wasm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newImage() *memtest.Image {
	return (&memtest.Image{}).
		Add("/index.html", "<html></html>").
		Add("/data/config.json", "{}")
}

func TestLoad(t *testing.T) {
	for _, startFunc := range []string{"_start", "_initialize"} {
		t.Run(startFunc, func(t *testing.T) {
			module, err := wasm.Load(t.Context(), newImage().Module(memtest.ModuleOptions{
				StartFunc: startFunc,
			}), wasm.Config{Args: []string{"test"}})
			require.NoError(t, err)
			t.Cleanup(func() { _ = module.Close(t.Context()) })

			assert.Equal(t, uint32(memtest.DefaultStart), module.RecordsOffset)

			tree, err := module.Tree()
			require.NoError(t, err)

			node, err := tree.Lookup("/data/config.json")
			require.NoError(t, err)

			file, ok := node.File()
			require.True(t, ok)
			assert.Equal(t, "{}", string(file.Content()))

			assert.Equal(t, files.Stats{Directories: 1, Files: 2, Bytes: 15}, tree.Stats())
		})
	}
}

func TestLoadExit(t *testing.T) {
	t.Run("exit code 0", func(t *testing.T) {
		module, err := wasm.Load(t.Context(), newImage().Module(memtest.ModuleOptions{
			ProcExit: true,
		}), wasm.Config{})
		require.NoError(t, err)
		t.Cleanup(func() { _ = module.Close(t.Context()) })

		tree, err := module.Tree()
		require.NoError(t, err)

		node, err := tree.Lookup("/data/config.json")
		require.NoError(t, err)

		file, ok := node.File()
		require.True(t, ok)
		assert.Equal(t, "{}", string(file.Content()))
	})

	t.Run("exit code 1", func(t *testing.T) {
		_, err := wasm.Load(t.Context(), newImage().Module(memtest.ModuleOptions{
			ProcExit: true,
			ExitCode: 1,
		}), wasm.Config{})
		require.ErrorContains(t, err, "call _start")

		var exitErr *sys.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, uint32(1), exitErr.ExitCode())
	})
}

func TestLoadStartSection(t *testing.T) {
	module, err := wasm.Load(t.Context(), newImage().Module(memtest.ModuleOptions{
		StartFunc:    "main",
		StartSection: true,
	}), wasm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = module.Close(t.Context()) })

	assert.Equal(t, uint32(memtest.DefaultStart), module.RecordsOffset)
}

func TestLoadArgsEnv(t *testing.T) {
	module, err := wasm.Load(t.Context(), newImage().Module(memtest.ModuleOptions{
		CopyArgsEnv: true,
	}), wasm.Config{
		Args: []string{"app.wasm", "-v"},
		Env:  []string{"HOME=/root", "EMPTY=", "PATH=/bin:/usr/bin"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = module.Close(t.Context()) })

	readStrings := func(t *testing.T, listOffset uint32, count int) []string {
		t.Helper()

		list := []string{}

		for idx := range count {
			addr, err := module.Memory.ReadU32(listOffset + uint32(idx)*4) //nolint:gosec
			require.NoError(t, err)

			str, err := module.Memory.ReadCString(addr)
			require.NoError(t, err)

			list = append(list, str)
		}

		return list
	}

	assert.Equal(t, []string{"app.wasm", "-v"},
		readStrings(t, memtest.ArgvOffset, 2))
	assert.Equal(t, []string{"HOME=/root", "EMPTY=", "PATH=/bin:/usr/bin"},
		readStrings(t, memtest.EnvironOffset, 3))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		module []byte
		err    error
		msg    string
	}{
		{
			name:   "abort",
			module: newImage().Module(memtest.ModuleOptions{Abort: true}),
			err:    wasm.ErrAbort,
		},
		{
			name: "abort in start section",
			module: newImage().Module(memtest.ModuleOptions{
				StartFunc:    "main",
				StartSection: true,
				Abort:        true,
			}),
			err: wasm.ErrAbort,
		},
		{
			name:   "no announcement",
			module: newImage().Module(memtest.ModuleOptions{SkipLoad: true}),
			err:    wasm.ErrNoEmbeddedFiles,
		},
		{
			name:   "unknown start function",
			module: newImage().Module(memtest.ModuleOptions{StartFunc: "main"}),
			err:    wasm.ErrNoEmbeddedFiles,
		},
		{
			name:   "invalid module",
			module: []byte("not a module"),
			msg:    "compile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wasm.Load(t.Context(), tt.module, wasm.Config{})
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			} else {
				require.ErrorContains(t, err, tt.msg)
			}
		})
	}
}

func TestModuleClose(t *testing.T) {
	module, err := wasm.Load(t.Context(), newImage().Module(memtest.ModuleOptions{}), wasm.Config{})
	require.NoError(t, err)

	require.NoError(t, module.Close(t.Context()))
}
