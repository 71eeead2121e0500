// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/aibor/embedfs/internal/cmd"
	"github.com/aibor/embedfs/internal/memtest"
	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *memtest.Image {
	return (&memtest.Image{}).
		Add("/index.html", "<html></html>").
		Add("/data/config.json", "{}")
}

func sum(content string) string {
	digest := sha256.Sum256([]byte(content))
	return hex.EncodeToString(digest[:])
}

func writeModule(t *testing.T, image *memtest.Image, opts memtest.ModuleOptions) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "app.wasm")
	err := os.WriteFile(path, image.Module(opts), 0o600)
	require.NoError(t, err)

	return path
}

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	t.Setenv("EMBEDFS_ARGS", "")

	var stdout, stderr bytes.Buffer

	exitCode := cmd.Run(t.Context(), append([]string{"embedfs"}, args...), cmd.IO{
		Stdin:  &bytes.Buffer{},
		Stdout: &stdout,
		Stderr: &stderr,
		Env:    []string{"LANG=C", "HOME=/root"},
	})

	return exitCode, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	rawPath, start := testImage().WriteFile(t)
	raw := []string{"-raw", "-offset", strconv.Itoa(int(start)), rawPath}
	module := []string{writeModule(t, testImage(), memtest.ModuleOptions{})}

	listOutput := "f\t13\t/index.html\n" +
		"d\t-\t/data\n" +
		"f\t2\t/data/config.json\n"

	digestOutput := sum("<html></html>") + "  /index.html\n" +
		sum("{}") + "  /data/config.json\n"

	tests := []struct {
		name             string
		args             []string
		expectedExitCode int
		expectedStdout   string
		expectedStderr   string
	}{
		{
			name:           "list",
			args:           []string{"-list"},
			expectedStdout: listOutput,
		},
		{
			name:           "default action",
			expectedStdout: listOutput,
		},
		{
			name:           "digest",
			args:           []string{"-digest", "-jobs=1"},
			expectedStdout: digestOutput,
		},
		{
			name:           "digest concurrently",
			args:           []string{"-digest", "-jobs=4"},
			expectedStdout: digestOutput,
		},
		{
			name:           "cat",
			args:           []string{"-cat", "/data/config.json"},
			expectedStdout: "{}",
		},
		{
			name:             "cat missing",
			args:             []string{"-cat", "/data/missing"},
			expectedExitCode: cmd.ExitError,
			expectedStderr:   "not found",
		},
		{
			name:             "cat directory",
			args:             []string{"-cat", "/data"},
			expectedExitCode: cmd.ExitError,
			expectedStderr:   cmd.ErrIsDirectory.Error(),
		},
		{
			name:             "max records exceeded",
			args:             []string{"-max-records=1"},
			expectedExitCode: cmd.ExitError,
			expectedStderr:   "too many records",
		},
	}

	for _, source := range []struct {
		name string
		args []string
	}{
		{"raw", raw},
		{"module", module},
	} {
		for _, tt := range tests {
			t.Run(source.name+"/"+tt.name, func(t *testing.T) {
				args := append(append([]string{}, tt.args...), source.args...)

				exitCode, stdout, stderr := runCmd(t, args...)

				assert.Equal(t, tt.expectedExitCode, exitCode, stderr)
				assert.Equal(t, tt.expectedStdout, stdout)
				assert.Contains(t, stderr, tt.expectedStderr)
			})
		}
	}
}

func TestRunModuleArgs(t *testing.T) {
	module := writeModule(t, testImage(), memtest.ModuleOptions{
		CopyArgsEnv: true,
	})

	exitCode, stdout, stderr := runCmd(t, "-cat", "/index.html", module, "-v", "input")

	assert.Equal(t, cmd.ExitOK, exitCode, stderr)
	assert.Equal(t, "<html></html>", stdout)
}

func TestRunModuleExit(t *testing.T) {
	module := writeModule(t, testImage(), memtest.ModuleOptions{
		ProcExit: true,
		ExitCode: 3,
	})

	exitCode, stdout, stderr := runCmd(t, module)

	assert.Equal(t, cmd.ExitError, exitCode)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "exit_code(3)")
}

func TestRunCPIO(t *testing.T) {
	rawPath, start := testImage().WriteFile(t)
	archivePath := filepath.Join(t.TempDir(), "out.cpio")

	exitCode, _, stderr := runCmd(t,
		"-raw", "-offset", strconv.Itoa(int(start)),
		"-cpio", archivePath,
		rawPath,
	)
	require.Equal(t, cmd.ExitOK, exitCode, stderr)

	file, err := os.Open(archivePath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	reader := cpio.NewReader(file)
	names := []string{}

	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		require.NoError(t, err)

		names = append(names, hdr.Name)
	}

	assert.ElementsMatch(t, []string{"index.html", "data", "data/config.json"}, names)
}

func TestRunErrors(t *testing.T) {
	rawPath, _ := testImage().WriteFile(t)

	tests := []struct {
		name             string
		args             []string
		expectedExitCode int
		expectedStderr   string
	}{
		{
			name:             "help",
			args:             []string{"-help"},
			expectedExitCode: cmd.ExitOK,
			expectedStderr:   "Usage of 'embedfs'",
		},
		{
			name:             "no source",
			expectedExitCode: cmd.ExitUsage,
			expectedStderr:   "no source given",
		},
		{
			name:             "unknown flag",
			args:             []string{"-unknown", rawPath},
			expectedExitCode: cmd.ExitUsage,
			expectedStderr:   "flag provided but not defined",
		},
		{
			name:             "raw without offset",
			args:             []string{"-raw", rawPath},
			expectedExitCode: cmd.ExitUsage,
			expectedStderr:   "no offset given",
		},
		{
			name:             "missing source",
			args:             []string{filepath.Join(t.TempDir(), "missing.wasm")},
			expectedExitCode: cmd.ExitError,
			expectedStderr:   "no such file or directory",
		},
		{
			name:             "source is directory",
			args:             []string{t.TempDir()},
			expectedExitCode: cmd.ExitError,
			expectedStderr:   cmd.ErrNotRegularFile.Error(),
		},
		{
			name:             "not a module",
			args:             []string{rawPath},
			expectedExitCode: cmd.ExitError,
			expectedStderr:   "load module",
		},
		{
			name:             "raw with wrong offset",
			args:             []string{"-raw", "-offset=1", rawPath},
			expectedExitCode: cmd.ExitError,
			expectedStderr:   "malformed embedded data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exitCode, stdout, stderr := runCmd(t, tt.args...)

			assert.Equal(t, tt.expectedExitCode, exitCode, stderr)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.expectedStderr)
		})
	}
}
