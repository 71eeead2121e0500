// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/aibor/embedfs/internal/files"
)

const localConfigFile = ".embedfs-args"

// Exit codes returned by [Run].
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is passed to WebAssembly modules as their environment.
	Env []string
}

func parseFlags(args []string, cfg IO) (*flags, error) {
	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, err
	}

	flags := newFlags(cfg.Stderr)

	err = flags.ParseArgs(args[1:])
	if err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}

	return flags, nil
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	action, err := flags.action()
	if err != nil {
		return err
	}

	src, err := openSource(ctx, flags, cfg)
	if err != nil {
		return err
	}

	defer func() {
		err := src.close(ctx)
		if err != nil {
			slog.Warn("Failed to close source", slog.Any("error", err))
		}
	}()

	switch action {
	case actionDigest:
		return digest(ctx, src.tree, int(flags.jobs), cfg.Stdout) //nolint:gosec
	case actionCat:
		return cat(src.tree, flags.cat, cfg.Stdout)
	case actionCPIO:
		return writeCPIO(src.tree, string(flags.cpio))
	default:
		return list(src.tree, cfg.Stdout)
	}
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return ExitOK
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
		return ExitError
	}

	return ExitUsage
}

func handleRunError(err error) int {
	if errors.Is(err, files.ErrNotFound) {
		slog.Warn("paths are absolute and case sensitive, use -list to show them")
	}

	slog.Error(err.Error())

	return ExitError
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	flags, err := parseFlags(args, cfg)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.debug)

	err = run(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return ExitOK
}

func getBuildInfo() (*debug.BuildInfo, error) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrReadBuildInfo
	}

	return buildInfo, nil
}
