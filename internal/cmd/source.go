// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aibor/embedfs/internal/files"
	"github.com/aibor/embedfs/internal/heap"
	"github.com/aibor/embedfs/internal/record"
	"github.com/aibor/embedfs/internal/wasm"
)

// source is a loaded memory image with its embedded files.
type source struct {
	tree  *files.Tree
	close func(ctx context.Context) error
}

func (f *flags) recordOptions() []record.Option {
	if f.maxRecords == 0 {
		return nil
	}

	return []record.Option{record.WithMaxRecords(int(f.maxRecords))} //nolint:gosec
}

func openSource(ctx context.Context, flags *flags, cfg IO) (*source, error) {
	err := ValidateFilePath(flags.source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	if flags.raw {
		return openRaw(flags)
	}

	return openModule(ctx, flags, cfg)
}

func openRaw(flags *flags) (*source, error) {
	mapping, err := heap.Map(flags.source)
	if err != nil {
		return nil, fmt.Errorf("map memory dump: %w", err)
	}

	slog.Debug("Mapped memory dump",
		slog.String("path", flags.source),
		slog.Int("size", mapping.View().Len()),
	)

	offset := uint32(flags.offset) //nolint:gosec

	tree, err := files.Build(mapping.View(), offset, flags.recordOptions()...)
	if err != nil {
		_ = mapping.Close()
		return nil, fmt.Errorf("build tree: %w", err)
	}

	return &source{
		tree: tree,
		close: func(context.Context) error {
			return mapping.Close()
		},
	}, nil
}

// moduleConfig returns the configuration for running the source module. The
// module gets the source path as program name followed by the remaining
// arguments. Its output goes to stderr, so it does not mix with the action's
// output on stdout.
func moduleConfig(flags *flags, cfg IO) wasm.Config {
	return wasm.Config{
		Args:   append([]string{flags.source}, flags.moduleArgs...),
		Env:    cfg.Env,
		Stdin:  cfg.Stdin,
		Stdout: cfg.Stderr,
		Stderr: cfg.Stderr,
	}
}

func openModule(ctx context.Context, flags *flags, cfg IO) (*source, error) {
	module, err := os.ReadFile(flags.source)
	if err != nil {
		return nil, fmt.Errorf("read module: %w", err)
	}

	loaded, err := wasm.Load(ctx, module, moduleConfig(flags, cfg))
	if err != nil {
		return nil, fmt.Errorf("load module: %w", err)
	}

	tree, err := loaded.Tree(flags.recordOptions()...)
	if err != nil {
		_ = loaded.Close(ctx)
		return nil, fmt.Errorf("build tree: %w", err)
	}

	return &source{
		tree:  tree,
		close: loaded.Close,
	}, nil
}
