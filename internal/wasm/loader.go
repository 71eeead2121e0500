// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package wasm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aibor/embedfs/internal/files"
	"github.com/aibor/embedfs/internal/heap"
	"github.com/aibor/embedfs/internal/record"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

const (
	hostModuleName        = "env"
	loadEmbeddedFilesName = "_emscripten_fs_load_embedded_files"
	abortName             = "abort"
)

// Start functions in the order they are tried. Reactor modules export
// "_initialize", command modules "_start".
var startFunctions = []string{"_initialize", "_start"}

// Config is the configuration for [Load].
type Config struct {
	// Args are the arguments passed to the module. The first one is the
	// program name by convention.
	Args []string

	// Env is the environment passed to the module in "KEY=VALUE" form, like
	// returned by [os.Environ]. Entries without "=" are passed with an empty
	// value.
	Env []string

	// Stdin is the module's input. The module reads EOF if nil.
	Stdin io.Reader

	// Stdout and Stderr receive the module's output. Output is discarded if
	// nil.
	Stdout io.Writer
	Stderr io.Writer
}

func (c Config) moduleConfig() wazero.ModuleConfig {
	moduleConfig := wazero.NewModuleConfig().
		WithStartFunctions().
		WithArgs(c.Args...)

	for _, kv := range c.Env {
		key, value, _ := strings.Cut(kv, "=")
		moduleConfig = moduleConfig.WithEnv(key, value)
	}

	if c.Stdin != nil {
		moduleConfig = moduleConfig.WithStdin(c.Stdin)
	}

	if c.Stdout != nil {
		moduleConfig = moduleConfig.WithStdout(c.Stdout)
	}

	if c.Stderr != nil {
		moduleConfig = moduleConfig.WithStderr(c.Stderr)
	}

	return moduleConfig
}

// Module is an instantiated module that announced its embedded files.
type Module struct {
	// Memory is a view of the module's linear memory. It is only valid until
	// the module is closed.
	Memory heap.View

	// RecordsOffset is the address of the first embedded file record.
	RecordsOffset uint32

	runtime wazero.Runtime
}

// Tree builds the file tree of the module's embedded files.
func (m *Module) Tree(opts ...record.Option) (*files.Tree, error) {
	return files.Build(m.Memory, m.RecordsOffset, opts...)
}

// Close releases all resources of the module.
func (m *Module) Close(ctx context.Context) error {
	if err := m.runtime.Close(ctx); err != nil {
		return fmt.Errorf("close runtime: %w", err)
	}

	return nil
}

// embeddedFiles collects what the module announces through the host
// functions.
type embeddedFiles struct {
	offset    uint32
	announced bool
	aborted   bool
}

func (e *embeddedFiles) load(_ context.Context, _ api.Module, offset uint32) {
	if e.announced {
		slog.Debug("Ignore repeated embedded files announcement",
			slog.Uint64("offset", uint64(offset)))

		return
	}

	slog.Debug("Embedded files announced", slog.Uint64("offset", uint64(offset)))

	e.offset = offset
	e.announced = true
}

func (e *embeddedFiles) abort(_ context.Context, _ api.Module) {
	e.aborted = true

	panic(ErrAbort)
}

// checkAbort returns [ErrAbort] instead of the given error if the module
// called "env.abort".
func (e *embeddedFiles) checkAbort(err error) error {
	if !e.aborted {
		return err
	}

	slog.Debug("Module aborted", slog.Any("error", err))

	return ErrAbort
}

// Load instantiates the given WebAssembly module, runs its start function and
// returns the module with its announced embedded files. The caller must close
// the returned [Module].
func Load(ctx context.Context, wasm []byte, cfg Config) (*Module, error) {
	runtime := wazero.NewRuntime(ctx)

	module, err := load(ctx, runtime, wasm, cfg)
	if err != nil {
		_ = runtime.Close(ctx)
		return nil, err
	}

	return module, nil
}

func load(
	ctx context.Context,
	runtime wazero.Runtime,
	wasm []byte,
	cfg Config,
) (*Module, error) {
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		return nil, fmt.Errorf("instantiate wasi: %w", err)
	}

	var embedded embeddedFiles

	_, err := runtime.NewHostModuleBuilder(hostModuleName).
		NewFunctionBuilder().WithFunc(embedded.load).Export(loadEmbeddedFilesName).
		NewFunctionBuilder().WithFunc(embedded.abort).Export(abortName).
		Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("instantiate host module: %w", err)
	}

	compiled, err := runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	// A start section runs during instantiation already, so it may abort
	// here, too.
	instance, err := runtime.InstantiateModule(ctx, compiled, cfg.moduleConfig())
	if err != nil {
		return nil, embedded.checkAbort(fmt.Errorf("instantiate: %w", err))
	}

	err = start(ctx, instance)
	if err != nil {
		return nil, embedded.checkAbort(err)
	}

	if !embedded.announced {
		return nil, ErrNoEmbeddedFiles
	}

	memory := instance.Memory()
	if memory == nil {
		return nil, ErrNoMemory
	}

	buf, _ := memory.Read(0, memory.Size())

	slog.Debug("Module loaded",
		slog.Uint64("memory", uint64(len(buf))),
		slog.Uint64("records", uint64(embedded.offset)),
	)

	return &Module{
		Memory:        heap.New(buf),
		RecordsOffset: embedded.offset,
		runtime:       runtime,
	}, nil
}

// start calls the first start function the module exports. A clean exit with
// code 0 is not an error.
func start(ctx context.Context, instance api.Module) error {
	for _, name := range startFunctions {
		fn := instance.ExportedFunction(name)
		if fn == nil {
			continue
		}

		slog.Debug("Call start function", slog.String("name", name))

		_, err := fn.Call(ctx)

		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 0 {
			return nil
		}

		if err != nil {
			return fmt.Errorf("call %s: %w", name, err)
		}

		return nil
	}

	return nil
}
