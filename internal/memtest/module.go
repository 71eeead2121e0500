// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memtest

// Opcodes and section ids of the WebAssembly binary format.
const (
	sectionType   = 1
	sectionImport = 2
	sectionFunc   = 3
	sectionMemory = 5
	sectionExport = 7
	sectionStart  = 8
	sectionCode   = 10
	sectionData   = 11

	wasi = "wasi_snapshot_preview1"

	kindFunc   = 0x00
	kindMemory = 0x02

	opI32Const = 0x41
	opCall     = 0x10
	opDrop     = 0x1a
	opEnd      = 0x0b
)

// Offsets the start function copies the module's arguments and environment
// to if [ModuleOptions.CopyArgsEnv] is set. Images must end before
// ArgvOffset.
const (
	ArgvOffset       = 0x8000
	ArgvBufOffset    = 0x8100
	EnvironOffset    = 0x9000
	EnvironBufOffset = 0x9100
)

// ModuleOptions configures the module built by [Image.Module].
type ModuleOptions struct {
	// StartFunc is the name the start function is exported as. Defaults to
	// "_start".
	StartFunc string
	// Abort makes the start function call "env.abort" after handing over the
	// records pointer.
	Abort bool
	// SkipLoad makes the start function not call
	// "env._emscripten_fs_load_embedded_files" at all.
	SkipLoad bool
	// CopyArgsEnv makes the start function copy its arguments and
	// environment with the WASI functions "args_get" and "environ_get" to
	// [ArgvOffset] and [EnvironOffset].
	CopyArgsEnv bool
	// ProcExit makes the start function end with the WASI function
	// "proc_exit" called with ExitCode, like command modules built by
	// emscripten do.
	ProcExit bool
	ExitCode int32
	// StartSection additionally declares the start function as the module's
	// start section, so it already runs while the module is instantiated.
	StartSection bool
}

// Module builds a minimal WebAssembly module that has the image in its
// memory. Its start function passes the offset of the first record to the
// imported function "env._emscripten_fs_load_embedded_files", like modules
// built by emscripten with embedded files do.
func (i *Image) Module(opts ModuleOptions) []byte {
	if opts.StartFunc == "" {
		opts.StartFunc = "_start"
	}

	data, start := i.Build()

	const (
		typeI32    = 0
		typeVoid   = 1
		typeI32I32 = 2

		funcLoad       = 0
		funcAbort      = 1
		funcProcExit   = 2
		funcArgsGet    = 3
		funcEnvironGet = 4
		funcStart      = 5
	)

	body := []byte{0} // no locals
	if !opts.SkipLoad {
		body = appendConst(body, int32(start)) //nolint:gosec
		body = append(body, opCall, funcLoad)
	}

	if opts.CopyArgsEnv {
		body = appendConst(body, ArgvOffset)
		body = appendConst(body, ArgvBufOffset)
		body = append(body, opCall, funcArgsGet, opDrop)
		body = appendConst(body, EnvironOffset)
		body = appendConst(body, EnvironBufOffset)
		body = append(body, opCall, funcEnvironGet, opDrop)
	}

	if opts.Abort {
		body = append(body, opCall, funcAbort)
	}

	if opts.ProcExit {
		body = appendConst(body, opts.ExitCode)
		body = append(body, opCall, funcProcExit)
	}

	body = append(body, opEnd)

	module := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}

	module = appendSection(module, sectionType, vector(
		[]byte{0x60, 0x01, 0x7f, 0x00},             // (i32) -> ()
		[]byte{0x60, 0x00, 0x00},                   // () -> ()
		[]byte{0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f}, // (i32, i32) -> i32
	))

	module = appendSection(module, sectionImport, vector(
		concat(name("env"), name("_emscripten_fs_load_embedded_files"),
			[]byte{kindFunc, typeI32}),
		concat(name("env"), name("abort"), []byte{kindFunc, typeVoid}),
		concat(name(wasi), name("proc_exit"), []byte{kindFunc, typeI32}),
		concat(name(wasi), name("args_get"), []byte{kindFunc, typeI32I32}),
		concat(name(wasi), name("environ_get"), []byte{kindFunc, typeI32I32}),
	))

	module = appendSection(module, sectionFunc, vector([]byte{typeVoid}))

	pages := len(data)/(1<<16) + 1
	module = appendSection(module, sectionMemory, vector(
		concat([]byte{0x00}, uleb(uint32(pages))), //nolint:gosec
	))

	module = appendSection(module, sectionExport, vector(
		concat(name("memory"), []byte{kindMemory, 0}),
		concat(name(opts.StartFunc), []byte{kindFunc, funcStart}),
	))

	if opts.StartSection {
		module = appendSection(module, sectionStart, uleb(funcStart))
	}

	module = appendSection(module, sectionCode, vector(
		concat(uleb(uint32(len(body))), body), //nolint:gosec
	))

	module = appendSection(module, sectionData, vector(
		concat(
			[]byte{0x00, opI32Const, 0x00, opEnd},
			uleb(uint32(len(data))), //nolint:gosec
			data,
		),
	))

	return module
}

func appendConst(body []byte, value int32) []byte {
	body = append(body, opI32Const)
	return append(body, sleb(value)...)
}

func appendSection(module []byte, id byte, content []byte) []byte {
	module = append(module, id)
	module = append(module, uleb(uint32(len(content)))...) //nolint:gosec

	return append(module, content...)
}

func vector(items ...[]byte) []byte {
	return concat(append([][]byte{uleb(uint32(len(items)))}, items...)...) //nolint:gosec
}

func name(s string) []byte {
	return concat(uleb(uint32(len(s))), []byte(s)) //nolint:gosec
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, part := range parts {
		out = append(out, part...)
	}

	return out
}

func uleb(value uint32) []byte {
	var out []byte

	for {
		b := byte(value & 0x7f)
		value >>= 7

		if value != 0 {
			b |= 0x80
		}

		out = append(out, b)

		if value == 0 {
			return out
		}
	}
}

func sleb(value int32) []byte {
	var out []byte

	for {
		b := byte(value & 0x7f)
		value >>= 7

		done := (value == 0 && b&0x40 == 0) || (value == -1 && b&0x40 != 0)
		if !done {
			b |= 0x80
		}

		out = append(out, b)

		if done {
			return out
		}
	}
}
