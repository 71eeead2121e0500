// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package wasm instantiates WebAssembly modules that carry embedded files.
//
// Such modules import the function "_emscripten_fs_load_embedded_files" from
// the "env" module and call it once during startup with the address of the
// first embedded file record in their linear memory. The loader provides that
// import, runs the module's start function and keeps the announced address
// together with a view of the module's memory, so the file tree can be built
// afterwards.
package wasm
