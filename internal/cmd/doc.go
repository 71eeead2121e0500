// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for embedfs. It handles
// flag parsing, loading the source, running the requested action and mapping
// errors to exit codes.
package cmd
