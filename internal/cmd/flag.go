// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"math"
	"runtime"
)

const (
	name = "embedfs"

	jobsMax = 256

	usageMessage = `Usage of 'embedfs':
    embedfs [flags...] source [args...]

Inspect the files embedded into a WebAssembly module:
	embedfs ./app.wasm

Arguments after the source are passed to the module:
	embedfs -cat=/etc/motd ./app.wasm --config=prod

Inspect a raw memory dump with the records starting at 0x400:
	embedfs -raw -offset=0x400 ./memory.bin

All embedfs flags can also be provided via environment variable EMBEDFS_ARGS:
	EMBEDFS_ARGS="-debug" embedfs ./app.wasm

All embedfs flags can also be provided via file ./.embedfs-args, with one
argument per line.
`
)

type action int

const (
	actionList action = iota
	actionDigest
	actionCat
	actionCPIO
)

type flags struct {
	flagSet *flag.FlagSet

	source     string
	moduleArgs []string
	raw        bool
	offset     uint64
	maxRecords uint64

	list   bool
	digest bool
	jobs   uint64
	cat    string
	cpio   FilePath

	debug   bool
	version bool
}

func newFlags(output io.Writer) *flags {
	flags := &flags{
		jobs: uint64(runtime.NumCPU()), //nolint:gosec
	}

	flags.initFlagset(output)

	return flags
}

// action returns the requested action. Only one may be given.
func (f *flags) action() (action, error) {
	requested := []action{}

	if f.list {
		requested = append(requested, actionList)
	}

	if f.digest {
		requested = append(requested, actionDigest)
	}

	if f.cat != "" {
		requested = append(requested, actionCat)
	}

	if f.cpio != "" {
		requested = append(requested, actionCPIO)
	}

	switch len(requested) {
	case 0:
		return actionList, nil
	case 1:
		return requested[0], nil
	default:
		return 0, ErrConflictingActions
	}
}

func (f *flags) isSet(flagName string) bool {
	set := false

	f.flagSet.Visit(func(fl *flag.Flag) {
		if fl.Name == flagName {
			set = true
		}
	})

	return set
}

func (f *flags) ParseArgs(args []string) error {
	// Parses arguments up to the first one that is not prefixed with a "-" or
	// is "--".
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	if _, err := f.action(); err != nil {
		return f.fail("invalid actions", err)
	}

	if f.raw && !f.isSet("offset") {
		return f.fail("no offset given (use -offset)", ErrOffsetRequired)
	}

	positionalArgs := f.flagSet.Args()

	// First positional argument is supposed to be the source file.
	if len(positionalArgs) < 1 {
		return f.fail("no source given", nil)
	}

	// All further positional arguments are passed to the module.
	f.moduleArgs = positionalArgs[1:]

	if f.raw && len(f.moduleArgs) > 0 {
		return f.fail("arguments are not allowed for raw memory dumps", nil)
	}

	source, err := AbsoluteFilePath(positionalArgs[0])
	if err != nil {
		return f.fail("source path", err)
	}

	f.source = source

	return nil
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.BoolVar(
		&f.raw,
		"raw",
		f.raw,
		"source is a raw memory dump instead of a WebAssembly module",
	)

	flagSet.Var(
		&LimitedUintValue{
			Value: &f.offset,
			Upper: math.MaxUint32,
		},
		"offset",
		"offset of the first record in a raw memory dump",
	)

	flagSet.Var(
		&LimitedUintValue{
			Value: &f.maxRecords,
			Upper: math.MaxInt32,
		},
		"max-records",
		"stop with an error after this many records (default unlimited)",
	)

	flagSet.BoolVar(
		&f.list,
		"list",
		f.list,
		"list all directories and files (default action)",
	)

	flagSet.BoolVar(
		&f.digest,
		"digest",
		f.digest,
		"list all files with their sha256 digest",
	)

	flagSet.Var(
		&LimitedUintValue{
			Value: &f.jobs,
			Lower: 1,
			Upper: jobsMax,
		},
		"jobs",
		"number of files digested concurrently",
	)

	flagSet.StringVar(
		&f.cat,
		"cat",
		f.cat,
		"write the content of the file at the given path to stdout",
	)

	flagSet.Var(
		&f.cpio,
		"cpio",
		"write all files into a cpio archive at the given path",
	)

	flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, err := getBuildInfo()
	if err != nil {
		return err
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
