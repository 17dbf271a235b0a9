package main

import (
	"github.com/urfave/cli/v2"
)

var (
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "log level (panic, fatal, error, warn, info, debug, trace)",
		Value: "info",
	}

	configFlag = &cli.PathFlag{
		Name:  "config",
		Usage: "TOML file holding the parameter block (size, key, salt, person)",
	}
	sizeFlag = &cli.IntFlag{
		Name:    "size",
		Aliases: []string{"n"},
		Usage:   "digest size in bytes (1-32)",
		Value:   32,
	}
	keyFlag = &cli.StringFlag{
		Name:  "key",
		Usage: "hex-encoded key, up to 32 bytes",
	}
	saltFlag = &cli.StringFlag{
		Name:  "salt",
		Usage: "hex-encoded salt, up to 8 bytes",
	}
	personFlag = &cli.StringFlag{
		Name:  "person",
		Usage: "hex-encoded personalization string, up to 8 bytes",
	}
	textFlag = &cli.StringFlag{
		Name:  "text",
		Usage: "hash this literal string instead of a file",
	}

	outFlag = &cli.PathFlag{
		Name:  "out",
		Usage: "write the trace to this file instead of stdout",
	}
	gstepsFlag = &cli.BoolFlag{
		Name:  "gsteps",
		Usage: "include every G evaluation in the trace",
	}
	logTraceFlag = &cli.BoolFlag{
		Name:  "log",
		Usage: "also stream compression events to the log (needs --verbosity debug or trace)",
	}
	traceFileFlag = &cli.PathFlag{
		Name:     "trace",
		Usage:    "trace file produced by the implementation under test",
		Required: true,
	}
)

// paramFlags are shared by every command that hashes a message.
var paramFlags = []cli.Flag{
	configFlag,
	sizeFlag,
	keyFlag,
	saltFlag,
	personFlag,
	textFlag,
}
