// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cliextra adds configuration file support to a urfave/cli command tree.
//
// Extend walks the tree and installs a --config flag, a --show-params flag and
// Before hooks on every command. At invocation the root hook locates a
// configuration document, either the one named by --config (or its
// environment variable) or the first config.<ext> in the application's
// configuration directory, parses it and keeps only the keys that name a
// declared flag or argument. Every command hook then feeds those values into
// its parameters that were not given on the command line or through the
// environment, so the precedence is
//
//	default < configuration file < environment < command line
//
// A document laid out for a command "app" with a subcommand "sub" looks like
// this in TOML:
//
//	[app]
//	verbosity = "DEBUG"
//	my_list = ["a", "b"]
//
//	[app.sub]
//	int_param = 3
//
// Failures loading an explicitly requested document end the process with exit
// code 2 after a single critical log line. Failures at the default location are
// logged at debug level and ignored. In strict mode unknown keys end the process
// with exit code 1.
package cliextra
