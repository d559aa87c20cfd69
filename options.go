// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliextra

import (
	"log/slog"
	"strings"
)

type options struct {
	appName    string
	strict     bool
	searchDirs []string
	excluded   []string
	envPrefix  string
	prompt     bool
	logger     *slog.Logger
}

// Option implements a functional options pattern for Extend.
type Option func(o *options)

// WithStrict rejects configuration keys that do not name a declared parameter.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithAppName sets the name used for the configuration directory and the
// <APP>_CONFIG environment variable. It defaults to the root command name.
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithSearchDirs replaces the default search directory, <config home>/<app>.
// Directories are searched in order.
func WithSearchDirs(dirs ...string) Option {
	return func(o *options) {
		o.searchDirs = dirs
	}
}

// WithExcluded replaces the list of parameter identifiers that are never read
// from a configuration file.
func WithExcluded(ids ...string) Option {
	return func(o *options) {
		o.excluded = append([]string{}, ids...)
	}
}

// WithAutoEnvVars gives every flag an extra environment variable source named
// <PREFIX>_<SUBCOMMAND...>_<FLAG>, upper case, dashes replaced by underscores.
func WithAutoEnvVars(prefix string) Option {
	return func(o *options) {
		o.envPrefix = strings.ToUpper(prefix)
	}
}

// WithPrompt asks for a configuration location on the terminal when none was
// given explicitly. An empty answer falls back to the default search.
func WithPrompt() Option {
	return func(o *options) {
		o.prompt = true
	}
}

// WithLogger sets the logger used while loading configuration. Without it the
// logger already carried by the context is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
