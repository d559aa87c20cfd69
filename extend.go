// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliextra

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/matt-FFFFFF/cliextra/formats"
	"github.com/matt-FFFFFF/cliextra/params"
	"github.com/urfave/cli/v3"
)

// Names of the flags added by Extend.
const (
	ConfigFlagName     = "config"
	ShowParamsFlagName = "show-params"
)

// ErrFlagDefined is returned by Extend when the root command already declares
// one of the flags it adds.
var ErrFlagDefined = errors.New("flag is already defined")

// configHome returns the per-user configuration directory.
var configHome = func() string {
	return xdg.ConfigHome
}

type extension struct {
	root *cli.Command
	opts *options

	// configured holds the flags marked as set during binding, with their
	// set count at that point.
	configured map[cli.Flag]int
	// argDefaults holds the declared defaults of arguments whose default was
	// taken from configuration.
	argDefaults map[any]any
}

// Extend adds configuration file support to root and all of its subcommands.
// It must be called once, after the command tree is complete and before Run.
// Parameters whose declared type cannot be mapped to a configuration kind,
// and subcommands whose names collide with parameters, are reported here.
func Extend(root *cli.Command, opts ...Option) error {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.appName == "" {
		o.appName = root.Name
	}

	if o.excluded == nil {
		o.excluded = params.DefaultExcluded
	}

	o.excluded = append(o.excluded, params.Identifier(ConfigFlagName), params.Identifier(ShowParamsFlagName))

	if len(o.searchDirs) == 0 {
		o.searchDirs = []string{filepath.Join(configHome(), o.appName)}
	}

	for _, f := range root.Flags {
		for _, n := range f.Names() {
			if n == ConfigFlagName || n == ShowParamsFlagName {
				return fmt.Errorf("%w: --%s", ErrFlagDefined, n)
			}
		}
	}

	x := &extension{
		root:        root,
		opts:        o,
		configured:  make(map[cli.Flag]int),
		argDefaults: make(map[any]any),
	}

	root.Flags = append(root.Flags, x.configFlag(), x.showParamsFlag())

	pt, err := params.Build(root, o.excluded)
	if err != nil {
		return err
	}

	if o.envPrefix != "" {
		for _, prm := range pt.Params {
			if prm.Flag == nil || prm.Excluded {
				continue
			}

			appendEnvVar(prm.Flag, autoEnvVar(o.envPrefix, prm))
		}
	}

	if root.ExitErrHandler == nil {
		root.ExitErrHandler = handleExit
	}

	x.install(root)

	return nil
}

func (x *extension) configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        ConfigFlagName,
		Aliases:     []string{"C"},
		Usage:       "read parameter values from configuration `FILE` or http(s) URL",
		TakesFile:   true,
		Sources:     cli.EnvVars(envName(x.opts.appName) + "_CONFIG"),
		DefaultText: x.searchPattern(),
	}
}

func (x *extension) showParamsFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  ShowParamsFlagName,
		Usage: "print every parameter with its value and where it came from, then exit",
		Action: func(ctx context.Context, cmd *cli.Command, show bool) error {
			if !show {
				return nil
			}

			st := FromContext(ctx)
			if st == nil {
				pt, err := params.Build(x.root, x.opts.excluded)
				if err != nil {
					return err
				}

				st = &State{Tree: pt}
			}

			w := cmd.Root().Writer
			if w == nil {
				w = x.root.Writer
			}

			if err := ShowParams(w, st); err != nil {
				return err
			}

			return &ExitError{Code: ExitShowParams, Err: ErrShowParams}
		},
	}
}

func (x *extension) searchPattern() string {
	exts := make([]string, 0, len(formats.AllExtensions()))
	for _, e := range formats.AllExtensions() {
		exts = append(exts, strings.TrimPrefix(e, "."))
	}

	return filepath.Join(x.opts.searchDirs[0], "config.{"+strings.Join(exts, ",")+"}")
}

// install wraps the Before hook of cmd and its subcommands. The root hook
// loads the configuration, every hook then binds the parameters of its own
// command. Existing hooks run afterwards with the returned context.
func (x *extension) install(cmd *cli.Command) {
	hook := x.bind
	if cmd == x.root {
		hook = x.load
	}

	next := cmd.Before
	cmd.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		ctx, err := hook(ctx, cmd)
		if err != nil {
			return ctx, err
		}

		if next == nil {
			return ctx, nil
		}

		nctx, err := next(ctx, c)
		if nctx == nil {
			nctx = ctx
		}

		return nctx, err
	}

	if cmd.ExitErrHandler == nil {
		cmd.ExitErrHandler = x.root.ExitErrHandler
	}

	for _, sub := range cmd.Commands {
		x.install(sub)
	}
}

func envName(s string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(s))
}

// autoEnvVar derives PREFIX_SUB_FLAG. The root command name is not part of it.
func autoEnvVar(prefix string, prm *params.Param) string {
	parts := []string{prefix}
	for _, seg := range prm.Path[1:] {
		parts = append(parts, envName(seg))
	}

	return strings.Join(parts, "_")
}
