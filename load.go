// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliextra

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/cliextra/formats"
	"github.com/matt-FFFFFF/cliextra/internal/ctxlog"
	"github.com/matt-FFFFFF/cliextra/params"
	"github.com/matt-FFFFFF/cliextra/reconcile"
	"github.com/matt-FFFFFF/cliextra/tree"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const promptText = "Configuration file or URL (empty for default): "

// interactive reports whether the location may be asked for.
var interactive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// prompter reads one line from the terminal.
var prompter = func(prompt string) (string, error) {
	line := liner.NewLiner()
	defer func() {
		_ = line.Close()
	}()

	line.SetCtrlCAborts(true)

	return line.Prompt(prompt)
}

// load is the Before hook of the root command.
func (x *extension) load(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if x.opts.logger != nil {
		ctx = ctxlog.New(ctx, x.opts.logger)
	}

	x.restoreArgDefaults()

	pt, err := params.Build(cmd, x.opts.excluded)
	if err != nil {
		return ctx, err
	}

	st := &State{
		Tree:       pt,
		Reconciled: tree.Branch{},
		Sources:    make(map[string]Source),
	}
	ctx = withState(ctx, st)

	location, explicit, err := x.locate(ctx, cmd)
	if err != nil {
		return ctx, err
	}

	if location != "" {
		if err := x.read(ctx, st, location, explicit); err != nil {
			return ctx, err
		}
	}

	return ctx, x.bindCommand(ctx, st, cmd)
}

// locate returns the configuration location and whether the user asked for it.
// An empty location means there is nothing to load.
func (x *extension) locate(ctx context.Context, cmd *cli.Command) (string, bool, error) {
	if cmd.IsSet(ConfigFlagName) {
		if loc := cmd.String(ConfigFlagName); loc != "" {
			return loc, true, nil
		}
	}

	if x.opts.prompt && interactive() {
		answer, err := prompter(promptText)

		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			return "", false, &ExitError{Code: ExitConfigLoad, Err: err}
		case err != nil:
			ctxlog.Warn(ctx, "configuration prompt failed, using the default search", "error", err)
		case strings.TrimSpace(answer) != "":
			return strings.TrimSpace(answer), true, nil
		}
	}

	return x.search(ctx), false, nil
}

// search returns the first config.<ext> in the search directories, trying
// extensions in format priority order.
func (x *extension) search(ctx context.Context) string {
	fs := formats.FsFactory()

	for _, dir := range x.opts.searchDirs {
		for _, ext := range formats.AllExtensions() {
			p := filepath.Join(dir, "config"+ext)

			info, err := fs.Stat(p)
			if err != nil || info.IsDir() {
				continue
			}

			return p
		}
	}

	ctxlog.Debug(ctx, "no configuration file found", "searched", x.opts.searchDirs)

	return ""
}

// read loads, parses and reconciles the document at location into st.
func (x *extension) read(ctx context.Context, st *State, location string, explicit bool) error {
	doc, parsed, err := formats.Load(ctx, location, st.Tree.Types)
	if err != nil {
		return x.fail(ctx, explicit, err)
	}

	reconciled, err := reconcile.Reconcile(st.Tree.Template, parsed, reconcile.WithStrict(x.opts.strict))
	if err != nil {
		ctxlog.Critical(ctx, "configuration contains undeclared parameters",
			"location", doc.Location,
			"error", err.Error(),
		)

		return &ExitError{Code: ExitStrict, Err: err}
	}

	st.Location = doc.Location
	st.Explicit = explicit
	st.Format = doc.Format
	st.Reconciled = reconciled

	args := []any{"location", doc.Location, "format", doc.Format.String()}
	if explicit {
		ctxlog.Info(ctx, "using configuration file", args...)
	} else {
		ctxlog.Debug(ctx, "using configuration file", args...)
	}

	return nil
}

// fail applies the failure policy: fatal for explicitly requested documents,
// a debug message otherwise.
func (x *extension) fail(ctx context.Context, explicit bool, err error) error {
	location := ""

	var cfe *formats.ConfigurationFileError
	if errors.As(err, &cfe) {
		location = cfe.Location
	}

	if !explicit {
		ctxlog.Debug(ctx, "ignoring configuration file", "location", location, "error", err.Error())
		return nil
	}

	ctxlog.Critical(ctx, "cannot load configuration file", "location", location, "error", err.Error())

	return &ExitError{Code: ExitConfigLoad, Err: err}
}
