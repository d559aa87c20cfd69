// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains cliextra-demo, a small CLI whose parameters can be
// read from a configuration file.
package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/matt-FFFFFF/cliextra"
	"github.com/matt-FFFFFF/cliextra/internal/ctxlog"
)

func main() {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	os.Exit(run(ctx, os.Args, os.Stdout))
}

func run(ctx context.Context, args []string, w io.Writer) int {
	root := newRootCmd(w)

	opts := []cliextra.Option{cliextra.WithAutoEnvVars(root.Name), cliextra.WithPrompt()}
	if os.Getenv("APP_STRICT") != "" {
		opts = append(opts, cliextra.WithStrict())
	}

	if err := cliextra.Extend(root, opts...); err != nil {
		ctxlog.Error(ctx, "cannot add configuration support", "error", err)
		return 1
	}

	err := root.Run(ctx, args)

	var ee *cliextra.ExitError
	if err != nil && !errors.As(err, &ee) {
		ctxlog.Error(ctx, "command execution failed", "error", err)
	}

	return cliextra.ExitCode(err)
}
