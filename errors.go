// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliextra

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"
)

// Exit codes used for configuration failures.
const (
	ExitStrict       = 1
	ExitConfigLoad   = 2
	ExitShowParams   = 0
	exitUnknownError = 1
)

// ErrShowParams is returned once the parameter table has been printed.
var ErrShowParams = errors.New("parameters shown")

// ExitError is a failure that has already been logged and only needs to end
// the process with Code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit"
	}

	return e.Err.Error()
}

// ExitCode implements cli.ExitCoder.
func (e *ExitError) ExitCode() int {
	return e.Code
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps the error returned by cli.Command.Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	return exitUnknownError
}

// handleExit is installed as ExitErrHandler. Errors from this package are
// already logged, so only the exit code is used.
func handleExit(_ context.Context, _ *cli.Command, err error) {
	var ee *ExitError
	if errors.As(err, &ee) {
		cli.OsExiter(ee.Code)
		return
	}

	cli.HandleExitCoder(err)
}
