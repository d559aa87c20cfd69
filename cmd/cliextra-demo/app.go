// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matt-FFFFFF/cliextra"
	"github.com/matt-FFFFFF/cliextra/params"
	"github.com/urfave/cli/v3"
)

// newRootCmd returns a fresh command tree. Flag values live in the flags, so
// each invocation needs its own tree.
func newRootCmd(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "app",
		Usage: "app --config config.toml sub",
		Description: `Demonstrates configuration file support. Every flag can be set in
config.toml, config.yaml, config.json, config.ini, config.xml or config.hcl
under a table named after the command path, for example [app] and [app.sub].`,
		Version:   fmt.Sprintf("%s (commit: %s)", cliextra.Version, cliextra.Commit),
		Writer:    w,
		ErrWriter: os.Stderr,
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "verbosity", Value: "INFO", Usage: "verbosity of the demo output"},
			&cli.StringSliceFlag{Name: "my-list", Usage: "any list of strings"},
			&cli.BoolFlag{Name: "flag", Usage: "a boolean switch"},
			&cli.GenericFlag{
				Name:  "mode",
				Usage: "one of fast or safe",
				Value: params.NewChoice("fast", "fast", "safe"),
			},
		},
		Action: printParams,
		Commands: []*cli.Command{
			{
				Name:  "sub",
				Usage: "a subcommand with its own parameters",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "int-param", Usage: "any integer"},
					&cli.GenericFlag{
						Name:  "retries",
						Usage: "retry count between 0 and 10",
						Value: &params.IntRange{Min: 0, Max: 10, Value: 3},
					},
				},
				Action: printParams,
			},
		},
	}
}

// printParams writes the resolved value of every flag visible to cmd.
func printParams(ctx context.Context, cmd *cli.Command) error {
	names := []string{"verbosity", "my-list", "flag", "mode"}
	if cmd.Name == "sub" {
		names = append(names, "int-param", "retries")
	}

	for _, n := range names {
		v := cmd.Value(n)
		if l, ok := v.([]string); ok {
			v = strings.Join(l, ",")
		}

		if _, err := fmt.Fprintf(cmd.Root().Writer, "%s=%v\n", n, v); err != nil {
			return err
		}
	}

	if st := cliextra.FromContext(ctx); st != nil && st.Loaded() {
		_, err := fmt.Fprintf(cmd.Root().Writer, "config=%s\n", st.Location)
		return err
	}

	return nil
}
