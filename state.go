// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliextra

import (
	"context"

	"github.com/matt-FFFFFF/cliextra/formats"
	"github.com/matt-FFFFFF/cliextra/params"
	"github.com/matt-FFFFFF/cliextra/tree"
)

// Source is where the value of a parameter came from.
type Source int

// Value sources, in increasing precedence.
const (
	SourceDefault Source = iota
	SourceConfig
	SourceEnvironment
	SourceCommandLine
)

var sourceNames = map[Source]string{
	SourceDefault:     "default",
	SourceConfig:      "config",
	SourceEnvironment: "environment",
	SourceCommandLine: "command line",
}

func (s Source) String() string {
	return sourceNames[s]
}

type stateKey struct{}

// State is built by the root Before hook on every invocation.
type State struct {
	// Location is the absolute path or URL of the loaded document, empty when
	// nothing was loaded.
	Location string
	// Explicit is true when the location came from --config, its environment
	// variable or the prompt.
	Explicit bool
	Format   formats.Format
	Tree     *params.Tree
	// Reconciled holds the values from the document that name declared
	// parameters.
	Reconciled tree.Branch
	// Sources is keyed by parameter path. Commands that were not invoked have
	// no entries.
	Sources map[string]Source
}

// Loaded reports whether a configuration document was read.
func (s *State) Loaded() bool {
	return s.Location != ""
}

// FromContext returns the State stored by the root hook, or nil.
func FromContext(ctx context.Context) *State {
	st, _ := ctx.Value(stateKey{}).(*State)
	return st
}

func withState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}
