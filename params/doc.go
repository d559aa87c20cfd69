// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package params walks a urfave/cli command tree and builds the parameter
// template and types trees used to bind configuration files.
//
// Every flag and positional argument is addressed by the names of the
// commands leading to it followed by its identifier, the declared name with
// dashes replaced by underscores. Each parameter gets a Kind, computed by
// InferKind from its Declaration.
package params
