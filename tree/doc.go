// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tree provides the recursive Leaf/Branch structure used for
// parameter templates, parameter types and reconciled configuration.
//
// Every operation is plain structural recursion over the Node sum type.
// Paths are slices of keys from the root; their string form joins the keys
// with a dot.
package tree
