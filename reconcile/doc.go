// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package reconcile merges a parsed configuration document into a parameter
// template. Keys the template does not declare are dropped, or reported in
// strict mode, so the result never holds a key the command tree does not
// know about.
package reconcile
