// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package formats fetches configuration documents from local paths or
// http(s) URLs, detects their format from the file extension and parses them
// into nested maps.
//
// TOML, YAML, JSON (comments and trailing commas allowed), INI, XML and HCL
// are recognised, in that priority order. INI and XML only carry strings, so
// their values are coerced using the parameter types tree.
package formats
