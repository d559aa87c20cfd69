// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger is a pretty console handler writing to standard error.
// Its level comes from the <EXECUTABLE>_LOG_LEVEL environment variable, one of
// DEBUG, INFO, WARN, ERROR or CRITICAL, and defaults to WARN.
package ctxlog
