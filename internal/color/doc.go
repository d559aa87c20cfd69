// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color writes ANSI colored text for the console log handler.
// Color honours NO_COLOR and FORCE_COLOR and is otherwise only used for terminals.
package color
