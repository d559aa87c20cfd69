// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/cliextra/params"
	"github.com/matt-FFFFFF/cliextra/tree"
)

var boolStates = map[string]bool{
	"1": true, "yes": true, "true": true, "on": true,
	"0": false, "no": false, "false": false, "off": false,
}

// kindAt returns the parameter kind registered at p, if any.
func kindAt(types tree.Branch, p tree.Path) (params.Kind, bool) {
	v, ok := types.Lookup(p)
	if !ok {
		return 0, false
	}

	k, ok := v.(params.Kind)

	return k, ok
}

// coerce converts raw to the kind registered at p. Values at paths without a
// kind stay strings.
func coerce(raw string, p tree.Path, types tree.Branch) (any, error) {
	kind, ok := kindAt(types, p)
	if !ok {
		return raw, nil
	}

	v, err := Coerce(raw, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	return v, nil
}

// Coerce converts a raw string to kind. Lists are decoded as JSON.
func Coerce(raw string, kind params.Kind) (any, error) {
	switch kind {
	case params.KindString:
		return raw, nil
	case params.KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrCoerce, raw)
		}

		return i, nil
	case params.KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a float", ErrCoerce, raw)
		}

		return f, nil
	case params.KindBool:
		b, ok := boolStates[strings.ToLower(strings.TrimSpace(raw))]
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrCoerce, raw)
		}

		return b, nil
	case params.KindList:
		dec := json.NewDecoder(bytes.NewBufferString(raw))
		dec.UseNumber()

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %q is not a JSON document: %w", ErrCoerce, raw, err)
		}

		return normalize(v), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, kind)
}
