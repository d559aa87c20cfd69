// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formats

import (
	"strings"

	"github.com/clbanning/mxj/v2"
	"github.com/matt-FFFFFF/cliextra/params"
	"github.com/matt-FFFFFF/cliextra/tree"
)

const (
	xmlAttrPrefix = "-"
	xmlTextKey    = "#text"
)

// parseXML maps elements to keys, collapses repeated siblings into lists and
// coerces text through the types tree. Attributes are dropped.
func parseXML(data []byte, types tree.Branch) (map[string]any, error) {
	m, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(m))

	for k, v := range m {
		val, err := xmlValue(v, tree.Path{k}, types)
		if err != nil {
			return nil, err
		}

		out[k] = val
	}

	return out, nil
}

func xmlValue(v any, p tree.Path, types tree.Branch) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if text, ok := t[xmlTextKey]; ok && onlyAttributes(t) {
			return xmlValue(text, p, types)
		}

		out := make(map[string]any, len(t))

		for k, c := range t {
			if strings.HasPrefix(k, xmlAttrPrefix) || k == xmlTextKey {
				continue
			}

			val, err := xmlValue(c, p.Child(k), types)
			if err != nil {
				return nil, err
			}

			out[k] = val
		}

		return out, nil
	case []any:
		kind, ok := kindAt(types, p)
		out := make([]any, len(t))

		for i, c := range t {
			if s, isString := c.(string); isString && ok && kind == params.KindList {
				out[i] = s
				continue
			}

			val, err := xmlValue(c, p, types)
			if err != nil {
				return nil, err
			}

			out[i] = val
		}

		return out, nil
	case nil:
		return xmlValue("", p, types)
	case string:
		if kind, ok := kindAt(types, p); ok && kind == params.KindList {
			if strings.HasPrefix(strings.TrimSpace(t), "[") {
				return Coerce(t, kind)
			}

			return []any{t}, nil
		}

		return coerce(t, p, types)
	}

	return v, nil
}

func onlyAttributes(m map[string]any) bool {
	for k := range m {
		if k != xmlTextKey && !strings.HasPrefix(k, xmlAttrPrefix) {
			return false
		}
	}

	return true
}
