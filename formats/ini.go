// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formats

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/cliextra/tree"
	"gopkg.in/ini.v1"
)

const maxInterpolationDepth = 10

var iniLoadOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	IgnoreInlineComment:        true,
	AllowPythonMultilineValues: true,
	PreserveSurroundedQuote:    true,
	KeyValueDelimiters:         "=:",
}

// iniDoc holds raw INI values, before interpolation and coercion.
type iniDoc struct {
	defaults map[string]string
	sections map[string]map[string]string
	order    []string
}

func (d *iniDoc) lookup(section, key string) (string, bool) {
	if section != ini.DefaultSection {
		if s, ok := d.sections[section]; ok {
			if v, ok := s[key]; ok {
				return v, true
			}
		} else {
			return "", false
		}
	}

	v, ok := d.defaults[key]

	return v, ok
}

// keys returns the section's own keys merged with the defaults, sorted.
func (d *iniDoc) keys(section string) []string {
	seen := map[string]struct{}{}
	for k := range d.defaults {
		seen[k] = struct{}{}
	}

	for k := range d.sections[section] {
		seen[k] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}

	slices.Sort(out)

	return out
}

// interpolate expands ${key} and ${section:key} references. $$ is a literal $.
func (d *iniDoc) interpolate(section, value string, depth int) (string, error) {
	if depth > maxInterpolationDepth {
		return "", fmt.Errorf("%w: [%s] recursion deeper than %d in %q",
			ErrInterpolation, section, maxInterpolationDepth, value)
	}

	var sb strings.Builder

	rest := value
	for rest != "" {
		i := strings.IndexByte(rest, '$')
		if i < 0 {
			sb.WriteString(rest)
			break
		}

		sb.WriteString(rest[:i])
		rest = rest[i:]

		switch {
		case strings.HasPrefix(rest, "$$"):
			sb.WriteByte('$')
			rest = rest[2:]
		case strings.HasPrefix(rest, "${"):
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				return "", fmt.Errorf("%w: [%s] unterminated reference in %q", ErrInterpolation, section, value)
			}

			ref := rest[2:end]
			rest = rest[end+1:]

			sect, key := section, ref
			if parts := strings.Split(ref, ":"); len(parts) == 2 {
				sect, key = parts[0], parts[1]
			} else if len(parts) > 2 {
				return "", fmt.Errorf("%w: [%s] invalid reference ${%s}", ErrInterpolation, section, ref)
			}

			raw, ok := d.lookup(sect, strings.ToLower(key))
			if !ok {
				return "", fmt.Errorf("%w: [%s] reference ${%s} not found", ErrInterpolation, section, ref)
			}

			if strings.Contains(raw, "$") {
				var err error
				if raw, err = d.interpolate(sect, raw, depth+1); err != nil {
					return "", err
				}
			}

			sb.WriteString(raw)
		default:
			return "", fmt.Errorf("%w: [%s] '$' must be followed by '$' or '{' in %q", ErrInterpolation, section, value)
		}
	}

	return sb.String(), nil
}

// parseINI maps sections to top level keys, dotted section names to nested
// keys, and coerces every option through the types tree.
func parseINI(data []byte, types tree.Branch) (map[string]any, error) {
	f, err := ini.LoadSources(iniLoadOptions, data)
	if err != nil {
		return nil, err
	}

	doc := &iniDoc{
		defaults: map[string]string{},
		sections: map[string]map[string]string{},
	}

	for _, s := range f.Sections() {
		kv := make(map[string]string, len(s.Keys()))
		for _, k := range s.Keys() {
			kv[k.Name()] = k.Value()
		}

		if s.Name() == ini.DefaultSection {
			doc.defaults = kv
			continue
		}

		doc.sections[s.Name()] = kv
		doc.order = append(doc.order, s.Name())
	}

	out := tree.Branch{}

	for _, name := range doc.order {
		sectionPath := tree.ParsePath(name)

		if _, ok := out.Get(sectionPath); !ok {
			if err := out.Set(sectionPath, tree.Branch{}); err != nil {
				return nil, err
			}
		}

		for _, key := range doc.keys(name) {
			raw, _ := doc.lookup(name, key)

			val, err := doc.interpolate(name, raw, 1)
			if err != nil {
				return nil, err
			}

			p := sectionPath.Child(key)

			v, err := coerce(val, p, types)
			if err != nil {
				return nil, err
			}

			if err := out.Set(p, tree.Leaf{Value: v}); err != nil {
				return nil, err
			}
		}
	}

	return out.ToMap(), nil
}
