// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formats

import (
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/cliextra/tree"
)

// Format identifies a configuration file format.
type Format int

// Supported formats, in detection priority order.
const (
	TOML Format = iota + 1
	YAML
	JSON
	INI
	XML
	HCL
)

type family struct {
	format     Format
	name       string
	extensions []string
}

// families is ordered by priority, the default search walks it in order.
var families = []family{
	{format: TOML, name: "TOML", extensions: []string{".toml"}},
	{format: YAML, name: "YAML", extensions: []string{".yaml", ".yml"}},
	{format: JSON, name: "JSON", extensions: []string{".json"}},
	{format: INI, name: "INI", extensions: []string{".ini"}},
	{format: XML, name: "XML", extensions: []string{".xml"}},
	{format: HCL, name: "HCL", extensions: []string{".hcl"}},
}

func (f Format) String() string {
	for _, fam := range families {
		if fam.format == f {
			return fam.name
		}
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// Extensions returns the file extensions, dot included, recognised for f.
func (f Format) Extensions() []string {
	for _, fam := range families {
		if fam.format == f {
			return append([]string(nil), fam.extensions...)
		}
	}

	return nil
}

// All returns every format in priority order.
func All() []Format {
	out := make([]Format, 0, len(families))
	for _, fam := range families {
		out = append(out, fam.format)
	}

	return out
}

// AllExtensions returns every recognised extension in priority order.
func AllExtensions() []string {
	var out []string
	for _, fam := range families {
		out = append(out, fam.extensions...)
	}

	return out
}

// Detect returns the format for a file extension. The leading dot is
// optional and the match ignores case.
func Detect(ext string) (Format, error) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	for _, fam := range families {
		for _, e := range fam.extensions {
			if e == ext {
				return fam.format, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrFormatNotRecognized, ext)
}

// Parser turns raw document bytes into a nested mapping. The types tree maps
// parameter paths to params.Kind values and is used by formats that only
// carry strings.
type Parser func(data []byte, types tree.Branch) (map[string]any, error)

// Registry maps formats to their parsers.
type Registry map[Format]Parser

// DefaultRegistry holds the built-in parsers.
var DefaultRegistry = Registry{
	TOML: parseTOML,
	YAML: parseYAML,
	JSON: parseJSON,
	INI:  parseINI,
	XML:  parseXML,
	HCL:  parseHCL,
}

// Register replaces the parser used for a format.
func Register(f Format, p Parser) {
	DefaultRegistry[f] = p
}

// Parse decodes data as format f and normalises the result.
func Parse(f Format, data []byte, types tree.Branch) (map[string]any, error) {
	p, ok := DefaultRegistry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoParser, f)
	}

	m, err := p(data, types)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, f, err)
	}

	if m == nil {
		return map[string]any{}, nil
	}

	return Normalize(m), nil
}
