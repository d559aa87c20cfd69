// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formats

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/cliextra/tree"
	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
)

// ErrNotMapping is returned when a document's top level is not a mapping.
var ErrNotMapping = errors.New("top level of the document is not a mapping")

func parseTOML(data []byte, _ tree.Branch) (map[string]any, error) {
	m := map[string]any{}
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return m, nil
}

func parseYAML(data []byte, _ tree.Branch) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if doc == nil {
		return map[string]any{}, nil
	}

	m, ok := normalize(doc).(map[string]any)
	if !ok {
		return nil, ErrNotMapping
	}

	return m, nil
}

// parseJSON accepts JSON with comments and trailing commas.
func parseJSON(data []byte, _ tree.Branch) (map[string]any, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNotMapping
	}

	return m, nil
}
