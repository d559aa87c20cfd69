// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/matt-FFFFFF/cliextra/tree"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ErrHCLBody is returned when an HCL file does not use the native syntax.
var ErrHCLBody = errors.New("unexpected HCL body type")

// parseHCL maps attributes to keys and blocks to nested mappings keyed by
// block type then labels. Expressions are evaluated without variables.
func parseHCL(data []byte, _ tree.Branch) (map[string]any, error) {
	file, diags := hclsyntax.ParseConfig(data, "config.hcl", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, ErrHCLBody
	}

	out := tree.Branch{}
	if err := hclBody(body, out); err != nil {
		return nil, err
	}

	return out.ToMap(), nil
}

func hclBody(body *hclsyntax.Body, into tree.Branch) error {
	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return diags
		}

		v, err := ctyToGo(val)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		into[name] = tree.Leaf{Value: v}
	}

	for _, block := range body.Blocks {
		p := append(tree.Path{block.Type}, block.Labels...)

		n, ok := into.Get(p)
		if !ok {
			n = tree.Branch{}
			if err := into.Set(p, n); err != nil {
				return err
			}
		}

		br, ok := n.(tree.Branch)
		if !ok {
			return fmt.Errorf("%w: %s", tree.ErrNotBranch, p)
		}

		if err := hclBody(block.Body, br); err != nil {
			return err
		}
	}

	return nil
}

func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}

	b, err := ctyjson.SimpleJSONValue{Value: v}.MarshalJSON()
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}

	return out, nil
}
