// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formats

import (
	"context"

	"github.com/matt-FFFFFF/cliextra/tree"
)

// Load fetches the document at location, detects its format from the
// extension and parses it. Every failure is a *ConfigurationFileError.
func Load(ctx context.Context, location string, types tree.Branch) (*Document, map[string]any, error) {
	doc, err := Fetch(ctx, location)
	if err != nil {
		return nil, nil, err
	}

	f, err := Detect(doc.Extension)
	if err != nil {
		return doc, nil, fileError(doc.Location, err)
	}

	doc.Format = f

	m, err := Parse(f, doc.Data, types)
	if err != nil {
		return doc, nil, fileError(doc.Location, err)
	}

	return doc, m, nil
}
