// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package reconcile

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cliextra/tree"
)

// ErrUnknownKey matches every *UnknownKeyError.
var ErrUnknownKey = errors.New("configuration key is not a declared parameter")

// UnknownKeyError names a configuration key that the parameter template does
// not declare.
type UnknownKeyError struct {
	Path tree.Path
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownKey, e.Path)
}

// Is makes errors.Is(err, ErrUnknownKey) match.
func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownKey
}

type options struct {
	strict bool
}

// Option configures Reconcile.
type Option func(*options)

// Strict turns unknown keys into errors instead of dropping them.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithStrict sets strict mode from a boolean.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// Reconcile merges parsed into a copy of template and returns the pruned
// result: only keys declared in template are kept, unset placeholders and
// empty branches are removed. In strict mode every unknown key is reported
// and no result is returned.
func Reconcile(template tree.Branch, parsed map[string]any, opts ...Option) (tree.Branch, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	out := template.Clone()

	var unknown *multierror.Error

	merge(out, parsed, nil, func(p tree.Path) {
		if o.strict {
			unknown = multierror.Append(unknown, &UnknownKeyError{Path: p})
		}
	})

	if err := unknown.ErrorOrNil(); err != nil {
		return nil, err
	}

	return out.Prune(), nil
}

func merge(dst tree.Branch, src map[string]any, prefix tree.Path, onUnknown func(tree.Path)) {
	for _, k := range slices.Sorted(maps.Keys(src)) {
		v := src[k]
		p := prefix.Child(k)

		existing, ok := dst[k]
		if !ok {
			onUnknown(p)
			continue
		}

		br, isBranch := existing.(tree.Branch)
		m, isMap := v.(map[string]any)

		if isBranch && isMap {
			merge(br, m, p, onUnknown)
			continue
		}

		dst[k] = tree.Leaf{Value: v}
	}
}
