// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tree

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrEmptyPath is returned when an operation needs at least one path segment.
	ErrEmptyPath = errors.New("empty path")
	// ErrNotBranch is returned when a path walks through a leaf.
	ErrNotBranch = errors.New("path segment is not a branch")
)

// Separator joins path segments in their string form.
const Separator = "."

// Node is either a Leaf or a Branch.
type Node interface {
	isNode()
}

// Leaf holds a single value.
type Leaf struct {
	Value any
}

func (Leaf) isNode() {}

// Branch maps keys to child nodes.
type Branch map[string]Node

func (Branch) isNode() {}

type unset struct{}

func (unset) String() string { return "<unset>" }

// Unset is the placeholder value stored in template leaves.
var Unset any = unset{}

// IsUnset reports whether v is the Unset placeholder.
func IsUnset(v any) bool {
	_, ok := v.(unset)
	return ok
}

// Path addresses a node from the root of a tree.
type Path []string

// ParsePath splits a dotted string into a Path.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}

	return strings.Split(s, Separator)
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// Child returns a copy of p with key appended.
func (p Path) Child(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)

	return append(out, key)
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(o Path) bool {
	return slices.Equal(p, o)
}

// Keys returns the keys of b in sorted order.
func (b Branch) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Get returns the node at p. An empty path returns b itself.
func (b Branch) Get(p Path) (Node, bool) {
	var cur Node = b

	for _, seg := range p {
		br, ok := cur.(Branch)
		if !ok {
			return nil, false
		}

		cur, ok = br[seg]
		if !ok {
			return nil, false
		}
	}

	return cur, true
}

// Lookup returns the value of the leaf at p.
func (b Branch) Lookup(p Path) (any, bool) {
	n, ok := b.Get(p)
	if !ok {
		return nil, false
	}

	l, ok := n.(Leaf)
	if !ok {
		return nil, false
	}

	return l.Value, true
}

// Set stores n at p, creating intermediate branches as needed.
func (b Branch) Set(p Path, n Node) error {
	if len(p) == 0 {
		return ErrEmptyPath
	}

	cur := b

	for i, seg := range p[:len(p)-1] {
		next, ok := cur[seg]
		if !ok {
			br := Branch{}
			cur[seg] = br
			cur = br

			continue
		}

		br, ok := next.(Branch)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotBranch, p[:i+1])
		}

		cur = br
	}

	cur[p[len(p)-1]] = n

	return nil
}

// Clone returns a deep copy of the branch structure. Leaf values are copied
// by assignment.
func (b Branch) Clone() Branch {
	out := make(Branch, len(b))

	for k, v := range b {
		if br, ok := v.(Branch); ok {
			out[k] = br.Clone()
			continue
		}

		out[k] = v
	}

	return out
}

// Walk calls fn for every leaf in depth-first, key-sorted order.
func (b Branch) Walk(fn func(Path, Leaf) error) error {
	return b.walk(nil, fn)
}

func (b Branch) walk(prefix Path, fn func(Path, Leaf) error) error {
	for _, k := range b.Keys() {
		p := prefix.Child(k)

		switch n := b[k].(type) {
		case Branch:
			if err := n.walk(p, fn); err != nil {
				return err
			}
		case Leaf:
			if err := fn(p, n); err != nil {
				return err
			}
		}
	}

	return nil
}

// Leaves returns the path of every leaf in walk order.
func (b Branch) Leaves() []Path {
	var out []Path

	_ = b.Walk(func(p Path, _ Leaf) error {
		out = append(out, p)
		return nil
	})

	return out
}

// KeyPaths returns the path of every node, branches included, in walk order.
func (b Branch) KeyPaths() []Path {
	var out []Path

	var rec func(Branch, Path)
	rec = func(br Branch, prefix Path) {
		for _, k := range br.Keys() {
			p := prefix.Child(k)
			out = append(out, p)

			if child, ok := br[k].(Branch); ok {
				rec(child, p)
			}
		}
	}

	rec(b, nil)

	return out
}

// Flatten returns a map of dotted leaf paths to leaf values.
func (b Branch) Flatten() map[string]any {
	out := make(map[string]any)

	_ = b.Walk(func(p Path, l Leaf) error {
		out[p.String()] = l.Value
		return nil
	})

	return out
}

// Prune returns a copy of b without Unset leaves and without branches that
// end up empty.
func (b Branch) Prune() Branch {
	out := Branch{}

	for k, v := range b {
		switch n := v.(type) {
		case Branch:
			if pruned := n.Prune(); len(pruned) > 0 {
				out[k] = pruned
			}
		case Leaf:
			if !IsUnset(n.Value) {
				out[k] = n
			}
		}
	}

	return out
}

// ToMap converts b into nested map[string]any values.
func (b Branch) ToMap() map[string]any {
	out := make(map[string]any, len(b))

	for k, v := range b {
		switch n := v.(type) {
		case Branch:
			out[k] = n.ToMap()
		case Leaf:
			out[k] = n.Value
		}
	}

	return out
}

// FromMap converts nested map[string]any values into a Branch. Any value that
// is not a map[string]any becomes a Leaf.
func FromMap(m map[string]any) Branch {
	out := make(Branch, len(m))

	for k, v := range m {
		if child, ok := v.(map[string]any); ok {
			out[k] = FromMap(child)
			continue
		}

		out[k] = Leaf{Value: v}
	}

	return out
}
