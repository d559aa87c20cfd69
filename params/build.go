// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package params

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/cliextra/tree"
	"github.com/urfave/cli/v3"
)

// ErrStructureConflict is returned when two entries of the parameter tree
// claim the same key.
var ErrStructureConflict = errors.New("parameter tree structure conflict")

// DefaultExcluded lists the meta parameters that are never bound from a
// configuration file.
var DefaultExcluded = []string{"help", "show_params", "version", "config"}

// Param describes one flag or positional argument of the command tree.
type Param struct {
	// ID is the identifier used as the last path segment.
	ID          string
	Path        tree.Path
	Kind        Kind
	Declaration Declaration
	Default     any
	Excluded    bool
	Command     *cli.Command
	// Exactly one of Flag and Arg is set.
	Flag cli.Flag
	Arg  cli.Argument
}

// Name returns the flag or argument name as declared on the command.
func (p *Param) Name() string {
	if p.Flag != nil {
		return p.Flag.Names()[0]
	}

	if n, ok := argName(p.Arg); ok {
		return n
	}

	return p.ID
}

// Value returns the current value: the parsed flag value, or the argument
// default before positional arguments are parsed.
func (p *Param) Value() any {
	if p.Flag != nil {
		return p.Flag.Get()
	}

	return defaultValue(p.Arg)
}

// Tree is the result of walking a command tree.
type Tree struct {
	// Template mirrors the command tree, every leaf holds tree.Unset.
	Template tree.Branch
	// Types has the same keys as Template, every leaf holds a Kind.
	Types tree.Branch
	// Params lists every parameter in traversal order, excluded ones included.
	Params []*Param
}

// Kind returns the kind of the parameter at p.
func (t *Tree) Kind(p tree.Path) (Kind, bool) {
	v, ok := t.Types.Lookup(p)
	if !ok {
		return 0, false
	}

	k, ok := v.(Kind)

	return k, ok
}

// Param returns the bound parameter at p.
func (t *Tree) Param(p tree.Path) (*Param, bool) {
	for _, prm := range t.Params {
		if !prm.Excluded && prm.Path.Equal(p) {
			return prm, true
		}
	}

	return nil, false
}

// ForCommand returns the bound parameters declared on cmd.
func (t *Tree) ForCommand(cmd *cli.Command) []*Param {
	var out []*Param

	for _, prm := range t.Params {
		if !prm.Excluded && prm.Command == cmd {
			out = append(out, prm)
		}
	}

	return out
}

// Identifier turns a flag or argument name into a tree key.
func Identifier(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// Build walks root depth first, parameters before subcommands, and returns
// the template and types trees. A nil excluded list means DefaultExcluded.
func Build(root *cli.Command, excluded []string) (*Tree, error) {
	if excluded == nil {
		excluded = DefaultExcluded
	}

	b := &builder{
		excluded: make(map[string]struct{}, len(excluded)),
		tree: &Tree{
			Template: tree.Branch{},
			Types:    tree.Branch{},
		},
	}

	for _, e := range excluded {
		b.excluded[Identifier(e)] = struct{}{}
	}

	tmpl, types, err := b.command(root, tree.Path{root.Name})
	if err != nil {
		return nil, err
	}

	if len(tmpl) > 0 {
		b.tree.Template[root.Name] = tmpl
		b.tree.Types[root.Name] = types
	}

	return b.tree, nil
}

type builder struct {
	excluded map[string]struct{}
	tree     *Tree
}

func (b *builder) command(cmd *cli.Command, path tree.Path) (tree.Branch, tree.Branch, error) {
	tmpl := tree.Branch{}
	types := tree.Branch{}

	for _, f := range commandFlags(cmd) {
		if err := b.param(cmd, path, f, f.Names()[0], tmpl, types); err != nil {
			return nil, nil, err
		}
	}

	for _, a := range cmd.Arguments {
		name, ok := argName(a)
		if !ok {
			continue
		}

		if err := b.param(cmd, path, a, name, tmpl, types); err != nil {
			return nil, nil, err
		}
	}

	for _, sub := range cmd.Commands {
		if _, taken := tmpl[sub.Name]; taken {
			return nil, nil, fmt.Errorf("%w: subcommand %q collides with parameter %s",
				ErrStructureConflict, sub.Name, path.Child(sub.Name))
		}

		subTmpl, subTypes, err := b.command(sub, path.Child(sub.Name))
		if err != nil {
			return nil, nil, err
		}

		if len(subTmpl) == 0 {
			continue
		}

		tmpl[sub.Name] = subTmpl
		types[sub.Name] = subTypes
	}

	return tmpl, types, nil
}

func (b *builder) param(cmd *cli.Command, path tree.Path, p any, name string, tmpl, types tree.Branch) error {
	id := Identifier(name)
	prm := &Param{
		ID:          id,
		Path:        path.Child(id),
		Declaration: Declare(p),
		Default:     defaultValue(p),
		Command:     cmd,
	}

	switch v := p.(type) {
	case cli.Flag:
		prm.Flag = v
	case cli.Argument:
		prm.Arg = v
	}

	if _, ok := b.excluded[id]; ok {
		prm.Excluded = true
		b.tree.Params = append(b.tree.Params, prm)

		return nil
	}

	kind, err := InferKind(prm.Declaration)
	if err != nil {
		return fmt.Errorf("%s: %w", prm.Path, err)
	}

	prm.Kind = kind

	if _, taken := tmpl[id]; taken {
		return fmt.Errorf("%w: parameter %s is declared twice", ErrStructureConflict, prm.Path)
	}

	tmpl[id] = tree.Leaf{Value: tree.Unset}
	types[id] = tree.Leaf{Value: kind}
	b.tree.Params = append(b.tree.Params, prm)

	return nil
}

func commandFlags(cmd *cli.Command) []cli.Flag {
	flags := append([]cli.Flag{}, cmd.Flags...)

	for _, grp := range cmd.MutuallyExclusiveFlags {
		for _, fs := range grp.Flags {
			flags = append(flags, fs...)
		}
	}

	return flags
}

// argName recovers the Name field of the generic urfave/cli argument types.
func argName(a cli.Argument) (string, bool) {
	if a == nil {
		return "", false
	}

	s, ok := reflectString(a, "Name")
	if !ok || s == "" {
		return "", false
	}

	return s, true
}
