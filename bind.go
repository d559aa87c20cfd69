// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliextra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/cliextra/internal/ctxlog"
	"github.com/matt-FFFFFF/cliextra/params"
	"github.com/urfave/cli/v3"
)

// ErrInvalidValue is returned when a configuration value is rejected by the
// flag or argument it is bound to.
var ErrInvalidValue = errors.New("invalid configuration value")

// serialPrefix marks a JSON document that urfave/cli slice and map values
// take as their complete contents, without separator splitting.
var serialPrefix = strings.TrimSuffix(cli.NewStringSlice().Serialize(), "null")

// bind is the Before hook of every command below the root.
func (x *extension) bind(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	st := FromContext(ctx)
	if st == nil {
		return ctx, nil
	}

	return ctx, x.bindCommand(ctx, st, cmd)
}

// bindCommand feeds configuration values into the parameters of cmd that the
// command line and environment left alone, and records every value source.
func (x *extension) bindCommand(ctx context.Context, st *State, cmd *cli.Command) error {
	for _, prm := range st.Tree.ForCommand(cmd) {
		key := prm.Path.String()

		if prm.Flag != nil && prm.Flag.IsSet() {
			if !x.carriedOver(prm.Flag) {
				x.remember(prm.Flag)
				st.Sources[key] = flagSource(prm.Flag)

				continue
			}

			fromEnv, err := envValue(prm.Flag)
			if err != nil {
				return err
			}

			if fromEnv {
				x.remember(prm.Flag)
				st.Sources[key] = SourceEnvironment

				continue
			}
		}

		st.Sources[key] = SourceDefault

		v, ok := st.Reconciled.Lookup(prm.Path)
		if !ok {
			continue
		}

		applied, err := x.apply(prm, v)
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", ErrInvalidValue, key, err)
			if !st.Explicit {
				ctxlog.Debug(ctx, "ignoring configuration value", "location", st.Location, "error", err.Error())
				continue
			}

			ctxlog.Critical(ctx, "cannot use configuration value", "location", st.Location, "error", err.Error())

			return &ExitError{Code: ExitConfigLoad, Err: err}
		}

		if applied {
			x.remember(prm.Flag)

			st.Sources[key] = SourceConfig
			ctxlog.Debug(ctx, "parameter set from configuration", "parameter", key)
		}
	}

	return nil
}

// carriedOver reports whether f is only marked as set because it was bound
// during an earlier run of the same command. urfave/cli rebuilds flag values
// on every run but keeps the set mark and the set count, so an unchanged
// count means the command line left the flag alone.
func (x *extension) carriedOver(f cli.Flag) bool {
	n, ok := x.configured[f]
	if !ok {
		return false
	}

	if c, ok := f.(cli.Countable); ok && c.Count() == n {
		return true
	}

	delete(x.configured, f)

	return false
}

// remember records the set count of f as seen by this run.
func (x *extension) remember(f cli.Flag) {
	if c, ok := f.(cli.Countable); ok {
		x.configured[f] = c.Count()
	}
}

// envValue applies the environment sources of f the way urfave/cli does
// after parsing. It reports whether an environment value was found.
func envValue(f cli.Flag) (bool, error) {
	chain := sourceChain(f)
	if chain == nil {
		return false, nil
	}

	val, ok := chain.Lookup()
	if !ok {
		return false, nil
	}

	name := f.Names()[0]

	switch f.Get().(type) {
	case string:
	case bool:
		if val == "" {
			val = "false"
		}
	default:
		if val == "" {
			return true, nil
		}
	}

	if err := f.Set(name, val); err != nil {
		return true, fmt.Errorf("could not parse %q from environment for flag %s: %w", val, name, err)
	}

	return true, nil
}

func (x *extension) apply(prm *params.Param, v any) (bool, error) {
	if prm.Flag != nil {
		name := prm.Flag.Names()[0]

		raw, ok, err := serialized(prm.Flag, v)
		if err != nil {
			return false, err
		}

		if !ok {
			raw = formatValue(v)
		}

		return true, prm.Flag.Set(name, raw)
	}

	if prm.Kind == params.KindList {
		return false, nil
	}

	if _, ok := x.argDefaults[prm.Arg]; !ok {
		x.argDefaults[prm.Arg] = prm.Value()
	}

	raw := formatValue(v)

	switch a := prm.Arg.(type) {
	case *cli.StringArg:
		return true, setArgDefault(a, raw)
	case *cli.IntArg:
		return true, setArgDefault(a, raw)
	case *cli.UintArg:
		return true, setArgDefault(a, raw)
	case *cli.FloatArg:
		return true, setArgDefault(a, raw)
	case *cli.TimestampArg:
		return true, setArgDefault(a, raw)
	}

	return false, nil
}

// setArgDefault parses raw the way the argument would and makes it the
// default used when the positional is missing.
func setArgDefault[T any, C any, VC cli.ValueCreator[T, C]](a *cli.ArgumentBase[T, C, VC], raw string) error {
	var (
		vc VC
		t  T
	)

	v := vc.Create(a.Value, &t, a.Config)
	if err := v.Set(raw); err != nil {
		return err
	}

	a.Value = t

	return nil
}

func resetArgDefault[T any, C any, VC cli.ValueCreator[T, C]](a *cli.ArgumentBase[T, C, VC], v any) {
	if t, ok := v.(T); ok {
		a.Value = t
	}
}

// restoreArgDefaults puts back the declared defaults of arguments that an
// earlier run took from configuration.
func (x *extension) restoreArgDefaults() {
	for arg, v := range x.argDefaults {
		switch a := arg.(type) {
		case *cli.StringArg:
			resetArgDefault(a, v)
		case *cli.IntArg:
			resetArgDefault(a, v)
		case *cli.UintArg:
			resetArgDefault(a, v)
		case *cli.FloatArg:
			resetArgDefault(a, v)
		case *cli.TimestampArg:
			resetArgDefault(a, v)
		}
	}
}

// serialized renders a list or mapping for a slice or map flag as one value
// that replaces the flag contents element for element. It reports false for
// flags holding a single value.
func serialized(f cli.Flag, v any) (string, bool, error) {
	target := reflect.TypeOf(f.Get())
	if target == nil || (target.Kind() != reflect.Slice && target.Kind() != reflect.Map) {
		return "", false, nil
	}

	switch rv := reflect.ValueOf(v); {
	case v == nil:
		v = []any{}
	case rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array && rv.Kind() != reflect.Map:
		v = []any{v}
	}

	if target.Elem().Kind() == reflect.String {
		v = stringElements(v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", true, err
	}

	typed := reflect.New(target)
	if err := json.Unmarshal(data, typed.Interface()); err != nil {
		return "", true, fmt.Errorf("cannot use %s as %s: %w", formatValue(v), target, err)
	}

	if data, err = json.Marshal(typed.Interface()); err != nil {
		return "", true, err
	}

	return serialPrefix + string(data), true, nil
}

// stringElements renders the elements of a list, or the values of a mapping,
// as strings.
func stringElements(v any) any {
	rv := reflect.ValueOf(v)

	if rv.Kind() == reflect.Map {
		out := make(map[string]string, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			out[formatValue(iter.Key().Interface())] = formatValue(iter.Value().Interface())
		}

		return out
	}

	out := make([]string, rv.Len())
	for i := range out {
		out[i] = formatValue(rv.Index(i).Interface())
	}

	return out
}

// flagSource tells a command line value from one taken from the flag's
// environment sources. The flag only records that it was set, so a value
// equal to the environment value is attributed to the environment.
func flagSource(f cli.Flag) Source {
	chain := sourceChain(f)
	if chain == nil {
		return SourceCommandLine
	}

	env, ok := chain.Lookup()
	if !ok {
		return SourceCommandLine
	}

	if b, err := strconv.ParseBool(env); err == nil {
		env = strconv.FormatBool(b)
	}

	if formatValue(f.Get()) == env {
		return SourceEnvironment
	}

	return SourceCommandLine
}

// sourceChain returns the Sources field shared by the urfave/cli flag types.
func sourceChain(f cli.Flag) *cli.ValueSourceChain {
	rv := reflect.ValueOf(f)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil
	}

	fv := rv.Elem().FieldByName("Sources")
	if !fv.IsValid() || !fv.CanAddr() {
		return nil
	}

	chain, _ := fv.Addr().Interface().(*cli.ValueSourceChain)

	return chain
}

func appendEnvVar(f cli.Flag, key string) {
	if chain := sourceChain(f); chain != nil {
		chain.Append(cli.EnvVars(key))
	}
}

// formatValue renders v in the syntax urfave/cli flags parse: lists are
// comma separated and mappings are comma separated key=value pairs.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatValue(rv.Index(i).Interface())
		}

		return strings.Join(parts, ",")
	case reflect.Map:
		parts := make([]string, 0, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			parts = append(parts, formatValue(iter.Key().Interface())+"="+formatValue(iter.Value().Interface()))
		}

		slices.Sort(parts)

		return strings.Join(parts, ",")
	}

	return fmt.Sprint(v)
}
